package vkboot

import (
	"fmt"
	"log"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// InitializeHeadless initializes Vulkan through the system loader without
// any windowing support. Tools that only query devices use this; programs
// that present to a window install the proc address from their windowing
// library instead and then call vk.Init themselves.
func InitializeHeadless() error {
	err := vk.SetDefaultGetInstanceProcAddr()
	if err != nil {
		return err
	}
	return vk.Init()
}

// Version is used to specify versions of components
type Version struct {
	Major int
	Minor int
	Patch int
}

// VKVersion returns a Vulkan compatible version representation
func (v *Version) VKVersion() uint32 {
	return vk.MakeVersion(v.Major, v.Minor, v.Patch)
}

// App describes this application to Vulkan and collects the layers and
// extensions to enable before the instance is created.
type App struct {
	// Name the name of the application
	Name string
	// EngineName the name of the engine associated with the application
	EngineName string
	// EngineVersion the version of the engine
	EngineVersion Version
	// Version the version of the application
	Version Version
	// APIVersion the expected minimum version of the Vulkan API (i.e. 1.0.0)
	APIVersion Version

	// EnabledLayers the enabled layers
	EnabledLayers []string

	// EnabledExtensions the enabled instance extensions
	EnabledExtensions []string
}

// SupportedLayers returns a list of layers supported by the installed
// Vulkan runtime. Vulkan must have been initialized first.
func SupportedLayers() ([]string, error) {
	var layerCount uint32
	err := resultErr(ErrCapabilityQuery, vk.EnumerateInstanceLayerProperties(&layerCount, nil))
	if err != nil {
		return nil, err
	}
	layers := make([]vk.LayerProperties, layerCount)
	err = resultErr(ErrCapabilityQuery, vk.EnumerateInstanceLayerProperties(&layerCount, layers))
	if err != nil {
		return nil, err
	}
	layerNames := make([]string, 0, layerCount)
	for _, layer := range layers {
		layer.Deref()
		layerNames = append(layerNames, vk.ToString(layer.LayerName[:]))
	}
	return layerNames, nil
}

// SupportedExtensions returns a list of instance extensions supported by the
// installed Vulkan runtime. Vulkan must have been initialized first.
func SupportedExtensions() ([]string, error) {
	var extCount uint32
	err := resultErr(ErrCapabilityQuery, vk.EnumerateInstanceExtensionProperties("", &extCount, nil))
	if err != nil {
		return nil, err
	}
	exts := make([]vk.ExtensionProperties, extCount)
	err = resultErr(ErrCapabilityQuery, vk.EnumerateInstanceExtensionProperties("", &extCount, exts))
	if err != nil {
		return nil, err
	}
	extNames := make([]string, 0, extCount)
	for _, ext := range exts {
		ext.Deref()
		extNames = append(extNames, vk.ToString(ext.ExtensionName[:]))
	}
	return extNames, nil
}

/*
	Commonly available layers, see
	https://vulkan.lunarg.com/doc/view/1.1.130.0/windows/validation_layers.html

	VK_LAYER_KHRONOS_validation - the main, comprehensive Khronos validation layer
	VK_LAYER_LUNARG_api_dump - print API calls and their parameters and values
	VK_LAYER_LUNARG_monitor - FPS counter in the window title bar
*/

// EnableDebugging enables the Khronos validation layer along with whichever
// debug reporting extensions the runtime supports. Validation is optional;
// callers may treat a failure here as a warning and continue without it.
func (a *App) EnableDebugging() error {
	if _, err := a.EnableLayer("VK_LAYER_KHRONOS_validation"); err != nil {
		return err
	}
	supported, err := SupportedExtensions()
	if err != nil {
		return err
	}
	for _, ext := range []string{"VK_EXT_debug_utils", "VK_EXT_debug_report"} {
		for _, s := range supported {
			if s == ext {
				a.EnableExtension(ext)
				break
			}
		}
	}
	return nil
}

// EnableLayer enables a specific layer, verifying it is supported first
func (a *App) EnableLayer(layer string) (*App, error) {
	if a.EnabledLayers == nil {
		a.EnabledLayers = make([]string, 0)
	}
	layers, err := SupportedLayers()
	if err != nil {
		return a, fmt.Errorf("error getting supported layers: %w", err)
	}
	for _, l := range layers {
		if l == layer {
			a.EnabledLayers = append(a.EnabledLayers, layer)
			return a, nil
		}
	}
	return a, fmt.Errorf("%w: layer '%s' not found", ErrValidation, layer)
}

// EnableExtension enables an instance extension for use by the application.
// Support is verified when the instance is created.
func (a *App) EnableExtension(extension string) *App {
	if a.EnabledExtensions == nil {
		a.EnabledExtensions = make([]string, 0)
	}
	a.EnabledExtensions = append(a.EnabledExtensions, extension)
	return a
}

//VKApplicationInfo creates a structure representing this application in a Vulkan friendly format
func (a *App) VKApplicationInfo() vk.ApplicationInfo {

	if a.APIVersion.Major < 1 {
		a.APIVersion.Major = 1
	}

	var appInfo = vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         a.APIVersion.VKVersion(),
		ApplicationVersion: a.Version.VKVersion(),
		EngineVersion:      a.EngineVersion.VKVersion(),
		PApplicationName:   safeString(a.Name),
		PEngineName:        safeString(a.EngineName),
	}
	return appInfo
}

// CreateInstance creates the Vulkan instance. All enabled extensions are
// checked against the supported set first so that a missing extension
// surfaces as a validation error naming the extension rather than an opaque
// result code from the driver.
func (a *App) CreateInstance() (*Instance, error) {
	supported, err := SupportedExtensions()
	if err != nil {
		return nil, err
	}
	for _, e := range a.EnabledExtensions {
		if !containsName(supported, unwrapString(e)) {
			return nil, fmt.Errorf("%w: instance extension '%s' not supported", ErrValidation, unwrapString(e))
		}
	}

	appInfo := a.VKApplicationInfo()

	extensions := safeStrings(a.EnabledExtensions)
	layers := safeStrings(a.EnabledLayers)

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
	}

	instance := &Instance{}

	err = resultErr(ErrInstanceCreation, vk.CreateInstance(&createInfo, nil, &instance.VKInstance))
	if err != nil {
		return nil, err
	}
	vk.InitInstance(instance.VKInstance)

	return instance, nil
}

// containsName reports whether the list of names contains the given name,
// ignoring any null terminators on the list entries
func containsName(names []string, name string) bool {
	for _, n := range names {
		if unwrapString(n) == name {
			return true
		}
	}
	return false
}

//PhysicalDevices returns a list of physical devices known to Vulkan
func (i *Instance) PhysicalDevices() (PhysicalDeviceSlice, error) {
	var deviceCount uint32
	err := resultErr(ErrCapabilityQuery, vk.EnumeratePhysicalDevices(i.VKInstance, &deviceCount, nil))
	if err != nil {
		return nil, err
	}

	if deviceCount == 0 {
		return nil, nil
	}

	devices := make([]vk.PhysicalDevice, deviceCount)
	err = resultErr(ErrCapabilityQuery, vk.EnumeratePhysicalDevices(i.VKInstance, &deviceCount, devices))
	if err != nil {
		return nil, err
	}

	ret := make(PhysicalDeviceSlice, deviceCount)
	for i, device := range devices {
		ret[i] = &PhysicalDevice{}
		ret[i].VKPhysicalDevice = device

		vk.GetPhysicalDeviceProperties(device, &ret[i].VKPhysicalDeviceProperties)

		ret[i].VKPhysicalDeviceProperties.Deref()
		ret[i].DeviceName = vk.ToString(ret[i].VKPhysicalDeviceProperties.DeviceName[:])
	}
	return ret, nil

}

func (i *Instance) UseDefaultDebugCallback() error {
	return i.SetDebugCallback(DefaultDebugCallback)
}

func (i *Instance) SetDebugCallback(callback vk.DebugReportCallbackFunc) error {
	var debugCallback vk.DebugReportCallback
	ret := vk.CreateDebugReportCallback(i.VKInstance, &vk.DebugReportCallbackCreateInfo{
		SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit),
		PfnCallback: callback,
	}, nil, &debugCallback)
	return vk.Error(ret)
}

// DefaultDebugCallback - taken from github.com/vulkan-go/asche/
func DefaultDebugCallback(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint, messageCode int32, pLayerPrefix string,
	pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		log.Printf("ERROR: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		log.Printf("WARNING: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		log.Printf("PERFORMANCE WARNING: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportDebugBit) != 0:
		log.Printf("DEBUG: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	default:
		log.Printf("INFORMATION: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	}
	return vk.Bool32(vk.False)
}

//Instance is an instance of the Vulkan subsystem
type Instance struct {
	//VKInstance is the native Vulkan instance object
	VKInstance vk.Instance
}

func (i *Instance) Destroy() error {
	vk.DestroyInstance(i.VKInstance, nil)
	return nil
}
