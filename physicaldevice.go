package vkboot

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type VKPresentModes []vk.PresentMode

func (v VKPresentModes) Filter(f vk.PresentMode) VKPresentModes {
	ret := make(VKPresentModes, 0)
	for _, s := range v {
		if f == s {
			ret = append(ret, s)
		}
	}
	return ret
}

type VKSurfaceFormats []vk.SurfaceFormat

func (v VKSurfaceFormats) Filter(f func(f vk.SurfaceFormat) bool) VKSurfaceFormats {
	ret := make(VKSurfaceFormats, 0)
	for _, s := range v {
		if f(s) {
			ret = append(ret, s)
		}
	}
	return ret
}

type PhysicalDevice struct {
	DeviceName                 string
	VKPhysicalDevice           vk.PhysicalDevice
	VKPhysicalDeviceProperties vk.PhysicalDeviceProperties
}

type PhysicalDeviceSlice []*PhysicalDevice

// FirstSuitable returns the first device, in enumeration order, for which
// the suitability test reports true. There is no ranking; the first
// acceptable device wins. Returns ErrNoSuitableDevice when none qualify.
func (devices PhysicalDeviceSlice) FirstSuitable(suitable func(p *PhysicalDevice) (bool, error)) (*PhysicalDevice, error) {
	for _, p := range devices {
		ok, err := suitable(p)
		if err != nil {
			return nil, err
		}
		if ok {
			return p, nil
		}
	}
	return nil, ErrNoSuitableDevice
}

// SuitableForPresentation returns a suitability test for FirstSuitable which
// requires a complete queue family resolution against the surface and
// support for every listed device extension.
func SuitableForPresentation(surface vk.Surface, requiredExtensions []string) func(p *PhysicalDevice) (bool, error) {
	return func(p *PhysicalDevice) (bool, error) {
		qi, err := p.ResolveQueueFamilyIndices(surface)
		if err != nil {
			return false, err
		}
		if !qi.Complete() {
			return false, nil
		}
		return p.SupportsExtensions(requiredExtensions)
	}
}

// GetSurfacePresentModes returns the raw present modes supported for the
// surface, in the order the driver reports them
func (p *PhysicalDevice) GetSurfacePresentModes(surface vk.Surface) (VKPresentModes, error) {
	var count uint32
	err := resultErr(ErrCapabilityQuery, vk.GetPhysicalDeviceSurfacePresentModes(p.VKPhysicalDevice, surface, &count, nil))
	if err != nil {
		return nil, err
	}

	f := make([]vk.PresentMode, count)
	err = resultErr(ErrCapabilityQuery, vk.GetPhysicalDeviceSurfacePresentModes(p.VKPhysicalDevice, surface, &count, f))
	if err != nil {
		return nil, err
	}

	return f, nil
}

// GetSurfaceFormats returns the surface formats supported for the surface.
// Entries are dereferenced and ready for inspection.
func (p *PhysicalDevice) GetSurfaceFormats(surface vk.Surface) (VKSurfaceFormats, error) {
	var count uint32
	err := resultErr(ErrCapabilityQuery, vk.GetPhysicalDeviceSurfaceFormats(p.VKPhysicalDevice, surface, &count, nil))
	if err != nil {
		return nil, err
	}

	f := make([]vk.SurfaceFormat, count)
	err = resultErr(ErrCapabilityQuery, vk.GetPhysicalDeviceSurfaceFormats(p.VKPhysicalDevice, surface, &count, f))
	if err != nil {
		return nil, err
	}

	for i := range f {
		f[i].Deref()
	}

	return f, nil
}

func (p *PhysicalDevice) GetSurfaceCapabilities(surface vk.Surface) (*vk.SurfaceCapabilities, error) {
	var caps vk.SurfaceCapabilities
	err := resultErr(ErrCapabilityQuery, vk.GetPhysicalDeviceSurfaceCapabilities(p.VKPhysicalDevice, surface, &caps))
	if err != nil {
		return nil, err
	}
	caps.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()
	caps.CurrentExtent.Deref()

	return &caps, nil
}

func (p *PhysicalDevice) String() string {
	return p.DeviceName
}

func (p *PhysicalDevice) QueueFamilies() (QueueFamilySlice, error) {
	var queueFamilyCount uint32

	vk.GetPhysicalDeviceQueueFamilyProperties(p.VKPhysicalDevice, &queueFamilyCount, nil)

	if queueFamilyCount == 0 {
		return nil, nil
	}

	queues := make([]vk.QueueFamilyProperties, queueFamilyCount)

	vk.GetPhysicalDeviceQueueFamilyProperties(p.VKPhysicalDevice, &queueFamilyCount, queues)

	ret := make(QueueFamilySlice, queueFamilyCount)
	for i, queue := range queues {

		ret[i] = &QueueFamily{Index: i, PhysicalDevice: p, VKQueueFamilyProperties: queue}

		ret[i].VKQueueFamilyProperties.Deref()

	}

	return ret, nil
}

// ResolveQueueFamilyIndices resolves the graphics and present queue families
// for this device against the given surface
func (p *PhysicalDevice) ResolveQueueFamilyIndices(surface vk.Surface) (QueueFamilyIndices, error) {
	families, err := p.QueueFamilies()
	if err != nil {
		return QueueFamilyIndices{}, err
	}
	return families.ResolveIndices(func(q *QueueFamily) bool {
		return q.SupportsPresent(surface)
	}), nil
}

type CreateDeviceOptions struct {
	EnabledExtensions []string
	EnabledLayers     []string
}

func (p *PhysicalDevice) CreateLogicalDeviceWithOptions(qfs QueueFamilySlice, options *CreateDeviceOptions) (*Device, error) {

	queueCreateInfos := make([]vk.DeviceQueueCreateInfo, len(qfs))
	for j, q := range qfs {

		queueCreateInfo := vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: uint32(q.Index),
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		}

		queueCreateInfos[j] = queueCreateInfo

	}

	deviceFeatures := p.VKPhysicalDeviceFeatures()

	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: uint32(len(qfs)),
		PQueueCreateInfos:    queueCreateInfos,
		PEnabledFeatures:     []vk.PhysicalDeviceFeatures{deviceFeatures},
	}

	if options != nil {
		if options.EnabledExtensions != nil {
			deviceCreateInfo.EnabledExtensionCount = uint32(len(options.EnabledExtensions))
			deviceCreateInfo.PpEnabledExtensionNames = safeStrings(options.EnabledExtensions)
		}
		if options.EnabledLayers != nil {
			deviceCreateInfo.EnabledLayerCount = uint32(len(options.EnabledLayers))
			deviceCreateInfo.PpEnabledLayerNames = safeStrings(options.EnabledLayers)
		}
	}

	var ldevice vk.Device

	err := resultErr(ErrDeviceCreation, vk.CreateDevice(p.VKPhysicalDevice, &deviceCreateInfo, nil, &ldevice))
	if err != nil {
		return nil, err
	}

	var device Device
	device.PhysicalDevice = p
	device.VKDevice = ldevice

	return &device, nil
}

func (p *PhysicalDevice) CreateLogicalDevice(qfs QueueFamilySlice) (*Device, error) {
	return p.CreateLogicalDeviceWithOptions(qfs, nil)
}

func (p *PhysicalDevice) VKPhysicalDeviceFeatures() vk.PhysicalDeviceFeatures {
	var deviceFeatures vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(p.VKPhysicalDevice, &deviceFeatures)
	return deviceFeatures
}

type MemoryTypeSlice []vk.MemoryType

func (m MemoryTypeSlice) Filter(f func(properties vk.MemoryPropertyFlagBits) bool) MemoryTypeSlice {
	res := make(MemoryTypeSlice, 0)
	for i := 0; i < len(m); i++ {
		if f(vk.MemoryPropertyFlagBits(m[i].PropertyFlags)) {
			res = append(res, m[i])
		}
	}
	return res
}

func (p *PhysicalDevice) MemoryTypes() MemoryTypeSlice {
	mp := p.VKPhysicalDeviceMemoryProperties()
	mp.Deref()

	ret := make(MemoryTypeSlice, 0)

	var i uint32
	for i = 0; i < mp.MemoryTypeCount; i++ {
		mt := mp.MemoryTypes[i]
		mt.Deref()
		ret = append(ret, mt)
	}
	return ret
}

func (p *PhysicalDevice) VKPhysicalDeviceMemoryProperties() vk.PhysicalDeviceMemoryProperties {
	var memoryProperties vk.PhysicalDeviceMemoryProperties

	vk.GetPhysicalDeviceMemoryProperties(p.VKPhysicalDevice, &memoryProperties)
	return memoryProperties
}

func (p *PhysicalDevice) FindMemoryType(memoryTypeBits uint32, properties vk.MemoryPropertyFlags) (uint32, error) {
	memoryProperties := p.VKPhysicalDeviceMemoryProperties()
	mp := &memoryProperties
	mp.Deref()

	var i uint32
	for i = 0; i < mp.MemoryTypeCount; i++ {
		mt := mp.MemoryTypes[i]

		mt.Deref()
		if memoryTypeBits&(1<<i) != 0 &&
			mt.PropertyFlags&properties == properties {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: no matching memory type", ErrCapabilityQuery)
}

func (p *PhysicalDevice) SupportedExtensions() ([]vk.ExtensionProperties, error) {
	var count uint32
	err := resultErr(ErrCapabilityQuery, vk.EnumerateDeviceExtensionProperties(p.VKPhysicalDevice, "", &count, nil))
	if err != nil {
		return nil, err
	}

	ext := make([]vk.ExtensionProperties, count)

	err = resultErr(ErrCapabilityQuery, vk.EnumerateDeviceExtensionProperties(p.VKPhysicalDevice, "", &count, ext))
	if err != nil {
		return nil, err
	}
	return ext, nil
}

// SupportedExtensionNames returns the names of the device extensions this
// device supports
func (p *PhysicalDevice) SupportedExtensionNames() ([]string, error) {
	exts, err := p.SupportedExtensions()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(exts))
	for _, e := range exts {
		e.Deref()
		names = append(names, vk.ToString(e.ExtensionName[:]))
	}
	return names, nil
}

// SupportsExtensions reports whether the device supports every extension in
// required, i.e. the supported set is a superset of the required set
func (p *PhysicalDevice) SupportsExtensions(required []string) (bool, error) {
	names, err := p.SupportedExtensionNames()
	if err != nil {
		return false, err
	}
	return containsAll(names, required), nil
}

// containsAll reports whether names contains every entry of required,
// ignoring null terminators on either side
func containsAll(names []string, required []string) bool {
	for _, r := range required {
		if !containsName(names, unwrapString(r)) {
			return false
		}
	}
	return true
}
