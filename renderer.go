package vkboot

import (
	"fmt"
	"log"

	"github.com/vulkan-go/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// FrameLag is the number of frames that may be in flight on the GPU at once
var FrameLag = 2

// RequiredDeviceExtensions are the device extensions a physical device must
// support before it is considered for rendering
var RequiredDeviceExtensions = []string{"VK_KHR_swapchain"}

// Renderer implements the core requirements to get to a functioning Vulkan
// program: it selects a device capable of presenting to the window surface,
// creates the logical device and queues, negotiates a swapchain and drives
// the draw loop. The caller supplies a pipeline config and a function which
// records command buffers.
//
// See https://vulkan-tutorial.com/ for a good walkthrough of what this code does.
type Renderer struct {
	Instance *Instance
	App      *App

	Window    *glfw.Window
	VKSurface vk.Surface

	Device         *Device
	PhysicalDevice *PhysicalDevice

	GraphicsQueue *Queue
	PresentQueue  *Queue

	GraphicsCommandPool    *CommandPool
	GraphicsCommandBuffers []*CommandBuffer

	PipelineConfig   *GraphicsPipelineConfig
	PipelineCache    *PipelineCache
	GraphicsPipeline vk.Pipeline

	Swapchain           *Swapchain
	SwapchainImages     []*Image
	SwapchainImageViews []*ImageView
	RenderPass          *RenderPass
	Framebuffers        []vk.Framebuffer

	// ConfigureRenderPass is a callback which can be supplied to
	// customize the render pass before it is created
	ConfigureRenderPass func(createInfo *vk.RenderPassCreateInfo)

	// MakeCommandBuffer records the draw commands for one swapchain image
	MakeCommandBuffer func(command *CommandBuffer, frame int)

	presentCompleteSemaphore []vk.Semaphore
	renderCompleteSemaphore  []vk.Semaphore
	waitFences               []vk.Fence
	imagesInFlight           []vk.Fence

	frameIndex int

	screenExtent vk.Extent2D

	resized   bool
	debugging bool
}

// NewRenderer creates a new renderer with the given application name and version
func NewRenderer(name string, version Version) (*Renderer, error) {
	app := &App{Name: name, Version: version}
	p := &Renderer{
		App: app,
	}
	return p, nil
}

// PhysicalDevices returns a list of physical devices
func (p *Renderer) PhysicalDevices() (PhysicalDeviceSlice, error) {
	if p.Instance == nil {
		return nil, fmt.Errorf("platform hasn't been initialized yet")
	}
	return p.Instance.PhysicalDevices()
}

// SupportedExtensions returns a list of supported instance extensions
func (p *Renderer) SupportedExtensions() ([]string, error) {
	return SupportedExtensions()
}

// SupportedLayers returns a list of supported layers
func (p *Renderer) SupportedLayers() ([]string, error) {
	return SupportedLayers()
}

// EnableLayer enables a specific layer, reporting whether it was supported
func (p *Renderer) EnableLayer(layer string) bool {
	if _, err := p.App.EnableLayer(layer); err != nil {
		return false
	}
	return true
}

// EnableExtension enables a specific instance extension, reporting whether it
// was supported
func (p *Renderer) EnableExtension(extension string) bool {
	supported, err := SupportedExtensions()
	if err != nil {
		return false
	}
	if !containsName(supported, extension) {
		return false
	}
	p.App.EnableExtension(extension)
	return true
}

// EnableDebugging enables the validation layer along with debug reporting.
// It must be called before Init; failure can be treated as a warning when
// validation is optional.
func (p *Renderer) EnableDebugging() error {
	if p.Instance != nil {
		return fmt.Errorf("debugging must be enabled before initialization")
	}
	if err := p.App.EnableDebugging(); err != nil {
		return err
	}
	p.debugging = true
	return nil
}

// SetWindow sets the GLFW window the renderer presents to. The window's
// required instance extensions are enabled here; the surface itself is
// created during Init.
func (p *Renderer) SetWindow(window *glfw.Window) error {

	if p.Instance != nil {
		return fmt.Errorf("window must be set prior to initialization")
	}

	p.Window = window

	extensions := p.Window.GetRequiredInstanceExtensions()

	for _, ext := range extensions {
		if !p.EnableExtension(ext) {
			return fmt.Errorf("%w: extension '%s' required by the window is not supported", ErrValidation, ext)
		}
	}

	p.refreshScreenExtent()

	return nil

}

// Init creates the instance, the window surface, the logical device and its
// queues. The first physical device which can both present to the surface and
// supports the required device extensions is selected; enumeration order
// breaks ties.
func (p *Renderer) Init() error {
	var err error

	if p.Window == nil {
		return fmt.Errorf("a window must be set before initialization")
	}

	p.Instance, err = p.App.CreateInstance()
	if err != nil {
		return err
	}

	if p.debugging {
		if err := p.Instance.UseDefaultDebugCallback(); err != nil {
			log.Printf("vkboot: unable to install the debug callback: %v", err)
		}
	}

	if p.VKSurface == vk.NullSurface {
		surface, err := p.Window.CreateWindowSurface(p.Instance.VKInstance, nil)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSurfaceCreation, err)
		}
		p.VKSurface = vk.SurfaceFromPointer(surface)
	}

	physicalDevices, err := p.Instance.PhysicalDevices()
	if err != nil {
		return fmt.Errorf("error getting devices: %w", err)
	}

	pdevice, err := physicalDevices.FirstSuitable(SuitableForPresentation(p.VKSurface, RequiredDeviceExtensions))
	if err != nil {
		return err
	}

	qi, err := pdevice.ResolveQueueFamilyIndices(p.VKSurface)
	if err != nil {
		return fmt.Errorf("unable to resolve device queue families: %w", err)
	}

	enabledExtensions := append([]string{}, RequiredDeviceExtensions...)

	ldevice, err := pdevice.CreateLogicalDeviceWithOptions(qi.Families(), &CreateDeviceOptions{
		EnabledExtensions: enabledExtensions,
	})

	if err != nil {
		return fmt.Errorf("unable to create device: %w", err)
	}

	p.Device = ldevice
	p.PhysicalDevice = pdevice

	p.GraphicsQueue = ldevice.GetQueue(qi.Graphics)
	if qi.Graphics.Index == qi.Present.Index {
		// Single graphics and present queue
		p.PresentQueue = p.GraphicsQueue
	} else {
		// Separate graphics and present queue
		p.PresentQueue = ldevice.GetQueue(qi.Present)
	}

	p.GraphicsCommandPool, err = p.Device.CreateCommandPool(p.GraphicsQueue.QueueFamily)
	if err != nil {
		return err
	}

	return nil

}

// CreateGraphicsPipelineConfig creates a graphics pipeline configuration for customization
func (p *Renderer) CreateGraphicsPipelineConfig() *GraphicsPipelineConfig {
	return p.Device.CreateGraphicsPipelineConfig()
}

// SetGraphicsPipelineConfig sets the pipeline config the renderer builds its
// graphics pipeline from. The pipeline is regenerated against the swapchain
// extent whenever the swapchain is recreated.
func (p *Renderer) SetGraphicsPipelineConfig(config *GraphicsPipelineConfig) {
	p.PipelineConfig = config
}

// NumFramebuffers returns the number of framebuffers that have been created
func (p *Renderer) NumFramebuffers() int {
	return len(p.Framebuffers)
}

// PrepareToDraw creates the objects required to start drawing. It must be
// called after Init and after MakeCommandBuffer and the pipeline config have
// been set.
func (p *Renderer) PrepareToDraw() error {
	var err error

	if p.MakeCommandBuffer == nil {
		return fmt.Errorf("no function to make command buffers has been configured")
	}

	if p.PipelineConfig == nil {
		return fmt.Errorf("no graphics pipeline config has been set")
	}

	err = p.createSwapchainAndImages()
	if err != nil {
		return err
	}

	err = p.createRenderPass()
	if err != nil {
		return err
	}

	p.PipelineCache, err = p.Device.CreatePipelineCache()
	if err != nil {
		return err
	}

	err = p.createGraphicsPipeline()
	if err != nil {
		return err
	}

	err = p.createFramebuffers()
	if err != nil {
		return err
	}

	err = p.createCommandBuffers()
	if err != nil {
		return err
	}

	err = p.createSyncObjects()
	if err != nil {
		return err
	}

	p.frameIndex = 0

	p.fillCmdBuffers()

	return nil
}

func (p *Renderer) fillCmdBuffers() {
	for i := range p.GraphicsCommandBuffers {
		p.MakeCommandBuffer(p.GraphicsCommandBuffers[i], i)
	}
}

// Resize signals that the window was resized and the swapchain must be
// recreated before the next frame is drawn
func (p *Renderer) Resize() {
	p.refreshScreenExtent()
	p.resized = true
}

// recreateSwapchain tears down everything which depends on the swapchain and
// rebuilds it against the current framebuffer size. The pipeline cache and
// the per frame sync objects survive recreation.
func (p *Renderer) recreateSwapchain() error {
	//FIXME skip recreation while the window is minimized and reports a zero extent

	p.Device.WaitIdle()

	p.destroyFramebuffers()
	p.destroyCommandBuffers()
	p.destroyGraphicsPipeline()
	p.destroyRenderPass()
	p.destroySwapchainAndImages()

	p.refreshScreenExtent()

	var err error

	err = p.createSwapchainAndImages()
	if err != nil {
		return err
	}

	err = p.createRenderPass()
	if err != nil {
		return err
	}

	err = p.createGraphicsPipeline()
	if err != nil {
		return err
	}

	err = p.createFramebuffers()
	if err != nil {
		return err
	}

	err = p.createCommandBuffers()
	if err != nil {
		return err
	}

	p.fillCmdBuffers()

	p.resized = false
	p.frameIndex = 0

	return nil
}

// DrawFrame acquires the next swapchain image, submits the command buffer
// recorded for it and queues the result for presentation. Up to FrameLag
// frames may be in flight; a fence per frame paces the CPU. When the
// swapchain has gone out of date, or the window was resized, the swapchain
// is recreated and the frame is skipped.
func (p *Renderer) DrawFrame() error {
	var imageIndex uint32

	vk.WaitForFences(p.Device.VKDevice, 1, []vk.Fence{p.waitFences[p.frameIndex]}, vk.True, vk.MaxUint64)

	res := vk.AcquireNextImage(p.Device.VKDevice, p.Swapchain.VKSwapchain, vk.MaxUint64, p.presentCompleteSemaphore[p.frameIndex], vk.NullFence, &imageIndex)
	if res == vk.ErrorOutOfDate {
		return p.recreateSwapchain()
	}
	if res != vk.Success && res != vk.Suboptimal {
		return fmt.Errorf("acquiring swapchain image: %w", vk.Error(res))
	}

	// The acquired image may still be used by an earlier frame in flight
	if p.imagesInFlight[imageIndex] != vk.NullFence {
		vk.WaitForFences(p.Device.VKDevice, 1, []vk.Fence{p.imagesInFlight[imageIndex]}, vk.True, vk.MaxUint64)
	}
	p.imagesInFlight[imageIndex] = p.waitFences[p.frameIndex]

	vk.ResetFences(p.Device.VKDevice, 1, []vk.Fence{p.waitFences[p.frameIndex]})

	command := p.GraphicsCommandBuffers[int(imageIndex)]
	command.Reset()
	p.MakeCommandBuffer(command, int(imageIndex))

	waitSemaphores := []vk.Semaphore{p.presentCompleteSemaphore[p.frameIndex]}
	signalSemaphores := []vk.Semaphore{p.renderCompleteSemaphore[p.frameIndex]}
	waitStages := []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)}

	submitInfo := []vk.SubmitInfo{{
		SType:                vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      waitSemaphores,
		PWaitDstStageMask:    waitStages,
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    signalSemaphores,
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{command.VKCommandBuffer},
	}}

	err := vk.Error(vk.QueueSubmit(p.GraphicsQueue.VKQueue, 1, submitInfo, p.waitFences[p.frameIndex]))
	if err != nil {
		return fmt.Errorf("submitting draw commands: %w", err)
	}

	imageIndices := []uint32{imageIndex}
	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{p.Swapchain.VKSwapchain},
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    signalSemaphores,
		PImageIndices:      imageIndices,
		PResults:           nil,
	}

	res = vk.QueuePresent(p.PresentQueue.VKQueue, &presentInfo)

	p.frameIndex = (p.frameIndex + 1) % FrameLag

	if res == vk.ErrorOutOfDate || res == vk.Suboptimal || p.resized {
		return p.recreateSwapchain()
	}

	return vk.Error(res)
}

func (p *Renderer) createGraphicsPipeline() error {

	config, err := p.PipelineConfig.VKGraphicsPipelineCreateInfo(p.Swapchain.Extent)
	if err != nil {
		return fmt.Errorf("error generating graphics pipeline config: %w", err)
	}
	config.RenderPass = p.RenderPass.VKRenderPass

	graphicsPipelines := make([]vk.Pipeline, 1)
	err = vk.Error(vk.CreateGraphicsPipelines(p.Device.VKDevice, p.PipelineCache.VKPipelineCache,
		1,
		[]vk.GraphicsPipelineCreateInfo{config},
		nil,
		graphicsPipelines))

	if err != nil {
		return fmt.Errorf("creating graphics pipeline: %w", err)
	}

	p.GraphicsPipeline = graphicsPipelines[0]

	return nil
}

func (p *Renderer) destroyGraphicsPipeline() {
	if p.GraphicsPipeline != vk.NullPipeline {
		vk.DestroyPipeline(p.Device.VKDevice, p.GraphicsPipeline, nil)
		p.GraphicsPipeline = vk.NullPipeline
	}
}

func (p *Renderer) refreshScreenExtent() {
	if p.Window != nil {
		extent := vk.Extent2D{}
		width, height := p.Window.GetFramebufferSize()
		extent.Width = uint32(width)
		extent.Height = uint32(height)
		p.screenExtent = extent
	}

}

// GetScreenExtent gets the current screen extent
func (p *Renderer) GetScreenExtent() vk.Extent2D {
	return p.screenExtent
}

func (p *Renderer) createRenderPass() error {
	createInfo := VKRenderPassCreateInfo(p.Swapchain.Format)

	if p.ConfigureRenderPass != nil {
		p.ConfigureRenderPass(&createInfo)
	}

	renderPass, err := p.Device.CreateRenderPass(&createInfo)
	if err != nil {
		return err
	}

	p.RenderPass = renderPass

	return nil
}

func (p *Renderer) destroyRenderPass() {
	if p.RenderPass != nil {
		p.RenderPass.Destroy()
		p.RenderPass = nil
	}
}

func (p *Renderer) createSwapchainAndImages() error {

	extent := p.GetScreenExtent()

	options := &CreateSwapchainOptions{
		ActualSize: extent,
	}

	swapchain, err := p.Device.CreateSwapchain(p.VKSurface, p.GraphicsQueue, p.PresentQueue, options)
	if err != nil {
		return err
	}
	p.Swapchain = swapchain

	images, err := swapchain.GetImages()
	if err != nil {
		return err
	}
	p.SwapchainImages = images

	p.SwapchainImageViews = make([]*ImageView, len(images))
	for i, image := range images {
		view, err := image.CreateImageView()
		if err != nil {
			return err
		}
		p.SwapchainImageViews[i] = view
	}

	p.imagesInFlight = make([]vk.Fence, len(images))

	return nil
}

func (p *Renderer) destroySwapchainAndImages() {

	for _, views := range p.SwapchainImageViews {
		views.Destroy()
	}
	p.SwapchainImageViews = nil

	if p.Swapchain != nil {
		p.Swapchain.Destroy()
		p.Swapchain = nil
	}

}

func (p *Renderer) createFramebuffers() error {
	p.Framebuffers = make([]vk.Framebuffer, len(p.SwapchainImageViews))
	for i, view := range p.SwapchainImageViews {
		attachments := []vk.ImageView{
			view.VKImageView,
		}
		fbCreateInfo := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      p.RenderPass.VKRenderPass,
			Layers:          1,
			AttachmentCount: uint32(len(attachments)),
			PAttachments:    attachments,
			Width:           p.Swapchain.Extent.Width,
			Height:          p.Swapchain.Extent.Height,
		}
		err := vk.Error(vk.CreateFramebuffer(p.Device.VKDevice, &fbCreateInfo, nil, &p.Framebuffers[i]))
		if err != nil {
			return fmt.Errorf("creating framebuffer: %w", err)
		}
	}
	return nil
}

func (p *Renderer) destroyFramebuffers() {
	for i := range p.Framebuffers {
		vk.DestroyFramebuffer(p.Device.VKDevice, p.Framebuffers[i], nil)
	}
	p.Framebuffers = nil
}

func (p *Renderer) createCommandBuffers() error {
	var err error
	p.GraphicsCommandBuffers = make([]*CommandBuffer, len(p.SwapchainImageViews))
	for i := range p.SwapchainImageViews {
		p.GraphicsCommandBuffers[i], err = p.GraphicsCommandPool.AllocateBuffer()
		if err != nil {
			return err
		}
	}
	return nil

}

func (p *Renderer) destroyCommandBuffers() {
	for _, c := range p.GraphicsCommandBuffers {
		p.GraphicsCommandPool.FreeBuffer(c)
	}
	p.GraphicsCommandBuffers = nil
}

func (p *Renderer) createSyncObjects() error {
	var err error

	p.presentCompleteSemaphore = make([]vk.Semaphore, FrameLag)
	p.renderCompleteSemaphore = make([]vk.Semaphore, FrameLag)
	p.waitFences = make([]vk.Fence, FrameLag)

	for i := 0; i < FrameLag; i++ {
		p.presentCompleteSemaphore[i], err = p.Device.VKCreateSemaphore()
		if err != nil {
			return err
		}
		p.renderCompleteSemaphore[i], err = p.Device.VKCreateSemaphore()
		if err != nil {
			return err
		}
		p.waitFences[i], err = p.Device.VKCreateFence(true)
		if err != nil {
			return err
		}
	}

	return nil

}

func (p *Renderer) destroySyncObjects() {

	for _, s := range p.presentCompleteSemaphore {
		p.Device.VKDestroySemaphore(s)
	}
	p.presentCompleteSemaphore = nil

	for _, s := range p.renderCompleteSemaphore {
		p.Device.VKDestroySemaphore(s)
	}
	p.renderCompleteSemaphore = nil

	for _, f := range p.waitFences {
		p.Device.VKDestroyFence(f)
	}
	p.waitFences = nil

}

// Destroy tears down the renderer in reverse creation order
func (p *Renderer) Destroy() {

	p.Device.WaitIdle()

	p.destroyGraphicsPipeline()

	if p.PipelineConfig != nil {
		p.PipelineConfig.Destroy()
	}

	if p.PipelineCache != nil {
		p.PipelineCache.Destroy()
		p.PipelineCache = nil
	}

	p.destroyFramebuffers()

	p.destroyCommandBuffers()

	p.destroyRenderPass()

	p.destroySwapchainAndImages()

	p.destroySyncObjects()

	p.GraphicsCommandPool.Destroy()

	vk.DestroySurface(p.Instance.VKInstance, p.VKSurface, nil)

	p.Device.Destroy()

	p.Instance.Destroy()

}
