package vkboot

import (
	vk "github.com/vulkan-go/vulkan"
)

type Swapchain struct {
	Extent      vk.Extent2D
	Format      vk.Format
	Device      *Device
	VKSwapchain vk.Swapchain
}

func (s *Swapchain) Destroy() {
	vk.DestroySwapchain(s.Device.VKDevice, s.VKSwapchain, nil)
}

func (s *Swapchain) GetImages() ([]*Image, error) {
	var imageCount uint32
	err := resultErr(ErrSwapchainCreation, vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &imageCount, nil))
	if err != nil {
		return nil, err
	}

	swapchainImages := make([]vk.Image, imageCount)
	err = resultErr(ErrSwapchainCreation, vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &imageCount, swapchainImages))
	if err != nil {
		return nil, err
	}

	ret := make([]*Image, imageCount)
	for i := range swapchainImages {
		ret[i] = &Image{}
		ret[i].Device = s.Device
		ret[i].VKImage = swapchainImages[i]
		ret[i].VKFormat = s.Format
	}

	return ret, nil
}

type CreateSwapchainOptions struct {
	// OldSwapchain lets the driver recycle resources when the swapchain is
	// recreated after a resize
	OldSwapchain *Swapchain
	// ActualSize is the framebuffer size to fall back on when the surface
	// leaves the extent up to the application
	ActualSize vk.Extent2D
	// DesiredNumSwapchainImages overrides the negotiated image count
	DesiredNumSwapchainImages int
}

// CreateSwapchain negotiates format, present mode, image count and extent
// against the surface's reported support and creates the swapchain. Images
// are shared between the two queue families when graphics and present live
// on different families, otherwise owned exclusively.
func (p *Device) CreateSwapchain(surface vk.Surface, graphicsQueue, presentQueue *Queue, options *CreateSwapchainOptions) (*Swapchain, error) {

	support, err := p.PhysicalDevice.QuerySurfaceSupport(surface)
	if err != nil {
		return nil, err
	}

	format := support.ChooseFormat()
	presentMode := support.ChoosePresentMode()

	fallback := support.Capabilities.MinImageExtent
	if options != nil && options.ActualSize.Width > 0 {
		fallback = options.ActualSize
	}
	extent := support.ChooseExtent(fallback.Width, fallback.Height)

	imageCount := support.ChooseImageCount()
	if options != nil && options.DesiredNumSwapchainImages > 0 {
		imageCount = uint32(options.DesiredNumSwapchainImages)
		if imageCount < support.Capabilities.MinImageCount {
			imageCount = support.Capabilities.MinImageCount
		}
		if max := support.Capabilities.MaxImageCount; max > 0 && imageCount > max {
			imageCount = max
		}
	}

	var swapchain vk.Swapchain

	createInfo := &vk.SwapchainCreateInfo{
		SType:           vk.StructureTypeSwapchainCreateInfo,
		Surface:         surface,
		MinImageCount:   imageCount,
		ImageFormat:     format.Format,
		ImageColorSpace: format.ColorSpace,
		ImageExtent: vk.Extent2D{
			Width:  extent.Width,
			Height: extent.Height,
		},
		PresentMode:      presentMode,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageArrayLayers: 1,
		Clipped:          vk.True,
		PreTransform:     support.Capabilities.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		OldSwapchain:     vk.NullSwapchain,
	}

	if options != nil && options.OldSwapchain != nil {
		createInfo.OldSwapchain = options.OldSwapchain.VKSwapchain
	}

	if graphicsQueue.QueueFamily.Index != presentQueue.QueueFamily.Index {
		createInfo.QueueFamilyIndexCount = 2
		createInfo.PQueueFamilyIndices = []uint32{uint32(graphicsQueue.QueueFamily.Index), uint32(presentQueue.QueueFamily.Index)}
		createInfo.ImageSharingMode = vk.SharingModeConcurrent
	} else {
		createInfo.QueueFamilyIndexCount = 0
		createInfo.PQueueFamilyIndices = nil
		createInfo.ImageSharingMode = vk.SharingModeExclusive
	}

	err = resultErr(ErrSwapchainCreation, vk.CreateSwapchain(p.VKDevice, createInfo, nil, &swapchain))
	if err != nil {
		return nil, err
	}

	var ret Swapchain
	ret.VKSwapchain = swapchain
	ret.Device = p
	ret.Extent = vk.Extent2D{
		Width:  extent.Width,
		Height: extent.Height,
	}
	ret.Format = format.Format

	return &ret, nil

}
