package vkboot

import (
	vk "github.com/vulkan-go/vulkan"
)

// Image is a device image handle plus the format it carries. Swapchain
// images arrive here already created and owned by the swapchain.
type Image struct {
	Device   *Device
	VKImage  vk.Image
	VKFormat vk.Format
}

type ImageView struct {
	Device      *Device
	VKImageView vk.ImageView
}

// CreateImageView creates a 2D color view of the image with identity
// component mapping
func (i *Image) CreateImageView() (*ImageView, error) {
	createInfo := &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    i.VKImage,
		ViewType: vk.ImageViewType2d,
		Format:   i.VKFormat,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleR,
			G: vk.ComponentSwizzleG,
			B: vk.ComponentSwizzleB,
			A: vk.ComponentSwizzleA,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: 1,
			LayerCount: 1,
		},
	}

	var view vk.ImageView

	err := resultErr(ErrSwapchainCreation, vk.CreateImageView(i.Device.VKDevice, createInfo, nil, &view))
	if err != nil {
		return nil, err
	}
	var ret ImageView
	ret.Device = i.Device
	ret.VKImageView = view

	return &ret, nil

}

func (i *ImageView) Destroy() {
	vk.DestroyImageView(i.Device.VKDevice, i.VKImageView, nil)
}
