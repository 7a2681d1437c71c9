package vkboot

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// RenderPass wraps a Vulkan render pass
type RenderPass struct {
	Device       *Device
	VKRenderPass vk.RenderPass
}

// VKRenderPassCreateInfo builds a render pass with a single color attachment
// in the given format. The attachment is cleared on load, stored on completion
// and transitioned from an undefined layout to one ready for presentation. A
// subpass dependency delays the color attachment stage until the presentation
// engine has released the image.
func VKRenderPassCreateInfo(colorFormat vk.Format) vk.RenderPassCreateInfo {
	attachmentDescriptions := []vk.AttachmentDescription{{
		Format:         colorFormat,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}}

	colorAttachments := []vk.AttachmentReference{{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}

	subpassDescriptions := []vk.SubpassDescription{{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments:    colorAttachments,
	}}

	dependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		SrcAccessMask: 0,
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentReadBit | vk.AccessColorAttachmentWriteBit),
	}

	return vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: 1,
		PAttachments:    attachmentDescriptions,
		SubpassCount:    1,
		PSubpasses:      subpassDescriptions,
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}
}

// CreateRenderPass creates a render pass from the given create info
func (d *Device) CreateRenderPass(createInfo *vk.RenderPassCreateInfo) (*RenderPass, error) {
	var renderPass vk.RenderPass

	err := vk.Error(vk.CreateRenderPass(d.VKDevice, createInfo, nil, &renderPass))
	if err != nil {
		return nil, fmt.Errorf("creating render pass: %w", err)
	}

	var ret RenderPass
	ret.Device = d
	ret.VKRenderPass = renderPass

	return &ret, nil
}

func (r *RenderPass) Destroy() {
	vk.DestroyRenderPass(r.Device.VKDevice, r.VKRenderPass, nil)
	r.VKRenderPass = vk.NullRenderPass
}
