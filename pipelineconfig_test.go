package vkboot

import (
	"errors"
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

type testVertex struct{}

func (testVertex) Bytes() []byte { return nil }

func (testVertex) BindingDescription() vk.VertexInputBindingDescription {
	return vk.VertexInputBindingDescription{
		Binding:   0,
		Stride:    8,
		InputRate: vk.VertexInputRateVertex,
	}
}

func (testVertex) AttributeDescriptions() []vk.VertexInputAttributeDescription {
	return []vk.VertexInputAttributeDescription{
		{Location: 0, Binding: 0, Format: vk.FormatR32g32Sfloat, Offset: 0},
	}
}

func configWithStages() *GraphicsPipelineConfig {
	gc := (&Device{}).CreateGraphicsPipelineConfig()
	gc.SetShaderStages([]vk.PipelineShaderStageCreateInfo{
		{SType: vk.StructureTypePipelineShaderStageCreateInfo, Stage: vk.ShaderStageVertexBit},
		{SType: vk.StructureTypePipelineShaderStageCreateInfo, Stage: vk.ShaderStageFragmentBit},
	})
	gc.SetPipelineLayout(&PipelineLayout{})
	return gc
}

func TestGraphicsPipelineConfigDefaults(t *testing.T) {
	gc := (&Device{}).CreateGraphicsPipelineConfig()

	if gc.PrimitiveTopology != vk.PrimitiveTopologyTriangleList {
		t.Errorf("expected triangle list topology, got %v", gc.PrimitiveTopology)
	}
	if gc.PolygonMode != vk.PolygonModeFill {
		t.Errorf("expected fill polygon mode, got %v", gc.PolygonMode)
	}
	if gc.LineWidth != 1.0 {
		t.Errorf("expected line width 1.0, got %v", gc.LineWidth)
	}
	if gc.CullMode != vk.CullModeBackBit {
		t.Errorf("expected back face culling, got %v", gc.CullMode)
	}
	if gc.FrontFace != vk.FrontFaceCounterClockwise {
		t.Errorf("expected counter clockwise front face, got %v", gc.FrontFace)
	}
	if gc.DepthTestEnable || gc.DepthWriteEnable {
		t.Error("expected depth test and write to default to off")
	}
}

func TestVKGraphicsPipelineCreateInfo(t *testing.T) {
	gc := configWithStages()
	gc.SetFrontFace(vk.FrontFaceClockwise)

	info, err := gc.VKGraphicsPipelineCreateInfo(vk.Extent2D{Width: 640, Height: 480})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info.StageCount != 2 {
		t.Errorf("expected 2 shader stages, got %d", info.StageCount)
	}

	ia := info.PInputAssemblyState
	if ia.Topology != vk.PrimitiveTopologyTriangleList {
		t.Errorf("expected triangle list topology, got %v", ia.Topology)
	}
	if ia.PrimitiveRestartEnable != vk.False {
		t.Error("expected primitive restart to be disabled")
	}

	rs := info.PRasterizationState
	if rs.PolygonMode != vk.PolygonModeFill {
		t.Errorf("expected fill polygon mode, got %v", rs.PolygonMode)
	}
	if rs.LineWidth != 1.0 {
		t.Errorf("expected line width 1.0, got %v", rs.LineWidth)
	}
	if rs.CullMode != vk.CullModeFlags(vk.CullModeBackBit) {
		t.Errorf("expected back face culling, got %v", rs.CullMode)
	}
	if rs.FrontFace != vk.FrontFaceClockwise {
		t.Errorf("expected clockwise front face, got %v", rs.FrontFace)
	}

	vs := info.PViewportState
	if vs.ViewportCount != 1 || vs.ScissorCount != 1 {
		t.Fatalf("expected a single viewport and scissor, got %d and %d", vs.ViewportCount, vs.ScissorCount)
	}
	vp := vs.PViewports[0]
	if vp.Width != 640 || vp.Height != 480 {
		t.Errorf("expected viewport 640x480, got %vx%v", vp.Width, vp.Height)
	}
	if vp.MinDepth != 0.0 || vp.MaxDepth != 1.0 {
		t.Errorf("expected depth range [0,1], got [%v,%v]", vp.MinDepth, vp.MaxDepth)
	}
	sc := vs.PScissors[0]
	if sc.Extent.Width != 640 || sc.Extent.Height != 480 {
		t.Errorf("expected scissor 640x480, got %dx%d", sc.Extent.Width, sc.Extent.Height)
	}

	ms := info.PMultisampleState
	if ms.RasterizationSamples != vk.SampleCount1Bit {
		t.Errorf("expected single sample rasterization, got %v", ms.RasterizationSamples)
	}

	if info.PDepthStencilState != nil {
		t.Error("expected no depth stencil state when depth is off")
	}
}

func TestVKGraphicsPipelineCreateInfoDefaultBlend(t *testing.T) {
	gc := configWithStages()

	info, err := gc.VKGraphicsPipelineCreateInfo(vk.Extent2D{Width: 100, Height: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cb := info.PColorBlendState
	if cb.AttachmentCount != 1 {
		t.Fatalf("expected a single blend attachment, got %d", cb.AttachmentCount)
	}
	ba := cb.PAttachments[0]
	if ba.BlendEnable != vk.False {
		t.Error("expected blending to be disabled by default")
	}
	rgba := vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit | vk.ColorComponentBBit | vk.ColorComponentABit)
	if ba.ColorWriteMask != rgba {
		t.Errorf("expected all color components writable, got %v", ba.ColorWriteMask)
	}
}

func TestVKGraphicsPipelineCreateInfoReplaceBlend(t *testing.T) {
	gc := configWithStages()
	gc.AddReplaceBlendAttachment()

	info, err := gc.VKGraphicsPipelineCreateInfo(vk.Extent2D{Width: 100, Height: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cb := info.PColorBlendState
	if cb.AttachmentCount != 1 {
		t.Fatalf("expected a single blend attachment, got %d", cb.AttachmentCount)
	}
	ba := cb.PAttachments[0]
	if ba.BlendEnable != vk.True {
		t.Error("expected blending to be enabled")
	}
	if ba.SrcColorBlendFactor != vk.BlendFactorOne || ba.DstColorBlendFactor != vk.BlendFactorZero {
		t.Errorf("expected one/zero color factors, got %v/%v", ba.SrcColorBlendFactor, ba.DstColorBlendFactor)
	}
	if ba.SrcAlphaBlendFactor != vk.BlendFactorOne || ba.DstAlphaBlendFactor != vk.BlendFactorZero {
		t.Errorf("expected one/zero alpha factors, got %v/%v", ba.SrcAlphaBlendFactor, ba.DstAlphaBlendFactor)
	}
	if ba.ColorBlendOp != vk.BlendOpAdd || ba.AlphaBlendOp != vk.BlendOpAdd {
		t.Errorf("expected add blend ops, got %v/%v", ba.ColorBlendOp, ba.AlphaBlendOp)
	}
}

func TestVKGraphicsPipelineCreateInfoDepthEnabled(t *testing.T) {
	gc := configWithStages()
	gc.DepthTestEnable = true
	gc.DepthWriteEnable = true

	info, err := gc.VKGraphicsPipelineCreateInfo(vk.Extent2D{Width: 100, Height: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ds := info.PDepthStencilState
	if ds == nil {
		t.Fatal("expected a depth stencil state")
	}
	if ds.DepthTestEnable != vk.True || ds.DepthWriteEnable != vk.True {
		t.Error("expected depth test and write to be enabled")
	}
	if ds.DepthCompareOp != vk.CompareOpLess {
		t.Errorf("expected less depth compare op, got %v", ds.DepthCompareOp)
	}
}

func TestVKGraphicsPipelineCreateInfoVertexDescriptor(t *testing.T) {
	gc := configWithStages()
	gc.AddVertexDescriptor(testVertex{})

	info, err := gc.VKGraphicsPipelineCreateInfo(vk.Extent2D{Width: 100, Height: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vi := info.PVertexInputState
	if vi.VertexBindingDescriptionCount != 1 {
		t.Fatalf("expected 1 vertex binding, got %d", vi.VertexBindingDescriptionCount)
	}
	if vi.PVertexBindingDescriptions[0].Stride != 8 {
		t.Errorf("expected vertex stride 8, got %d", vi.PVertexBindingDescriptions[0].Stride)
	}
	if vi.VertexAttributeDescriptionCount != 1 {
		t.Fatalf("expected 1 vertex attribute, got %d", vi.VertexAttributeDescriptionCount)
	}
	if vi.PVertexAttributeDescriptions[0].Format != vk.FormatR32g32Sfloat {
		t.Errorf("expected r32g32 sfloat attribute, got %v", vi.PVertexAttributeDescriptions[0].Format)
	}
}

func TestVKGraphicsPipelineCreateInfoValidation(t *testing.T) {
	gc := (&Device{}).CreateGraphicsPipelineConfig()

	_, err := gc.VKGraphicsPipelineCreateInfo(vk.Extent2D{Width: 100, Height: 100})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected a validation error for missing shader stages, got %v", err)
	}

	gc.SetShaderStages([]vk.PipelineShaderStageCreateInfo{
		{SType: vk.StructureTypePipelineShaderStageCreateInfo, Stage: vk.ShaderStageVertexBit},
	})
	_, err = gc.VKGraphicsPipelineCreateInfo(vk.Extent2D{Width: 100, Height: 100})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected a validation error for missing pipeline layout, got %v", err)
	}
}
