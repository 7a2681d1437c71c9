package vkboot

import (
	vk "github.com/vulkan-go/vulkan"
)

// BufferObject is anything that can hand over its raw bytes for upload
type BufferObject interface {
	Bytes() []byte
}

// VertexSource describes vertex data: its bytes plus the input binding and
// attribute layout the pipeline needs to read it
type VertexSource interface {
	BufferObject
	BindingDescription() vk.VertexInputBindingDescription
	AttributeDescriptions() []vk.VertexInputAttributeDescription
}
