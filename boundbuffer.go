package vkboot

import (
	vk "github.com/vulkan-go/vulkan"
)

// HostBoundBuffer pairs a buffer with the host visible memory backing it and
// the object whose bytes it carries. Suited to small static data written
// once at startup, such as the demo's vertex positions.
type HostBoundBuffer struct {
	HostBuffer       *Buffer
	HostMemory       *DeviceMemory
	HostMemoryOffset uint64
	BufferObject     BufferObject
}

// CreateHostVertexBuffer creates a vertex buffer in host visible, host
// coherent memory sized for the buffer object. Call Map to copy the data in.
func (d *Device) CreateHostVertexBuffer(bo BufferObject, sharingMode vk.SharingMode) (*HostBoundBuffer, error) {
	buffer, dmemory, err := d.CreateAndBindBufferAndMemory(uint64(len(bo.Bytes())), 0, vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit), sharingMode)

	if err != nil {
		return nil, err
	}

	hbb := &HostBoundBuffer{
		HostBuffer:       buffer,
		HostMemory:       dmemory,
		HostMemoryOffset: 0,
		BufferObject:     bo,
	}

	return hbb, nil
}

func (d *Device) CreateAndBindBufferAndMemory(size uint64, offset uint64, usage vk.BufferUsageFlags, mprops vk.MemoryPropertyFlags, sharing vk.SharingMode) (*Buffer, *DeviceMemory, error) {

	buffer, err := d.CreateBufferWithOptions(size, usage, sharing)
	if err != nil {
		return nil, nil, err
	}
	memory, err := d.AllocateForBuffer(buffer, mprops)
	if err != nil {
		buffer.Destroy()
		return nil, nil, err
	}
	if err := buffer.Bind(memory, offset); err != nil {
		memory.Destroy()
		buffer.Destroy()
		return nil, nil, err
	}
	return buffer, memory, nil
}

// Map copies the buffer object's current bytes into the bound memory
func (h *HostBoundBuffer) Map() error {
	data := h.BufferObject.Bytes()

	pm, err := h.HostMemory.MapWithSize(len(data))
	if err != nil {
		return err
	}

	const m = 0x7fffffff
	outData := (*[m]byte)(pm)[:len(data)]

	copy(outData, data)

	h.HostMemory.Unmap()

	return nil
}

func (h *HostBoundBuffer) Destroy() {
	if h.HostMemory != nil {
		h.HostMemory.Destroy()
	}
	if h.HostBuffer != nil {
		h.HostBuffer.Destroy()
	}
}
