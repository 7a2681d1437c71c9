package vkboot

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type QueueFamilySlice []*QueueFamily

func (ql QueueFamilySlice) Filter(f func(q *QueueFamily) bool) QueueFamilySlice {
	ret := make(QueueFamilySlice, 0)
	for _, q := range ql {
		if f(q) {
			ret = append(ret, q)
		}
	}
	return ret
}

func (ql QueueFamilySlice) FilterGraphics() QueueFamilySlice {
	return ql.Filter(func(q *QueueFamily) bool {
		return q.IsGraphics()
	})
}

// ResolveIndices selects the first graphics capable family and the first
// family for which presentTest reports true, in enumeration order. The two
// selections are independent and may name the same family. The present test
// is a callback so the selection rule itself carries no API dependency.
func (ql QueueFamilySlice) ResolveIndices(presentTest func(q *QueueFamily) bool) QueueFamilyIndices {
	var qi QueueFamilyIndices
	if graphics := ql.FilterGraphics(); len(graphics) > 0 {
		qi.Graphics = graphics[0]
	}
	if present := ql.Filter(presentTest); len(present) > 0 {
		qi.Present = present[0]
	}
	return qi
}

// QueueFamilyIndices holds the queue families resolved for one physical
// device: a graphics capable family and a family able to present to the
// target surface. Both fields are populated or the resolution is unusable.
type QueueFamilyIndices struct {
	Graphics *QueueFamily
	Present  *QueueFamily
}

// Complete reports whether both a graphics and a present family were found
func (qi *QueueFamilyIndices) Complete() bool {
	return qi.Graphics != nil && qi.Present != nil
}

// Families returns the distinct resolved families, graphics first. A family
// serving both roles appears once, keyed by family index, so queue create
// entries are never duplicated.
func (qi *QueueFamilyIndices) Families() QueueFamilySlice {
	families := make(QueueFamilySlice, 0, 2)
	if qi.Graphics != nil {
		families = append(families, qi.Graphics)
	}
	if qi.Present != nil && (qi.Graphics == nil || qi.Present.Index != qi.Graphics.Index) {
		families = append(families, qi.Present)
	}
	return families
}

type QueueFamily struct {
	Index                   int
	PhysicalDevice          *PhysicalDevice
	VKQueueFamilyProperties vk.QueueFamilyProperties
}

func (q *QueueFamily) IsCompute() bool {
	return q.VKQueueFamilyProperties.QueueFlags&vk.QueueFlags(vk.QueueComputeBit) == vk.QueueFlags(vk.QueueComputeBit)
}

func (q *QueueFamily) IsGraphics() bool {
	return q.VKQueueFamilyProperties.QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) == vk.QueueFlags(vk.QueueGraphicsBit)
}

func (q *QueueFamily) IsTransfer() bool {
	return q.VKQueueFamilyProperties.QueueFlags&vk.QueueFlags(vk.QueueTransferBit) == vk.QueueFlags(vk.QueueTransferBit)
}

func (q *QueueFamily) SupportsPresent(surface vk.Surface) bool {
	var supportsPresent vk.Bool32
	vk.GetPhysicalDeviceSurfaceSupport(q.PhysicalDevice.VKPhysicalDevice, uint32(q.Index), surface, &supportsPresent)
	return supportsPresent == vk.True
}

func (q *QueueFamily) String() string {
	return fmt.Sprintf("{ Index: %d Compute: %v Graphics: %v Transfer: %v }", q.Index, q.IsCompute(), q.IsGraphics(), q.IsTransfer())
}
