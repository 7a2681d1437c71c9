package vkboot

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func family(index int, flags vk.QueueFlagBits) *QueueFamily {
	return &QueueFamily{
		Index: index,
		VKQueueFamilyProperties: vk.QueueFamilyProperties{
			QueueFlags: vk.QueueFlags(flags),
		},
	}
}

func presentOn(indices ...int) func(q *QueueFamily) bool {
	return func(q *QueueFamily) bool {
		for _, i := range indices {
			if q.Index == i {
				return true
			}
		}
		return false
	}
}

func TestResolveIndicesFirstMatchWins(t *testing.T) {
	families := QueueFamilySlice{
		family(0, vk.QueueTransferBit),
		family(1, vk.QueueGraphicsBit),
		family(2, vk.QueueGraphicsBit),
	}
	qi := families.ResolveIndices(presentOn(2))
	if !qi.Complete() {
		t.Fatal("expected complete indices")
	}
	if qi.Graphics.Index != 1 {
		t.Errorf("expected first graphics family 1, got %d", qi.Graphics.Index)
	}
	if qi.Present.Index != 2 {
		t.Errorf("expected present family 2, got %d", qi.Present.Index)
	}
}

func TestResolveIndicesSharedFamily(t *testing.T) {
	families := QueueFamilySlice{
		family(0, vk.QueueGraphicsBit | vk.QueueComputeBit),
	}
	qi := families.ResolveIndices(presentOn(0))
	if !qi.Complete() {
		t.Fatal("expected complete indices")
	}
	if qi.Graphics.Index != 0 || qi.Present.Index != 0 {
		t.Errorf("expected both roles on family 0, got %v %v", qi.Graphics, qi.Present)
	}
	if got := qi.Families(); len(got) != 1 {
		t.Errorf("shared family must be deduplicated, got %d entries", len(got))
	}
}

func TestResolveIndicesIncomplete(t *testing.T) {
	families := QueueFamilySlice{
		family(0, vk.QueueComputeBit),
		family(1, vk.QueueTransferBit),
	}
	qi := families.ResolveIndices(presentOn(0))
	if qi.Complete() {
		t.Error("no graphics family present, resolution must be incomplete")
	}

	families = QueueFamilySlice{family(0, vk.QueueGraphicsBit)}
	qi = families.ResolveIndices(presentOn())
	if qi.Complete() {
		t.Error("no present family, resolution must be incomplete")
	}
}

func TestFamiliesOrderAndDedup(t *testing.T) {
	graphics := family(3, vk.QueueGraphicsBit)
	present := family(1, 0)

	qi := QueueFamilyIndices{Graphics: graphics, Present: present}
	got := qi.Families()
	if len(got) != 2 {
		t.Fatalf("expected 2 distinct families, got %d", len(got))
	}
	if got[0].Index != 3 || got[1].Index != 1 {
		t.Errorf("expected graphics first, got indices %d %d", got[0].Index, got[1].Index)
	}

	qi = QueueFamilyIndices{Graphics: graphics, Present: graphics}
	if got := qi.Families(); len(got) != 1 {
		t.Errorf("coincident families must collapse to one entry, got %d", len(got))
	}
}

func TestFilterGraphics(t *testing.T) {
	families := QueueFamilySlice{
		family(0, vk.QueueTransferBit),
		family(1, vk.QueueGraphicsBit),
		family(2, vk.QueueGraphicsBit|vk.QueueComputeBit),
	}
	got := families.FilterGraphics()
	if len(got) != 2 {
		t.Fatalf("expected 2 graphics families, got %d", len(got))
	}
	if got[0].Index != 1 || got[1].Index != 2 {
		t.Errorf("filter must preserve enumeration order, got %d %d", got[0].Index, got[1].Index)
	}
}
