package vkboot

import (
	"testing"
	"unsafe"
)

func TestSafeString(t *testing.T) {
	if s := safeString("VK_KHR_swapchain"); s != "VK_KHR_swapchain\x00" {
		t.Errorf("expected terminated string, got %q", s)
	}
	if s := safeString("VK_KHR_swapchain\x00"); s != "VK_KHR_swapchain\x00" {
		t.Errorf("already terminated string was modified: %q", s)
	}
	if s := safeString(""); s != "\x00" {
		t.Errorf("empty string must still be terminated, got %q", s)
	}
}

func TestSafeStrings(t *testing.T) {
	list := safeStrings([]string{"a", "b\x00"})
	if list[0] != "a\x00" || list[1] != "b\x00" {
		t.Errorf("unexpected list %q", list)
	}
}

func TestUnwrapString(t *testing.T) {
	if s := unwrapString("VK_KHR_swapchain\x00"); s != "VK_KHR_swapchain" {
		t.Errorf("terminator not removed: %q", s)
	}
	if s := unwrapString("VK_KHR_swapchain"); s != "VK_KHR_swapchain" {
		t.Errorf("plain string was modified: %q", s)
	}
}

func TestToBytes(t *testing.T) {
	data := []float32{1, 2, 3}
	b := ToBytes(unsafe.Pointer(&data[0]), len(data)*4)
	if len(b) != 12 {
		t.Errorf("expected 12 bytes got %d", len(b))
	}
}
