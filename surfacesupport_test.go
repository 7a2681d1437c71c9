package vkboot

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func surfaceFormat(format vk.Format, colorSpace vk.ColorSpace) vk.SurfaceFormat {
	return vk.SurfaceFormat{Format: format, ColorSpace: colorSpace}
}

func TestChooseFormatPrefersSrgb8Bit(t *testing.T) {
	s := &SurfaceSupport{Formats: VKSurfaceFormats{
		surfaceFormat(vk.FormatR16g16Sfloat, vk.ColorSpaceSrgbNonlinear),
		surfaceFormat(vk.FormatB8g8r8a8Srgb, vk.ColorSpaceSrgbNonlinear),
		surfaceFormat(vk.FormatR8g8b8a8Srgb, vk.ColorSpaceSrgbNonlinear),
	}}
	got := s.ChooseFormat()
	if got.Format != vk.FormatB8g8r8a8Srgb {
		t.Errorf("expected first preferred format B8G8R8A8Srgb, got %d", got.Format)
	}
}

func TestChooseFormatAcceptsUnormWithSrgbColorSpace(t *testing.T) {
	s := &SurfaceSupport{Formats: VKSurfaceFormats{
		surfaceFormat(vk.FormatB8g8r8a8Unorm, vk.ColorSpaceSrgbNonlinear),
		surfaceFormat(vk.FormatR16g16Sfloat, vk.ColorSpaceSrgbNonlinear),
	}}
	got := s.ChooseFormat()
	if got.Format != vk.FormatB8g8r8a8Unorm || got.ColorSpace != vk.ColorSpaceSrgbNonlinear {
		t.Errorf("expected (B8G8R8A8Unorm, SrgbNonlinear), got (%d, %d)", got.Format, got.ColorSpace)
	}
}

func TestChooseFormatFallsBackToFirst(t *testing.T) {
	s := &SurfaceSupport{Formats: VKSurfaceFormats{
		surfaceFormat(vk.FormatR16g16b16a16Sfloat, vk.ColorSpaceSrgbNonlinear),
		surfaceFormat(vk.FormatR5g6b5UnormPack16, vk.ColorSpaceSrgbNonlinear),
	}}
	got := s.ChooseFormat()
	if got.Format != vk.FormatR16g16b16a16Sfloat {
		t.Errorf("expected fallback to first reported format, got %d", got.Format)
	}
}

func TestChooseFormatRequiresSrgbColorSpace(t *testing.T) {
	// 1000104008 is the HDR10 color space; any value other than
	// SrgbNonlinear disqualifies an entry
	hdr10 := vk.ColorSpace(1000104008)
	s := &SurfaceSupport{Formats: VKSurfaceFormats{
		surfaceFormat(vk.FormatB8g8r8a8Unorm, hdr10),
		surfaceFormat(vk.FormatR8g8b8a8Srgb, vk.ColorSpaceSrgbNonlinear),
	}}
	got := s.ChooseFormat()
	if got.Format != vk.FormatR8g8b8a8Srgb {
		t.Errorf("entry with non sRGB color space must be skipped, got %d", got.Format)
	}
}

func TestChoosePresentModePrefersMailbox(t *testing.T) {
	s := &SurfaceSupport{PresentModes: VKPresentModes{
		vk.PresentModeFifo,
		vk.PresentModeMailbox,
		vk.PresentModeImmediate,
	}}
	if got := s.ChoosePresentMode(); got != vk.PresentModeMailbox {
		t.Errorf("expected mailbox, got %d", got)
	}
}

func TestChoosePresentModeFallsBackToFifo(t *testing.T) {
	s := &SurfaceSupport{PresentModes: VKPresentModes{vk.PresentModeFifo}}
	if got := s.ChoosePresentMode(); got != vk.PresentModeFifo {
		t.Errorf("expected FIFO, got %d", got)
	}

	s = &SurfaceSupport{PresentModes: VKPresentModes{vk.PresentModeImmediate}}
	if got := s.ChoosePresentMode(); got != vk.PresentModeFifo {
		t.Errorf("expected FIFO even when immediate is supported, got %d", got)
	}
}

func TestChooseImageCount(t *testing.T) {
	cases := []struct {
		min, max, want uint32
	}{
		{min: 2, max: 0, want: 3},
		{min: 2, max: 8, want: 3},
		{min: 3, max: 3, want: 3},
		{min: 4, max: 4, want: 4},
	}
	for _, c := range cases {
		s := &SurfaceSupport{Capabilities: vk.SurfaceCapabilities{
			MinImageCount: c.min,
			MaxImageCount: c.max,
		}}
		if got := s.ChooseImageCount(); got != c.want {
			t.Errorf("min %d max %d: expected %d images, got %d", c.min, c.max, c.want, got)
		}
	}
}

func TestChooseExtentCurrent(t *testing.T) {
	s := &SurfaceSupport{Capabilities: vk.SurfaceCapabilities{
		CurrentExtent: vk.Extent2D{Width: 800, Height: 600},
	}}
	got := s.ChooseExtent(1024, 768)
	if got.Width != 800 || got.Height != 600 {
		t.Errorf("expected the driver fixed extent, got %dx%d", got.Width, got.Height)
	}
}

func TestChooseExtentFallbackClamped(t *testing.T) {
	s := &SurfaceSupport{Capabilities: vk.SurfaceCapabilities{
		CurrentExtent:  vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32},
		MinImageExtent: vk.Extent2D{Width: 64, Height: 64},
		MaxImageExtent: vk.Extent2D{Width: 1920, Height: 1080},
	}}
	got := s.ChooseExtent(4096, 32)
	if got.Width != 1920 {
		t.Errorf("width must clamp to the maximum, got %d", got.Width)
	}
	if got.Height != 64 {
		t.Errorf("height must clamp to the minimum, got %d", got.Height)
	}
}
