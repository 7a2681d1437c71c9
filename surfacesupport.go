package vkboot

import (
	"log"

	vk "github.com/vulkan-go/vulkan"
)

// SurfaceSupport is a point in time snapshot of what a physical device can
// do with a presentation surface: its capabilities, the supported surface
// formats and the supported present modes. All fields hold plain dereferenced
// values, so the selection rules below run without a live device.
type SurfaceSupport struct {
	Capabilities vk.SurfaceCapabilities
	Formats      VKSurfaceFormats
	PresentModes VKPresentModes
}

// QuerySurfaceSupport takes the snapshot the swapchain negotiation needs
func (p *PhysicalDevice) QuerySurfaceSupport(surface vk.Surface) (*SurfaceSupport, error) {
	caps, err := p.GetSurfaceCapabilities(surface)
	if err != nil {
		return nil, err
	}
	formats, err := p.GetSurfaceFormats(surface)
	if err != nil {
		return nil, err
	}
	modes, err := p.GetSurfacePresentModes(surface)
	if err != nil {
		return nil, err
	}
	return &SurfaceSupport{
		Capabilities: *caps,
		Formats:      formats,
		PresentModes: modes,
	}, nil
}

// preferredSurfaceFormat reports whether a format is one of the 8 bit RGBA
// or BGRA formats paired with the non linear sRGB color space
func preferredSurfaceFormat(f vk.SurfaceFormat) bool {
	if f.ColorSpace != vk.ColorSpaceSrgbNonlinear {
		return false
	}
	switch f.Format {
	case vk.FormatR8g8b8a8Unorm, vk.FormatB8g8r8a8Unorm,
		vk.FormatR8g8b8a8Srgb, vk.FormatB8g8r8a8Srgb:
		return true
	}
	return false
}

// ChooseFormat returns the first 8 bit RGBA/BGRA format with the non linear
// sRGB color space. When the surface offers none it falls back to the first
// reported format, whatever that is.
func (s *SurfaceSupport) ChooseFormat() vk.SurfaceFormat {
	if preferred := s.Formats.Filter(preferredSurfaceFormat); len(preferred) > 0 {
		return preferred[0]
	}
	log.Printf("no preferred surface format available, using format %d", s.Formats[0].Format)
	return s.Formats[0]
}

// ChoosePresentMode returns mailbox when the surface supports it and FIFO
// otherwise. FIFO support is guaranteed by the API.
func (s *SurfaceSupport) ChoosePresentMode() vk.PresentMode {
	if mailbox := s.PresentModes.Filter(vk.PresentModeMailbox); len(mailbox) > 0 {
		return vk.PresentModeMailbox
	}
	return vk.PresentModeFifo
}

// ChooseImageCount asks for one image above the supported minimum so the
// renderer does not have to wait on the driver, clamped to the maximum when
// the surface reports one. A maximum of zero means unbounded.
func (s *SurfaceSupport) ChooseImageCount() uint32 {
	count := s.Capabilities.MinImageCount + 1
	if s.Capabilities.MaxImageCount > 0 && count > s.Capabilities.MaxImageCount {
		count = s.Capabilities.MaxImageCount
	}
	return count
}

// ChooseExtent returns the surface's current extent when the driver has
// fixed it. A current width of MaxUint32 means the extent is up to the
// application, in which case the fallback dimensions are clamped into the
// supported range.
func (s *SurfaceSupport) ChooseExtent(fallbackWidth, fallbackHeight uint32) vk.Extent2D {
	if s.Capabilities.CurrentExtent.Width != vk.MaxUint32 {
		return s.Capabilities.CurrentExtent
	}
	return vk.Extent2D{
		Width:  clampUint32(fallbackWidth, s.Capabilities.MinImageExtent.Width, s.Capabilities.MaxImageExtent.Width),
		Height: clampUint32(fallbackHeight, s.Capabilities.MinImageExtent.Height, s.Capabilities.MaxImageExtent.Height),
	}
}

func clampUint32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
