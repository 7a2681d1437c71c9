package vkboot

import (
	"testing"
)

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer("test", Version{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.App == nil {
		t.Fatal("expected the renderer to carry an app description")
	}
	if r.App.Name != "test" {
		t.Errorf("expected app name 'test', got %q", r.App.Name)
	}
	if r.App.Version != (Version{1, 2, 3}) {
		t.Errorf("expected version 1.2.3, got %v", r.App.Version)
	}
}

func TestRendererInitRequiresWindow(t *testing.T) {
	r, _ := NewRenderer("test", Version{0, 0, 1})
	if err := r.Init(); err == nil {
		t.Error("expected an error when no window has been set")
	}
}

func TestRendererPrepareToDrawPreconditions(t *testing.T) {
	r, _ := NewRenderer("test", Version{0, 0, 1})

	if err := r.PrepareToDraw(); err == nil {
		t.Error("expected an error when no command buffer function is configured")
	}

	r.MakeCommandBuffer = func(command *CommandBuffer, frame int) {}
	if err := r.PrepareToDraw(); err == nil {
		t.Error("expected an error when no pipeline config has been set")
	}
}

func TestRendererSetWindowAfterInit(t *testing.T) {
	r, _ := NewRenderer("test", Version{0, 0, 1})
	r.Instance = &Instance{}

	if err := r.SetWindow(nil); err == nil {
		t.Error("expected an error when the window is set after initialization")
	}
	if err := r.EnableDebugging(); err == nil {
		t.Error("expected an error when debugging is enabled after initialization")
	}
}

func TestRendererPhysicalDevicesBeforeInit(t *testing.T) {
	r, _ := NewRenderer("test", Version{0, 0, 1})
	if _, err := r.PhysicalDevices(); err == nil {
		t.Error("expected an error before initialization")
	}
}

func TestRendererResize(t *testing.T) {
	r, _ := NewRenderer("test", Version{0, 0, 1})
	if r.resized {
		t.Fatal("expected a fresh renderer to not be flagged as resized")
	}
	r.Resize()
	if !r.resized {
		t.Error("expected the renderer to be flagged as resized")
	}
	if r.NumFramebuffers() != 0 {
		t.Errorf("expected no framebuffers before PrepareToDraw, got %d", r.NumFramebuffers())
	}
}
