package vkboot

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestVKVersion(t *testing.T) {
	v := Version{Major: 1, Minor: 2, Patch: 3}
	if v.VKVersion() != vk.MakeVersion(1, 2, 3) {
		t.Errorf("unexpected packed version %d", v.VKVersion())
	}
}

func TestVKApplicationInfoDefaultsAPIVersion(t *testing.T) {
	app := &App{Name: "vulkan tutorial", EngineName: "No Engine"}
	info := app.VKApplicationInfo()
	if info.ApiVersion != vk.MakeVersion(1, 0, 0) {
		t.Errorf("expected API version to default to 1.0.0, got %d", info.ApiVersion)
	}
	if info.PApplicationName != "vulkan tutorial\x00" {
		t.Errorf("application name not terminated: %q", info.PApplicationName)
	}
	if info.PEngineName != "No Engine\x00" {
		t.Errorf("engine name not terminated: %q", info.PEngineName)
	}
}

func TestEnableExtensionAccumulates(t *testing.T) {
	app := &App{}
	app.EnableExtension("VK_KHR_surface").EnableExtension("VK_KHR_xcb_surface")
	if len(app.EnabledExtensions) != 2 {
		t.Fatalf("expected 2 enabled extensions, got %d", len(app.EnabledExtensions))
	}
	if app.EnabledExtensions[0] != "VK_KHR_surface" {
		t.Errorf("unexpected first extension %q", app.EnabledExtensions[0])
	}
}

func TestContainsName(t *testing.T) {
	names := []string{"VK_KHR_surface\x00", "VK_KHR_swapchain"}
	if !containsName(names, "VK_KHR_surface") {
		t.Error("terminated entry not matched")
	}
	if !containsName(names, "VK_KHR_swapchain") {
		t.Error("plain entry not matched")
	}
	if containsName(names, "VK_KHR_display") {
		t.Error("absent entry matched")
	}
}
