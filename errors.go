package vkboot

import (
	"errors"
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// The closed set of error kinds produced during bootstrap. Every fallible
// step wraps one of these, so callers can classify failures with errors.Is
// without inspecting raw API result codes.
var (
	// ErrInstanceCreation indicates the instance could not be created
	ErrInstanceCreation = errors.New("instance creation failed")
	// ErrDeviceCreation indicates the logical device could not be created
	ErrDeviceCreation = errors.New("device creation failed")
	// ErrSurfaceCreation indicates the presentation surface could not be created
	ErrSurfaceCreation = errors.New("surface creation failed")
	// ErrCapabilityQuery indicates a query of device or surface capabilities failed
	ErrCapabilityQuery = errors.New("capability query failed")
	// ErrSwapchainCreation indicates the swapchain could not be created
	ErrSwapchainCreation = errors.New("swapchain creation failed")
	// ErrOutOfMemory indicates the host or the device ran out of memory
	ErrOutOfMemory = errors.New("out of memory")
	// ErrNoSuitableDevice indicates no physical device satisfied the requirements
	ErrNoSuitableDevice = errors.New("no suitable physical device found")
	// ErrValidation indicates a requested layer, extension or configuration
	// was rejected before any API object was created
	ErrValidation = errors.New("validation failed")
)

// resultErr converts a non success result into an error of the given kind.
// Out of memory results map to ErrOutOfMemory regardless of the step that
// produced them.
func resultErr(kind error, ret vk.Result) error {
	if ret == vk.Success {
		return nil
	}
	switch ret {
	case vk.ErrorOutOfHostMemory, vk.ErrorOutOfDeviceMemory:
		kind = ErrOutOfMemory
	}
	return fmt.Errorf("%w: %v", kind, vk.Error(ret))
}
