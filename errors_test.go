package vkboot

import (
	"errors"
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestResultErrSuccess(t *testing.T) {
	if err := resultErr(ErrInstanceCreation, vk.Success); err != nil {
		t.Errorf("success must not produce an error, got %v", err)
	}
}

func TestResultErrKind(t *testing.T) {
	err := resultErr(ErrSwapchainCreation, vk.ErrorInitializationFailed)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ErrSwapchainCreation) {
		t.Errorf("error %v does not match its kind", err)
	}
	if errors.Is(err, ErrDeviceCreation) {
		t.Errorf("error %v matches an unrelated kind", err)
	}
}

func TestResultErrOutOfMemory(t *testing.T) {
	for _, ret := range []vk.Result{vk.ErrorOutOfHostMemory, vk.ErrorOutOfDeviceMemory} {
		err := resultErr(ErrDeviceCreation, ret)
		if !errors.Is(err, ErrOutOfMemory) {
			t.Errorf("result %d must map to ErrOutOfMemory, got %v", ret, err)
		}
		if errors.Is(err, ErrDeviceCreation) {
			t.Errorf("out of memory must override the step kind, got %v", err)
		}
	}
}

func TestResultErrDistinctKinds(t *testing.T) {
	kinds := []error{
		ErrInstanceCreation, ErrDeviceCreation, ErrSurfaceCreation,
		ErrCapabilityQuery, ErrSwapchainCreation, ErrNoSuitableDevice, ErrValidation,
	}
	for i, kind := range kinds {
		err := resultErr(kind, vk.ErrorInitializationFailed)
		for j, other := range kinds {
			if i == j {
				continue
			}
			if errors.Is(err, other) {
				t.Errorf("error of kind %v matches %v", kind, other)
			}
		}
	}
}
