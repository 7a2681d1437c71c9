/*
Package vkboot implements the ground floor of a Vulkan graphics program for go.
Getting from nothing to a first frame on screen with Vulkan takes a surprising
amount of ceremony - an instance must be created, validation layers enabled,
a physical device selected, a logical device and its queues created, a surface
bound to a window and a swapchain negotiated against what that surface actually
supports - before a single triangle can be drawn.

This package walks that path the way the tutorials do, while keeping each step
available on its own so applications can take over at whatever level they need.

Overview

A graphics program built on this package follows a fixed sequence:

	1. Describe the application (App) and create the Instance
	2. Optionally enable the validation layer and debug reporting
	3. Enumerate the physical devices and select a suitable one
	4. Resolve the graphics and present queue families against the surface
	5. Create the logical Device and retrieve its Queues
	6. Negotiate and create the Swapchain plus the image views
	7. Build a render pass and a graphics pipeline from a pipeline config
	8. Record command buffers and start drawing frames

The Renderer type drives the whole sequence and owns the draw loop, including
swapchain recreation when the window is resized or the surface reports that
the swapchain has gone out of date. Programs which want finer control can use
the underlying pieces directly; everything the Renderer does is built from the
exported APIs of this package.

Device selection is deliberately simple: devices are considered in the order
the driver enumerates them and the first one which can both present to the
surface and supports the required device extensions wins. There is no scoring
of device types or memory sizes.

Native Vulkan terms
	Instance 	the vulkan runtime instance
	PhysicalDevice	the physical hardware device
	Device		the logical device which is the target of most of the vulkan apis
	QueueFamily	a group of queues on the device with common capabilities
	Queue 		a queue which work (command buffers) may be submitted to
	Surface		the presentable window region vulkan renders into
	Swapchain	a grouping of images which are used to display graphical data
	ImageView	a way of describing how an image is utilized or viewed
	RenderPass	a description of the attachments a pipeline draws into
	Pipeline	a description of how to process data on the GPU

About this package

The APIs here wrap the native Vulkan APIs to make them less painful to work
with, the trade off being that many options the native structures expose are
not surfaced. To mitigate that, the native vulkan objects are exposed in all
the wrapper objects with a 'VK' prefix in the name - so applications aren't
limited by what this package provides.

Errors from the Vulkan runtime are classified into a small set of sentinel
errors (ErrInstanceCreation, ErrNoSuitableDevice, ErrSwapchainCreation and
friends) which callers can test with errors.Is; the underlying result code is
always wrapped rather than replaced.
*/
package vkboot
