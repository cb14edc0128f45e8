// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gogpuwin

import (
	"errors"

	"github.com/gogpu/backdrop/gpucore"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoHALDevice is returned when a provider exposes no HAL device or queue.
var ErrNoHALDevice = errors.New("gogpuwin: provider does not expose a HAL device")

// halProvider is implemented by providers that hand out HAL objects
// directly.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// halDevice is implemented by *wgpu.Device.
type halDevice interface {
	HalDevice() hal.Device
	HalQueue() hal.Queue
}

// HALDevice extracts the HAL device and queue behind provider. The provider
// itself may expose them, or its Device may be a *wgpu.Device.
func HALDevice(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	if provider == nil {
		return nil, nil, ErrNoHALDevice
	}
	if hp, ok := provider.(halProvider); ok {
		device, okDev := hp.HalDevice().(hal.Device)
		queue, okQueue := hp.HalQueue().(hal.Queue)
		if okDev && okQueue && device != nil && queue != nil {
			return device, queue, nil
		}
	}
	if hd, ok := provider.Device().(halDevice); ok {
		device, queue := hd.HalDevice(), hd.HalQueue()
		if device != nil && queue != nil {
			return device, queue, nil
		}
	}
	return nil, nil, ErrNoHALDevice
}

// adapterInfo converts the provider's adapter description.
func adapterInfo(provider gpucontext.DeviceProvider) gpucore.AdapterInfo {
	info := provider.AdapterInfo()
	return gpucore.AdapterInfo{
		Name:    info.Name,
		Backend: "gogpu/" + info.Type.String(),
	}
}
