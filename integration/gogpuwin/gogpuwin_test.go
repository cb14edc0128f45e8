// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gogpuwin

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/backdrop"
	"github.com/gogpu/backdrop/backend/native"
	"github.com/gogpu/backdrop/gpucore"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

const testFormat = gputypes.TextureFormatRGBA8UnormSrgb

// testProvider is a gpucontext.DeviceProvider over a noop HAL device.
type testProvider struct {
	device hal.Device
	queue  hal.Queue
}

func (p *testProvider) Device() gpucontext.Device             { return p.device }
func (p *testProvider) Queue() gpucontext.Queue               { return p.queue }
func (p *testProvider) SurfaceFormat() gputypes.TextureFormat { return testFormat }
func (p *testProvider) Adapter() gpucontext.Adapter           { return nil }
func (p *testProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "noop"}
}
func (p *testProvider) HalDevice() any { return p.device }
func (p *testProvider) HalQueue() any  { return p.queue }

// bareProvider exposes no HAL objects at all.
type bareProvider struct{}

func (bareProvider) Device() gpucontext.Device             { return struct{}{} }
func (bareProvider) Queue() gpucontext.Queue               { return struct{}{} }
func (bareProvider) SurfaceFormat() gputypes.TextureFormat { return testFormat }
func (bareProvider) Adapter() gpucontext.Adapter           { return nil }
func (bareProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

// wrappedDevice mimics *wgpu.Device.
type wrappedDevice struct {
	device hal.Device
	queue  hal.Queue
}

func (d *wrappedDevice) HalDevice() hal.Device { return d.device }
func (d *wrappedDevice) HalQueue() hal.Queue   { return d.queue }

// wrappedProvider returns a wrappedDevice from Device.
type wrappedProvider struct {
	bareProvider
	dev *wrappedDevice
}

func (p wrappedProvider) Device() gpucontext.Device { return p.dev }

func newNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		t.Fatal("no noop adapters")
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

// newView creates a view standing in for a swapchain image.
func newView(t *testing.T, device hal.Device, width, height uint32) hal.TextureView {
	t.Helper()
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "swapchain",
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        testFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Format:          testFormat,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		t.Fatalf("CreateTextureView: %v", err)
	}
	t.Cleanup(func() {
		device.DestroyTextureView(view)
		device.DestroyTexture(tex)
	})
	return view
}

func TestWindowFrame(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		want   []backdrop.Event
	}{
		{"first", 800, 600, []backdrop.Event{backdrop.Resized{Width: 800, Height: 600}, backdrop.RedrawRequested{}}},
		{"same", 800, 600, []backdrop.Event{backdrop.RedrawRequested{}}},
		{"wider", 1024, 600, []backdrop.Event{backdrop.Resized{Width: 1024, Height: 600}, backdrop.RedrawRequested{}}},
		{"minimized", 0, 0, nil},
		{"negative", -1, 10, nil},
		{"restored", 1024, 600, []backdrop.Event{backdrop.RedrawRequested{}}},
	}

	w := NewWindow(nil)
	for _, tt := range tests {
		got := w.Frame(tt.width, tt.height)
		if len(got) != len(tt.want) {
			t.Fatalf("%s: got %d events %v, want %v", tt.name, len(got), got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: event %d = %#v, want %#v", tt.name, i, got[i], tt.want[i])
			}
		}
	}
	if gw, gh := w.Size(); gw != 1024 || gh != 600 {
		t.Errorf("Size = %dx%d, want 1024x600", gw, gh)
	}
}

func TestWindowRequestRedraw(t *testing.T) {
	calls := 0
	w := NewWindow(func() { calls++ })
	w.RequestRedraw()
	w.RequestRedraw()
	if calls != 2 {
		t.Errorf("redraw calls = %d, want 2", calls)
	}
	NewWindow(nil).RequestRedraw()
}

func TestSurfaceAcquire(t *testing.T) {
	device, _ := newNoopDevice(t)
	view := newView(t, device, 64, 32)

	s := NewSurface(testFormat)
	if got := s.Formats(); len(got) != 1 || got[0] != testFormat {
		t.Fatalf("Formats = %v", got)
	}

	s.SetFrame(view, 64, 32)
	if _, _, _, err := s.Acquire(); !errors.Is(err, gpucore.ErrSurfaceLost) {
		t.Errorf("unconfigured Acquire err = %v, want Lost", err)
	}

	if err := s.Configure(64, 32, gputypes.TextureFormatBGRA8Unorm); err == nil {
		t.Error("Configure with a foreign format succeeded")
	}
	if err := s.Configure(64, 32, testFormat); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	tests := []struct {
		name    string
		view    hal.TextureView
		w, h    uint32
		wantErr error
	}{
		{"match", view, 64, 32, nil},
		{"no view", nil, 64, 32, gpucore.ErrSurfaceLost},
		{"stale size", view, 80, 32, gpucore.ErrSurfaceOutdated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetFrame(tt.view, tt.w, tt.h)
			got, w, h, err := s.Acquire()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Acquire: %v", err)
			}
			if got != view || w != 64 || h != 32 {
				t.Errorf("Acquire = %v %dx%d", got, w, h)
			}
		})
	}

	s.SetFrame(view, 64, 32)
	if _, _, _, err := s.Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if _, _, _, err := s.Acquire(); !errors.Is(err, gpucore.ErrSurfaceLost) {
		t.Errorf("second Acquire err = %v, want Lost", err)
	}

	_ = s.Present()
	if s.Presented() != 1 {
		t.Errorf("Presented = %d, want 1", s.Presented())
	}
}

func TestSurfaceView(t *testing.T) {
	tests := []struct {
		name string
		view *wgpu.TextureView
	}{
		{"no view", nil},
		{"released view", &wgpu.TextureView{}},
	}
	for _, tt := range tests {
		if got := surfaceView(tt.view); got != nil {
			t.Errorf("%s: surfaceView = %v, want nil", tt.name, got)
		}
	}
}

func TestHALDevice(t *testing.T) {
	device, queue := newNoopDevice(t)

	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
		wantErr  bool
	}{
		{"nil", nil, true},
		{"hal provider", &testProvider{device: device, queue: queue}, false},
		{"wgpu device", wrappedProvider{dev: &wrappedDevice{device: device, queue: queue}}, false},
		{"nil wgpu device", wrappedProvider{dev: &wrappedDevice{}}, true},
		{"bare", bareProvider{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, q, err := HALDevice(tt.provider)
			if tt.wantErr {
				if !errors.Is(err, ErrNoHALDevice) {
					t.Fatalf("err = %v, want ErrNoHALDevice", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("HALDevice: %v", err)
			}
			if d != device || q != queue {
				t.Error("HALDevice returned foreign objects")
			}
		})
	}
}

func testOptions() []backdrop.Option {
	return []backdrop.Option{
		backdrop.WithFrameInterval(time.Microsecond),
		backdrop.WithFontSize(48),
		backdrop.WithSeed(3),
	}
}

func TestRunnerFrames(t *testing.T) {
	device, queue := newNoopDevice(t)
	provider := &testProvider{device: device, queue: queue}
	small := newView(t, device, 320, 240)
	large := newView(t, device, 640, 480)

	r := NewRunner(testOptions()...)

	r.Frame(nil, nil, 320, 240)
	if r.Presented() != 0 || r.Err() != nil {
		t.Fatalf("frame before device ready: presented %d, err %v", r.Presented(), r.Err())
	}

	r.Frame(provider, small, 320, 240)
	r.Frame(provider, small, 320, 240)
	if r.Presented() != 2 {
		t.Fatalf("Presented = %d, want 2", r.Presented())
	}

	r.Frame(provider, large, 640, 480)
	if r.Presented() != 3 {
		t.Fatalf("Presented after resize = %d, want 3", r.Presented())
	}

	r.Frame(provider, nil, 640, 480)
	if r.Presented() != 3 {
		t.Errorf("frame without a view presented")
	}

	r.Frame(provider, large, 0, 0)
	if r.Presented() != 3 {
		t.Errorf("zero-size frame presented")
	}

	r.Close()
	r.Frame(provider, large, 640, 480)
	if r.Presented() != 3 {
		t.Errorf("frame after Close presented")
	}
	if r.Err() != nil {
		t.Errorf("Err = %v", r.Err())
	}
	r.Close()
}

func TestRunnerStartFailure(t *testing.T) {
	r := NewRunner(testOptions()...)
	r.Frame(bareProvider{}, nil, 320, 240)
	if !errors.Is(r.Err(), ErrNoHALDevice) {
		t.Fatalf("Err = %v, want ErrNoHALDevice", r.Err())
	}
	r.Frame(bareProvider{}, nil, 320, 240)
	if r.Presented() != 0 {
		t.Errorf("Presented = %d after failed start", r.Presented())
	}
	r.Close()
}

func TestRunnerBadOptions(t *testing.T) {
	device, queue := newNoopDevice(t)
	provider := &testProvider{device: device, queue: queue}

	r := NewRunner(backdrop.WithText(""))
	r.Frame(provider, nil, 320, 240)
	if r.Err() == nil {
		t.Fatal("empty text started")
	}
	if r.backend != nil {
		t.Error("backend kept after failed start")
	}
}

func TestRunnerSharesLogger(t *testing.T) {
	orig := backdrop.Logger()
	t.Cleanup(func() {
		backdrop.SetLogger(orig)
		native.SetLogger(orig)
	})

	var buf bytes.Buffer
	backdrop.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	device, queue := newNoopDevice(t)
	r := NewRunner(testOptions()...)
	r.Frame(&testProvider{device: device, queue: queue}, newView(t, device, 64, 64), 64, 64)
	r.Close()

	out := buf.String()
	for _, want := range []string{"native: backend ready", "backdrop: ready", "render: resized"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q", want)
		}
	}
}
