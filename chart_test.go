// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package timechart

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/timechart/gpucore"
	"github.com/gogpu/timechart/internal/gputest"
	"github.com/gogpu/timechart/internal/seq"
)

func newTestChart(t *testing.T, opts ...Option) (*Chart, *gputest.FakeDevice, *ManualScheduler) {
	t.Helper()
	dev := gputest.New()
	sched := &ManualScheduler{}
	chart, err := New(dev, append([]Option{WithScheduler(sched)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return chart, dev, sched
}

func TestNewNilDevice(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNilDevice) {
		t.Fatalf("New(nil) error = %v, want ErrNilDevice", err)
	}
}

func TestNoFrameBeforeResize(t *testing.T) {
	chart, dev, sched := newTestChart(t)
	s := chart.AddSeries("a")
	s.PushBack(Pt(0, 0), Pt(1, 1))
	sched.Tick()
	if got := len(dev.Frames()); got != 0 {
		t.Fatalf("frames before resize = %d, want 0", got)
	}
}

func TestRedrawCoalescing(t *testing.T) {
	chart, dev, sched := newTestChart(t)
	chart.Resize(100, 100)
	s := chart.AddSeries("a")
	for i := 0; i < 10; i++ {
		s.PushBack(Pt(float64(i), float64(i)))
	}
	sched.Tick()
	if got := len(dev.Frames()); got != 1 {
		t.Fatalf("frames after burst = %d, want 1", got)
	}

	s.PushBack(Pt(10, 10))
	s.PushBack(Pt(11, 11))
	sched.Tick()
	if got := len(dev.Frames()); got != 2 {
		t.Fatalf("frames after second burst = %d, want 2", got)
	}

	// No mutations, nothing scheduled.
	sched.Tick()
	if got := len(dev.Frames()); got != 2 {
		t.Fatalf("frames after idle tick = %d, want 2", got)
	}
}

func TestRenderAbsorbsPendingRedraw(t *testing.T) {
	chart, dev, sched := newTestChart(t)
	chart.Resize(100, 100)
	sched.Tick()

	s := chart.AddSeries("a")
	s.PushBack(Pt(0, 0), Pt(1, 1))
	if err := chart.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := len(dev.Frames()); got != 2 {
		t.Fatalf("frames after Render = %d, want 2", got)
	}
	sched.Tick()
	if got := len(dev.Frames()); got != 2 {
		t.Fatalf("frames after tick = %d, want 2 (pending absorbed)", got)
	}
}

func TestDispose(t *testing.T) {
	chart, dev, sched := newTestChart(t)
	chart.Resize(100, 100)
	s := chart.AddSeries("a")
	s.PushBack(Pt(0, 0), Pt(1, 1), Pt(2, 2))
	sched.Tick()
	if dev.Live() == 0 {
		t.Fatal("expected live buffers after first frame")
	}

	var sawLive bool
	chart.OnDisposing(func() { sawLive = dev.Live() > 0 })
	chart.Dispose()
	if !sawLive {
		t.Error("OnDisposing ran after buffers were released")
	}
	if got := dev.Live(); got != 0 {
		t.Fatalf("live buffers after Dispose = %d, want 0", got)
	}

	frames := len(dev.Frames())
	s.PushBack(Pt(3, 3))
	sched.Tick()
	if got := len(dev.Frames()); got != frames {
		t.Fatalf("frames after disposed mutation = %d, want %d", got, frames)
	}
	if err := chart.Render(); !errors.Is(err, ErrDisposed) {
		t.Fatalf("Render after Dispose error = %v, want ErrDisposed", err)
	}

	chart.Dispose() // idempotent
}

func TestObserverOrderAndRemove(t *testing.T) {
	chart, _, _ := newTestChart(t)
	chart.Resize(100, 100)

	var order []string
	removeA := chart.OnUpdated(func() { order = append(order, "a") })
	chart.OnUpdated(func() { order = append(order, "b") })

	if err := chart.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("delivery order = %v, want [a b]", order)
	}

	removeA()
	removeA() // double remove is harmless
	order = nil
	if err := chart.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(order) != 1 || order[0] != "b" {
		t.Fatalf("delivery after remove = %v, want [b]", order)
	}
}

func TestOnResized(t *testing.T) {
	chart, _, _ := newTestChart(t)
	var gotW, gotH uint32
	calls := 0
	chart.OnResized(func(w, h uint32) { gotW, gotH = w, h; calls++ })

	chart.Resize(320, 240)
	if calls != 1 || gotW != 320 || gotH != 240 {
		t.Fatalf("resize observer got (%d, %d) after %d calls", gotW, gotH, calls)
	}
	chart.Resize(320, 240) // unchanged size
	if calls != 1 {
		t.Fatalf("observer called %d times for same size, want 1", calls)
	}
}

func TestRenderCullsToFixedDomain(t *testing.T) {
	chart, dev, _ := newTestChart(t, WithXDomain(1, 3))
	chart.Resize(100, 100)
	s := chart.AddSeries("a", WithStyle(StyleStep))
	for i := 0; i < 5; i++ {
		s.PushBack(Pt(float64(i), float64(i)))
	}
	if err := chart.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	frame := dev.LastFrame()
	if !frame.Ended {
		t.Error("frame not ended")
	}
	if len(frame.Ops) != 1 {
		t.Fatalf("ops = %d, want 1", len(frame.Ops))
	}
	op := frame.Ops[0]
	if op.Kind != gpucore.PipelineStep {
		t.Errorf("op.Kind = %v, want %v", op.Kind, gpucore.PipelineStep)
	}
	if op.First != 2 || op.Count != 3 {
		t.Errorf("op window = [%d, +%d), want [2, +3)", op.First, op.Count)
	}
	if !op.LeadIn {
		t.Error("op.LeadIn = false, want true")
	}
	if op.Transform[0] == 0 || op.Transform[2] == 0 {
		t.Errorf("degenerate transform %v", op.Transform)
	}
}

func TestBackgroundClear(t *testing.T) {
	chart, dev, _ := newTestChart(t, WithBackground(color.Black))
	chart.Resize(10, 10)
	if err := chart.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := [4]float32{0, 0, 0, 1}
	if got := dev.LastFrame().Clear; got != want {
		t.Fatalf("clear = %v, want %v", got, want)
	}
}

func TestDefaultPaletteCycles(t *testing.T) {
	chart, _, _ := newTestChart(t)
	var series []*Series
	for i := 0; i <= len(palette); i++ {
		series = append(series, chart.AddSeries("s"))
	}
	if series[0].color != colorVec(palette[0]) {
		t.Errorf("series 0 color = %v, want %v", series[0].color, colorVec(palette[0]))
	}
	if series[0].color == series[1].color {
		t.Error("adjacent series share a color")
	}
	if series[len(palette)].color != series[0].color {
		t.Error("palette did not wrap around")
	}
}

func TestWithColorOverridesPalette(t *testing.T) {
	chart, _, _ := newTestChart(t)
	s := chart.AddSeries("a", WithColor(color.RGBA{R: 255, A: 255}))
	want := [4]float32{1, 0, 0, 1}
	if s.color != want {
		t.Fatalf("color = %v, want %v", s.color, want)
	}
}

func TestSpliceErrorLeavesSeriesIntact(t *testing.T) {
	chart, dev, _ := newTestChart(t)
	chart.Resize(100, 100)
	s := chart.AddSeries("a")
	for i := 0; i < 10; i++ {
		s.PushBack(Pt(float64(i), float64(i)))
	}
	if err := chart.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// Deleting from the middle of uploaded data would punch a hole.
	if _, err := s.Splice(4, 2); !errors.Is(err, seq.ErrInvalidMutation) {
		t.Fatalf("Splice error = %v, want ErrInvalidMutation", err)
	}
	if got := s.Len(); got != 10 {
		t.Fatalf("len after failed splice = %d, want 10", got)
	}
	frames := len(dev.Frames())
	chart.Render()
	if got := len(dev.Frames()); got != frames+1 {
		t.Fatalf("chart unusable after failed splice")
	}
}

func TestStyleString(t *testing.T) {
	tests := []struct {
		style Style
		want  string
	}{
		{StyleLine, "Line"},
		{StyleStep, "Step"},
		{StyleNativeLine, "NativeLine"},
		{StyleNativePoint, "NativePoint"},
	}
	for _, tt := range tests {
		if got := tt.style.String(); got != tt.want {
			t.Errorf("Style(%d).String() = %q, want %q", tt.style, got, tt.want)
		}
	}
}
