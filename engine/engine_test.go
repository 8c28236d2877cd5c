package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestStepDrainsQueueBeforeTick(t *testing.T) {
	var order []string
	e := NewEngine(WithTickCallback(func(f Frame) {
		order = append(order, "tick")
	}))

	e.Post(func() { order = append(order, "a") })
	e.Post(func() { order = append(order, "b") })
	e.Step(16 * time.Millisecond)

	expected := []string{"a", "b", "tick"}
	if len(order) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, order)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, order)
			break
		}
	}
}

func TestStepAccumulatesElapsed(t *testing.T) {
	var frames []Frame
	e := NewEngine(WithTickCallback(func(f Frame) { frames = append(frames, f) }))

	e.Step(16 * time.Millisecond)
	e.Step(17 * time.Millisecond)
	f := e.Step(-time.Millisecond)

	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	if frames[1].Elapsed != 33*time.Millisecond || frames[1].Delta != 17*time.Millisecond {
		t.Errorf("expected elapsed 33ms delta 17ms, got %v %v", frames[1].Elapsed, frames[1].Delta)
	}
	if f.Delta != 0 || f.Elapsed != 33*time.Millisecond {
		t.Errorf("expected negative delta to clamp to 0, got %+v", f)
	}
}

func TestCommandPostedDuringDrainRunsNextTick(t *testing.T) {
	e := NewEngine()
	ran := 0
	e.Post(func() {
		e.Post(func() { ran++ })
	})

	e.Step(time.Millisecond)
	if ran != 0 {
		t.Errorf("expected nested command to wait a tick, got %d runs", ran)
	}
	e.Step(time.Millisecond)
	if ran != 1 {
		t.Errorf("expected nested command to run once, got %d", ran)
	}
}

func TestPostIgnoresNil(t *testing.T) {
	e := NewEngine()
	e.Post(nil)
	e.Step(time.Millisecond)
}

func TestRunHeadlessUntilQuit(t *testing.T) {
	var ticks atomic.Int32
	e := NewEngine(WithTickRate(500), WithTickCallback(func(Frame) { ticks.Add(1) }))

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	ran := make(chan struct{})
	e.Post(func() { close(ran) })

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("expected posted command to run on the tick goroutine")
	}

	e.Quit()
	e.Quit()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected Run to return after Quit")
	}
	if ticks.Load() == 0 {
		t.Error("expected at least one tick")
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		fps      float64
		expected time.Duration
	}{
		{60, time.Second / 60},
		{0, time.Second / 60},
		{-5, time.Second / 60},
		{120, time.Second / 120},
	}
	for _, tt := range tests {
		if got := tickInterval(tt.fps); got != tt.expected {
			t.Errorf("fps %v: expected %v, got %v", tt.fps, tt.expected, got)
		}
	}
	if frameLimit(0) != 0 {
		t.Errorf("expected uncapped frame limit, got %v", frameLimit(0))
	}
}
