package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-desk/engine/profiler"
	"github.com/Carmen-Shannon/oxy-desk/engine/window"
	"github.com/Carmen-Shannon/oxy-desk/internal/log"
)

// Frame is one engine tick.
type Frame struct {
	// Elapsed is the monotonic time since the engine started ticking.
	Elapsed time.Duration
	// Delta is the time since the previous tick.
	Delta time.Duration
}

// engine implements the Engine interface.
// Coordinates the tick, render, and window threads.
type engine struct {
	mu    sync.Mutex
	queue []func()

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	tickProfiler     *profiler.Profiler
	renderProfiler   *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	elapsed        time.Duration

	tickCallback   func(f Frame)
	renderCallback func(deltaTime float32)
	resizeCallback func(width, height int)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine drives the fixed-rate tick loop, the render loop, and the window message loop.
// Window and input callbacks never touch controller state directly: they Post commands that
// the tick goroutine drains before it advances the frame.
type Engine interface {
	// Window returns the underlying window, or nil for a headless engine.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick after the command
	// queue is drained.
	//
	// Parameters:
	//   - callback: function receiving the frame timing
	SetTickCallback(callback func(f Frame))

	// SetRenderCallback registers the function called each render frame.
	// The render loop only runs when a render callback is set.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetResizeCallback registers the function receiving window resizes. Resizes are delivered
	// on the tick goroutine through the command queue.
	//
	// Parameters:
	//   - callback: function receiving the new client width and height
	SetResizeCallback(callback func(width, height int))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Post queues a command for the tick goroutine. Commands run in FIFO order before the
	// next tick callback. Nil commands are ignored. Safe to call from any goroutine.
	//
	// Parameters:
	//   - cmd: the command to run
	Post(cmd func())

	// Step drains the command queue and runs one tick of the given length.
	// Run calls it from the tick goroutine; headless hosts and tests may call it directly.
	//
	// Parameters:
	//   - delta: the time since the previous tick
	//
	// Returns:
	//   - Frame: the frame passed to the tick callback
	Step(delta time.Duration) Frame

	// Run starts the engine loops and blocks until the window closes or Quit is called.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// When a window is supplied, its resize and close events are routed through the engine.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:              sync.Mutex{},
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		wg:              sync.WaitGroup{},
		tickProfiler:    profiler.NewProfiler("tick", time.Second),
		renderProfiler:  profiler.NewProfiler("render", time.Second),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			e.Post(func() {
				if e.resizeCallback != nil {
					e.resizeCallback(width, height)
				}
			})
		})
		e.window.SetCloseCallback(e.signalQuit)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Post(cmd func()) {
	if cmd == nil {
		return
	}
	e.mu.Lock()
	e.queue = append(e.queue, cmd)
	e.mu.Unlock()
}

func (e *engine) Step(delta time.Duration) Frame {
	e.drain()

	if delta < 0 {
		delta = 0
	}
	e.elapsed += delta
	f := Frame{Elapsed: e.elapsed, Delta: delta}
	if e.tickCallback != nil {
		e.tickCallback(f)
	}
	return f
}

// drain runs every queued command in FIFO order. Commands posted while draining run on the
// next tick.
func (e *engine) drain() {
	e.mu.Lock()
	cmds := e.queue
	e.queue = nil
	e.mu.Unlock()

	for _, cmd := range cmds {
		cmd()
	}
}

func (e *engine) Run() {
	e.handle()
	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	} else {
		<-e.quitChannel
	}
	e.wg.Wait()
}

func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

// handle launches the tick and render goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.running.Store(true)
	e.wg.Add(1)
	go e.handleEngine()
	if e.renderCallback != nil {
		e.wg.Add(1)
		go e.handleRender()
	}
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Listens for dynamic rate changes via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTick)
			lastTick = now
			e.Step(dt)

			if e.profilingEnabled {
				e.tickProfiler.Tick(now)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Recovers from panics in the render callback and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Error("render goroutine recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			e.renderCallback(dt)

			if e.profilingEnabled {
				e.renderProfiler.Tick(now)
			}

			if e.renderFrameLimit > 0 {
				if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickInterval(fps)

	if !e.running.Load() {
		e.engineTickRate = newRate
		return
	}

	// Non-blocking send; a pending update is replaced by the newest rate.
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) SetTickCallback(callback func(f Frame)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetResizeCallback(callback func(width, height int)) {
	e.resizeCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameLimit(fps)
}

func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

func frameLimit(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
