package main

import (
	"flag"
	"os"

	"github.com/Carmen-Shannon/oxy-desk/config"
	"github.com/Carmen-Shannon/oxy-desk/engine"
	"github.com/Carmen-Shannon/oxy-desk/engine/bus"
	"github.com/Carmen-Shannon/oxy-desk/engine/camera"
	"github.com/Carmen-Shannon/oxy-desk/engine/director"
	"github.com/Carmen-Shannon/oxy-desk/engine/loader"
	"github.com/Carmen-Shannon/oxy-desk/engine/overlay"
	"github.com/Carmen-Shannon/oxy-desk/engine/scene"
	"github.com/Carmen-Shannon/oxy-desk/engine/viewpoint"
	"github.com/Carmen-Shannon/oxy-desk/engine/window"
	"github.com/Carmen-Shannon/oxy-desk/internal/log"
	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	configPath := flag.String("config", "deskcam.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Init("info")
		log.Error("config", "error", err)
		os.Exit(1)
	}
	log.Init(cfg.LogLevel)

	// ── Window + Engine ─────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)
	if err != nil {
		log.Error("window", "error", err)
		os.Exit(1)
	}

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithRenderFrameLimit(cfg.Engine.RenderFrameLimit),
		engine.WithProfiling(cfg.Engine.Profiling),
	)

	// ── Camera ──────────────────────────────────────────────────────────
	cam := camera.NewCamera(
		camera.WithFov(mgl32.DegToRad(45)),
		camera.WithClipPlanes(10, 200000),
	)
	orbit := camera.NewOrbitController(
		camera.WithRadiusBounds(5000, 40000),
		camera.WithMouseSensitivity(0.005),
	)

	// ── Scene ───────────────────────────────────────────────────────────
	sc := scene.NewScene(
		scene.WithName("desk"),
		scene.WithObjects(deskObjects()...),
	)

	// ── Event bus + viewpoints ──────────────────────────────────────────
	b := bus.NewBus()
	registry := viewpoint.NewRegistry(cfg.Viewpoints, cfg.Reframe)

	// ── Overlay + Director ──────────────────────────────────────────────
	ld := loader.NewLoader(loader.WithWorkers(cfg.Loader.Workers))
	defer ld.Close()

	in := &input{}
	ov := overlay.NewOverlay(cam, sc,
		overlay.WithGeometry(cfg.Overlay),
		overlay.WithLeaveHook(func() { in.dir.LeaveMonitor() }),
		overlay.WithDispatcher(overlay.DispatcherFunc(in.native)),
		overlay.WithContentProbe(ld.Done),
	)

	dir := director.NewDirector(cam, registry, sc,
		director.WithOrbitController(orbit),
		director.WithFocusListener(ov),
		director.WithBus(b),
		director.WithPolicy(cfg.Reframe),
		director.WithTimings(cfg.Timings),
		director.WithViewport(win.Width(), win.Height()),
		director.WithComputerNames(cfg.ComputerNames...),
	)
	defer dir.Close()

	in.dir = dir
	in.orbit = orbit
	in.overlay = ov
	in.bus = b
	in.timings = cfg.Timings

	// ── Window callbacks, all routed through the command queue ──────────
	win.SetPointerDownCallback(func(x, y float32) { eng.Post(func() { in.pointerDown(x, y) }) })
	win.SetPointerUpCallback(func(x, y float32) { eng.Post(in.pointerUp) })
	win.SetPointerMoveCallback(func(x, y float32) { eng.Post(func() { in.pointerMove(x, y) }) })
	win.SetScrollCallback(func(delta float32) { eng.Post(func() { in.scroll(delta) }) })
	win.SetKeyDownCallback(func(key uint32) { eng.Post(func() { in.keyDown(key) }) })

	eng.SetResizeCallback(dir.Resize)
	eng.SetTickCallback(func(f engine.Frame) {
		dir.Tick(f.Elapsed)
		ov.Update(f.Elapsed, dir.Viewport())
	})

	// ── Asset preload ───────────────────────────────────────────────────
	if err := ld.Load(cfg.Loader.Assets, func(r loader.Result) {
		eng.Post(func() { b.Publish(bus.Event{Topic: bus.LoadingScreenDone}) })
	}); err != nil {
		log.Error("loader", "error", err)
		os.Exit(1)
	}

	log.Info("deskcam started", "width", win.Width(), "height", win.Height(), "assets", len(cfg.Loader.Assets))
	eng.Run()

	if err := win.Close(); err != nil {
		log.Warn("window close", "error", err)
	}
}

// deskObjects returns the authored hit-test geometry around the overlay's screen plane.
func deskObjects() []scene.Object {
	return []scene.Object{
		scene.NewBox("desk", mgl32.Vec3{-3000, -100, -1500}, mgl32.Vec3{3000, 0, 1500}),
		scene.NewBox("computer-bezel", mgl32.Vec3{-700, 400, 0}, mgl32.Vec3{700, 1500, 250}),
		scene.NewBox("computer-stand", mgl32.Vec3{-150, 0, 50}, mgl32.Vec3{150, 400, 200}),
		scene.NewBox("keyboard", mgl32.Vec3{-450, 0, 600}, mgl32.Vec3{450, 40, 900}),
		scene.NewBox("wall", mgl32.Vec3{-20000, -3000, -2100}, mgl32.Vec3{20000, 12000, -2000}),
		scene.NewBox("floor", mgl32.Vec3{-20000, -3100, -20000}, mgl32.Vec3{20000, -3000, 20000}),
	}
}
