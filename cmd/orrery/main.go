package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/orrery/audio"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/logging"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/stream"
	"github.com/lixenwraith/orrery/telemetry"
	"github.com/lixenwraith/orrery/vmath"
)

var (
	configFlag = flag.String("config", "", "Scene YAML file (default: built-in solar system)")
	fpsFlag    = flag.Int("fps", int(time.Second/parameter.FrameUpdateInterval), "Frames per second")
	serveFlag  = flag.String("serve", "", "Address for the websocket stream and /metrics, e.g. :8080")
	audioFlag  = flag.Bool("audio", false, "Play the ambient drone")
	logFlag    = flag.String("log", "", "Log file; empty disables logging")
	levelFlag  = flag.String("level", "info", "Log level: debug, info, warn, error")
	devFlag    = flag.Bool("dev", false, "Human-readable log lines with caller info")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func loadScene(path string) (*scene.File, error) {
	if path == "" {
		return scene.Default()
	}
	return scene.LoadFile(path)
}

func collectRings(sim *engine.Simulation) (map[string][]vmath.Vec3F, error) {
	rings := make(map[string][]vmath.Vec3F)
	for _, id := range sim.BodyIDs() {
		ring, err := sim.RingPolylineOf(id)
		if err != nil {
			return nil, err
		}
		rings[id] = ring
	}
	return rings, nil
}

func run() int {
	if *fpsFlag < parameter.MinFPS || *fpsFlag > parameter.MaxFPS {
		fmt.Fprintf(os.Stderr, "fps must be in [%d, %d], got %d\n", parameter.MinFPS, parameter.MaxFPS, *fpsFlag)
		return 2
	}

	log, err := logging.New(logging.Options{Path: *logFlag, Level: *levelFlag, Development: *devFlag})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	sc, err := loadScene(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scene: %v\n", err)
		return 1
	}

	clock := engine.NewPausableClock(engine.NewTimeProvider())
	sim, err := scene.Build(sc, clock, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scene: %v\n", err)
		return 1
	}
	rings, err := collectRings(sim)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rings: %v\n", err)
		return 1
	}
	metrics := telemetry.New(sim.Status())

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	finish := sync.OnceFunc(screen.Fini)
	defer finish()

	// Panic Recovery: restore the terminal before printing the crash
	crash := func(where string) {
		if r := recover(); r != nil {
			finish()
			fmt.Fprintf(os.Stderr, "\nORRERY CRASHED (%s): %v\n", where, r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}
	defer crash("main")

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.HideCursor()

	h := &host{
		screen:    screen,
		sim:       sim,
		clock:     clock,
		cam:       render.NewCamera(vmath.Vec3F{Y: sc.PlaneY}),
		renderer:  render.NewRenderer(screen, sc, rings),
		log:       log,
		metrics:   metrics,
		fps:       *fpsFlag,
		showRings: true,
	}

	if *audioFlag {
		drone := audio.NewDrone(nil)
		if err := drone.Start(); err != nil {
			// Non-fatal, the scene runs without sound
			log.Warn("audio unavailable", zap.Error(err))
		} else {
			h.drone = drone
			defer drone.Close()
		}
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	base, cancel := context.WithCancel(sigCtx)
	defer cancel()
	g, ctx := errgroup.WithContext(base)

	if *serveFlag != "" {
		ringsJSON, err := stream.EncodeRings(sim)
		if err != nil {
			finish()
			fmt.Fprintf(os.Stderr, "rings: %v\n", err)
			return 1
		}
		hub := stream.NewHub(stream.Options{OnDrop: metrics.FrameDropped, Log: log})
		h.hub = hub
		mux := stream.NewMux(hub, ringsJSON, metrics.Handler())

		g.Go(func() error {
			defer crash("stream hub")
			return hub.Run(ctx)
		})
		g.Go(func() error {
			defer crash("stream server")
			return stream.Serve(ctx, *serveFlag, mux, log)
		})
	}

	events := make(chan tcell.Event, 64)
	g.Go(func() error {
		defer crash("event poller")
		pollEvents(ctx, screen, events)
		return nil
	})

	// Frame loop: exiting it cancels the group and releases the poller via Fini
	g.Go(func() error {
		defer crash("frame loop")
		defer finish()
		defer cancel()
		h.loop(ctx, events, time.Second/time.Duration(*fpsFlag))
		return nil
	})

	log.Info("orrery started",
		zap.Int("bodies", len(sim.BodyIDs())),
		zap.Int("fps", *fpsFlag),
		zap.String("serve", *serveFlag),
	)

	if err := g.Wait(); err != nil {
		finish()
		log.Error("orrery stopped", zap.Error(err))
		fmt.Fprintf(os.Stderr, "orrery: %v\n", err)
		return 1
	}
	log.Info("orrery stopped", zap.Uint64("ticks", sim.Tick()))
	return 0
}
