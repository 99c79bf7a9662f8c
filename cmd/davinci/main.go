package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"davinci-renderer/internal/capture"
	"davinci-renderer/internal/config"
	"davinci-renderer/internal/mathutil"
	"davinci-renderer/internal/raster"
	"davinci-renderer/internal/render"
	"davinci-renderer/internal/sprite"
	"davinci-renderer/internal/surface"
	"davinci-renderer/internal/window"
)

func main() {
	os.Exit(run())
}

// run holds the program so deferred cleanup happens before the exit code is
// returned to main.
func run() int {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json, .toml, .yaml)")
	headless := flag.Bool("headless", false, "Render into an in-memory window instead of an OS window")
	ticks := flag.Int("ticks", 0, "Stop after N frames (0: run until closed or interrupted)")
	width := flag.Int("width", 0, "Window width (default: 800)")
	height := flag.Int("height", 0, "Window height (default: 600)")
	spriteDir := flag.String("sprites", "", "Directory of sprite images, registered by file stem")
	manifest := flag.String("manifest", "", "JSON sprite manifest (name → path)")
	capturePath := flag.String("capture", "", "Write the last frame to this .webp or .png file on exit")
	workers := flag.Int("workers", 0, "Sprite decode workers (default: NumCPU)")
	verbose := flag.Bool("v", false, "Log per-frame diagnostics")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	render.SetLogger(logger)

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			return 1
		}
	}

	// CLI flags override config file
	if err := cfg.Resolve(config.Flags{
		Width:       *width,
		Height:      *height,
		SpriteDir:   *spriteDir,
		Manifest:    *manifest,
		CapturePath: *capturePath,
		Workers:     *workers,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	opts, err := cfg.RenderOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	format, err := cfg.Format()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	var (
		win     closer
		frames  atomic.Int64
		snapMu  sync.Mutex
		lastImg *image.RGBA
	)
	opts.OnFrame = func(f *surface.Frame) {
		if cfg.CapturePath != "" {
			img := f.Snapshot()
			snapMu.Lock()
			lastImg = img
			snapMu.Unlock()
		}
		if n := frames.Add(1); *ticks > 0 && n >= int64(*ticks) {
			win.Close()
		}
	}
	r := render.New(opts)

	loadSprites(r.Atlas(), &cfg, logger)
	if r.Atlas().Len() == 0 {
		registerDemoSprite(r.Atlas())
	}
	fmt.Printf("Sprites: %d registered\n", r.Atlas().Len())

	if cfg.WatchSprites && cfg.SpriteDir != "" {
		w, err := sprite.Watch(r.Atlas(), cfg.SpriteDir, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: sprite watch: %v\n", err)
		} else {
			defer w.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go produceScene(ctx, r, opts.Period)

	start := time.Now()
	var loopErr error
	if *headless {
		hw := window.NewHeadless(cfg.Width, cfg.Height, format)
		win = hw
		if err := r.Start(ctx, hw); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		loopErr = r.Wait()
	} else {
		dw := window.NewDesktop(cfg.Title, cfg.Width, cfg.Height)
		win = dw
		if err := r.Start(ctx, dw); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		go func() {
			<-ctx.Done()
			dw.Close()
		}()
		// The OS window must run on the main goroutine.
		if err := dw.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: window: %v\n", err)
		}
		r.Stop()
		loopErr = r.Wait()
	}
	stop()

	code := 0
	fmt.Printf("Frames: %d in %.1fs\n", r.Frames(), time.Since(start).Seconds())
	if loopErr != nil {
		fmt.Fprintf(os.Stderr, "Error: render loop: %v\n", loopErr)
		code = 1
	}

	if cfg.CapturePath != "" {
		snapMu.Lock()
		img := lastImg
		snapMu.Unlock()
		if img == nil {
			fmt.Fprintln(os.Stderr, "Warning: no frame presented, nothing captured")
		} else if err := capture.WriteFile(cfg.CapturePath, img, cfg.CaptureScale); err != nil {
			fmt.Fprintf(os.Stderr, "Error: capture: %v\n", err)
			code = 1
		} else {
			fmt.Printf("Capture: %s\n", cfg.CapturePath)
		}
	}
	return code
}

// closer is the part of a window the frame limit needs.
type closer interface {
	Close()
}

// loadSprites registers the manifest entries if one is configured, otherwise
// every supported image under the sprite directory.
func loadSprites(a *sprite.Atlas, cfg *config.Config, logger *slog.Logger) {
	var entries []sprite.Entry
	switch {
	case cfg.SpriteManifest != "":
		var err error
		entries, err = sprite.LoadManifest(cfg.SpriteManifest)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest: %v\n", err)
			return
		}
	case cfg.SpriteDir != "":
		entries = sprite.BuildIndex(cfg.SpriteDir).Entries()
	default:
		return
	}

	failed := 0
	for _, res := range sprite.Preload(a, entries, cfg.Workers) {
		if res.Err != nil {
			logger.Warn("sprite not registered", "name", res.Name, "path", res.Path, "err", res.Err)
			failed++
		}
	}
	if failed > 0 {
		fmt.Printf("Sprites: %d/%d failed\n", failed, len(entries))
	}
}

// registerDemoSprite adds a 16x16 checkerboard named "demo" so the scene has
// something to blit without any assets.
func registerDemoSprite(a *sprite.Atlas) {
	const size = 16
	raw := make([]byte, 0, size*size*3)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/4+y/4)%2 == 0 {
				raw = append(raw, 0xFF, 0xD7, 0x00)
			} else {
				raw = append(raw, 0x20, 0x20, 0x20)
			}
		}
	}
	if err := a.Register("demo", raw, size, size, 3); err != nil {
		panic(err)
	}
}

// spinDegPerSec is the rotation speed of the demo shapes.
const spinDegPerSec = 60

// produceScene submits a spinning triangle, a quad orbiting its own corner,
// a static rect and one placement per registered sprite every period, the
// way an application thread would.
func produceScene(ctx context.Context, r *render.Renderer, period time.Duration) {
	t := time.NewTicker(period)
	defer t.Stop()

	names := r.Atlas().Names()
	tri := [3]mathutil.Point3{mathutil.Pt(0, -80), mathutil.Pt(70, 40), mathutil.Pt(-70, 40)}
	quad := []mathutil.Point3{mathutil.Pt(120, 60), mathutil.Pt(180, 60), mathutil.Pt(180, 120), mathutil.Pt(120, 120)}
	pivot := quad[0]
	spun := make([]mathutil.Point3, len(quad))
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}

		angle := mathutil.Deg2Rad(math.Mod(spinDegPerSec*time.Since(start).Seconds(), 360))
		r.AddRect(mathutil.Pt(-200, -150), mathutil.Pt(-120, -90), raster.RGB(40, 90, 200))
		r.AddTriangle(tri[0].RotZ(angle), tri[1].RotZ(angle), tri[2].RotZ(angle), raster.RGB(220, 40, 40))
		for i, p := range quad {
			spun[i] = p.RotZAround(pivot, -angle)
		}
		// The bounding-box fill paints the rotated quad's AABB.
		r.AddShape(render.Shape{Kind: render.ShapeRect, Vertices: spun, Color: raster.RGB(40, 160, 60)})
		for i, name := range names {
			r.DrawSpriteByName(name, 10+i*20, 10)
		}
	}
}
