package render

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"davinci-renderer/internal/mathutil"
	"davinci-renderer/internal/queue"
	"davinci-renderer/internal/raster"
	"davinci-renderer/internal/sprite"
	"davinci-renderer/internal/surface"
)

var (
	// ErrAlreadyStarted is returned by Start on a renderer that has run before.
	ErrAlreadyStarted = errors.New("render: already started")
	// ErrNoDrawable is returned by Start when the window has no drawable surface.
	ErrNoDrawable = errors.New("render: no drawable surface")
)

// State is the render loop state. A renderer goes Stopped → Running → Stopped
// at most once.
type State uint8

const (
	StateStopped State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "stopped"
}

// Options configures a Renderer. Start from DefaultOptions.
type Options struct {
	// Period is the tick length.
	Period time.Duration
	// Background is the clear color of every frame.
	Background raster.Color
	// FillMode selects bounding-box or true triangle fill.
	FillMode raster.FillMode
	// RetainShapes keeps every shape ever submitted and redraws them each
	// frame instead of clearing the shape queue per tick. Sprites are always
	// per-frame.
	RetainShapes bool
	// OnFrame, if set, runs on the loop goroutine after each present.
	OnFrame func(frame *surface.Frame)
}

// DefaultOptions returns a ~60 Hz bounding-box renderer with a grey background.
func DefaultOptions() Options {
	return Options{
		Period:     16 * time.Millisecond,
		Background: raster.Background,
		FillMode:   raster.FillBoundingBox,
	}
}

// Renderer owns all render state: the sprite atlas, both command queues and,
// once started, the Frame Surface and its loop.
//
// Producer methods (AddTriangle, AddRect, DrawSpriteByName, RegisterSprite)
// are safe to call from any goroutine at any time and never block on the loop.
type Renderer struct {
	opts Options

	atlas   *sprite.Atlas
	shapes  queue.Queue[Shape]
	sprites queue.Queue[Placement]

	retained []Shape // loop-only

	mu      sync.Mutex
	state   State
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
	err     error

	frames atomic.Uint64
}

// New creates a stopped renderer.
func New(opts Options) *Renderer {
	if opts.Period <= 0 {
		opts.Period = DefaultOptions().Period
	}
	return &Renderer{opts: opts, atlas: sprite.NewAtlas()}
}

// Atlas returns the sprite atlas.
func (r *Renderer) Atlas() *sprite.Atlas { return r.atlas }

// RegisterSprite decodes the image at path and stores it under name,
// replacing any previous sprite of that name. On failure the atlas is left
// unchanged; the error is returned for callers that care, nothing else
// observes it.
func (r *Renderer) RegisterSprite(name, path string) error {
	if err := r.atlas.RegisterFile(name, path); err != nil {
		Logger().Warn("sprite not registered", "name", name, "path", path, "err", err)
		return err
	}
	Logger().Info("sprite registered", "name", name, "path", path)
	return nil
}

// DrawSpriteByName queues sprite name for the next frame at pixel (x, y).
func (r *Renderer) DrawSpriteByName(name string, x, y int) {
	r.sprites.Push(Placement{Name: name, X: x, Y: y})
}

// AddTriangle queues a filled triangle for the next frame.
func (r *Renderer) AddTriangle(v0, v1, v2 mathutil.Point3, c raster.Color) {
	r.shapes.Push(Triangle(v0, v1, v2, c))
}

// AddRect queues a filled axis-aligned rectangle for the next frame.
func (r *Renderer) AddRect(topLeft, bottomRight mathutil.Point3, c raster.Color) {
	r.shapes.Push(Rect(topLeft, bottomRight, c))
}

// AddShape queues a prebuilt command. The vertices are copied, so the caller
// may reuse its slice. Malformed shapes are dropped at render time.
func (r *Renderer) AddShape(s Shape) {
	s.Vertices = slices.Clone(s.Vertices)
	r.shapes.Push(s)
}

// State returns the loop state.
func (r *Renderer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Frames returns the number of frames presented so far.
func (r *Renderer) Frames() uint64 { return r.frames.Load() }

// Tick renders one frame into frame for window win:
//
//  1. resize the frame to the window's client area,
//  2. clear to the background color,
//  3. paint queued shapes in submission order,
//  4. blit queued sprites in submission order,
//  5. present.
//
// The render loop calls Tick once per period. Hosts that drive their own
// cadence may call it directly, but never concurrently with a running loop.
//
// A frame is always composed. The returned error reports bitmap creation or
// presentation failures, after which the frame was not (fully) shown; the
// render loop logs these and keeps ticking.
func (r *Renderer) Tick(win surface.Window, frame *surface.Frame) error {
	log := Logger()

	resized, sizeErr := frame.EnsureSize(win.ClientSize())
	if resized {
		w, h := frame.Size()
		log.Debug("frame resized", "width", w, "height", h)
	}

	back := frame.Back()
	back.Clear(r.opts.Background)

	shapes := r.shapes.Drain()
	if r.opts.RetainShapes {
		r.retained = append(r.retained, shapes...)
		shapes = r.retained
	}
	for _, s := range shapes {
		r.drawShape(back, s)
	}

	for _, p := range r.sprites.Drain() {
		s, ok := r.atlas.Lookup(p.Name)
		if !ok {
			log.Debug("unknown sprite skipped", "name", p.Name)
			continue
		}
		raster.BlitSprite(back, s.Pixels, s.Width, s.Height, p.X, p.Y)
	}

	presentErr := frame.Present()
	r.frames.Add(1)

	if r.opts.OnFrame != nil {
		r.opts.OnFrame(frame)
	}
	return errors.Join(sizeErr, presentErr)
}

func (r *Renderer) drawShape(back *raster.BackBuffer, s Shape) {
	if !s.Valid() {
		Logger().Debug("malformed shape skipped", "kind", s.Kind, "vertices", len(s.Vertices))
		return
	}
	v := s.Vertices
	switch s.Kind {
	case ShapeTriangle:
		raster.FillTriangle(back, v[0], v[1], v[2], s.Color, r.opts.FillMode)
	case ShapeRect:
		raster.FillRect(back, [4]mathutil.Point3{v[0], v[1], v[2], v[3]}, s.Color, r.opts.FillMode)
	}
}

// Start acquires a drawable from win and runs the render loop on its own
// goroutine until ctx is cancelled, Stop is called, or the window stops
// existing. If no drawable can be obtained the loop does not start and the
// error wraps ErrNoDrawable; Start may then be retried.
func (r *Renderer) Start(ctx context.Context, win surface.Window) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return ErrAlreadyStarted
	}

	dev, err := win.Acquire()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoDrawable, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	r.started = true
	r.state = StateRunning
	r.cancel = cancel
	r.done = make(chan struct{})

	Logger().Info("render loop started", "period", r.opts.Period)
	go r.loop(ctx, win, surface.NewFrame(dev))
	return nil
}

// Stop asks the loop to exit after the current tick. It does not wait.
func (r *Renderer) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Wait blocks until the loop has exited and its resources are released,
// then returns the reason it failed, if any. Wait returns nil immediately on
// a renderer that was never started.
func (r *Renderer) Wait() error {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done == nil {
		return nil
	}
	<-done

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Renderer) loop(ctx context.Context, win surface.Window, frame *surface.Frame) {
	err := r.run(ctx, win, frame)
	if relErr := frame.Release(); relErr != nil {
		Logger().Warn("render resources not released cleanly", "err", relErr)
		err = errors.Join(err, relErr)
	}

	r.mu.Lock()
	r.state = StateStopped
	r.err = err
	r.cancel()
	r.mu.Unlock()
	close(r.done)

	Logger().Info("render loop stopped", "frames", r.Frames(), "err", err)
}

func (r *Renderer) run(ctx context.Context, win surface.Window, frame *surface.Frame) error {
	t := time.NewTicker(r.opts.Period)
	defer t.Stop()

	for {
		if ctx.Err() != nil || !win.Exists() {
			return nil
		}
		if err := r.safeTick(win, frame); err != nil {
			var pe *panicError
			if errors.As(err, &pe) {
				return err
			}
			Logger().Warn("frame not presented", "frame", r.Frames(), "err", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

// panicError is a panic recovered from a frame. It ends the loop.
type panicError struct {
	frame uint64
	value any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("render: frame %d panicked: %v", e.frame, e.value)
}

// safeTick turns a panic inside a frame into an error so the loop still
// releases its resources.
func (r *Renderer) safeTick(win surface.Window, frame *surface.Frame) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &panicError{frame: r.Frames(), value: p}
		}
	}()
	return r.Tick(win, frame)
}
