package background

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"mukesh.dev/internal/viewport"
)

// State is the lifecycle state of an Effect
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateFailed
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateDisposed:
		return "disposed"
	}
	return "unknown"
}

// Settings are the tunables of the particle field
type Settings struct {
	ParticleCount int
	Spread        float64
	RotationStep  float64 // radians per frame on X and Y
	FOV           float64
	Near          float64
	Far           float64
	CameraZ       float64
	Color         string
	PointSize     float64
	Opacity       float64
	FrameRate     int
	Seed          uint64 // 0 picks a random seed per mount
}

// DefaultSettings returns the stock particle field
func DefaultSettings() Settings {
	return Settings{
		ParticleCount: 5000,
		Spread:        5,
		RotationStep:  0.0005,
		FOV:           75,
		Near:          0.1,
		Far:           1000,
		CameraZ:       2,
		Color:         "#8B5CF6",
		PointSize:     0.005,
		Opacity:       0.8,
		FrameRate:     60,
	}
}

// Frame summarizes the effect after a rendered frame
type Frame struct {
	Number   uint64
	Rotation Rotation
	Width    int
	Height   int
	Aspect   float64
}

// FrameClock delivers frame ticks to the render loop
type FrameClock interface {
	C() <-chan time.Time
	Stop()
}

type tickerClock struct {
	t *time.Ticker
}

func (c tickerClock) C() <-chan time.Time { return c.t.C }
func (c tickerClock) Stop()               { c.t.Stop() }

// NewTickerClock ticks rate times per second
func NewTickerClock(rate int) FrameClock {
	if rate <= 0 {
		rate = 60
	}
	return tickerClock{t: time.NewTicker(time.Second / time.Duration(rate))}
}

// Option configures an Effect
type Option func(*Effect)

// WithClock replaces the ticker used by the render loop
func WithClock(newClock func() FrameClock) Option {
	return func(e *Effect) { e.newClock = newClock }
}

// WithoutLoop mounts the effect without a render loop; frames are produced
// only by explicit Frame or Seek calls
func WithoutLoop() Option {
	return func(e *Effect) { e.loop = false }
}

// WithRenderEvery rasterizes only every nth frame of the loop; the rotation
// still advances on every tick. 0 never rasterizes from the loop.
func WithRenderEvery(n uint64) Option {
	return func(e *Effect) { e.renderEvery = n }
}

// WithLogger sets the effect logger
func WithLogger(l *slog.Logger) Option {
	return func(e *Effect) { e.logger = l }
}

// OnFrame registers fn to run after every frame, outside the lock
func OnFrame(fn func(Frame)) Option {
	return func(e *Effect) { e.onFrame = fn }
}

// Effect owns one particle field: its scene, camera, renderer, resize
// subscription and render loop. All of it is released by Dispose.
type Effect struct {
	settings    Settings
	loader      Loader
	window      *viewport.Window
	newClock    func() FrameClock
	loop        bool
	renderEvery uint64
	logger      *slog.Logger
	onFrame     func(Frame)

	mu          sync.Mutex
	state       State
	err         error
	scene       *Scene
	camera      *Camera
	renderer    Renderer
	frames      uint64
	unsubscribe func()
	cancel      context.CancelFunc
	settled     chan struct{} // closed once loading finishes either way
	done        chan struct{} // closed when the mount goroutine exits
}

// New creates an unmounted effect rendering into window
func New(settings Settings, loader Loader, window *viewport.Window, opts ...Option) *Effect {
	e := &Effect{
		settings:    settings,
		loader:      loader,
		window:      window,
		loop:        true,
		renderEvery: 1,
		logger:      slog.Default(),
		settled:     make(chan struct{}),
		done:        make(chan struct{}),
	}
	e.newClock = func() FrameClock { return NewTickerClock(e.settings.FrameRate) }
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mount starts loading the renderer in the background. The effect moves to
// Loading immediately and to Ready or Failed when loading finishes.
func (e *Effect) Mount(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateUninitialized:
	case StateDisposed:
		return ErrDisposed
	default:
		return ErrAlreadyMounted
	}
	if e.window == nil || e.loader == nil {
		e.state = StateFailed
		e.err = ErrNoWindow
		close(e.settled)
		close(e.done)
		e.logger.Warn("background effect not started", "error", e.err)
		return e.err
	}

	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.state = StateLoading

	go e.run(runCtx)
	return nil
}

// Wait blocks until loading has finished and returns the load error, if any
func (e *Effect) Wait(ctx context.Context) error {
	select {
	case <-e.settled:
	case <-ctx.Done():
		return ctx.Err()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *Effect) run(ctx context.Context) {
	defer close(e.done)

	size := e.window.Size()
	renderer, err := e.loader.Load(ctx, size.Width, size.Height)

	e.mu.Lock()
	if e.state == StateDisposed {
		e.mu.Unlock()
		if renderer != nil {
			_ = renderer.Close()
		}
		close(e.settled)
		return
	}
	if err != nil {
		e.state = StateFailed
		e.err = &LoadError{Err: err}
		e.mu.Unlock()
		close(e.settled)
		e.logger.Error("background effect failed to load", "error", err)
		return
	}
	size, err = e.setup(renderer)
	if err != nil {
		e.state = StateFailed
		e.err = &LoadError{Err: err}
		e.mu.Unlock()
		_ = renderer.Close()
		close(e.settled)
		e.logger.Error("background effect setup failed", "error", err)
		return
	}
	e.state = StateReady
	e.mu.Unlock()
	close(e.settled)

	e.logger.Debug("background effect ready",
		"particles", e.settings.ParticleCount,
		"width", size.Width,
		"height", size.Height,
	)

	if !e.loop {
		<-ctx.Done()
		return
	}

	clock := e.newClock()
	defer clock.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-clock.C():
			if err := e.Frame(); err != nil && !errors.Is(err, ErrDisposed) {
				e.logger.Warn("background frame failed", "error", err)
			}
		}
	}
}

// setup subscribes to resizes, then builds the scene sized to the window as
// it is now, so a resize that landed while loading still applies. Caller
// holds e.mu; a listener fired meanwhile blocks on it and reapplies after.
func (e *Effect) setup(renderer Renderer) (viewport.Viewport, error) {
	unsubscribe := e.window.OnResize(e.handleResize)
	size := e.window.Size()
	if err := renderer.SetSize(size.Width, size.Height); err != nil {
		unsubscribe()
		return size, err
	}

	s := e.settings
	field := NewField(newRand(s.Seed), s.ParticleCount, s.Spread)
	e.scene = &Scene{Points: &Points{
		Field:    field,
		Material: Material{Color: s.Color, Size: s.PointSize, Opacity: s.Opacity},
	}}
	e.camera = NewCamera(s.FOV, size.Aspect(), s.Near, s.Far)
	e.camera.Position.Z = s.CameraZ
	e.renderer = renderer
	e.unsubscribe = unsubscribe
	return size, nil
}

func (e *Effect) handleResize(vp viewport.Viewport) {
	if err := e.Resize(vp.Width, vp.Height); err != nil && !errors.Is(err, ErrDisposed) {
		e.logger.Warn("background resize failed", "width", vp.Width, "height", vp.Height, "error", err)
	}
}

// Frame advances the rotation by one step and renders when the frame falls
// on the rasterizing stride
func (e *Effect) Frame() error {
	e.mu.Lock()
	if err := e.readyLocked(); err != nil {
		e.mu.Unlock()
		return err
	}
	e.scene.Points.Step(e.settings.RotationStep)
	e.frames++
	var err error
	if e.renderEvery > 0 && e.frames%e.renderEvery == 0 {
		err = e.renderer.Render(e.scene, e.camera)
	}
	f := e.snapshotLocked()
	e.mu.Unlock()

	if err == nil && e.onFrame != nil {
		e.onFrame(f)
	}
	return err
}

// Seek sets the rotation to what it would be after n frames and renders
func (e *Effect) Seek(n uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.readyLocked(); err != nil {
		return err
	}
	step := e.settings.RotationStep * float64(n)
	e.scene.Points.Rotation = Rotation{X: step, Y: step}
	if err := e.renderer.Render(e.scene, e.camera); err != nil {
		return err
	}
	e.frames = n
	return nil
}

// Resize matches the camera aspect and the renderer size to the new viewport
func (e *Effect) Resize(width, height int) error {
	vp := viewport.Viewport{Width: width, Height: height}
	if err := vp.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.readyLocked(); err != nil {
		return err
	}
	e.camera.SetAspect(vp.Aspect())
	return e.renderer.SetSize(width, height)
}

// Encode writes the last rendered frame
func (e *Effect) Encode(w io.Writer) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.readyLocked(); err != nil {
		return err
	}
	return e.renderer.Encode(w)
}

func (e *Effect) readyLocked() error {
	switch e.state {
	case StateReady:
		return nil
	case StateDisposed:
		return ErrDisposed
	case StateFailed:
		return e.err
	}
	return ErrNotReady
}

// Dispose stops the render loop, waits for it to exit, releases the resize
// subscription and closes the renderer. It is safe to call more than once.
func (e *Effect) Dispose() error {
	e.mu.Lock()
	if e.state == StateDisposed {
		e.mu.Unlock()
		return nil
	}
	mounted := e.state != StateUninitialized
	e.state = StateDisposed
	cancel := e.cancel
	unsubscribe := e.unsubscribe
	e.unsubscribe = nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if mounted {
		<-e.done
	}
	if unsubscribe != nil {
		unsubscribe()
	}

	e.mu.Lock()
	renderer := e.renderer
	e.renderer = nil
	e.mu.Unlock()

	if renderer != nil {
		return renderer.Close()
	}
	return nil
}

// State returns the lifecycle state
func (e *Effect) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Err returns the load failure, if the effect failed
func (e *Effect) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Snapshot returns the current frame summary
func (e *Effect) Snapshot() Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Effect) snapshotLocked() Frame {
	f := Frame{Number: e.frames}
	if e.scene != nil {
		f.Rotation = e.scene.Points.Rotation
	}
	if e.camera != nil {
		f.Aspect = e.camera.Aspect
	}
	if e.renderer != nil {
		f.Width, f.Height = e.renderer.Size()
	}
	return f
}

// Camera returns a copy of the camera
func (e *Effect) Camera() (Camera, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.camera == nil {
		return Camera{}, false
	}
	return *e.camera, true
}

// RendererSize returns the renderer output size
func (e *Effect) RendererSize() (width, height int, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.renderer == nil {
		return 0, 0, false
	}
	width, height = e.renderer.Size()
	return width, height, true
}

// Particles returns a copy of the particle positions
func (e *Effect) Particles() []Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.scene == nil {
		return nil
	}
	return append([]Vec3(nil), e.scene.Points.Field.Positions...)
}
