package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"mukesh.dev/internal/background"
	"mukesh.dev/internal/viewport"
)

// ErrTooManySessions is returned when the live session cap is reached
var ErrTooManySessions = errors.New("background: too many live sessions")

// BackgroundService creates particle field effects for connected pages and
// renders single frames on demand
type BackgroundService struct {
	settings background.Settings
	loader   background.Loader
	logger   *slog.Logger
	active   atomic.Int64
	limit    int64
}

// NewBackgroundService creates a new BackgroundService
func NewBackgroundService(settings background.Settings, loader background.Loader, logger *slog.Logger) *BackgroundService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BackgroundService{settings: settings, loader: loader, logger: logger}
}

// SetMaxSessions caps the number of live sessions; 0 removes the cap
func (s *BackgroundService) SetMaxSessions(n int) {
	s.limit = int64(max(n, 0))
}

// Settings returns the particle field settings
func (s *BackgroundService) Settings() background.Settings {
	return s.settings
}

// BackgroundSession is one mounted effect and the window it renders into
type BackgroundSession struct {
	Window  *viewport.Window
	Effect  *background.Effect
	service *BackgroundService
	closed  atomic.Bool
}

// NewSession mounts an effect for a page with the given viewport
func (s *BackgroundService) NewSession(ctx context.Context, width, height int, opts ...background.Option) (*BackgroundSession, error) {
	window, err := viewport.NewWindow(width, height)
	if err != nil {
		return nil, err
	}

	if n := s.active.Add(1); s.limit > 0 && n > s.limit {
		s.active.Add(-1)
		return nil, ErrTooManySessions
	}

	opts = append([]background.Option{background.WithLogger(s.logger)}, opts...)
	effect := background.New(s.settings, s.loader, window, opts...)
	if err := effect.Mount(ctx); err != nil {
		s.active.Add(-1)
		return nil, err
	}

	return &BackgroundSession{Window: window, Effect: effect, service: s}, nil
}

// Close disposes the effect. Safe to call more than once.
func (bs *BackgroundSession) Close() error {
	if !bs.closed.CompareAndSwap(false, true) {
		return nil
	}
	bs.service.active.Add(-1)
	return bs.Effect.Dispose()
}

// Active returns the number of open sessions
func (s *BackgroundService) Active() int {
	return int(s.active.Load())
}

// RenderStill renders the field as it looks after frame frames and writes a PNG
func (s *BackgroundService) RenderStill(ctx context.Context, width, height int, frame uint64, w io.Writer) error {
	window, err := viewport.NewWindow(width, height)
	if err != nil {
		return err
	}

	effect := background.New(s.settings, s.loader, window,
		background.WithLogger(s.logger),
		background.WithoutLoop(),
	)
	defer effect.Dispose()

	if err := effect.Mount(ctx); err != nil {
		return err
	}
	if err := effect.Wait(ctx); err != nil {
		return err
	}
	if err := effect.Seek(frame); err != nil {
		return fmt.Errorf("rendering frame %d: %w", frame, err)
	}
	return effect.Encode(w)
}
