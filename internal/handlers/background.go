package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"mukesh.dev/internal/background"
	"mukesh.dev/internal/config"
	"mukesh.dev/internal/models"
	"mukesh.dev/internal/services"
)

const (
	maxFrameWidth  = 3840
	maxFrameHeight = 2160
	writeWait      = 10 * time.Second
)

// BackgroundHandler serves the particle field as still frames and as a live
// websocket session
type BackgroundHandler struct {
	backgroundService *services.BackgroundService
	defaults          config.ViewportConfig
	interval          uint64
	upgrader          websocket.Upgrader
}

// NewBackgroundHandler creates a new BackgroundHandler. interval is how many
// frames pass between frames sent to a client; origins are the page origins
// allowed to open a stream.
func NewBackgroundHandler(bs *services.BackgroundService, defaults config.ViewportConfig, interval int, origins []string) *BackgroundHandler {
	if interval < 1 {
		interval = 1
	}
	return &BackgroundHandler{
		backgroundService: bs,
		defaults:          defaults,
		interval:          uint64(interval),
		upgrader:          websocket.Upgrader{CheckOrigin: checkOrigin(origins)},
	}
}

// checkOrigin accepts same-host requests, requests without an Origin header
// and origins on the list; "*" accepts everything
func checkOrigin(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		if strings.EqualFold(u.Host, r.Host) {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(strings.TrimSuffix(a, "/"), origin) {
				return true
			}
		}
		return false
	}
}

// Still handles GET /background.png
func (h *BackgroundHandler) Still(w http.ResponseWriter, r *http.Request) {
	width, height := h.frameSize(r)
	frame, err := strconv.ParseUint(r.URL.Query().Get("frame"), 10, 64)
	if err != nil {
		frame = 0
	}

	var buf bytes.Buffer
	if err := h.backgroundService.RenderStill(r.Context(), width, height, frame, &buf); err != nil {
		slog.Error("rendering background frame", "width", width, "height", height, "error", err)
		respondError(w, httpStatus(err), "Background unavailable")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// Stream handles GET /ws/background. The session lives exactly as long as
// the connection. Only frames that are sent are rasterized, and none are
// when the client asked for frame metadata alone.
func (h *BackgroundHandler) Stream(w http.ResponseWriter, r *http.Request) {
	if !h.upgrader.CheckOrigin(r) {
		respondError(w, http.StatusForbidden, "Origin not allowed")
		return
	}
	width, height := h.frameSize(r)
	withPNG := r.URL.Query().Get("stream") == "png"

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	renderEvery := h.interval
	if !withPNG {
		renderEvery = 0
	}

	frames := make(chan background.Frame, 1)
	session, err := h.backgroundService.NewSession(ctx, width, height,
		background.WithRenderEvery(renderEvery),
		background.OnFrame(func(f background.Frame) {
			if f.Number%h.interval != 0 {
				return
			}
			// Drop the frame if the client has not caught up
			select {
			case frames <- f:
			default:
			}
		}),
	)
	if err != nil {
		slog.Warn("background session refused", "error", err, "active", h.backgroundService.Active())
		respondError(w, httpStatus(err), "Background unavailable")
		return
	}
	defer session.Close()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("background websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	sc := &streamConn{conn: conn}
	if err := sc.sendState(session.Effect.State()); err != nil {
		return
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.pump(ctx, sc, session, frames, withPNG)
	}()

	for {
		var msg models.BackgroundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("background websocket read", "error", err)
			}
			break
		}
		switch msg.Type {
		case "resize":
			nw := clamp(msg.Width, 1, maxFrameWidth)
			nh := clamp(msg.Height, 1, maxFrameHeight)
			if err := session.Window.Resize(nw, nh); err != nil {
				sc.sendError(err)
			}
		default:
			sc.sendError(fmt.Errorf("unknown message type %s", strconv.Quote(msg.Type)))
		}
	}

	cancel()
	wg.Wait()
}

// pump reports the load outcome, then forwards rendered frames until ctx ends
func (h *BackgroundHandler) pump(ctx context.Context, sc *streamConn, session *services.BackgroundSession, frames <-chan background.Frame, withPNG bool) {
	if err := session.Effect.Wait(ctx); err != nil {
		if ctx.Err() == nil {
			sc.sendError(err)
			sc.sendState(session.Effect.State())
		}
		return
	}
	if err := sc.sendState(background.StateReady); err != nil {
		return
	}

	var buf bytes.Buffer
	for {
		select {
		case <-ctx.Done():
			return
		case f := <-frames:
			if err := sc.send(models.BackgroundMessage{Type: "frame", Frame: frameState(f)}); err != nil {
				return
			}
			if !withPNG {
				continue
			}
			buf.Reset()
			if err := session.Effect.Encode(&buf); err != nil {
				if errors.Is(err, background.ErrDisposed) {
					return
				}
				slog.Warn("encoding background frame", "error", err)
				continue
			}
			if err := sc.sendBinary(buf.Bytes()); err != nil {
				return
			}
		}
	}
}

func (h *BackgroundHandler) frameSize(r *http.Request) (int, int) {
	return clamp(parseIntParam(r, "w", h.defaults.DefaultWidth), 1, maxFrameWidth),
		clamp(parseIntParam(r, "h", h.defaults.DefaultHeight), 1, maxFrameHeight)
}

func frameState(f background.Frame) *models.FrameState {
	return &models.FrameState{
		Frame:     f.Number,
		RotationX: f.Rotation.X,
		RotationY: f.Rotation.Y,
		Width:     f.Width,
		Height:    f.Height,
		Aspect:    f.Aspect,
	}
}

// streamConn serializes writes from the reader loop and the frame pump
type streamConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *streamConn) send(msg models.BackgroundMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

func (c *streamConn) sendBinary(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (c *streamConn) sendState(s background.State) error {
	err := c.send(models.BackgroundMessage{Type: "state", State: s.String()})
	if err != nil {
		slog.Warn("background websocket write", "error", err)
	}
	return err
}

func (c *streamConn) sendError(err error) {
	if werr := c.send(models.BackgroundMessage{Type: "error", Error: err.Error()}); werr != nil {
		slog.Warn("background websocket write", "error", werr)
	}
}

// parseIntParam parses an integer query parameter with a default value
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// clamp limits a value to a range
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
