package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"mukesh.dev/internal/config"
	"mukesh.dev/internal/models"
	"mukesh.dev/internal/page"
	"mukesh.dev/internal/services"
	"mukesh.dev/internal/viewport"
)

const (
	maxViewportWidth  = 7680
	maxViewportHeight = 4320
)

// PageHandler serves the rendered portfolio page
type PageHandler struct {
	composer       *page.Composer
	contactService *services.ContactService
	defaults       config.ViewportConfig
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(c *page.Composer, cs *services.ContactService, defaults config.ViewportConfig) *PageHandler {
	return &PageHandler{composer: c, contactService: cs, defaults: defaults}
}

// Index handles GET /. A goto parameter is a menu link followed without
// scripts: it closes the menu and lands on the link's anchor.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	menu := h.composer.Menu(q.Get("menu") == "open")

	if to := q.Get("goto"); to != "" {
		if anchor, ok := menu.SelectLink("#" + to); ok {
			target := "/"
			if menu.IsOpen() {
				target += "?menu=open"
			}
			http.Redirect(w, r, target+"#"+anchor, http.StatusSeeOther)
			return
		}
	}

	st := page.State{
		Viewport: h.viewportParam(r),
		MenuOpen: menu.IsOpen(),
		Contact:  page.ContactStatus{Sent: q.Get("sent") == "1"},
	}
	h.render(w, http.StatusOK, st)
}

// SubmitContact handles POST /contact from the page form
func (h *PageHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := models.ContactForm{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Message: r.PostForm.Get("message"),
	}

	_, err := h.contactService.Submit(r.Context(), form, r.RemoteAddr)
	if err == nil {
		http.Redirect(w, r, "/?sent=1#contact", http.StatusSeeOther)
		return
	}

	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		slog.Error("storing contact message", "error", err)
		http.Error(w, "could not send message", httpStatus(err))
		return
	}

	h.render(w, http.StatusUnprocessableEntity, page.State{
		Viewport: h.viewportParam(r),
		Contact:  page.ContactStatus{Form: form, Errors: verr.Fields},
	})
}

func (h *PageHandler) render(w http.ResponseWriter, status int, st page.State) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.composer.Render(w, st); err != nil {
		slog.Error("rendering page", "error", err)
	}
}

// viewportParam reads the viewport from the w and h query parameters
func (h *PageHandler) viewportParam(r *http.Request) viewport.Viewport {
	return viewport.Viewport{
		Width:  clamp(parseIntParam(r, "w", h.defaults.DefaultWidth), 1, maxViewportWidth),
		Height: clamp(parseIntParam(r, "h", h.defaults.DefaultHeight), 1, maxViewportHeight),
	}
}
