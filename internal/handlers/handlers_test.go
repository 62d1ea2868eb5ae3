package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mukesh.dev/internal/background"
	"mukesh.dev/internal/config"
	"mukesh.dev/internal/contact"
	"mukesh.dev/internal/content"
	"mukesh.dev/internal/models"
	"mukesh.dev/internal/page"
	"mukesh.dev/internal/services"
)

type testServer struct {
	*httptest.Server
	contact    *services.ContactService
	background *services.BackgroundService
}

func setupTest(t *testing.T, mutate ...func(*config.Config)) *testServer {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Background.ParticleCount = 200
	cfg.Background.Seed = 1
	cfg.Background.StreamInterval = 1
	cfg.Background.FrameRate = 120
	cfg.Viewport.DefaultWidth = 64
	cfg.Viewport.DefaultHeight = 48
	cfg.Contact.Driver = contact.DriverMemory
	cfg.Contact.RateLimit = 1
	cfg.Contact.RateBurst = 100
	for _, m := range mutate {
		m(cfg)
	}

	contentService := services.NewContentService(content.Default())
	composer, err := page.NewComposer(contentService.Portfolio(), cfg.Viewport.Breakpoint)
	require.NoError(t, err)

	contactService := services.NewContactService(contact.NewMemoryStore())
	backgroundService := services.NewBackgroundService(cfg.BackgroundSettings(), background.RasterLoader{}, nil)

	router := SetupRoutes(cfg, Dependencies{
		Content:    contentService,
		Contact:    contactService,
		Background: backgroundService,
		Composer:   composer,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		router.Close()
	})

	return &testServer{Server: srv, contact: contactService, background: backgroundService}
}

func noRedirect() *http.Client {
	return &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
}

func getDoc(t *testing.T, url string) *goquery.Document {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc
}

func TestIndex_Desktop(t *testing.T) {
	ts := setupTest(t)
	doc := getDoc(t, ts.URL+"/?w=1280&h=800&menu=open")
	assert.Equal(t, 0, doc.Find("#mobile-menu").Length())
	assert.Equal(t, 3, doc.Find("article.project").Length())
	assert.Equal(t, 2, doc.Find("article.internship").Length())
}

func TestIndex_PhoneMenuToggle(t *testing.T) {
	ts := setupTest(t)

	doc := getDoc(t, ts.URL+"/?w=375&h=667")
	assert.Equal(t, 0, doc.Find("#mobile-menu").Length())

	toggle := doc.Find("[data-menu-toggle]").AttrOr("href", "")
	require.Equal(t, "?menu=open", toggle)

	doc = getDoc(t, ts.URL+"/"+toggle+"&w=375&h=667")
	assert.Equal(t, 6, doc.Find("#mobile-menu a").Length())

	toggle = doc.Find("[data-menu-toggle]").AttrOr("href", "")
	doc = getDoc(t, ts.URL+"/"+toggle+"&w=375&h=667")
	assert.Equal(t, 0, doc.Find("#mobile-menu").Length())
}

func TestIndex_MenuLinkClosesMenu(t *testing.T) {
	ts := setupTest(t)

	doc := getDoc(t, ts.URL+"/?menu=open&w=375&h=667")
	link := doc.Find(`#mobile-menu a[data-anchor="projects"]`).AttrOr("href", "")
	require.Equal(t, "/?goto=projects", link)

	resp, err := noRedirect().Get(ts.URL + link + "&menu=open")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/#projects", resp.Header.Get("Location"))

	// Unknown anchors render the page unchanged
	doc = getDoc(t, ts.URL+"/?goto=nowhere&menu=open&w=375&h=667")
	assert.Equal(t, 1, doc.Find("#mobile-menu").Length())
}

func TestIndex_DefaultsToConfiguredViewport(t *testing.T) {
	// 64px default width is below the breakpoint
	ts := setupTest(t)
	doc := getDoc(t, ts.URL+"/?menu=open&w=garbage")
	assert.Equal(t, 1, doc.Find("#mobile-menu").Length())
}

func TestSubmitContact_Form(t *testing.T) {
	ts := setupTest(t)
	client := noRedirect()

	resp, err := client.PostForm(ts.URL+"/contact", url.Values{
		"name":    {"Ada Lovelace"},
		"email":   {"ada@example.com"},
		"message": {"I would like to hire you for a project."},
	})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/?sent=1#contact", resp.Header.Get("Location"))

	msgs, err := ts.contact.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Ada Lovelace", msgs[0].Name)
	assert.Equal(t, "127.0.0.1", strings.Split(msgs[0].RemoteAddr, ":")[0])

	doc := getDoc(t, ts.URL+"/?sent=1")
	assert.Equal(t, 1, doc.Find(".form-status.success").Length())
}

func TestSubmitContact_FormInvalid(t *testing.T) {
	ts := setupTest(t)

	resp, err := noRedirect().PostForm(ts.URL+"/contact", url.Values{
		"name":    {"Ada"},
		"email":   {"nope"},
		"message": {"hi"},
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find(`.field-error[data-field="email"]`).Length())
	assert.Equal(t, 1, doc.Find(`.field-error[data-field="message"]`).Length())
	assert.Equal(t, "nope", doc.Find("#contact-email").AttrOr("value", ""))

	msgs, err := ts.contact.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestSubmitContact_RateLimited(t *testing.T) {
	ts := setupTest(t, func(c *config.Config) {
		c.Contact.RateLimit = 0.01
		c.Contact.RateBurst = 1
	})
	form := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hello, is this thing on?"}}

	resp, err := noRedirect().PostForm(ts.URL+"/contact", form)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, err = noRedirect().PostForm(ts.URL+"/contact", form)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestAPI_Contact(t *testing.T) {
	ts := setupTest(t)

	body := `{"name":"Grace","email":"grace@example.com","message":"Let's build something together."}`
	resp, err := http.Post(ts.URL+"/api/contact", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var msg models.ContactMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "Grace", msg.Name)

	resp2, err := http.Post(ts.URL+"/api/contact", "application/json", strings.NewReader(`{"name":"G"}`))
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp2.StatusCode)

	var verr struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&verr))
	assert.Equal(t, "must be at least 2 characters", verr.Fields["name"])
	assert.Equal(t, "is required", verr.Fields["email"])
	assert.Equal(t, "is required", verr.Fields["message"])

	resp3, err := http.Post(ts.URL+"/api/contact", "application/json", strings.NewReader(`{`))
	require.NoError(t, err)
	resp3.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp3.StatusCode)
}

func TestAPI_Projects(t *testing.T) {
	ts := setupTest(t)

	resp, err := http.Get(ts.URL + "/api/projects")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var projects []models.Project
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&projects))
	assert.Equal(t, content.Default().Projects, projects)

	resp, err = http.Get(ts.URL + "/api/projects/predictify")
	require.NoError(t, err)
	defer resp.Body.Close()
	var p models.Project
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	assert.Equal(t, "predictify", p.ID)

	resp, err = http.Get(ts.URL + "/api/projects/unknown")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "project not found: unknown", body["error"])

	resp, err = http.Get(ts.URL + "/api/projects?tech=bootstrap")
	require.NoError(t, err)
	defer resp.Body.Close()
	var filtered []models.Project
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&filtered))
	require.Len(t, filtered, 2)
	assert.Equal(t, "hunger-spot", filtered[0].ID)

	resp, err = http.Get(ts.URL + "/api/projects?tech=cobol")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&filtered))
	assert.Empty(t, filtered)
}

func TestAPI_Content(t *testing.T) {
	ts := setupTest(t)
	want := content.Default()

	var internships []models.Internship
	decodeGet(t, ts.URL+"/api/internships", &internships)
	assert.Equal(t, want.Internships, internships)

	var skills []models.SkillCategory
	decodeGet(t, ts.URL+"/api/skills", &skills)
	assert.Equal(t, want.Skills, skills)

	var nav []models.NavItem
	decodeGet(t, ts.URL+"/api/nav", &nav)
	assert.Equal(t, want.Nav, nav)

	var profile models.Profile
	decodeGet(t, ts.URL+"/api/profile", &profile)
	assert.Equal(t, want.Profile, profile)

	var health map[string]any
	decodeGet(t, ts.URL+"/api/health", &health)
	assert.Equal(t, "ok", health["status"])
}

func decodeGet(t *testing.T, url string, v any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestStatic(t *testing.T) {
	ts := setupTest(t)
	resp, err := http.Get(ts.URL + "/static/app.js")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBackgroundStill(t *testing.T) {
	ts := setupTest(t)

	resp, err := http.Get(ts.URL + "/background.png?w=120&h=90&frame=30")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())
}

func TestBackgroundStill_ClampsSize(t *testing.T) {
	ts := setupTest(t)

	resp, err := http.Get(ts.URL + "/background.png?w=-5&h=0")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 1, img.Bounds().Dx())
	assert.Equal(t, 1, img.Bounds().Dy())
}

func dialBackground(t *testing.T, ts *testServer, query string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/background" + query
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads messages until one of type typ arrives
func readUntil(t *testing.T, conn *websocket.Conn, typ string, match func(models.BackgroundMessage) bool) models.BackgroundMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	for {
		mt, data, err := conn.ReadMessage()
		require.NoError(t, err)
		if mt != websocket.TextMessage {
			continue
		}
		var msg models.BackgroundMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		if msg.Type == typ && (match == nil || match(msg)) {
			return msg
		}
	}
}

func TestBackgroundStream_FramesAndResize(t *testing.T) {
	ts := setupTest(t)
	conn := dialBackground(t, ts, "?w=64&h=48")

	ready := readUntil(t, conn, "state", func(m models.BackgroundMessage) bool { return m.State == "ready" })
	assert.Equal(t, "ready", ready.State)

	frame := readUntil(t, conn, "frame", nil)
	require.NotNil(t, frame.Frame)
	assert.Equal(t, 64, frame.Frame.Width)
	assert.Equal(t, 48, frame.Frame.Height)
	assert.Greater(t, frame.Frame.RotationX, 0.0)

	require.NoError(t, conn.WriteJSON(models.BackgroundMessage{Type: "resize", Width: 100, Height: 50}))
	resized := readUntil(t, conn, "frame", func(m models.BackgroundMessage) bool {
		return m.Frame != nil && m.Frame.Width == 100
	})
	assert.Equal(t, 50, resized.Frame.Height)
	assert.Equal(t, 2.0, resized.Frame.Aspect)

	assert.Equal(t, 1, ts.background.Active())
}

func TestBackgroundStream_UnknownMessage(t *testing.T) {
	ts := setupTest(t)
	conn := dialBackground(t, ts, "")

	require.NoError(t, conn.WriteJSON(models.BackgroundMessage{Type: "dance"}))
	msg := readUntil(t, conn, "error", nil)
	assert.Contains(t, msg.Error, "dance")
}

func TestBackgroundStream_PNG(t *testing.T) {
	ts := setupTest(t)
	conn := dialBackground(t, ts, "?w=32&h=24&stream=png")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	for {
		mt, data, err := conn.ReadMessage()
		require.NoError(t, err)
		if mt != websocket.BinaryMessage {
			continue
		}
		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 32, img.Bounds().Dx())
		return
	}
}

func TestBackgroundStream_DisconnectDisposes(t *testing.T) {
	ts := setupTest(t)
	conn := dialBackground(t, ts, "?w=64&h=48")
	readUntil(t, conn, "state", func(m models.BackgroundMessage) bool { return m.State == "ready" })
	require.Equal(t, 1, ts.background.Active())

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	assert.Eventually(t, func() bool { return ts.background.Active() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestBackgroundStream_SessionCap(t *testing.T) {
	ts := setupTest(t, func(c *config.Config) { c.Background.MaxStreams = 1 })
	first := dialBackground(t, ts, "?w=64&h=48")
	readUntil(t, first, "state", func(m models.BackgroundMessage) bool { return m.State == "ready" })

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/background"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, 1, ts.background.Active())

	first.Close()
	require.Eventually(t, func() bool { return ts.background.Active() == 0 }, 5*time.Second, 10*time.Millisecond)
	dialBackground(t, ts, "?w=64&h=48")
}

func TestBackgroundStream_RejectsForeignOrigin(t *testing.T) {
	ts := setupTest(t, func(c *config.Config) { c.CORS.AllowedOrigins = []string{"https://mukesh.dev"} })
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/background"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {"https://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Eventually(t, func() bool { return ts.background.Active() == 0 }, 5*time.Second, 10*time.Millisecond)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {"https://mukesh.dev"}})
	require.NoError(t, err)
	conn.Close()
}

func TestBackgroundStill_RateLimited(t *testing.T) {
	ts := setupTest(t, func(c *config.Config) {
		c.Background.StillRateLimit = 0.01
		c.Background.StillRateBurst = 2
	})

	for i := range 2 {
		resp, err := http.Get(ts.URL + "/background.png?w=8&h=8")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, "request %d", i+1)
	}
	resp, err := http.Get(ts.URL + "/background.png?w=8&h=8")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestCheckOrigin(t *testing.T) {
	check := checkOrigin([]string{"https://mukesh.dev/"})

	req := httptest.NewRequest(http.MethodGet, "http://localhost:8080/ws/background", nil)
	assert.True(t, check(req), "no origin header")

	req.Header.Set("Origin", "http://localhost:8080")
	assert.True(t, check(req), "same host")

	req.Header.Set("Origin", "https://MUKESH.dev")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://other.dev")
	assert.False(t, check(req))

	assert.True(t, checkOrigin([]string{"*"})(req))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, httpStatus(services.ErrProjectNotFound))
	assert.Equal(t, http.StatusUnprocessableEntity, httpStatus(&services.ValidationError{}))
	assert.Equal(t, http.StatusServiceUnavailable, httpStatus(&background.LoadError{Err: assert.AnError}))
	assert.Equal(t, http.StatusServiceUnavailable, httpStatus(background.ErrDisposed))
	assert.Equal(t, http.StatusServiceUnavailable, httpStatus(services.ErrTooManySessions))
	assert.Equal(t, http.StatusInternalServerError, httpStatus(assert.AnError))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, clamp(-3, 1, 10))
	assert.Equal(t, 10, clamp(30, 1, 10))
	assert.Equal(t, 5, clamp(5, 1, 10))
}
