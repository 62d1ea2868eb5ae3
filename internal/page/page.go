// Package page composes the single-page portfolio: it renders every section
// in order from the loaded content.
package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strconv"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"mukesh.dev/internal/models"
	"mukesh.dev/internal/nav"
	"mukesh.dev/internal/reveal"
	"mukesh.dev/internal/viewport"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Sections lists the section anchors in page order
var Sections = []string{"home", "about", "skills", "projects", "internships", "contact"}

// Static returns the embedded script and stylesheet
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("page: static assets missing: " + err.Error())
	}
	return sub
}

// ContactStatus is the outcome of the last contact form submission
type ContactStatus struct {
	Sent   bool
	Form   models.ContactForm
	Errors map[string]string
}

// Snapshot describes a page written to disk: assets are linked relatively
// and the background cycles pre-rendered frames instead of streaming
type Snapshot struct {
	FrameDir string // relative to the page
	Frames   int
	Stride   int
}

// FrameName returns the file name of the i-th snapshot frame
func (s Snapshot) FrameName(i int) string {
	return fmt.Sprintf("frame_%05d.png", i*s.Stride)
}

// State is everything about a single render that is not content
type State struct {
	Viewport viewport.Viewport
	MenuOpen bool
	Contact  ContactStatus
	Snapshot *Snapshot // nil when served live
}

// Composer renders the page
type Composer struct {
	portfolio  *models.Portfolio
	breakpoint int
	tmpl       *template.Template
	about      template.HTML
}

// NewComposer parses the templates and pre-renders Markdown copy
func NewComposer(portfolio *models.Portfolio, breakpoint int) (*Composer, error) {
	if breakpoint <= 0 {
		breakpoint = viewport.DefaultBreakpoint
	}

	tmpl, err := template.New("page").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page templates: %w", err)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Typographer))
	var about bytes.Buffer
	if err := md.Convert([]byte(portfolio.Profile.About), &about); err != nil {
		return nil, fmt.Errorf("rendering about copy: %w", err)
	}

	return &Composer{
		portfolio:  portfolio,
		breakpoint: breakpoint,
		tmpl:       tmpl,
		about:      template.HTML(about.String()),
	}, nil
}

// Breakpoint returns the mobile breakpoint in CSS pixels
func (c *Composer) Breakpoint() int {
	return c.breakpoint
}

// Menu returns the navigation menu in the given state
func (c *Composer) Menu(open bool) *nav.Menu {
	menu := nav.NewMenu(c.portfolio.Nav)
	if open {
		menu.Open()
	}
	return menu
}

// navHeight is the fixed navigation bar height in CSS pixels
const navHeight = 64

// InitialReveal returns the blocks visible on the first screen of vp, which
// play their entrance on load instead of on scroll. The bar is fixed at the
// top and every section is at least one screen tall, stacked in page order.
func InitialReveal(vp viewport.Viewport) map[string]bool {
	obs := reveal.NewObserver(reveal.DefaultThreshold)
	obs.Observe(reveal.Element{ID: "nav", Height: navHeight})
	for i, id := range Sections {
		obs.Observe(reveal.Element{ID: id, Top: i * vp.Height, Height: vp.Height})
	}
	obs.Update(0, vp.Height)

	revealed := make(map[string]bool, len(Sections)+1)
	for _, id := range append([]string{"nav"}, Sections...) {
		if obs.Revealed(id) {
			revealed[id] = true
		}
	}
	return revealed
}

// viewData is the template root
type viewData struct {
	*models.Portfolio
	About      template.HTML
	MenuOpen   bool
	MobileMenu bool
	ToggleHref string
	Breakpoint int
	Viewport   viewport.Viewport
	Contact    ContactStatus
	Revealed   map[string]bool
	Snapshot   *Snapshot
	Asset      string // prefix for static asset links
}

// Render writes the full page for st
func (c *Composer) Render(w io.Writer, st State) error {
	menu := c.Menu(st.MenuOpen)
	asset := "/static/"
	if st.Snapshot != nil {
		asset = "static/"
	}

	data := viewData{
		Portfolio:  c.portfolio,
		About:      c.about,
		MenuOpen:   menu.IsOpen(),
		MobileMenu: menu.MobileLinksVisible(st.Viewport, c.breakpoint),
		ToggleHref: menu.ToggleHref(),
		Breakpoint: c.breakpoint,
		Viewport:   st.Viewport,
		Contact:    st.Contact,
		Revealed:   InitialReveal(st.Viewport),
		Snapshot:   st.Snapshot,
		Asset:      asset,
	}

	// Render to a buffer so a template error never leaves a half-written page
	var buf bytes.Buffer
	if err := c.tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

var funcs = template.FuncMap{
	"reveal":     revealAttrs,
	"stagger":    reveal.Stagger,
	"fadeUp":     func() reveal.Transition { return reveal.FadeUp },
	"fadeUpAlt":  func() reveal.Transition { return reveal.FadeUpAlt },
	"fromLeft":   func() reveal.Transition { return reveal.FromLeft },
	"fromRight":  func() reveal.Transition { return reveal.FromRight },
	"hero":       func(i int) reveal.Transition { return reveal.Hero[i] },
	"selectHref": nav.SelectHref,
}

// revealAttrs renders a transition as data attributes read by the page script
func revealAttrs(t reveal.Transition) template.HTMLAttr {
	return template.HTMLAttr(fmt.Sprintf(
		`data-reveal data-reveal-duration="%s" data-reveal-delay="%s" data-reveal-x="%d" data-reveal-y="%d"`,
		seconds(t.Duration.Seconds()), seconds(t.Delay.Seconds()), t.OffsetX, t.OffsetY,
	))
}

func seconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
