package services

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mukesh.dev/internal/background"
	"mukesh.dev/internal/contact"
	"mukesh.dev/internal/content"
	"mukesh.dev/internal/models"
)

func TestProjectService_GetByID(t *testing.T) {
	ps := NewContentService(content.Default()).Projects()
	require.Len(t, ps.GetAll(), 3)

	p, err := ps.GetByID("hunger-spot")
	require.NoError(t, err)
	assert.Equal(t, "Hunger Spot - Restaurant Website", p.Title)

	_, err = ps.GetByID("missing")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectService_ByTechnology(t *testing.T) {
	ps := NewContentService(content.Default()).Projects()

	ids := func(projects []models.Project) []string {
		out := make([]string, 0, len(projects))
		for _, p := range projects {
			out = append(out, p.ID)
		}
		return out
	}
	assert.Equal(t, []string{"predictify", "hunger-spot", "portfolio-v2"}, ids(ps.ByTechnology("javascript")))
	assert.Equal(t, []string{"hunger-spot", "portfolio-v2"}, ids(ps.ByTechnology("Bootstrap")))
	assert.Equal(t, []string{"predictify"}, ids(ps.ByTechnology("PYTHON")))
	assert.NotNil(t, ps.ByTechnology("cobol"))
	assert.Empty(t, ps.ByTechnology("cobol"))
}

func TestContentService_ReturnsCopies(t *testing.T) {
	cs := NewContentService(content.Default())

	nav := cs.Nav()
	nav[0].Label = "mutated"
	skills := cs.Skills()
	skills[0].Skills[0] = "mutated"

	assert.Equal(t, "Home", cs.Nav()[0].Label)
	assert.Equal(t, "HTML", cs.Skills()[0].Skills[0])
	assert.Equal(t, "SAI MUKESH", cs.Profile().Name)
	assert.Len(t, cs.Internships(), 2)
}

func TestContactService_RejectsInvalidInput(t *testing.T) {
	store := contact.NewMemoryStore()
	svc := NewContactService(store)

	_, err := svc.Submit(context.Background(), models.ContactForm{
		Name:    " ",
		Email:   "not-an-email",
		Message: "short",
	}, "192.0.2.1:1234")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "is required", verr.Fields["name"])
	assert.Equal(t, "must be a valid email address", verr.Fields["email"])
	assert.Equal(t, "must be at least 10 characters", verr.Fields["message"])
	assert.Contains(t, err.Error(), "email: must be a valid email address")

	msgs, err := svc.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestContactService_TooLong(t *testing.T) {
	svc := NewContactService(contact.NewMemoryStore())
	_, err := svc.Submit(context.Background(), models.ContactForm{
		Name:    strings.Repeat("a", 101),
		Email:   "ada@example.com",
		Message: "A perfectly reasonable message.",
	}, "")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"name": "must be at most 100 characters"}, verr.Fields)
}

func TestContactService_StoresAndLists(t *testing.T) {
	store, err := contact.OpenSQLiteMemory()
	require.NoError(t, err)
	defer store.Close()

	svc := NewContactService(store)
	clock := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	ctx := context.Background()
	first, err := svc.Submit(ctx, models.ContactForm{
		Name:    "  Ada Lovelace ",
		Email:   "ada@example.com",
		Message: "I would like to talk about a project.",
	}, "192.0.2.1")
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "Ada Lovelace", first.Name)

	_, err = svc.Submit(ctx, models.ContactForm{
		Name:    "Grace",
		Email:   "grace@example.com",
		Message: "Second message, a bit later.",
	}, "192.0.2.2")
	require.NoError(t, err)

	msgs, err := svc.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Grace", msgs[0].Name)
	assert.Equal(t, first.ID, msgs[1].ID)
}

type failingStore struct{ contact.MemoryStore }

func (*failingStore) Save(context.Context, models.ContactMessage) error {
	return errors.New("disk full")
}

func TestContactService_StoreFailure(t *testing.T) {
	svc := NewContactService(&failingStore{})
	_, err := svc.Submit(context.Background(), models.ContactForm{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "Hello there, this is long enough.",
	}, "")
	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
}

func smallSettings() background.Settings {
	s := background.DefaultSettings()
	s.ParticleCount = 300
	s.Seed = 1
	return s
}

func TestBackgroundService_RenderStill(t *testing.T) {
	svc := NewBackgroundService(smallSettings(), background.RasterLoader{}, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.RenderStill(context.Background(), 80, 60, 100, &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dx())
	assert.Equal(t, 60, img.Bounds().Dy())
	assert.Equal(t, 0, svc.Active())
}

func TestBackgroundService_RenderStillInvalidSize(t *testing.T) {
	svc := NewBackgroundService(smallSettings(), background.RasterLoader{}, nil)
	assert.Error(t, svc.RenderStill(context.Background(), 0, 60, 0, &bytes.Buffer{}))
}

func TestBackgroundService_RenderStillLoadFailure(t *testing.T) {
	boom := errors.New("no surface")
	svc := NewBackgroundService(smallSettings(), background.LoaderFunc(
		func(context.Context, int, int) (background.Renderer, error) { return nil, boom },
	), nil)

	err := svc.RenderStill(context.Background(), 10, 10, 0, &bytes.Buffer{})
	var lerr *background.LoadError
	assert.ErrorAs(t, err, &lerr)
	assert.ErrorIs(t, err, boom)
}

func TestBackgroundService_SessionLifecycle(t *testing.T) {
	svc := NewBackgroundService(smallSettings(), background.RasterLoader{}, nil)
	ctx := context.Background()

	session, err := svc.NewSession(ctx, 64, 48, background.WithoutLoop())
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Active())

	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, session.Effect.Wait(waitCtx))
	assert.Equal(t, 1, session.Window.ListenerCount())

	require.NoError(t, session.Window.Resize(128, 32))
	w, h, ok := session.Effect.RendererSize()
	require.True(t, ok)
	assert.Equal(t, 128, w)
	assert.Equal(t, 32, h)

	require.NoError(t, session.Close())
	require.NoError(t, session.Close())
	assert.Equal(t, 0, svc.Active())
	assert.Equal(t, 0, session.Window.ListenerCount())
	assert.Equal(t, background.StateDisposed, session.Effect.State())
}

func TestBackgroundService_SessionCap(t *testing.T) {
	svc := NewBackgroundService(smallSettings(), background.RasterLoader{}, nil)
	svc.SetMaxSessions(2)
	ctx := context.Background()

	first, err := svc.NewSession(ctx, 32, 32, background.WithoutLoop())
	require.NoError(t, err)
	second, err := svc.NewSession(ctx, 32, 32, background.WithoutLoop())
	require.NoError(t, err)

	_, err = svc.NewSession(ctx, 32, 32, background.WithoutLoop())
	assert.ErrorIs(t, err, ErrTooManySessions)
	assert.Equal(t, 2, svc.Active())

	require.NoError(t, first.Close())
	third, err := svc.NewSession(ctx, 32, 32, background.WithoutLoop())
	require.NoError(t, err, "a closed session frees its slot")

	require.NoError(t, second.Close())
	require.NoError(t, third.Close())
	assert.Equal(t, 0, svc.Active())
}
