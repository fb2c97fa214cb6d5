package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"flyer/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlyer(id string, createdAt time.Time) models.Flyer {
	return models.Flyer{
		ID: id,
		Template: models.Template{
			ID: "real-estate-1",
			Layout: models.Layout{Elements: []models.TemplateElement{
				{ID: "headline", Content: "Your Dream Home Awaits"},
				{ID: "cta", Content: "Call Today!"},
			}},
		},
		Content:       models.StructuredContent{Headline: "Sunny two bedroom flat", Sections: []models.Section{}},
		OriginalInput: "2 bed flat",
		FlyerType:     "real-estate",
		CreatedAt:     createdAt,
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	s, err := New("")
	require.NoError(t, err)

	saved, err := s.Save(testFlyer("", time.Time{}))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.Flyer.ID)
	assert.False(t, saved.Flyer.CreatedAt.IsZero())
	assert.Empty(t, saved.Edits)

	got, err := s.Get(saved.Flyer.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	_, err = s.Get("missing")
	assert.True(t, errors.Is(err, ErrFlyerNotFound))
}

func TestStore_Edits(t *testing.T) {
	s, err := New("")
	require.NoError(t, err)
	edited := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return edited }

	_, err = s.Save(testFlyer("f1", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	session, err := s.SetText("f1", "headline", "Open House")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"headline": "Open House"}, session.Edits)
	assert.Equal(t, edited, session.UpdatedAt)
	assert.Equal(t, "Sunny two bedroom flat", session.Flyer.Content.Headline)

	session, err = s.SetFontSize("f1", "headline", 44)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"headline": 44}, session.FontSizes)

	_, err = s.SetFontSize("f1", "headline", -1)
	assert.True(t, errors.Is(err, ErrInvalidFontSize))

	_, err = s.SetText("f1", "footer", "x")
	assert.True(t, errors.Is(err, ErrUnknownSlot))

	_, err = s.SetText("nope", "headline", "x")
	assert.True(t, errors.Is(err, ErrFlyerNotFound))

	_, err = s.SetFontSize("nope", "headline", 0)
	assert.True(t, errors.Is(err, ErrFlyerNotFound), "missing flyer wins over a bad size")

	session, err = s.Reset("f1", "headline")
	require.NoError(t, err)
	assert.Empty(t, session.Edits)
	assert.Empty(t, session.FontSizes)
}

func TestStore_ReturnedMapsAreCopies(t *testing.T) {
	s, err := New("")
	require.NoError(t, err)
	_, err = s.Save(testFlyer("f1", time.Now()))
	require.NoError(t, err)

	session, err := s.SetText("f1", "cta", "Book now")
	require.NoError(t, err)
	session.Edits["cta"] = "tampered"

	got, err := s.Get("f1")
	require.NoError(t, err)
	assert.Equal(t, "Book now", got.Edits["cta"])
}

func TestStore_ListAndDelete(t *testing.T) {
	s, err := New("")
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "newest", "middle"} {
		offsets := []time.Duration{0, 2 * time.Hour, time.Hour}
		_, err := s.Save(testFlyer(id, base.Add(offsets[i])))
		require.NoError(t, err)
	}

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, "newest", list[0].Flyer.ID)
	assert.Equal(t, "middle", list[1].Flyer.ID)
	assert.Equal(t, "old", list[2].Flyer.ID)

	require.NoError(t, s.Delete("middle"))
	assert.Len(t, s.List(), 2)
	assert.True(t, errors.Is(s.Delete("middle"), ErrFlyerNotFound))
}

func TestStore_PersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flyers.json")

	s, err := New(path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	_, err = s.Save(testFlyer("f1", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	_, err = s.SetText("f1", "cta", "Book a viewing")
	require.NoError(t, err)

	reopened, err := New(path)
	require.NoError(t, err)
	got, err := reopened.Get("f1")
	require.NoError(t, err)
	assert.Equal(t, "Book a viewing", got.Edits["cta"])
	assert.Equal(t, "real-estate-1", got.Flyer.Template.ID)
	assert.Equal(t, "Sunny two bedroom flat", got.Flyer.Content.Headline)
}

func TestStore_EmptyAndCorruptFiles(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	s, err := New(empty)
	require.NoError(t, err)
	assert.Empty(t, s.List())

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0644))
	_, err = New(corrupt)
	assert.Error(t, err)
}

func TestStore_FailedWriteKeepsPreviousState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flyers.json")
	s, err := New(path)
	require.NoError(t, err)
	_, err = s.Save(testFlyer("f1", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	_, err = s.SetText("f1", "cta", "Book a viewing")
	require.NoError(t, err)

	// A directory in place of the file makes every write fail.
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o755))

	_, err = s.Save(testFlyer("f2", time.Now()))
	assert.Error(t, err)
	_, err = s.Get("f2")
	assert.True(t, errors.Is(err, ErrFlyerNotFound))

	_, err = s.SetText("f1", "cta", "Call today")
	assert.Error(t, err)
	_, err = s.Reset("f1", "cta")
	assert.Error(t, err)
	got, err := s.Get("f1")
	require.NoError(t, err)
	assert.Equal(t, "Book a viewing", got.Edits["cta"])

	assert.Error(t, s.Delete("f1"))
	_, err = s.Get("f1")
	assert.NoError(t, err)
	assert.Len(t, s.List(), 1)
}
