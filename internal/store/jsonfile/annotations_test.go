package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/excerpt/internal/core/transcript"
)

func newTestStore(t *testing.T) *AnnotationStore {
	t.Helper()
	return NewAnnotationStore(filepath.Join(t.TempDir(), "annotations.json"))
}

func TestAnnotationStore_GetMissingReturnsZero(t *testing.T) {
	s := newTestStore(t)

	a, found, err := s.Get(context.Background(), "q-1")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "q-1", a.QuoteID)
	assert.False(t, a.Starred)
	assert.Nil(t, a.Tags)
}

func TestAnnotationStore_PutRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := Annotation{
		QuoteID:    "q-1",
		Starred:    true,
		EditedText: "edited",
		Tags:       []string{"friction"},
	}
	require.NoError(t, s.Put(ctx, in))

	out, found, err := s.Get(ctx, "q-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestAnnotationStore_PutReplacesExisting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Annotation{QuoteID: "q-1", Starred: true}))
	require.NoError(t, s.Put(ctx, Annotation{QuoteID: "q-1", Hidden: true}))

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "put replaces rather than appends")
	assert.False(t, all[0].Starred)
	assert.True(t, all[0].Hidden)
}

func TestAnnotationStore_Clear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Annotation{QuoteID: "q-1"}))
	require.NoError(t, s.Clear(ctx))

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAnnotationStore_SaveIsAtomic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Annotation{QuoteID: "q-1"}))

	// No temp file left behind after save.
	_, err := os.Stat(s.path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestApply(t *testing.T) {
	q := transcript.Quote{
		DomID: "q-1",
		Text:  "original",
		Tags:  []string{"from-file"},
	}

	t.Run("record is source of truth", func(t *testing.T) {
		got := Apply(q, Annotation{QuoteID: "q-1", Tags: []string{"kept"}})
		assert.Equal(t, []string{"kept"}, got.Tags)
		assert.False(t, got.IsStarred)
	})

	t.Run("annotation overlays state", func(t *testing.T) {
		a := Annotation{
			QuoteID:       "q-1",
			Starred:       true,
			Hidden:        true,
			EditedText:    "edited",
			Tags:          []string{"a", "b"},
			DeletedBadges: []transcript.Badge{{Value: "badge"}},
			ProposedTags:  []string{"p"},
		}
		got := Apply(q, a)
		assert.True(t, got.IsStarred)
		assert.True(t, got.IsHidden)
		assert.Equal(t, "edited", got.EditedText)
		assert.Equal(t, "edited", got.DisplayText())
		assert.Equal(t, []string{"a", "b"}, got.Tags)
		require.Len(t, got.DeletedBadges, 1)
		assert.Equal(t, []string{"p"}, got.ProposedTags)
	})
}
