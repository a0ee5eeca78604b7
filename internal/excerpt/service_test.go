package excerpt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/excerpt/internal/core/transcript"
	"github.com/colonyops/excerpt/internal/store/jsonfile"
)

func newTestService(t *testing.T) *AnnotationService {
	t.Helper()
	store := jsonfile.NewAnnotationStore(filepath.Join(t.TempDir(), "annotations.json"))
	return NewAnnotationService(store, zerolog.Nop())
}

func testQuote() transcript.Quote {
	return transcript.Quote{
		DomID:        "q-1",
		Text:         "original text",
		Tags:         []string{"seed"},
		ProposedTags: []string{"maybe"},
		SegmentIndex: 1,
	}
}

func TestToggleStar_PersistsAcrossResolve(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	q := testQuote()

	require.NoError(t, svc.ToggleStar(ctx, q))

	got, err := svc.Resolve(ctx, q)
	require.NoError(t, err)
	assert.True(t, got.IsStarred)

	require.NoError(t, svc.ToggleStar(ctx, q))
	got, err = svc.Resolve(ctx, q)
	require.NoError(t, err)
	assert.False(t, got.IsStarred)
}

func TestToggleStar_SeedsFromFileState(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	q := testQuote()
	q.IsStarred = true

	// First toggle starts from the file-supplied star and unsets it.
	require.NoError(t, svc.ToggleStar(ctx, q))
	got, err := svc.Resolve(ctx, q)
	require.NoError(t, err)
	assert.False(t, got.IsStarred)
}

func TestCommitEdit(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	q := testQuote()

	require.NoError(t, svc.CommitEdit(ctx, q, "new words"))
	got, err := svc.Resolve(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "new words", got.DisplayText())

	// Empty edit clears the override.
	require.NoError(t, svc.CommitEdit(ctx, q, ""))
	got, err = svc.Resolve(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "original text", got.DisplayText())
}

func TestTagAddRemove_ByValue(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	q := testQuote()

	require.NoError(t, svc.AddTag(ctx, q, "friction"))
	require.NoError(t, svc.AddTag(ctx, q, "pricing"))

	got, err := svc.Resolve(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"seed", "friction", "pricing"}, got.Tags)

	require.NoError(t, svc.RemoveTag(ctx, q, "friction"))
	got, err = svc.Resolve(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, []string{"seed", "pricing"}, got.Tags)

	// Removing an absent value is a no-op, not an error.
	require.NoError(t, svc.RemoveTag(ctx, q, "nope"))
}

func TestAddTag_EmptyValueAcceptedAsIs(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	q := testQuote()

	require.NoError(t, svc.AddTag(ctx, q, ""))
	got, err := svc.Resolve(ctx, q)
	require.NoError(t, err)
	assert.Contains(t, got.Tags, "")
}

func TestBadgeDeleteRestore_ByValue(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	q := testQuote()
	badge := transcript.Badge{Value: "key-moment", Label: "Key moment"}

	require.NoError(t, svc.DeleteBadge(ctx, q, badge))
	got, err := svc.Resolve(ctx, q)
	require.NoError(t, err)
	require.Len(t, got.DeletedBadges, 1)

	// Restore addresses by value, even with a different Label.
	require.NoError(t, svc.RestoreBadge(ctx, q, transcript.Badge{Value: "key-moment"}))
	got, err = svc.Resolve(ctx, q)
	require.NoError(t, err)
	assert.Empty(t, got.DeletedBadges)
}

func TestProposedAcceptDeny(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	q := testQuote()

	t.Run("accept moves to tags", func(t *testing.T) {
		require.NoError(t, svc.AcceptProposed(ctx, q, "maybe"))
		got, err := svc.Resolve(ctx, q)
		require.NoError(t, err)
		assert.NotContains(t, got.ProposedTags, "maybe")
		assert.Contains(t, got.Tags, "maybe")
	})

	t.Run("deny discards", func(t *testing.T) {
		q2 := testQuote()
		q2.DomID = "q-2"
		require.NoError(t, svc.DenyProposed(ctx, q2, "maybe"))
		got, err := svc.Resolve(ctx, q2)
		require.NoError(t, err)
		assert.Empty(t, got.ProposedTags)
		assert.NotContains(t, got.Tags, "maybe")
	})
}

func TestToggleHide(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	q := testQuote()

	require.NoError(t, svc.ToggleHide(ctx, q))
	got, err := svc.Resolve(ctx, q)
	require.NoError(t, err)
	assert.True(t, got.IsHidden)
}
