package excerpt

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/colonyops/excerpt/internal/core/transcript"
	"github.com/colonyops/excerpt/internal/store/jsonfile"
)

// AnnotationService applies annotation mutations and persists them. All
// collection operations address elements by value, so they stay correct if
// the collection is re-ordered between renders.
type AnnotationService struct {
	store *jsonfile.AnnotationStore
	log   zerolog.Logger
}

// NewAnnotationService creates a new annotation service.
func NewAnnotationService(store *jsonfile.AnnotationStore, log zerolog.Logger) *AnnotationService {
	return &AnnotationService{
		store: store,
		log:   log.With().Str("component", "annotations").Logger(),
	}
}

// Resolve returns the quote with its persisted annotation state applied,
// seeding the annotation record from the quote's own flags when no record
// exists yet.
func (s *AnnotationService) Resolve(ctx context.Context, q transcript.Quote) (transcript.Quote, error) {
	a, err := s.get(ctx, q)
	if err != nil {
		return q, err
	}
	return jsonfile.Apply(q, a), nil
}

// ToggleStar flips the starred flag for a quote.
func (s *AnnotationService) ToggleStar(ctx context.Context, q transcript.Quote) error {
	return s.mutate(ctx, q, "toggle star", func(a *jsonfile.Annotation) {
		a.Starred = !a.Starred
	})
}

// ToggleHide flips the hidden flag for a quote.
func (s *AnnotationService) ToggleHide(ctx context.Context, q transcript.Quote) error {
	return s.mutate(ctx, q, "toggle hide", func(a *jsonfile.Annotation) {
		a.Hidden = !a.Hidden
	})
}

// CommitEdit sets the edited text override. An empty string clears the
// override back to the original text.
func (s *AnnotationService) CommitEdit(ctx context.Context, q transcript.Quote, text string) error {
	return s.mutate(ctx, q, "commit edit", func(a *jsonfile.Annotation) {
		a.EditedText = text
	})
}

// AddTag appends a tag. Values are accepted as-is, empty included; the core
// does not validate input.
func (s *AnnotationService) AddTag(ctx context.Context, q transcript.Quote, tag string) error {
	return s.mutate(ctx, q, "add tag", func(a *jsonfile.Annotation) {
		a.Tags = append(a.Tags, tag)
	})
}

// RemoveTag removes the first tag matching the value.
func (s *AnnotationService) RemoveTag(ctx context.Context, q transcript.Quote, tag string) error {
	return s.mutate(ctx, q, "remove tag", func(a *jsonfile.Annotation) {
		if i := slices.Index(a.Tags, tag); i >= 0 {
			a.Tags = slices.Delete(a.Tags, i, i+1)
		}
	})
}

// DeleteBadge records a badge as deleted so it can later be restored.
func (s *AnnotationService) DeleteBadge(ctx context.Context, q transcript.Quote, badge transcript.Badge) error {
	return s.mutate(ctx, q, "delete badge", func(a *jsonfile.Annotation) {
		a.DeletedBadges = append(a.DeletedBadges, badge)
	})
}

// RestoreBadge removes a badge from the deleted set, addressed by value.
func (s *AnnotationService) RestoreBadge(ctx context.Context, q transcript.Quote, badge transcript.Badge) error {
	return s.mutate(ctx, q, "restore badge", func(a *jsonfile.Annotation) {
		if i := slices.IndexFunc(a.DeletedBadges, func(b transcript.Badge) bool {
			return b.Value == badge.Value
		}); i >= 0 {
			a.DeletedBadges = slices.Delete(a.DeletedBadges, i, i+1)
		}
	})
}

// AcceptProposed confirms a proposed tag: it leaves the proposed set and
// joins the tags.
func (s *AnnotationService) AcceptProposed(ctx context.Context, q transcript.Quote, tag string) error {
	return s.mutate(ctx, q, "accept proposed", func(a *jsonfile.Annotation) {
		if i := slices.Index(a.ProposedTags, tag); i >= 0 {
			a.ProposedTags = slices.Delete(a.ProposedTags, i, i+1)
		}
		a.Tags = append(a.Tags, tag)
	})
}

// DenyProposed discards a proposed tag.
func (s *AnnotationService) DenyProposed(ctx context.Context, q transcript.Quote, tag string) error {
	return s.mutate(ctx, q, "deny proposed", func(a *jsonfile.Annotation) {
		if i := slices.Index(a.ProposedTags, tag); i >= 0 {
			a.ProposedTags = slices.Delete(a.ProposedTags, i, i+1)
		}
	})
}

// get loads the annotation record for a quote, seeding a missing record from
// the quote's file-supplied state so the first mutation starts from what the
// researcher sees.
func (s *AnnotationService) get(ctx context.Context, q transcript.Quote) (jsonfile.Annotation, error) {
	a, found, err := s.store.Get(ctx, q.DomID)
	if err != nil {
		return jsonfile.Annotation{}, fmt.Errorf("load annotation %s: %w", q.DomID, err)
	}
	if found {
		return a, nil
	}

	return jsonfile.Annotation{
		QuoteID:       q.DomID,
		Starred:       q.IsStarred,
		Hidden:        q.IsHidden,
		EditedText:    q.EditedText,
		Tags:          slices.Clone(q.Tags),
		DeletedBadges: slices.Clone(q.DeletedBadges),
		ProposedTags:  slices.Clone(q.ProposedTags),
	}, nil
}

func (s *AnnotationService) mutate(ctx context.Context, q transcript.Quote, op string, fn func(*jsonfile.Annotation)) error {
	a, err := s.get(ctx, q)
	if err != nil {
		return err
	}

	fn(&a)

	if err := s.store.Put(ctx, a); err != nil {
		return fmt.Errorf("%s %s: %w", op, q.DomID, err)
	}

	s.log.Debug().Str("quote", q.DomID).Str("op", op).Msg("annotation updated")
	return nil
}
