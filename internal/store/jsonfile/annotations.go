// Package jsonfile provides JSON-file-backed persistence for annotation state.
package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/colonyops/excerpt/internal/core/transcript"
)

// Annotation is the per-quote annotation state layered over the immutable
// quote record. Records are keyed by the quote's DomID.
type Annotation struct {
	QuoteID       string             `json:"quote_id"`
	Starred       bool               `json:"starred"`
	Hidden        bool               `json:"hidden"`
	EditedText    string             `json:"edited_text,omitempty"`
	Tags          []string           `json:"tags,omitempty"`
	DeletedBadges []transcript.Badge `json:"deleted_badges,omitempty"`
	ProposedTags  []string           `json:"proposed_tags,omitempty"`
}

// annotationsFile is the root JSON structure stored on disk.
type annotationsFile struct {
	Annotations []Annotation `json:"annotations"`
}

// AnnotationStore persists annotation state in a single JSON file.
type AnnotationStore struct {
	path string
	mu   sync.RWMutex
}

// NewAnnotationStore creates a store at the given path. The file is created
// lazily on first save.
func NewAnnotationStore(path string) *AnnotationStore {
	return &AnnotationStore{path: path}
}

// List returns all annotation records in file order.
func (s *AnnotationStore) List(ctx context.Context) ([]Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}
	return file.Annotations, nil
}

// Get returns the annotation for a quote ID. When no record exists yet the
// zero Annotation (with the ID filled in) is returned with found=false.
func (s *AnnotationStore) Get(ctx context.Context, quoteID string) (a Annotation, found bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return Annotation{}, false, err
	}

	for _, a := range file.Annotations {
		if a.QuoteID == quoteID {
			return a, true, nil
		}
	}
	return Annotation{QuoteID: quoteID}, false, nil
}

// Put inserts or replaces the annotation for its quote ID.
func (s *AnnotationStore) Put(ctx context.Context, a Annotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	replaced := false
	for i := range file.Annotations {
		if file.Annotations[i].QuoteID == a.QuoteID {
			file.Annotations[i] = a
			replaced = true
			break
		}
	}
	if !replaced {
		file.Annotations = append(file.Annotations, a)
	}

	return s.save(file)
}

// Clear removes all annotation records.
func (s *AnnotationStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(annotationsFile{Annotations: []Annotation{}})
}

// load reads the annotations file from disk.
// Returns an empty file if it doesn't exist.
func (s *AnnotationStore) load() (annotationsFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return annotationsFile{}, nil
		}
		return annotationsFile{}, err
	}

	if len(data) == 0 {
		return annotationsFile{}, nil
	}

	var file annotationsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return annotationsFile{}, err
	}
	return file, nil
}

// save writes the annotations file to disk atomically.
func (s *AnnotationStore) save(file annotationsFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}

// Apply overlays an annotation record onto a quote, producing the quote the
// UI renders. The record is the source of truth for every annotated field.
func Apply(q transcript.Quote, a Annotation) transcript.Quote {
	q.IsStarred = a.Starred
	q.IsHidden = a.Hidden
	q.EditedText = a.EditedText
	q.Tags = a.Tags
	q.DeletedBadges = a.DeletedBadges
	q.ProposedTags = a.ProposedTags
	return q
}
