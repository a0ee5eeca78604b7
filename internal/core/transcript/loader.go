package transcript

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches session files anywhere under the sessions dir.
const DefaultPattern = "**/*.session.json"

// Discover returns the session files under dir matching the doublestar
// pattern, sorted by path. A missing directory yields an empty list.
func Discover(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat sessions dir: %w", err)
	}

	fsys := os.DirFS(dir)
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob sessions: %w", err)
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(dir, filepath.FromSlash(m)))
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadSession reads and decodes a single session file.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session file %s: %w", filepath.Base(path), err)
	}

	if s.ID == "" {
		base := filepath.Base(path)
		s.ID = base[:len(base)-len(filepath.Ext(base))]
	}

	return &s, nil
}

// LoadAll discovers and loads every session under dir. Files that fail to
// parse are skipped and reported in the returned error list; the sessions
// that did load are still returned.
func LoadAll(dir, pattern string) ([]*Session, []error) {
	paths, err := Discover(dir, pattern)
	if err != nil {
		return nil, []error{err}
	}

	var (
		sessions []*Session
		errs     []error
	)
	for _, p := range paths {
		s, err := LoadSession(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, errs
}

// WriteSession writes a session file, creating parent directories as needed.
func WriteSession(path string, s *Session) error {
	if err := os.MkdirAll(filepath.Dir(path), fs.FileMode(0o755)); err != nil {
		return fmt.Errorf("create sessions dir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
