package excerpt

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/colonyops/excerpt/internal/core/config"
	"github.com/colonyops/excerpt/internal/core/transcript"
)

// Library discovers and loads transcript sessions from the data directory.
type Library struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewLibrary creates a session library over the configured sessions dir.
func NewLibrary(cfg *config.Config, log zerolog.Logger) *Library {
	return &Library{
		cfg: cfg,
		log: log.With().Str("component", "library").Logger(),
	}
}

// Sessions loads every session file under the sessions dir. Unparseable
// files are logged and skipped.
func (l *Library) Sessions(ctx context.Context) ([]*transcript.Session, error) {
	sessions, errs := transcript.LoadAll(l.cfg.SessionsDir(), l.cfg.Sessions.Pattern)
	for _, err := range errs {
		l.log.Warn().Err(err).Msg("skipping unreadable session file")
	}
	return sessions, nil
}

// FindQuote locates a quote by ID across all sessions.
func (l *Library) FindQuote(ctx context.Context, quoteID string) (*transcript.Session, *transcript.Quote, error) {
	sessions, err := l.Sessions(ctx)
	if err != nil {
		return nil, nil, err
	}

	for _, s := range sessions {
		for i := range s.Quotes {
			if s.Quotes[i].DomID == quoteID {
				return s, &s.Quotes[i], nil
			}
		}
	}
	return nil, nil, fmt.Errorf("quote %q not found", quoteID)
}

// Import writes a session into the sessions dir under its ID.
func (l *Library) Import(ctx context.Context, s *transcript.Session) (string, error) {
	if s.ID == "" {
		return "", fmt.Errorf("session has no id")
	}

	path := filepath.Join(l.cfg.SessionsDir(), s.ID+".session.json")
	if err := transcript.WriteSession(path, s); err != nil {
		return "", fmt.Errorf("import session %s: %w", s.ID, err)
	}

	l.log.Info().Str("session", s.ID).Str("path", path).Msg("session imported")
	return path, nil
}
