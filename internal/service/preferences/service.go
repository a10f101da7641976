// Package preferences keeps the display settings of one session: the theme,
// which survives restarts, and the current search term, which does not.
package preferences

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
	"plantshop/internal/domain"
	"plantshop/internal/logging"
	"plantshop/internal/repository/slot"
)

const (
	themeDark  = "dark"
	themeLight = "light"
)

// Key is the slot holding the theme of sessionID.
func Key(sessionID string) string {
	return "theme:" + sessionID
}

type Service struct {
	mu        sync.Mutex
	slots     slot.Repository
	sessionID string
	prefs     domain.Preferences
	logger    *zap.Logger
}

// Open reads the stored theme. Anything other than a stored "dark" means light.
func Open(ctx context.Context, slots slot.Repository, sessionID string, logger *zap.Logger) *Service {
	logger = logging.OrNop(logger)
	s := &Service{slots: slots, sessionID: sessionID, logger: logger}

	raw, err := slots.Get(ctx, Key(sessionID))
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		logger.Warn("theme load failed", zap.String("session", sessionID), zap.Error(err))
	default:
		s.prefs.Dark = strings.TrimSpace(string(raw)) == themeDark
	}
	return s
}

func (s *Service) Get() domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

func (s *Service) ToggleTheme(ctx context.Context) domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.Dark = !s.prefs.Dark
	s.persist(ctx)
	return s.prefs
}

func (s *Service) SetDark(ctx context.Context, dark bool) domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.Dark = dark
	s.persist(ctx)
	return s.prefs
}

// SetSearch stores the trimmed term. It is never written to the slot store.
func (s *Service) SetSearch(term string) domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.Search = strings.TrimSpace(term)
	return s.prefs
}

func (s *Service) persist(ctx context.Context) {
	value := themeLight
	if s.prefs.Dark {
		value = themeDark
	}
	if err := s.slots.Put(ctx, Key(s.sessionID), []byte(value)); err != nil {
		s.logger.Error("theme save failed", zap.String("session", s.sessionID), zap.Error(err))
	}
}
