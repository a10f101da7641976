// Package session hands out session ids and keeps the per-session services
// (cart, catalog view, preferences) alive while the session is in use.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"plantshop/internal/logging"
	cartrepo "plantshop/internal/repository/cart"
	"plantshop/internal/repository/slot"
	"plantshop/internal/service/cart"
	"plantshop/internal/service/catalog"
	"plantshop/internal/service/preferences"
)

var ErrInvalidSession = errors.New("invalid session id")

// State is everything one session owns.
type State struct {
	ID          string
	Cart        *cart.Service
	Browser     *catalog.Browser
	Preferences *preferences.Service
}

type Deps struct {
	Slots       slot.Repository
	Carts       cartrepo.Repository
	Catalog     *catalog.Service
	CartOptions cart.Options
	Logger      *zap.Logger
}

type entry struct {
	once     sync.Once
	state    *State
	lastSeen time.Time
}

type Registry struct {
	deps Deps
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

func NewRegistry(deps Deps) *Registry {
	deps.Logger = logging.OrNop(deps.Logger)
	if deps.CartOptions.Logger == nil {
		deps.CartOptions.Logger = deps.Logger
	}
	return &Registry{
		deps:     deps,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// Issue returns a fresh random session id.
func (r *Registry) Issue() string {
	return uuid.NewString()
}

// Get returns the state of id, hydrating it from storage on first use.
// Concurrent first calls for the same id hydrate exactly once.
func (r *Registry) Get(ctx context.Context, id string) (*State, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidSession
	}
	id = parsed.String()

	r.mu.Lock()
	e, ok := r.sessions[id]
	if !ok {
		e = &entry{}
		r.sessions[id] = e
	}
	e.lastSeen = r.now()
	r.mu.Unlock()

	e.once.Do(func() {
		e.state = r.hydrate(context.WithoutCancel(ctx), id)
	})
	return e.state, nil
}

// Sweep drops sessions unused for longer than idle and reports how many went.
// Their stored cart and theme stay in the slot store and are reloaded on the
// next request.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.deps.Logger.Debug("session: swept idle sessions", zap.Int("removed", removed), zap.Int("active", len(r.sessions)))
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) hydrate(ctx context.Context, id string) *State {
	logger := r.deps.Logger.With(zap.String("session", id))
	logger.Debug("session: hydrating")

	opts := r.deps.CartOptions
	opts.Logger = opts.Logger.With(zap.String("session", id))

	return &State{
		ID:          id,
		Cart:        cart.Open(ctx, r.deps.Carts, id, opts),
		Browser:     catalog.NewBrowser(r.deps.Catalog, logger),
		Preferences: preferences.Open(ctx, r.deps.Slots, id, logger),
	}
}
