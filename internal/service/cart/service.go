package cart

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"plantshop/internal/domain"
	"plantshop/internal/logging"
)

// DefaultCheckoutDelay is how long the simulated checkout takes.
const DefaultCheckoutDelay = 2 * time.Second

// DefaultFlatShipping is charged once per non-empty order.
var DefaultFlatShipping = decimal.NewFromInt(10)

type cartRepo interface {
	Load(ctx context.Context, sessionID string) []domain.LineItem
	Save(ctx context.Context, sessionID string, items []domain.LineItem) error
}

// Options tunes a Service. Zero values fall back to the package defaults.
type Options struct {
	FlatShipping  *decimal.Decimal
	CheckoutDelay time.Duration
	Logger        *zap.Logger
}

// Service is the cart of one session. It is hydrated once by Open and written
// back in full after every mutation.
type Service struct {
	mu            sync.Mutex
	repo          cartRepo
	sessionID     string
	items         []domain.LineItem
	totalItems    int
	checkingOut   bool
	flatShipping  decimal.Decimal
	checkoutDelay time.Duration
	logger        *zap.Logger
}

// Open loads the stored cart for sessionID.
func Open(ctx context.Context, repo cartRepo, sessionID string, opts Options) *Service {
	s := &Service{
		repo:          repo,
		sessionID:     sessionID,
		flatShipping:  DefaultFlatShipping,
		checkoutDelay: opts.CheckoutDelay,
		logger:        logging.OrNop(opts.Logger),
	}
	if opts.FlatShipping != nil {
		s.flatShipping = *opts.FlatShipping
	}
	if s.checkoutDelay <= 0 {
		s.checkoutDelay = DefaultCheckoutDelay
	}

	s.items = repo.Load(ctx, sessionID)
	s.recount()
	return s
}

// Add puts one more unit of plant in the cart, appending a new line the first time.
func (s *Service) Add(ctx context.Context, plant domain.Plant) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(plant.ID); i >= 0 {
		if s.items[i].Quantity < domain.MaxQuantity {
			s.items[i].Quantity++
		}
	} else {
		s.items = append(s.items, domain.LineItem{Plant: plant, Quantity: 1})
	}
	return s.commit(ctx, "add", plant.ID)
}

// Remove drops the line for plantID. Unknown ids are ignored.
func (s *Service) Remove(ctx context.Context, plantID int) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remove(plantID)
	return s.commit(ctx, "remove", plantID)
}

// UpdateQuantity sets the quantity for plantID. A quantity of zero or less
// removes the line; anything above domain.MaxQuantity is clamped to it.
func (s *Service) UpdateQuantity(ctx context.Context, plantID, quantity int) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.remove(plantID)
		return s.commit(ctx, "remove", plantID)
	}
	if quantity > domain.MaxQuantity {
		quantity = domain.MaxQuantity
	}
	if i := s.indexOf(plantID); i >= 0 {
		s.items[i].Quantity = quantity
	}
	return s.commit(ctx, "update", plantID)
}

func (s *Service) Clear(ctx context.Context) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []domain.LineItem{}
	return s.commit(ctx, "clear", 0)
}

// TotalItems is the sum of all line quantities.
func (s *Service) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalItems
}

func (s *Service) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Service) Summary() domain.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Summarize(s.items, s.flatShipping)
}

// Quantity reports how many units of plantID are in the cart.
func (s *Service) Quantity(plantID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(plantID); i >= 0 {
		return s.items[i].Quantity
	}
	return 0
}

// Checkout simulates placing the order: it prices the cart, waits for the
// configured delay and then takes the charged units out of the cart, returning
// the totals that were "charged". Units added during the wait stay in the
// cart. Nothing is sent anywhere. Cancelling ctx during the wait leaves the
// cart untouched.
func (s *Service) Checkout(ctx context.Context) (domain.Summary, error) {
	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		return domain.Summary{}, domain.ErrEmptyCart
	}
	if s.checkingOut {
		s.mu.Unlock()
		return domain.Summary{}, domain.ErrCheckoutInProgress
	}
	s.checkingOut = true
	charged := make(map[int]int, len(s.items))
	for _, item := range s.items {
		charged[item.Plant.ID] = item.Quantity
	}
	summary := domain.Summarize(s.items, s.flatShipping)
	s.mu.Unlock()

	timer := time.NewTimer(s.checkoutDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		s.mu.Lock()
		s.checkingOut = false
		s.mu.Unlock()
		return domain.Summary{}, ctx.Err()
	case <-timer.C:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkingOut = false
	kept := make([]domain.LineItem, 0, len(s.items))
	for _, item := range s.items {
		item.Quantity -= charged[item.Plant.ID]
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.commit(context.WithoutCancel(ctx), "checkout", 0)
	s.logger.Info("cart: checkout completed", zap.String("session", s.sessionID), zap.Stringer("total", summary.Total))
	return summary, nil
}

func (s *Service) indexOf(plantID int) int {
	for i, item := range s.items {
		if item.Plant.ID == plantID {
			return i
		}
	}
	return -1
}

func (s *Service) remove(plantID int) {
	if i := s.indexOf(plantID); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
}

// commit recounts and persists. Callers hold s.mu.
func (s *Service) commit(ctx context.Context, op string, plantID int) domain.Cart {
	s.recount()
	out := s.snapshot()
	if err := s.repo.Save(ctx, s.sessionID, out.Items); err != nil {
		s.logger.Warn("cart: persist failed, keeping in-memory state",
			zap.String("session", s.sessionID),
			zap.String("op", op),
			zap.Int("plant_id", plantID),
			zap.Error(err))
	}
	return out
}

func (s *Service) recount() {
	s.totalItems = domain.CountItems(s.items)
}

func (s *Service) snapshot() domain.Cart {
	items := make([]domain.LineItem, len(s.items))
	copy(items, s.items)
	return domain.Cart{Items: items, TotalItems: s.totalItems}
}
