package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"plantshop/internal/domain"
	"plantshop/internal/logging"
	"plantshop/internal/repository/slot"
)

const keyPrefix = "cart:"

type snapshotRepo struct {
	slots  slot.Repository
	logger *zap.Logger
}

// NewSnapshot stores each cart as a JSON array of line items in the slot "cart:<session>".
func NewSnapshot(slots slot.Repository, logger *zap.Logger) Repository {
	return &snapshotRepo{slots: slots, logger: logging.OrNop(logger)}
}

func (r *snapshotRepo) Load(ctx context.Context, sessionID string) []domain.LineItem {
	raw, err := r.slots.Get(ctx, Key(sessionID))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Warn("cart repo: load failed, starting empty", zap.String("session", sessionID), zap.Error(err))
		}
		return []domain.LineItem{}
	}

	items, err := decode(raw)
	if err != nil {
		r.logger.Warn("cart repo: discarding stored cart", zap.String("session", sessionID), zap.Error(err))
		return []domain.LineItem{}
	}
	r.logger.Debug("cart repo: loaded", zap.String("session", sessionID), zap.Int("lines", len(items)))
	return items
}

func (r *snapshotRepo) Save(ctx context.Context, sessionID string, items []domain.LineItem) error {
	if items == nil {
		items = []domain.LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := r.slots.Put(ctx, Key(sessionID), raw); err != nil {
		return fmt.Errorf("store cart: %w", err)
	}
	return nil
}

// Key is the slot name holding a session's cart.
func Key(sessionID string) string {
	return keyPrefix + sessionID
}

func decode(raw []byte) ([]domain.LineItem, error) {
	var items []domain.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptSnapshot, err)
	}
	seen := make(map[int]struct{}, len(items))
	for _, item := range items {
		if item.Quantity <= 0 || item.Quantity > domain.MaxQuantity {
			return nil, fmt.Errorf("%w: plant %d has quantity %d", domain.ErrCorruptSnapshot, item.Plant.ID, item.Quantity)
		}
		if _, dup := seen[item.Plant.ID]; dup {
			return nil, fmt.Errorf("%w: plant %d appears twice", domain.ErrCorruptSnapshot, item.Plant.ID)
		}
		seen[item.Plant.ID] = struct{}{}
	}
	if items == nil {
		items = []domain.LineItem{}
	}
	return items, nil
}
