package cart

import (
	"context"

	"plantshop/internal/domain"
)

// Repository persists whole cart snapshots for a session. Load never fails:
// a missing or unreadable snapshot comes back as an empty cart.
type Repository interface {
	Load(ctx context.Context, sessionID string) []domain.LineItem
	Save(ctx context.Context, sessionID string, items []domain.LineItem) error
}
