// Package seed fills a demo session's cart from the live catalog so the
// storefront has something to show during manual testing.
package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"plantshop/internal/domain"
	cartrepo "plantshop/internal/repository/cart"
	"plantshop/internal/service/cart"
	"plantshop/internal/service/catalog"
)

// DefaultLines is how many distinct plants a seeded cart holds.
const DefaultLines = 3

type Options struct {
	// SessionID is the session to seed. Empty means a fresh one.
	SessionID string
	Lines     int
	Logger    *zap.Logger
}

// Apply puts the first plants of catalog page 1 into the session's cart. The
// n-th plant gets quantity n so the demo shows multi-unit lines. Running it
// again on the same session adds on top of what is stored.
func Apply(ctx context.Context, plants *catalog.Service, carts cartrepo.Repository, opts Options) (string, domain.Cart, error) {
	sessionID := uuid.NewString()
	if opts.SessionID != "" {
		parsed, err := uuid.Parse(opts.SessionID)
		if err != nil {
			return "", domain.Cart{}, fmt.Errorf("session id %q: %w", opts.SessionID, err)
		}
		// same canonical form the server looks sessions up by
		sessionID = parsed.String()
	}
	lines := opts.Lines
	if lines <= 0 {
		lines = DefaultLines
	}

	result, err := plants.Browse(ctx, 1, "")
	if err != nil {
		return "", domain.Cart{}, fmt.Errorf("load catalog: %w", err)
	}

	svc := cart.Open(ctx, carts, sessionID, cart.Options{Logger: opts.Logger})
	for i, p := range result.Page.Plants {
		if i == lines {
			break
		}
		svc.Add(ctx, p)
		svc.UpdateQuantity(ctx, p.ID, svc.Quantity(p.ID)+i)
	}
	return sessionID, svc.Cart(), nil
}
