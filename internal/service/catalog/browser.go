package catalog

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"plantshop/internal/logging"
)

// LoadErrorMessage is what the grid shows when the latest load failed.
const LoadErrorMessage = "Failed to load plants"

// View is what the catalog grid currently shows.
type View struct {
	Result
	Generation uint64 `json:"generation"`
	Error      string `json:"error,omitempty"`
}

// Browser holds the visible catalog state for one session. Loads may overlap;
// each takes a generation number when it starts and its outcome is applied
// only if no newer load has started since. Superseded requests are not
// aborted, their results are just dropped on arrival.
type Browser struct {
	svc    *Service
	logger *zap.Logger

	mu     sync.Mutex
	issued uint64
	view   View
}

func NewBrowser(svc *Service, logger *zap.Logger) *Browser {
	return &Browser{svc: svc, logger: logging.OrNop(logger)}
}

// Load fetches page/search and returns the view after the attempt. applied is
// false when a newer load superseded this one; the returned view is then the
// newest state, which may still be awaiting that newer load.
func (b *Browser) Load(ctx context.Context, page int, search string) (view View, applied bool, err error) {
	gen := b.begin()

	result, err := b.svc.Browse(ctx, page, search)

	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.issued {
		b.logger.Debug("catalog: discarding superseded load", zap.Uint64("generation", gen), zap.Uint64("latest", b.issued))
		return b.view, false, nil
	}
	if errors.Is(err, context.Canceled) {
		return b.view, false, err
	}
	if err != nil {
		b.view.Generation = gen
		b.view.Error = LoadErrorMessage
		return b.view, true, err
	}
	b.view = View{Result: result, Generation: gen}
	return b.view, true, nil
}

// Current returns the visible view without fetching.
func (b *Browser) Current() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view
}

func (b *Browser) begin() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.issued++
	return b.issued
}
