package plant

import (
	"context"

	"plantshop/internal/domain"
)

// Repository reads pages of the external plant catalog. A non-empty search
// filters by common name; an empty one lists everything.
type Repository interface {
	Fetch(ctx context.Context, page, perPage int, search string) (domain.CatalogPage, error)
}
