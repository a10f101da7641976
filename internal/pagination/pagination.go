// Package pagination computes the page buttons shown under the catalog grid.
package pagination

const (
	// DefaultMaxVisible is how many page numbers the window shows at most.
	DefaultMaxVisible = 5
	// DefaultPerPage matches the catalog grid size.
	DefaultPerPage = 12
)

// Pager describes the pagination controls for one catalog page.
type Pager struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	TotalCount int   `json:"total"`
	TotalPages int   `json:"totalPages"`
	Window     []int `json:"window"`
	HasPrev    bool  `json:"hasPrev"`
	HasNext    bool  `json:"hasNext"`
}

// New builds the Pager for page out of totalCount results.
func New(page, perPage, totalCount int) Pager {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	totalPages := TotalPages(totalCount, perPage)
	return Pager{
		Page:       page,
		PerPage:    perPage,
		TotalCount: totalCount,
		TotalPages: totalPages,
		Window:     Window(page, totalPages, DefaultMaxVisible),
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

// TotalPages is ceil(totalCount / perPage).
func TotalPages(totalCount, perPage int) int {
	if perPage <= 0 || totalCount <= 0 {
		return 0
	}
	return (totalCount + perPage - 1) / perPage
}

// Window returns up to maxVisible consecutive page numbers centered on
// currentPage and clamped to [1, totalPages].
func Window(currentPage, totalPages, maxVisible int) []int {
	if totalPages <= 0 || maxVisible <= 0 {
		return []int{}
	}
	start := max(1, currentPage-maxVisible/2)
	end := min(totalPages, start+maxVisible-1)
	if end-start+1 < maxVisible {
		start = max(1, end-maxVisible+1)
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
