package domain

// CatalogPage is one page of plants plus the number of plants matching the query.
type CatalogPage struct {
	Plants     []Plant `json:"data"`
	TotalCount int     `json:"total"`
}

// Preferences are the per-session display settings.
type Preferences struct {
	Dark   bool   `json:"dark"`
	Search string `json:"search"`
}
