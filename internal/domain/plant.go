package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	unknownPlantName = "Unknown Plant"
	placeholderImage = "/placeholder-plant.jpg"
)

// Plant is a catalog entry as served by the plants API.
type Plant struct {
	ID               int             `json:"id"`
	CommonName       string          `json:"common_name"`
	ScientificName   string          `json:"scientific_name"`
	Family           string          `json:"family"`
	FamilyCommonName string          `json:"family_common_name"`
	Genus            string          `json:"genus"`
	ImageURL         string          `json:"image_url"`
	Image            string          `json:"image,omitempty"`
	Year             int             `json:"year"`
	Bibliography     string          `json:"bibliography"`
	Author           string          `json:"author"`
	Status           string          `json:"status"`
	Rank             string          `json:"rank"`
	Observations     string          `json:"observations,omitempty"`
	Vegetable        bool            `json:"vegetable"`
	Synonyms         []string        `json:"synonyms,omitempty"`
	Distributions    *Distributions  `json:"distributions,omitempty"`
	Price            decimal.Decimal `json:"price"`
}

type Distributions struct {
	Native     []string `json:"native"`
	Introduced []string `json:"introduced"`
}

// DisplayName returns the common name or a generic label.
func (p Plant) DisplayName() string {
	if name := strings.TrimSpace(p.CommonName); name != "" {
		return name
	}
	return unknownPlantName
}

// FamilyLabel prefers the family common name over the botanical one.
func (p Plant) FamilyLabel() string {
	if p.FamilyCommonName != "" {
		return p.FamilyCommonName
	}
	return p.Family
}

func (p Plant) ImageOrPlaceholder() string {
	if p.ImageURL != "" {
		return p.ImageURL
	}
	return placeholderImage
}
