package domain

import (
	"encoding/json"
	"testing"
)

func TestPlantDisplayFallbacks(t *testing.T) {
	var p Plant
	if p.DisplayName() != "Unknown Plant" {
		t.Fatalf("unexpected display name %q", p.DisplayName())
	}
	if p.ImageOrPlaceholder() != "/placeholder-plant.jpg" {
		t.Fatalf("unexpected image %q", p.ImageOrPlaceholder())
	}

	p = Plant{CommonName: "Rose", Family: "Rosaceae", FamilyCommonName: "Rose family", ImageURL: "https://img/rose.jpg"}
	if p.DisplayName() != "Rose" || p.FamilyLabel() != "Rose family" || p.ImageOrPlaceholder() != "https://img/rose.jpg" {
		t.Fatalf("unexpected labels for %+v", p)
	}

	p.FamilyCommonName = ""
	if p.FamilyLabel() != "Rosaceae" {
		t.Fatalf("expected botanical family, got %q", p.FamilyLabel())
	}
}

func TestPlantPriceNullIsZero(t *testing.T) {
	var p Plant
	if err := json.Unmarshal([]byte(`{"id":4,"common_name":"Aloe","price":null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.ID != 4 || !p.Price.IsZero() {
		t.Fatalf("unexpected plant %+v", p)
	}
}
