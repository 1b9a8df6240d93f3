// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"
	"time"
)

// VenueType identifies which exhibition hall a booth belongs to.
type VenueType string

// Venue type constants. The three categories are fixed; every booth number
// grammar maps to exactly one of them.
const (
	// VenueDoujin is the independent-creator hall (numbers like 壹A-01).
	VenueDoujin VenueType = "doujin"
	// VenueEnterprise is the corporate hall (numbers like CPA01).
	VenueEnterprise VenueType = "enterprise"
	// VenueCreative is the maker-stall area (numbers like 创01).
	VenueCreative VenueType = "creative"
)

// IsValid reports whether t is one of the three known venue types.
func (t VenueType) IsValid() bool {
	switch t {
	case VenueDoujin, VenueEnterprise, VenueCreative:
		return true
	}
	return false
}

// UnnamedBooth is the placeholder name assigned to imported booths whose
// source row carried no name. Later rows for the same number may replace it.
const UnnamedBooth = "未命名"

// BoothRecord is a persisted booth with its product list.
type BoothRecord struct {
	CreatedAt   time.Time
	ID          int64
	ListID      int64
	Type        VenueType
	Number      string
	Name        string
	Zone        string
	Note        string
	Products    []ProductRecord
	ManualOrder *int
	Pinned      bool
}

// BoothEntry is a transient parse result. The parsing engine emits entries;
// the caller assigns IDs and timestamps when it persists them.
type BoothEntry struct {
	Type     VenueType
	Number   string
	Name     string
	Zone     string
	Note     string
	Products []ProductRecord
}

// Total returns the booth's price×quantity sum across all products.
func (b *BoothRecord) Total() float64 {
	var total float64
	for _, p := range b.Products {
		total += p.Price * float64(p.Quantity)
	}
	return total
}

// BoughtCount returns how many products have been marked bought.
func (b *BoothRecord) BoughtCount() int {
	n := 0
	for _, p := range b.Products {
		if p.Status == StatusBought {
			n++
		}
	}
	return n
}

// Validate checks the invariants required before a booth reaches persistence.
func (b *BoothRecord) Validate() error {
	if strings.TrimSpace(b.Number) == "" {
		return fmt.Errorf("booth number is required")
	}
	if !b.Type.IsValid() {
		return fmt.Errorf("invalid venue type: %q", b.Type)
	}
	for i, p := range b.Products {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("product %d: %w", i, err)
		}
	}
	return nil
}

// PruneProducts drops products whose names are empty or whitespace-only.
// Records like that never reach persistence.
func (b *BoothRecord) PruneProducts() {
	kept := b.Products[:0]
	for _, p := range b.Products {
		if strings.TrimSpace(p.Name) != "" {
			kept = append(kept, p)
		}
	}
	b.Products = kept
}

// ShoppingList is a named collection of booths.
type ShoppingList struct {
	CreatedAt time.Time
	ID        int64
	Name      string
}
