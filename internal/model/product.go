package model

import (
	"fmt"
	"strings"
)

// ProductStatus tracks purchase progress for a single product.
type ProductStatus string

// Product status constants. Cycle order is fixed: pending → bought → missed.
const (
	StatusPending ProductStatus = "pending"
	StatusBought  ProductStatus = "bought"
	StatusMissed  ProductStatus = "missed"
)

// Next returns the status that follows s in the fixed cycle. Unknown values
// are treated as pending.
func (s ProductStatus) Next() ProductStatus {
	switch s {
	case StatusPending:
		return StatusBought
	case StatusBought:
		return StatusMissed
	default:
		return StatusPending
	}
}

// ProductRecord is one item the user intends to buy at a booth.
type ProductRecord struct {
	ID         int64
	BoothID    int64
	Name       string
	StatusNote string
	Status     ProductStatus
	Price      float64
	Quantity   int
}

// Validate checks the invariants required before a product reaches persistence.
func (p *ProductRecord) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product name is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("price must be non-negative, got %v", p.Price)
	}
	if p.Quantity < 1 {
		return fmt.Errorf("quantity must be positive, got %d", p.Quantity)
	}
	return nil
}
