// Package storage provides the data persistence layer for the cplist application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukirin/cplist/internal/model"
	"github.com/yukirin/cplist/internal/venue"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrEmptySlice   = errors.New("slice cannot be empty")
	ErrInvalidEntry = errors.New("invalid booth entry")
	ErrInvalidID    = errors.New("id must be positive")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateID ensures a row identifier is positive.
func validateID(id int64, paramName string) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidID, paramName)
	}
	return nil
}

// validateEntries validates a slice of parsed booth entries.
func validateEntries(entries []model.BoothEntry) error {
	if entries == nil {
		return fmt.Errorf("%w: entries", ErrNilParameter)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: entries", ErrEmptySlice)
	}

	for i, e := range entries {
		if err := validateEntry(&e); err != nil {
			return fmt.Errorf("entry at index %d: %w", i, err)
		}
	}
	return nil
}

// validateEntry validates a single booth entry.
func validateEntry(e *model.BoothEntry) error {
	if e == nil {
		return fmt.Errorf("%w: entry", ErrNilParameter)
	}
	if strings.TrimSpace(e.Number) == "" {
		return fmt.Errorf("%w: missing number", ErrInvalidEntry)
	}
	if !e.Type.IsValid() {
		return fmt.Errorf("%w: unknown venue type %q", ErrInvalidEntry, e.Type)
	}
	if !venue.IsValidBoothNumber(e.Number) {
		return fmt.Errorf("%w: unrecognized booth number %q", ErrInvalidEntry, e.Number)
	}
	if venue.InferBoothType(e.Number) != e.Type {
		return fmt.Errorf("%w: number %q does not belong to venue type %q", ErrInvalidEntry, e.Number, e.Type)
	}
	for i, p := range e.Products {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: product %d: %v", ErrInvalidEntry, i, err)
		}
	}
	return nil
}

// validateProduct validates a product before insertion.
func validateProduct(p *model.ProductRecord) error {
	if p == nil {
		return fmt.Errorf("%w: product", ErrNilParameter)
	}
	return p.Validate()
}

// validateStatus ensures a product status is one of the known values.
func validateStatus(s model.ProductStatus) error {
	switch s {
	case model.StatusPending, model.StatusBought, model.StatusMissed:
		return nil
	}
	return fmt.Errorf("invalid product status: %q", s)
}
