// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/yukirin/cplist/internal/model"
)

// BoothFilter defines filtering options for booth queries.
type BoothFilter struct {
	Type   model.VenueType
	Pinned *bool
	Limit  int
	Offset int
}

// ImportStats shows the results of an import run.
type ImportStats struct {
	NewBooths    int
	MergedBooths int
	Products     int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// List operations
	CreateList(ctx context.Context, name string) (*model.ShoppingList, error)
	GetList(ctx context.Context, id int64) (*model.ShoppingList, error)
	GetListByName(ctx context.Context, name string) (*model.ShoppingList, error)
	GetLists(ctx context.Context) ([]model.ShoppingList, error)
	RenameList(ctx context.Context, id int64, name string) error
	DeleteList(ctx context.Context, id int64) error

	// Booth operations
	SaveImportedBooths(ctx context.Context, listID int64, entries []model.BoothEntry) (*ImportStats, error)
	GetBooths(ctx context.Context, listID int64) ([]model.BoothRecord, error)
	GetBoothsFiltered(ctx context.Context, listID int64, filter BoothFilter) ([]model.BoothRecord, error)
	GetBoothByNumber(ctx context.Context, listID int64, number string) (*model.BoothRecord, error)
	DeleteBooth(ctx context.Context, boothID int64) error
	UpdateBoothPinned(ctx context.Context, boothID int64, pinned bool) error
	UpdateBoothManualOrder(ctx context.Context, boothID int64, position *int) error
	UpdateBoothNote(ctx context.Context, boothID int64, note string) error

	// Product operations
	AddProduct(ctx context.Context, boothID int64, product model.ProductRecord) error
	UpdateProductStatus(ctx context.Context, productID int64, status model.ProductStatus, note string) error
	DeleteProduct(ctx context.Context, productID int64) error

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit() error
	Rollback() error
	// Include all Storage methods for use within transaction
	Storage
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
