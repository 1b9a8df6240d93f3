package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yukirin/cplist/internal/model"
	"github.com/yukirin/cplist/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new database transaction.
func (s *SQLiteStorage) BeginTx(ctx context.Context) (service.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &sqliteTransaction{
		tx:      tx,
		storage: s,
	}, nil
}

// sqliteTransaction wraps sql.Tx to implement service.Transaction.
type sqliteTransaction struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTransaction) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTransaction) Rollback() error {
	return t.tx.Rollback()
}

// Transaction methods delegate to the main storage with the transaction.
func (t *sqliteTransaction) CreateList(ctx context.Context, name string) (*model.ShoppingList, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	return t.storage.createListTx(ctx, t.tx, name)
}

func (t *sqliteTransaction) GetList(ctx context.Context, id int64) (*model.ShoppingList, error) {
	return t.storage.getListTx(ctx, t.tx, id)
}

func (t *sqliteTransaction) GetListByName(ctx context.Context, name string) (*model.ShoppingList, error) {
	return t.storage.getListByNameTx(ctx, t.tx, name)
}

func (t *sqliteTransaction) GetLists(ctx context.Context) ([]model.ShoppingList, error) {
	return t.storage.getListsTx(ctx, t.tx)
}

func (t *sqliteTransaction) RenameList(ctx context.Context, id int64, name string) error {
	return t.storage.renameListTx(ctx, t.tx, id, name)
}

func (t *sqliteTransaction) DeleteList(ctx context.Context, id int64) error {
	return t.storage.deleteListTx(ctx, t.tx, id)
}

func (t *sqliteTransaction) SaveImportedBooths(ctx context.Context, listID int64, entries []model.BoothEntry) (*service.ImportStats, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateEntries(entries); err != nil {
		return nil, err
	}
	return t.storage.saveImportedBoothsTx(ctx, t.tx, listID, entries)
}

func (t *sqliteTransaction) GetBooths(ctx context.Context, listID int64) ([]model.BoothRecord, error) {
	return t.storage.getBoothsTx(ctx, t.tx, listID, service.BoothFilter{})
}

func (t *sqliteTransaction) GetBoothsFiltered(ctx context.Context, listID int64, filter service.BoothFilter) ([]model.BoothRecord, error) {
	return t.storage.getBoothsTx(ctx, t.tx, listID, filter)
}

func (t *sqliteTransaction) GetBoothByNumber(ctx context.Context, listID int64, number string) (*model.BoothRecord, error) {
	return t.storage.getBoothByNumberTx(ctx, t.tx, listID, number)
}

func (t *sqliteTransaction) DeleteBooth(ctx context.Context, boothID int64) error {
	return t.storage.deleteBoothTx(ctx, t.tx, boothID)
}

func (t *sqliteTransaction) UpdateBoothPinned(ctx context.Context, boothID int64, pinned bool) error {
	return t.storage.updateBoothPinnedTx(ctx, t.tx, boothID, pinned)
}

func (t *sqliteTransaction) UpdateBoothManualOrder(ctx context.Context, boothID int64, position *int) error {
	return t.storage.updateBoothManualOrderTx(ctx, t.tx, boothID, position)
}

func (t *sqliteTransaction) UpdateBoothNote(ctx context.Context, boothID int64, note string) error {
	return t.storage.updateBoothNoteTx(ctx, t.tx, boothID, note)
}

func (t *sqliteTransaction) AddProduct(ctx context.Context, boothID int64, product model.ProductRecord) error {
	return t.storage.addProductTx(ctx, t.tx, boothID, product)
}

func (t *sqliteTransaction) UpdateProductStatus(ctx context.Context, productID int64, status model.ProductStatus, note string) error {
	return t.storage.updateProductStatusTx(ctx, t.tx, productID, status, note)
}

func (t *sqliteTransaction) DeleteProduct(ctx context.Context, productID int64) error {
	return t.storage.deleteProductTx(ctx, t.tx, productID)
}

func (t *sqliteTransaction) Migrate(_ context.Context) error {
	// Migrations should not be run within a transaction
	return fmt.Errorf("migrations cannot be run within a transaction")
}

func (t *sqliteTransaction) BeginTx(_ context.Context) (service.Transaction, error) {
	// Nested transactions not supported
	return nil, fmt.Errorf("nested transactions not supported")
}

func (t *sqliteTransaction) Close() error {
	// Transactions should be committed or rolled back, not closed
	return fmt.Errorf("transactions must be committed or rolled back, not closed")
}
