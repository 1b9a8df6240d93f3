package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/yukirin/cplist/internal/common"
	"github.com/yukirin/cplist/internal/model"
)

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// query helpers run both standalone and inside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateList creates a new named shopping list.
func (s *SQLiteStorage) CreateList(ctx context.Context, name string) (*model.ShoppingList, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	return s.createListTx(ctx, s.db, name)
}

func (s *SQLiteStorage) createListTx(ctx context.Context, db dbtx, name string) (*model.ShoppingList, error) {
	res, err := db.ExecContext(ctx, `INSERT INTO lists (name) VALUES (?)`, name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("list %q: %w", name, common.ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read list id: %w", err)
	}
	return s.getListTx(ctx, db, id)
}

// GetList retrieves a list by its id.
func (s *SQLiteStorage) GetList(ctx context.Context, id int64) (*model.ShoppingList, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}
	return s.getListTx(ctx, s.db, id)
}

func (s *SQLiteStorage) getListTx(ctx context.Context, db dbtx, id int64) (*model.ShoppingList, error) {
	var list model.ShoppingList
	err := db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM lists WHERE id = ?`, id,
	).Scan(&list.ID, &list.Name, &list.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("list %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	return &list, nil
}

// GetListByName retrieves a list by its unique name.
func (s *SQLiteStorage) GetListByName(ctx context.Context, name string) (*model.ShoppingList, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	return s.getListByNameTx(ctx, s.db, name)
}

func (s *SQLiteStorage) getListByNameTx(ctx context.Context, db dbtx, name string) (*model.ShoppingList, error) {
	var list model.ShoppingList
	err := db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM lists WHERE name = ?`, name,
	).Scan(&list.ID, &list.Name, &list.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("list %q: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	return &list, nil
}

// GetLists returns all lists, oldest first.
func (s *SQLiteStorage) GetLists(ctx context.Context) ([]model.ShoppingList, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getListsTx(ctx, s.db)
}

func (s *SQLiteStorage) getListsTx(ctx context.Context, db dbtx) ([]model.ShoppingList, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name, created_at FROM lists ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var lists []model.ShoppingList
	for rows.Next() {
		var list model.ShoppingList
		if err := rows.Scan(&list.ID, &list.Name, &list.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, list)
	}
	return lists, rows.Err()
}

// RenameList changes a list's name.
func (s *SQLiteStorage) RenameList(ctx context.Context, id int64, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}
	return s.renameListTx(ctx, s.db, id, name)
}

func (s *SQLiteStorage) renameListTx(ctx context.Context, db dbtx, id int64, name string) error {
	res, err := db.ExecContext(ctx, `UPDATE lists SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("list %q: %w", name, common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to rename list: %w", err)
	}
	return requireRowAffected(res, fmt.Sprintf("list %d", id))
}

// DeleteList removes a list together with its booths and products.
func (s *SQLiteStorage) DeleteList(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}
	return s.deleteListTx(ctx, s.db, id)
}

func (s *SQLiteStorage) deleteListTx(ctx context.Context, db dbtx, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return requireRowAffected(res, fmt.Sprintf("list %d", id))
}

// requireRowAffected turns a zero-row update or delete into ErrNotFound.
func requireRowAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, common.ErrNotFound)
	}
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
