package storage

import (
	"context"
	"fmt"

	"github.com/yukirin/cplist/internal/model"
)

// AddProduct appends a product to a booth.
func (s *SQLiteStorage) AddProduct(ctx context.Context, boothID int64, product model.ProductRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(boothID, "boothID"); err != nil {
		return err
	}
	if err := validateProduct(&product); err != nil {
		return err
	}
	return s.addProductTx(ctx, s.db, boothID, product)
}

func (s *SQLiteStorage) addProductTx(ctx context.Context, db dbtx, boothID int64, product model.ProductRecord) error {
	if product.Status == "" {
		product.Status = model.StatusPending
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO products (booth_id, name, price, quantity, status, status_note)
		VALUES (?, ?, ?, ?, ?, ?)
	`, boothID, product.Name, product.Price, product.Quantity, string(product.Status), product.StatusNote)
	if err != nil {
		return fmt.Errorf("failed to add product %q: %w", product.Name, err)
	}
	return nil
}

// UpdateProductStatus sets a product's purchase status and status note.
func (s *SQLiteStorage) UpdateProductStatus(ctx context.Context, productID int64, status model.ProductStatus, note string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(productID, "productID"); err != nil {
		return err
	}
	if err := validateStatus(status); err != nil {
		return err
	}
	return s.updateProductStatusTx(ctx, s.db, productID, status, note)
}

func (s *SQLiteStorage) updateProductStatusTx(ctx context.Context, db dbtx, productID int64, status model.ProductStatus, note string) error {
	res, err := db.ExecContext(ctx, `
		UPDATE products SET status = ?, status_note = ? WHERE id = ?
	`, string(status), note, productID)
	if err != nil {
		return fmt.Errorf("failed to update product status: %w", err)
	}
	return requireRowAffected(res, fmt.Sprintf("product %d", productID))
}

// DeleteProduct removes a single product.
func (s *SQLiteStorage) DeleteProduct(ctx context.Context, productID int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(productID, "productID"); err != nil {
		return err
	}
	return s.deleteProductTx(ctx, s.db, productID)
}

func (s *SQLiteStorage) deleteProductTx(ctx context.Context, db dbtx, productID int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return requireRowAffected(res, fmt.Sprintf("product %d", productID))
}

func (s *SQLiteStorage) getProductsForBoothTx(ctx context.Context, db dbtx, boothID int64) ([]model.ProductRecord, error) {
	return s.queryProducts(ctx, db, `
		SELECT id, booth_id, name, price, quantity, status, status_note
		FROM products WHERE booth_id = ? ORDER BY id
	`, boothID)
}

func (s *SQLiteStorage) getProductsForListTx(ctx context.Context, db dbtx, listID int64) ([]model.ProductRecord, error) {
	return s.queryProducts(ctx, db, `
		SELECT p.id, p.booth_id, p.name, p.price, p.quantity, p.status, p.status_note
		FROM products p
		JOIN booths b ON b.id = p.booth_id
		WHERE b.list_id = ? ORDER BY p.id
	`, listID)
}

func (s *SQLiteStorage) queryProducts(ctx context.Context, db dbtx, query string, args ...any) ([]model.ProductRecord, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var products []model.ProductRecord
	for rows.Next() {
		var (
			p      model.ProductRecord
			status string
		)
		if err := rows.Scan(&p.ID, &p.BoothID, &p.Name, &p.Price, &p.Quantity, &status, &p.StatusNote); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.Status = model.ProductStatus(status)
		products = append(products, p)
	}
	return products, rows.Err()
}
