package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yukirin/cplist/internal/common"
	"github.com/yukirin/cplist/internal/model"
	"github.com/yukirin/cplist/internal/service"
)

// SaveImportedBooths persists a batch of parsed booth entries into a list.
// An entry whose number already exists in the list merges into the stored
// booth: its products are appended and a real name replaces the unnamed
// placeholder. The whole batch commits atomically.
func (s *SQLiteStorage) SaveImportedBooths(ctx context.Context, listID int64, entries []model.BoothEntry) (*service.ImportStats, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(listID, "listID"); err != nil {
		return nil, err
	}
	if err := validateEntries(entries); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stats, err := s.saveImportedBoothsTx(ctx, tx, listID, entries)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	slog.Info("Imported booths",
		"list_id", listID,
		"new", stats.NewBooths,
		"merged", stats.MergedBooths,
		"products", stats.Products)

	return stats, nil
}

func (s *SQLiteStorage) saveImportedBoothsTx(ctx context.Context, db dbtx, listID int64, entries []model.BoothEntry) (*service.ImportStats, error) {
	if _, err := s.getListTx(ctx, db, listID); err != nil {
		return nil, err
	}

	stats := &service.ImportStats{}

	for _, entry := range entries {
		existing, err := s.getBoothByNumberTx(ctx, db, listID, entry.Number)
		switch {
		case err == nil:
			if err := s.mergeBoothTx(ctx, db, existing, &entry); err != nil {
				return nil, err
			}
			stats.MergedBooths++
		case errors.Is(err, common.ErrNotFound):
			if err := s.insertBoothTx(ctx, db, listID, &entry); err != nil {
				return nil, err
			}
			stats.NewBooths++
		default:
			return nil, err
		}
		stats.Products += len(entry.Products)
	}

	return stats, nil
}

func (s *SQLiteStorage) insertBoothTx(ctx context.Context, db dbtx, listID int64, entry *model.BoothEntry) error {
	name := entry.Name
	if name == "" {
		name = model.UnnamedBooth
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO booths (list_id, type, number, name, zone, note)
		VALUES (?, ?, ?, ?, ?, ?)
	`, listID, string(entry.Type), entry.Number, name, entry.Zone, entry.Note)
	if err != nil {
		return fmt.Errorf("failed to insert booth %s: %w", entry.Number, err)
	}

	boothID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read booth id: %w", err)
	}

	return s.insertProductsTx(ctx, db, boothID, entry.Products)
}

// mergeBoothTx folds a re-imported entry into the stored booth with the
// same number. A placeholder name yields to a real one; empty zone and
// note fill in from the entry; products always append.
func (s *SQLiteStorage) mergeBoothTx(ctx context.Context, db dbtx, existing *model.BoothRecord, entry *model.BoothEntry) error {
	name := existing.Name
	if entry.Name != "" && (name == "" || name == model.UnnamedBooth) {
		name = entry.Name
	}
	zone := existing.Zone
	if zone == "" {
		zone = entry.Zone
	}
	note := existing.Note
	if note == "" {
		note = entry.Note
	}

	if name != existing.Name || zone != existing.Zone || note != existing.Note {
		if _, err := db.ExecContext(ctx, `
			UPDATE booths SET name = ?, zone = ?, note = ? WHERE id = ?
		`, name, zone, note, existing.ID); err != nil {
			return fmt.Errorf("failed to merge booth %s: %w", existing.Number, err)
		}
	}

	return s.insertProductsTx(ctx, db, existing.ID, entry.Products)
}

func (s *SQLiteStorage) insertProductsTx(ctx context.Context, db dbtx, boothID int64, products []model.ProductRecord) error {
	for _, p := range products {
		status := p.Status
		if status == "" {
			status = model.StatusPending
		}
		if _, err := db.ExecContext(ctx, `
			INSERT INTO products (booth_id, name, price, quantity, status, status_note)
			VALUES (?, ?, ?, ?, ?, ?)
		`, boothID, p.Name, p.Price, p.Quantity, string(status), p.StatusNote); err != nil {
			return fmt.Errorf("failed to insert product %q: %w", p.Name, err)
		}
	}
	return nil
}

// GetBooths returns every booth in a list with its products attached.
func (s *SQLiteStorage) GetBooths(ctx context.Context, listID int64) ([]model.BoothRecord, error) {
	return s.GetBoothsFiltered(ctx, listID, service.BoothFilter{})
}

// GetBoothsFiltered returns a list's booths narrowed by the filter.
func (s *SQLiteStorage) GetBoothsFiltered(ctx context.Context, listID int64, filter service.BoothFilter) ([]model.BoothRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(listID, "listID"); err != nil {
		return nil, err
	}
	return s.getBoothsTx(ctx, s.db, listID, filter)
}

func (s *SQLiteStorage) getBoothsTx(ctx context.Context, db dbtx, listID int64, filter service.BoothFilter) ([]model.BoothRecord, error) {
	query := `
		SELECT id, list_id, type, number, name, zone, note, pinned, manual_order, created_at
		FROM booths WHERE list_id = ?`
	args := []any{listID}

	if filter.Type != "" {
		query += ` AND type = ?`
		args = append(args, string(filter.Type))
	}
	if filter.Pinned != nil {
		query += ` AND pinned = ?`
		args = append(args, *filter.Pinned)
	}
	query += ` ORDER BY id`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query booths: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var booths []model.BoothRecord
	byID := make(map[int64]int)
	for rows.Next() {
		b, err := scanBooth(rows)
		if err != nil {
			return nil, err
		}
		byID[b.ID] = len(booths)
		booths = append(booths, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read booths: %w", err)
	}
	if len(booths) == 0 {
		return booths, nil
	}

	products, err := s.getProductsForListTx(ctx, db, listID)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if idx, ok := byID[p.BoothID]; ok {
			booths[idx].Products = append(booths[idx].Products, p)
		}
	}

	return booths, nil
}

// GetBoothByNumber retrieves one booth in a list by its exact number.
func (s *SQLiteStorage) GetBoothByNumber(ctx context.Context, listID int64, number string) (*model.BoothRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(listID, "listID"); err != nil {
		return nil, err
	}
	if err := validateString(number, "number"); err != nil {
		return nil, err
	}
	return s.getBoothByNumberTx(ctx, s.db, listID, number)
}

func (s *SQLiteStorage) getBoothByNumberTx(ctx context.Context, db dbtx, listID int64, number string) (*model.BoothRecord, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, list_id, type, number, name, zone, note, pinned, manual_order, created_at
		FROM booths WHERE list_id = ? AND number = ?
	`, listID, number)

	b, err := scanBooth(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("booth %s: %w", number, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	products, err := s.getProductsForBoothTx(ctx, db, b.ID)
	if err != nil {
		return nil, err
	}
	b.Products = products
	return b, nil
}

// DeleteBooth removes a booth and its products.
func (s *SQLiteStorage) DeleteBooth(ctx context.Context, boothID int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(boothID, "boothID"); err != nil {
		return err
	}
	return s.deleteBoothTx(ctx, s.db, boothID)
}

func (s *SQLiteStorage) deleteBoothTx(ctx context.Context, db dbtx, boothID int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM booths WHERE id = ?`, boothID)
	if err != nil {
		return fmt.Errorf("failed to delete booth: %w", err)
	}
	return requireRowAffected(res, fmt.Sprintf("booth %d", boothID))
}

// UpdateBoothPinned sets or clears a booth's pinned flag.
func (s *SQLiteStorage) UpdateBoothPinned(ctx context.Context, boothID int64, pinned bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(boothID, "boothID"); err != nil {
		return err
	}
	return s.updateBoothPinnedTx(ctx, s.db, boothID, pinned)
}

func (s *SQLiteStorage) updateBoothPinnedTx(ctx context.Context, db dbtx, boothID int64, pinned bool) error {
	res, err := db.ExecContext(ctx, `UPDATE booths SET pinned = ? WHERE id = ?`, pinned, boothID)
	if err != nil {
		return fmt.Errorf("failed to update pin: %w", err)
	}
	return requireRowAffected(res, fmt.Sprintf("booth %d", boothID))
}

// UpdateBoothManualOrder sets a booth's manual position, or clears it when
// position is nil.
func (s *SQLiteStorage) UpdateBoothManualOrder(ctx context.Context, boothID int64, position *int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(boothID, "boothID"); err != nil {
		return err
	}
	return s.updateBoothManualOrderTx(ctx, s.db, boothID, position)
}

func (s *SQLiteStorage) updateBoothManualOrderTx(ctx context.Context, db dbtx, boothID int64, position *int) error {
	res, err := db.ExecContext(ctx, `UPDATE booths SET manual_order = ? WHERE id = ?`, position, boothID)
	if err != nil {
		return fmt.Errorf("failed to update manual order: %w", err)
	}
	return requireRowAffected(res, fmt.Sprintf("booth %d", boothID))
}

// UpdateBoothNote replaces a booth's note.
func (s *SQLiteStorage) UpdateBoothNote(ctx context.Context, boothID int64, note string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(boothID, "boothID"); err != nil {
		return err
	}
	return s.updateBoothNoteTx(ctx, s.db, boothID, note)
}

func (s *SQLiteStorage) updateBoothNoteTx(ctx context.Context, db dbtx, boothID int64, note string) error {
	res, err := db.ExecContext(ctx, `UPDATE booths SET note = ? WHERE id = ?`, note, boothID)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return requireRowAffected(res, fmt.Sprintf("booth %d", boothID))
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBooth(row scanner) (*model.BoothRecord, error) {
	var (
		b           model.BoothRecord
		boothType   string
		manualOrder sql.NullInt64
	)
	err := row.Scan(&b.ID, &b.ListID, &boothType, &b.Number, &b.Name,
		&b.Zone, &b.Note, &b.Pinned, &manualOrder, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan booth: %w", err)
	}

	b.Type = model.VenueType(boothType)
	if manualOrder.Valid {
		pos := int(manualOrder.Int64)
		b.ManualOrder = &pos
	}
	return &b, nil
}
