package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukirin/cplist/internal/common"
	"github.com/yukirin/cplist/internal/model"
	"github.com/yukirin/cplist/internal/service"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func entry(number, name string, products ...model.ProductRecord) model.BoothEntry {
	return model.BoothEntry{
		Type:     model.VenueDoujin,
		Number:   number,
		Name:     name,
		Products: products,
	}
}

func product(name string, price float64, qty int) model.ProductRecord {
	return model.ProductRecord{
		Name:     name,
		Price:    price,
		Quantity: qty,
		Status:   model.StatusPending,
	}
}

func TestListLifecycle(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	list, err := store.CreateList(ctx, "CP29")
	require.NoError(t, err)
	assert.Equal(t, "CP29", list.Name)
	assert.Positive(t, list.ID)
	assert.False(t, list.CreatedAt.IsZero())

	byName, err := store.GetListByName(ctx, "CP29")
	require.NoError(t, err)
	assert.Equal(t, list.ID, byName.ID)

	require.NoError(t, store.RenameList(ctx, list.ID, "CP30"))
	renamed, err := store.GetList(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, "CP30", renamed.Name)

	require.NoError(t, store.DeleteList(ctx, list.ID))
	_, err = store.GetList(ctx, list.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCreateListDuplicateName(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.CreateList(ctx, "CP29")
	require.NoError(t, err)

	_, err = store.CreateList(ctx, "CP29")
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)
}

func TestSaveImportedBooths(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	list, err := store.CreateList(ctx, "CP29")
	require.NoError(t, err)

	stats, err := store.SaveImportedBooths(ctx, list.ID, []model.BoothEntry{
		entry("壹A-01", "萌新社", product("公式集", 50, 2)),
		entry("壹A-02", ""),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Products)
	assert.Equal(t, 2, stats.NewBooths)
	assert.Equal(t, 0, stats.MergedBooths)

	booths, err := store.GetBooths(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, booths, 2)
	assert.Equal(t, "萌新社", booths[0].Name)
	assert.Equal(t, model.UnnamedBooth, booths[1].Name, "missing names get the placeholder")
	require.Len(t, booths[0].Products, 1)
	assert.Equal(t, 50.0, booths[0].Products[0].Price)
	assert.Equal(t, 2, booths[0].Products[0].Quantity)
}

func TestSaveImportedBoothsMerges(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	list, err := store.CreateList(ctx, "CP29")
	require.NoError(t, err)

	_, err = store.SaveImportedBooths(ctx, list.ID, []model.BoothEntry{
		entry("壹A-01", "", product("公式集", 50, 1)),
	})
	require.NoError(t, err)

	stats, err := store.SaveImportedBooths(ctx, list.ID, []model.BoothEntry{
		entry("壹A-01", "萌新社", product("徽章", 10, 1)),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.NewBooths)
	assert.Equal(t, 1, stats.MergedBooths)

	b, err := store.GetBoothByNumber(ctx, list.ID, "壹A-01")
	require.NoError(t, err)
	assert.Equal(t, "萌新社", b.Name, "placeholder yields to the real name")
	require.Len(t, b.Products, 2)
	assert.Equal(t, "公式集", b.Products[0].Name)
	assert.Equal(t, "徽章", b.Products[1].Name)
}

func TestSaveImportedBoothsKeepsExistingName(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	list, err := store.CreateList(ctx, "CP29")
	require.NoError(t, err)

	_, err = store.SaveImportedBooths(ctx, list.ID, []model.BoothEntry{
		entry("壹A-01", "原名"),
	})
	require.NoError(t, err)

	_, err = store.SaveImportedBooths(ctx, list.ID, []model.BoothEntry{
		entry("壹A-01", "新名"),
	})
	require.NoError(t, err)

	b, err := store.GetBoothByNumber(ctx, list.ID, "壹A-01")
	require.NoError(t, err)
	assert.Equal(t, "原名", b.Name)
}

func TestSaveImportedBoothsUnknownList(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.SaveImportedBooths(context.Background(), 42, []model.BoothEntry{
		entry("壹A-01", "社"),
	})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveImportedBoothsRejectsInvalidEntries(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	list, err := store.CreateList(ctx, "CP29")
	require.NoError(t, err)

	_, err = store.SaveImportedBooths(ctx, list.ID, nil)
	assert.ErrorIs(t, err, ErrNilParameter)

	_, err = store.SaveImportedBooths(ctx, list.ID, []model.BoothEntry{
		{Type: "mystery", Number: "壹A-01"},
	})
	assert.ErrorIs(t, err, ErrInvalidEntry)

	// Numbers that match none of the venue grammars never reach the
	// database, no matter what type they claim.
	_, err = store.SaveImportedBooths(ctx, list.ID, []model.BoothEntry{
		{Type: model.VenueDoujin, Number: "LOL123"},
	})
	assert.ErrorIs(t, err, ErrInvalidEntry)

	// A well-formed number still has to agree with its declared type.
	_, err = store.SaveImportedBooths(ctx, list.ID, []model.BoothEntry{
		{Type: model.VenueCreative, Number: "壹A-01"},
	})
	assert.ErrorIs(t, err, ErrInvalidEntry)
}

func TestUpdateBoothPinnedAndManualOrder(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	list, err := store.CreateList(ctx, "CP29")
	require.NoError(t, err)
	_, err = store.SaveImportedBooths(ctx, list.ID, []model.BoothEntry{
		entry("壹A-01", "社"),
	})
	require.NoError(t, err)

	b, err := store.GetBoothByNumber(ctx, list.ID, "壹A-01")
	require.NoError(t, err)
	assert.False(t, b.Pinned)
	assert.Nil(t, b.ManualOrder)

	require.NoError(t, store.UpdateBoothPinned(ctx, b.ID, true))
	pos := 3
	require.NoError(t, store.UpdateBoothManualOrder(ctx, b.ID, &pos))

	b, err = store.GetBoothByNumber(ctx, list.ID, "壹A-01")
	require.NoError(t, err)
	assert.True(t, b.Pinned)
	require.NotNil(t, b.ManualOrder)
	assert.Equal(t, 3, *b.ManualOrder)

	require.NoError(t, store.UpdateBoothManualOrder(ctx, b.ID, nil))
	b, err = store.GetBoothByNumber(ctx, list.ID, "壹A-01")
	require.NoError(t, err)
	assert.Nil(t, b.ManualOrder)
}

func TestUpdateProductStatus(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	list, err := store.CreateList(ctx, "CP29")
	require.NoError(t, err)
	_, err = store.SaveImportedBooths(ctx, list.ID, []model.BoothEntry{
		entry("壹A-01", "社", product("公式集", 50, 1)),
	})
	require.NoError(t, err)

	b, err := store.GetBoothByNumber(ctx, list.ID, "壹A-01")
	require.NoError(t, err)
	require.Len(t, b.Products, 1)

	p := b.Products[0]
	require.NoError(t, store.UpdateProductStatus(ctx, p.ID, model.StatusBought, "排队半小时"))

	b, err = store.GetBoothByNumber(ctx, list.ID, "壹A-01")
	require.NoError(t, err)
	assert.Equal(t, model.StatusBought, b.Products[0].Status)
	assert.Equal(t, "排队半小时", b.Products[0].StatusNote)

	err = store.UpdateProductStatus(ctx, p.ID, "teleported", "")
	assert.Error(t, err)

	err = store.UpdateProductStatus(ctx, 9999, model.StatusBought, "")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestProductAndNoteManagement(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	list, err := store.CreateList(ctx, "CP29")
	require.NoError(t, err)
	_, err = store.SaveImportedBooths(ctx, list.ID, []model.BoothEntry{
		entry("壹A-01", "社", product("公式集", 50, 1)),
	})
	require.NoError(t, err)

	b, err := store.GetBoothByNumber(ctx, list.ID, "壹A-01")
	require.NoError(t, err)

	require.NoError(t, store.AddProduct(ctx, b.ID, product("徽章", 10, 3)))
	require.NoError(t, store.UpdateBoothNote(ctx, b.ID, "先到先得"))

	b, err = store.GetBoothByNumber(ctx, list.ID, "壹A-01")
	require.NoError(t, err)
	assert.Equal(t, "先到先得", b.Note)
	require.Len(t, b.Products, 2)
	assert.Equal(t, "徽章", b.Products[1].Name)
	assert.Equal(t, 3, b.Products[1].Quantity)

	require.NoError(t, store.DeleteProduct(ctx, b.Products[0].ID))
	b, err = store.GetBoothByNumber(ctx, list.ID, "壹A-01")
	require.NoError(t, err)
	require.Len(t, b.Products, 1)
	assert.Equal(t, "徽章", b.Products[0].Name)

	err = store.DeleteProduct(ctx, 9999)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetBoothsFiltered(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	list, err := store.CreateList(ctx, "CP29")
	require.NoError(t, err)
	_, err = store.SaveImportedBooths(ctx, list.ID, []model.BoothEntry{
		entry("壹A-01", "社一"),
		{Type: model.VenueEnterprise, Number: "CPA01", Name: "某企业"},
	})
	require.NoError(t, err)

	booths, err := store.GetBoothsFiltered(ctx, list.ID, service.BoothFilter{Type: model.VenueEnterprise})
	require.NoError(t, err)
	require.Len(t, booths, 1)
	assert.Equal(t, "CPA01", booths[0].Number)
}

func TestDeleteBoothCascadesProducts(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	list, err := store.CreateList(ctx, "CP29")
	require.NoError(t, err)
	_, err = store.SaveImportedBooths(ctx, list.ID, []model.BoothEntry{
		entry("壹A-01", "社", product("公式集", 50, 1)),
	})
	require.NoError(t, err)

	b, err := store.GetBoothByNumber(ctx, list.ID, "壹A-01")
	require.NoError(t, err)
	require.NoError(t, store.DeleteBooth(ctx, b.ID))

	booths, err := store.GetBooths(ctx, list.ID)
	require.NoError(t, err)
	assert.Empty(t, booths)
}

func TestBeginTxRollback(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	list, err := store.CreateList(ctx, "CP29")
	require.NoError(t, err)

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.SaveImportedBooths(ctx, list.ID, []model.BoothEntry{
		entry("壹A-01", "社"),
	})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	booths, err := store.GetBooths(ctx, list.ID)
	require.NoError(t, err)
	assert.Empty(t, booths)
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))
}
