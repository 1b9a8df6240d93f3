package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/yukirin/cplist/internal/common"
	"github.com/yukirin/cplist/internal/config"
	"github.com/yukirin/cplist/internal/model"
	"github.com/yukirin/cplist/internal/service"
	"github.com/yukirin/cplist/internal/storage"
)

// defaultListName is the list used when the user never picked one.
const defaultListName = "默认清单"

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/cplist/cplist.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// resolveList finds the active shopping list, optionally creating it when
// it does not exist yet.
func resolveList(ctx context.Context, store service.Storage, createIfMissing bool) (*model.ShoppingList, error) {
	name := viper.GetString("list.active")
	if name == "" {
		name = defaultListName
	}

	list, err := store.GetListByName(ctx, name)
	if err == nil {
		return list, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	if !createIfMissing {
		return nil, common.NewUserError(fmt.Sprintf("清单 %q 不存在", name), err)
	}
	return store.CreateList(ctx, name)
}

// readInput reads from the named file, or stdin when the name is empty
// or "-".
func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// openInput opens the named file, or stdin when the name is empty or "-".
// The returned closer is a no-op for stdin.
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}
