package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/photomatch/internal/config"
	"github.com/Veraticus/photomatch/internal/service"
	"github.com/Veraticus/photomatch/internal/storage"
)

// initStorage opens the history database and brings its schema up to date.
func initStorage(ctx context.Context, dbPath string) (service.RunHistory, error) {
	store, err := storage.NewSQLiteStorage(config.ExpandPath(dbPath))
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
