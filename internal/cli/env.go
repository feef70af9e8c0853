package cli

import (
	"fmt"

	"github.com/existflow/notejar/internal/catalog"
	"github.com/existflow/notejar/internal/db"
	"github.com/existflow/notejar/internal/history"
	"github.com/existflow/notejar/internal/jar"
	"github.com/existflow/notejar/internal/logger"
	"github.com/existflow/notejar/internal/model"
)

// env bundles what every command needs: the catalog and the history store
type env struct {
	Catalog *catalog.Catalog
	Storage history.Storage
	Key     string

	db *db.DB
}

// openEnv loads the catalog and opens the configured storage
func openEnv() (*env, error) {
	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		logger.Error("Failed to load catalog", logger.F("path", cfg.CatalogFile), logger.F("error", err))
		return nil, err
	}

	e := &env{Catalog: cat, Key: cfg.StorageKey}

	if ephemeral {
		logger.Info("Using in-memory storage")
		e.Storage = history.NewMemory()
		return e, nil
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to open database", logger.F("path", cfg.DBPath), logger.F("error", err))
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	e.db = database
	e.Storage = database
	return e, nil
}

// JarOptions returns controller options wired to this environment. The
// caller supplies the scheduler.
func (e *env) JarOptions() jar.Options {
	return jar.Options{
		Storage:             e.Storage,
		Key:                 e.Key,
		Logger:              logger.WithFields(logger.F("session", sessionID)),
		CancelRevealOnReset: cfg.CancelRevealOnReset,
	}
}

// History reads the stored notes; unreadable data yields an empty list
func (e *env) History() []model.OpenedNote {
	notes, err := history.Load(e.Storage, e.Key)
	if err != nil {
		logger.Debug("History unavailable", logger.F("error", err))
	}
	return notes
}

// Close releases the database
func (e *env) Close() {
	if e.db != nil {
		_ = e.db.Close()
		logger.Info("Database closed")
	}
}
