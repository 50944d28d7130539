// Package backend picks the table service from configuration.
package backend

import (
	"context"
	"fmt"

	"yt-tracker/internal/adapters/postgres"
	"yt-tracker/internal/adapters/sheets"
	"yt-tracker/internal/config"
	"yt-tracker/internal/domain"
	"yt-tracker/internal/logger"
	"yt-tracker/internal/storage/sqlite"
)

// Open returns the configured TableProvider and a func releasing whatever
// it holds. readOnly narrows the Sheets scopes for the viewer.
func Open(ctx context.Context, cfg *config.Config, readOnly bool, log logger.Logger) (domain.TableProvider, func(), error) {
	switch cfg.Backend {
	case config.BackendSheets, "":
		return sheets.NewServiceAccountProvider(cfg.CredentialsFile, readOnly, log), func() {}, nil

	case config.BackendSQLite:
		db, err := sqlite.NewSqliteDB(cfg.TableDSN, log)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite: %w", err)
		}
		return sqlite.NewProvider(db), func() {
			if err := db.Close(); err != nil {
				log.Error("sqlite", "close", err)
			}
		}, nil

	case config.BackendPostgres:
		pool, err := postgres.InitDB(ctx, cfg.TableDSN, log)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		return postgres.NewProvider(pool), pool.Close, nil
	}

	return nil, nil, fmt.Errorf("%w: unknown TABLE_BACKEND %q", config.ErrConfig, cfg.Backend)
}
