// Package app wires configuration, storage and the analysis context for the
// HTTP server and the command line.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"CableCheck/internal/calc/analysis"
	"CableCheck/internal/calc/catalog"
	"CableCheck/internal/calc/solver"
	"CableCheck/internal/config"
	"CableCheck/internal/metrics"
	"CableCheck/internal/repo"
)

type App struct {
	Config *config.Config
	Env    *analysis.Env
	DB     *sql.DB
	Users  repo.Repository
	Logger *zap.Logger
}

// New loads the material library and the cable catalog. Postgres is opened
// when the catalog lives there or when users is set.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, source string, users bool) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	mats, err := config.LoadMaterials(cfg.MaterialsFile)
	if err != nil {
		return nil, fmt.Errorf("materials: %w", err)
	}

	a := &App{Config: cfg, Logger: logger}
	var rows catalog.RowSource
	if users || cfg.CatalogSource == "postgres" {
		db, err := repo.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		pg := repo.NewPostgresDB(db)
		a.DB, a.Users, rows = db, pg, pg
	}

	cat, err := catalog.Load(ctx, cfg.CatalogSource, rows)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("catalog %q: %w", cfg.CatalogSource, err)
	}
	logger.Info("cable catalog loaded",
		zap.String("source", cfg.CatalogSource),
		zap.Int("diameters", cat.Len()),
		zap.Strings("materials", mats.Library.Names()),
	)

	a.Env = &analysis.Env{
		Catalog:   cat,
		Materials: mats.Library,
		Derating:  mats.Derating,
		Options:   solver.DefaultOptions(),
		Logger:    logger,
		Metrics:   metrics.NewRecorder(source),
	}
	return a, nil
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
