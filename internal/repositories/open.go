package repositories

import (
	"context"
	"fmt"

	"github.com/chrisdamba/heatwavesim/internal/models"
	"github.com/chrisdamba/heatwavesim/internal/repositories/postgres"
	"github.com/chrisdamba/heatwavesim/internal/repositories/sqlite"
)

// Open connects the repository selected by cfg.Driver and ensures its
// schema exists. An empty driver disables persistence and returns nil.
func Open(ctx context.Context, cfg models.DatabaseConfig) (RunRepository, error) {
	switch cfg.Driver {
	case "":
		return nil, nil
	case "postgres":
		repo, err := postgres.Open(ctx, cfg.ConnString())
		if err != nil {
			return nil, err
		}
		return repo, nil
	case "sqlite":
		repo, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("%w: unsupported database driver %q", models.ErrInvalidConfig, cfg.Driver)
	}
}
