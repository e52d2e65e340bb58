package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/srsedu/registrar-backend/internal/config"
	"github.com/srsedu/registrar-backend/internal/database"
)

// OpenPrincipalRepository connects to the store selected by cfg.DBDriver.
// The returned func releases the connection.
func OpenPrincipalRepository(ctx context.Context, cfg *config.Config, log zerolog.Logger) (PrincipalRepository, func(), error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return NewPostgresPrincipalRepository(pool), pool.Close, nil
	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		return NewSQLitePrincipalRepository(db), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
