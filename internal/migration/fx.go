package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/attestra/attestra/internal/config"
	"github.com/attestra/attestra/internal/seed"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// Non-postgres deployments manage schema out of band.
			return seed.EnsureReferenceData(conn)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := RunMigrations(sqlDB); err != nil {
			return err
		}

		return seed.EnsureReferenceData(conn)
	}),
)
