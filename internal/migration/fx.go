package migration

import (
	"github.com/sunstack-labs/sunstack/internal/config"
	"github.com/sunstack-labs/sunstack/internal/seed"
	subsidydomain "github.com/sunstack-labs/sunstack/internal/subsidy/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := conn.AutoMigrate(&subsidydomain.SubsidyRecord{}); err != nil {
				return err
			}
		}

		if cfg.SeedSubsidies {
			return seed.EnsureCatalogue(conn)
		}
		return nil
	}),
)
