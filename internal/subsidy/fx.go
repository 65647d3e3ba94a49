package subsidy

import (
	"github.com/sunstack-labs/sunstack/internal/config"
	"github.com/sunstack-labs/sunstack/internal/subsidy/repository"
	"github.com/sunstack-labs/sunstack/internal/subsidy/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subsidy",
	fx.Provide(
		repository.NewRepository,
		service.NewService,
		fx.Annotate(
			func(cfg config.Config) string { return cfg.NationalRegion },
			fx.ResultTags(`name:"subsidy.national_region"`),
		),
	),
)
