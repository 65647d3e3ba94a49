package consumption

import (
	"github.com/sunstack-labs/sunstack/internal/consumption/domain"
	"github.com/sunstack-labs/sunstack/internal/consumption/service"
	"go.uber.org/fx"
)

var Module = fx.Module("consumption",
	fx.Provide(
		domain.DefaultParams,
		service.NewService,
	),
)
