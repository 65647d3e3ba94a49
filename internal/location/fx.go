package location

import (
	"github.com/sunstack-labs/sunstack/internal/config"
	"github.com/sunstack-labs/sunstack/internal/location/service"
	"github.com/sunstack-labs/sunstack/internal/overpass"
	"github.com/sunstack-labs/sunstack/internal/pvgis"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("location",
	fx.Provide(
		service.NewService,
		newPVGISClient,
		func() overpass.Client { return overpass.NewStatic() },
	),
)

func newPVGISClient(cfg config.Config, log *zap.Logger) pvgis.Client {
	if cfg.PVGISLive {
		return pvgis.NewHTTPClient(cfg.PVGISBaseURL, log)
	}
	return pvgis.NewStatic()
}
