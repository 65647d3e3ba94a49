package service

import (
	"context"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	locationdomain "github.com/sunstack-labs/sunstack/internal/location/domain"
	"github.com/sunstack-labs/sunstack/internal/overpass"
	"github.com/sunstack-labs/sunstack/internal/pvgis"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	buildingRadiusM = 30
	obstacleRadiusM = 150

	// squareMetersPerKwp folds panel density and spacing into one rule of
	// thumb for sizing the maximum installation.
	squareMetersPerKwp = 6.5

	defaultTiltDeg        = 30.0
	defaultObstacleHeight = 10.0
	defaultSystemLossPct  = 14.0
)

// monthlyShading is the fixed shading curve applied to every analyzed roof,
// slightly heavier in winter. 1.0 means unshaded.
var monthlyShading = []float64{0.85, 0.88, 0.90, 0.92, 0.95, 0.98, 0.97, 0.96, 0.93, 0.90, 0.86, 0.83}

type ServiceParam struct {
	fx.In

	Log      *zap.Logger
	Overpass overpass.Client
	PVGIS    pvgis.Client
}

type Service struct {
	log      *zap.Logger
	overpass overpass.Client
	pvgis    pvgis.Client
}

func NewService(p ServiceParam) locationdomain.Service {
	return &Service{log: p.Log, overpass: p.Overpass, pvgis: p.PVGIS}
}

func (s *Service) Analyze(ctx context.Context, req locationdomain.AnalyzeRequest) (*locationdomain.AnalyzeResponse, error) {
	if req.Lat < -90 || req.Lat > 90 || req.Lng < -180 || req.Lng > 180 {
		return nil, locationdomain.ErrInvalidCoordinates
	}

	elements, err := s.overpass.Elements(ctx, req.Lat, req.Lng, buildingRadiusM, obstacleRadiusM)
	if err != nil {
		s.log.Error("overpass fetch", zap.Error(err))
		return nil, locationdomain.ErrUpstream
	}

	// Optimal tilt is a refinement; the analysis proceeds on the default
	// when PVGIS cannot be reached.
	tilt := defaultTiltDeg
	pvResp, err := s.pvgis.Calc(ctx, pvgis.CalcRequest{
		Lat:                req.Lat,
		Lng:                req.Lng,
		PeakPowerKwp:       1.0,
		SystemLossPct:      defaultSystemLossPct,
		OptimalInclination: true,
		OptimalAzimuth:     true,
	})
	if err != nil {
		s.log.Warn("pvgis optimal tilt unavailable, using default",
			zap.Float64("default_tilt", defaultTiltDeg),
			zap.Error(err))
	} else {
		tilt = pvResp.OptimalTilt(defaultTiltDeg)
	}

	target, obstacles := splitTargetAndObstacles(elements)
	sections := roofSections(target, tilt)

	var totalArea float64
	for _, sec := range sections {
		totalArea += sec.AreaM2
	}

	shadingMonthly, shadingAnnual := shadingFactors(sections)

	resp := &locationdomain.AnalyzeResponse{
		RoofAreaTotalM2:      round2(totalArea),
		RoofSections:         sections,
		ShadingFactorMonthly: shadingMonthly,
		ShadingFactorAnnual:  round2(shadingAnnual),
		MaxKwp:               estimateMaxKwp(totalArea),
		OptimalTilt:          tilt,
	}

	s.log.Info("location analyzed",
		zap.Float64("lat", req.Lat),
		zap.Float64("lng", req.Lng),
		zap.Float64("roof_area_m2", resp.RoofAreaTotalM2),
		zap.Int("sections", len(resp.RoofSections)),
		zap.Int("obstacles", len(obstacles)),
		zap.Float64("max_kwp", resp.MaxKwp))
	return resp, nil
}

// splitTargetAndObstacles takes the first building polygon as the analysis
// target; everything else with a position becomes an obstacle with an
// estimated height (tagged height when parseable, 10 m otherwise).
func splitTargetAndObstacles(elements []overpass.Element) (*overpass.Element, []obstacle) {
	var target *overpass.Element
	var obstacles []obstacle
	for i := range elements {
		el := elements[i]
		if target == nil && el.IsBuilding() {
			target = &elements[i]
			continue
		}
		if len(el.Geometry) > 0 || el.Lat != 0 || el.Lng != 0 {
			obstacles = append(obstacles, obstacle{Element: el, HeightM: obstacleHeight(el)})
		}
	}
	return target, obstacles
}

type obstacle struct {
	overpass.Element
	HeightM float64
}

func obstacleHeight(el overpass.Element) float64 {
	if h, ok := el.Tags["height"]; ok {
		if v, err := strconv.ParseFloat(h, 64); err == nil && v > 0 {
			return v
		}
	}
	return defaultObstacleHeight
}

// roofSections derives planes from the target footprint. Real segmentation
// needs 3D data; this heuristic splits the footprint into a south-ish and a
// north-ish plane in a 58/42 ratio, which matches typical gabled roofs.
func roofSections(target *overpass.Element, tilt float64) []locationdomain.RoofSection {
	if target == nil {
		return nil
	}
	footprint := polygonAreaM2(target.Geometry)
	if footprint <= 0 {
		return nil
	}
	return []locationdomain.RoofSection{
		{AreaM2: round2(footprint * 0.58), Azimuth: 170.0, Tilt: tilt},
		{AreaM2: round2(footprint * 0.42), Azimuth: 350.0, Tilt: tilt},
	}
}

// polygonAreaM2 applies the shoelace formula on coordinates scaled by the
// local meters-per-degree. Adequate at building scale; not survey-grade.
func polygonAreaM2(points []overpass.LatLng) float64 {
	if len(points) < 3 {
		return 0
	}
	const mPerDegLat = 111320.0
	cos := math.Cos(points[0].Lat * math.Pi / 180)

	var area float64
	n := len(points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		xi, yi := points[i].Lng*mPerDegLat*cos, points[i].Lat*mPerDegLat
		xj, yj := points[j].Lng*mPerDegLat*cos, points[j].Lat*mPerDegLat
		area += xi*yj - xj*yi
	}
	if area < 0 {
		area = -area
	}
	return area / 2
}

// shadingFactors returns the fixed monthly curve, zeroed when there is no
// roof to shade, plus its mean as the annual factor.
func shadingFactors(sections []locationdomain.RoofSection) ([]float64, float64) {
	monthly := make([]float64, len(monthlyShading))
	if len(sections) == 0 {
		return monthly, 0
	}
	copy(monthly, monthlyShading)
	var sum float64
	for _, v := range monthly {
		sum += v
	}
	return monthly, sum / float64(len(monthly))
}

func estimateMaxKwp(totalAreaM2 float64) float64 {
	if totalAreaM2 <= 0 {
		return 0
	}
	return round2(totalAreaM2 / squareMetersPerKwp)
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
