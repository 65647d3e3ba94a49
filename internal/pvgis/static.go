package pvgis

import "context"

// Static answers PVcalc requests from a canned Iberian-latitude payload.
// It is the default client so the service runs fully offline; the values
// match a typical optimal-angle response (slope 33.5 deg, azimuth -5 deg,
// 1406.5 kWh/kWp yearly).
type Static struct{}

func NewStatic() *Static { return &Static{} }

var staticMonthly = []MonthlyOutput{
	{Month: 1, EDaily: 2.5, EMonthly: 77.5},
	{Month: 2, EDaily: 3.0, EMonthly: 84.0},
	{Month: 3, EDaily: 4.0, EMonthly: 124.0},
	{Month: 4, EDaily: 4.5, EMonthly: 135.0},
	{Month: 5, EDaily: 5.0, EMonthly: 155.0},
	{Month: 6, EDaily: 5.2, EMonthly: 156.0},
	{Month: 7, EDaily: 5.1, EMonthly: 158.1},
	{Month: 8, EDaily: 4.8, EMonthly: 148.8},
	{Month: 9, EDaily: 4.2, EMonthly: 126.0},
	{Month: 10, EDaily: 3.5, EMonthly: 108.5},
	{Month: 11, EDaily: 2.8, EMonthly: 84.0},
	{Month: 12, EDaily: 2.3, EMonthly: 71.3},
}

func (s *Static) Calc(_ context.Context, req CalcRequest) (*CalcResponse, error) {
	var resp CalcResponse
	resp.Inputs.Location.Latitude = req.Lat
	resp.Inputs.Location.Longitude = req.Lng
	resp.Inputs.Location.Elevation = 100

	resp.Inputs.MountingSystem.Fixed.Slope = AngleValue{Value: 33.5, Optimal: optimalFlag(req.OptimalInclination)}
	resp.Inputs.MountingSystem.Fixed.Azimuth = AngleValue{Value: -5.0, Optimal: optimalFlag(req.OptimalAzimuth)}

	resp.Outputs.Totals.Fixed.EDaily = 3.85
	resp.Outputs.Totals.Fixed.EMonthly = 117.2
	resp.Outputs.Totals.Fixed.EYearly = 1406.5
	resp.Outputs.Totals.Fixed.HYearly = 1642.1
	resp.Outputs.Monthly.Fixed = staticMonthly
	return &resp, nil
}

func optimalFlag(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
