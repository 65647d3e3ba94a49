// Package pvgis talks to the JRC PVGIS photovoltaic performance API.
package pvgis

import "context"

// CalcRequest selects a location and system for the PVcalc endpoint.
type CalcRequest struct {
	Lat          float64
	Lng          float64
	PeakPowerKwp float64
	// SystemLossPct is the overall system loss in percent (e.g. 14).
	SystemLossPct      float64
	OptimalInclination bool
	OptimalAzimuth     bool
}

// CalcResponse is the subset of the PVcalc payload this service reads.
type CalcResponse struct {
	Inputs struct {
		Location struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Elevation float64 `json:"elevation"`
		} `json:"location"`
		MountingSystem struct {
			Fixed struct {
				Slope   AngleValue `json:"slope"`
				Azimuth AngleValue `json:"azimuth"`
			} `json:"fixed"`
		} `json:"mounting_system"`
	} `json:"inputs"`
	Outputs struct {
		Totals struct {
			Fixed struct {
				// EYearly is the average annual production in kWh.
				EYearly float64 `json:"E_y"`
				// EDaily and EMonthly are averages in kWh.
				EDaily   float64 `json:"E_d"`
				EMonthly float64 `json:"E_m"`
				// HYearly is the annual in-plane irradiation in kWh/m2.
				HYearly float64 `json:"H(i)_y"`
			} `json:"fixed"`
		} `json:"totals"`
		Monthly struct {
			Fixed []MonthlyOutput `json:"fixed"`
		} `json:"monthly"`
	} `json:"outputs"`
}

type AngleValue struct {
	Value   float64 `json:"value"`
	Optimal string  `json:"optimal"`
}

type MonthlyOutput struct {
	Month    int     `json:"month"`
	EDaily   float64 `json:"E_d"`
	EMonthly float64 `json:"E_m"`
}

// OptimalTilt returns the fixed-mount slope from a response, or the given
// default when the payload carries none.
func (r *CalcResponse) OptimalTilt(def float64) float64 {
	if r == nil || r.Inputs.MountingSystem.Fixed.Slope.Value == 0 {
		return def
	}
	return r.Inputs.MountingSystem.Fixed.Slope.Value
}

// Client fetches PV performance data for a location.
type Client interface {
	Calc(ctx context.Context, req CalcRequest) (*CalcResponse, error)
}
