// Package domain holds the consumption estimator types. The estimator is a
// heuristic: it sizes a household's yearly demand from a handful of inputs
// and spreads it over standard profiles. It is not a smart-meter forecast.
package domain

import (
	"context"
	"errors"
)

// HoursPerYear is the length of a full non-leap hourly profile.
const HoursPerYear = 8760

var (
	ErrInvalidOccupants     = errors.New("invalid_occupants")
	ErrInvalidArea          = errors.New("invalid_area_m2")
	ErrInvalidHourlyProfile = errors.New("invalid_hourly_profile")
)

// ManualInput are the user-supplied household characteristics.
type ManualInput struct {
	Occupants   int     `json:"occupants"`
	AreaM2      float64 `json:"area_m2"`
	HasEV       bool    `json:"has_ev"`
	HasHeatPump bool    `json:"has_heat_pump"`
	// CUPS is the Spanish supply-point code. Informational only.
	CUPS string `json:"cups,omitempty"`
}

// Estimate is the predicted consumption for one year.
type Estimate struct {
	AnnualKwh float64 `json:"annual_kwh"`
	// MonthlyKwh has 12 values, January first.
	MonthlyKwh []float64 `json:"monthly_kwh"`
	// HourlyProfile has 8760 hourly kWh values.
	HourlyProfile []float64 `json:"hourly_profile"`
	PeakPowerKw   float64   `json:"peak_power_kw"`
}

type Service interface {
	PredictManual(ctx context.Context, in ManualInput) (*Estimate, error)
	// PredictFromHourly derives an estimate from a measured 8760-value
	// hourly profile (e.g. an uploaded meter export).
	PredictFromHourly(ctx context.Context, hourly []float64) (*Estimate, error)
}
