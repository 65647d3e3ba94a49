// Package domain holds the location analysis types: roof potential for a
// coordinate. The geometry is heuristic; no shading ray-tracing or roof
// segmentation is performed.
package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidCoordinates = errors.New("invalid_coordinates")
	ErrUpstream           = errors.New("upstream_unavailable")
)

type AnalyzeRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RoofSection is one plane of a roof.
type RoofSection struct {
	AreaM2 float64 `json:"area"`
	// Azimuth in degrees: 0=N, 90=E, 180=S, 270=W.
	Azimuth float64 `json:"azimuth"`
	// Tilt in degrees from horizontal.
	Tilt float64 `json:"tilt"`
}

type AnalyzeResponse struct {
	RoofAreaTotalM2 float64       `json:"roof_area_total"`
	RoofSections    []RoofSection `json:"roof_sections"`
	// ShadingFactorMonthly has 12 values, 1.0 = no shade.
	ShadingFactorMonthly []float64 `json:"shading_factor_monthly"`
	ShadingFactorAnnual  float64   `json:"shading_factor_annual"`
	// MaxKwp is the largest PV system the usable area supports.
	MaxKwp float64 `json:"max_kwp"`
	// OptimalTilt is the PVGIS-recommended panel inclination.
	OptimalTilt float64 `json:"optimal_tilt"`
}

type Service interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error)
}
