// Package overpass supplies building footprints and nearby obstacles for a
// coordinate. The live Overpass query is not wired up; the Static client
// returns a fixed neighbourhood (target building, garage, one tree) shaped
// like a real `out geom` response, which is all the downstream roof
// heuristics consume.
package overpass

import "context"

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lon"`
}

// Element is one OSM way or node from an Overpass response.
type Element struct {
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Tags     map[string]string `json:"tags,omitempty"`
	Geometry []LatLng          `json:"geometry,omitempty"`
	Lat      float64           `json:"lat,omitempty"`
	Lng      float64           `json:"lon,omitempty"`
}

// IsBuilding reports whether the element is a building footprint polygon.
func (e Element) IsBuilding() bool {
	if e.Type != "way" {
		return false
	}
	_, ok := e.Tags["building"]
	return ok && len(e.Geometry) > 2
}

type Client interface {
	// Elements returns buildings within buildingRadius meters and
	// obstacles (buildings, trees) within obstacleRadius meters.
	Elements(ctx context.Context, lat, lng float64, buildingRadiusM, obstacleRadiusM int) ([]Element, error)
}

type Static struct{}

func NewStatic() *Static { return &Static{} }

func (s *Static) Elements(_ context.Context, lat, lng float64, _, _ int) ([]Element, error) {
	return []Element{
		{
			Type: "way",
			ID:   12345678,
			Tags: map[string]string{"building": "residential"},
			Geometry: []LatLng{
				{Lat: lat + 0.00005, Lng: lng - 0.00005},
				{Lat: lat + 0.00005, Lng: lng + 0.00005},
				{Lat: lat - 0.00005, Lng: lng + 0.00005},
				{Lat: lat - 0.00005, Lng: lng - 0.00005},
				{Lat: lat + 0.00005, Lng: lng - 0.00005},
			},
		},
		{
			Type: "way",
			ID:   98765432,
			Tags: map[string]string{"building": "garage"},
			Geometry: []LatLng{
				{Lat: lat + 0.00020, Lng: lng - 0.00010},
				{Lat: lat + 0.00020, Lng: lng - 0.00005},
				{Lat: lat + 0.00015, Lng: lng - 0.00005},
				{Lat: lat + 0.00015, Lng: lng - 0.00010},
				{Lat: lat + 0.00020, Lng: lng - 0.00010},
			},
		},
		{
			Type: "node",
			ID:   11223344,
			Lat:  lat - 0.00010,
			Lng:  lng + 0.00015,
			Tags: map[string]string{"natural": "tree", "height": "15"},
		},
	}, nil
}
