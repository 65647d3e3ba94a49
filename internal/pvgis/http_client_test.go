package pvgis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const calcPayload = `{
	"inputs": {
		"location": {"latitude": 40.4, "longitude": -3.7, "elevation": 650},
		"mounting_system": {"fixed": {
			"slope": {"value": 35, "optimal": "yes"},
			"azimuth": {"value": 0, "optimal": "yes"}
		}}
	},
	"outputs": {
		"totals": {"fixed": {"E_y": 1500.5, "E_d": 4.1, "E_m": 125.0, "H(i)_y": 1800.0}},
		"monthly": {"fixed": [{"month": 1, "E_d": 2.5, "E_m": 77.5}]}
	}
}`

func TestHTTPClient_Calc(t *testing.T) {
	var gotQuery atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/PVcalc", r.URL.Path)
		gotQuery.Store(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(calcPayload))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, zap.NewNop())
	resp, err := client.Calc(context.Background(), CalcRequest{
		Lat:                40.4,
		Lng:                -3.7,
		PeakPowerKwp:       1.0,
		SystemLossPct:      14,
		OptimalInclination: true,
		OptimalAzimuth:     true,
	})
	require.NoError(t, err)

	query := gotQuery.Load().(url.Values)
	assert.Equal(t, "40.4", query.Get("lat"))
	assert.Equal(t, "json", query.Get("outputformat"))
	assert.Equal(t, "1", query.Get("optimalinclination"))
	assert.Equal(t, "1", query.Get("optimalangle"))

	assert.Equal(t, 1500.5, resp.Outputs.Totals.Fixed.EYearly)
	assert.Equal(t, 35.0, resp.OptimalTilt(30))
	require.Len(t, resp.Outputs.Monthly.Fixed, 1)
	assert.Equal(t, 77.5, resp.Outputs.Monthly.Fixed[0].EMonthly)
}

func TestHTTPClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(calcPayload))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, zap.NewNop())
	resp, err := client.Calc(context.Background(), CalcRequest{Lat: 40.4, Lng: -3.7, PeakPowerKwp: 1})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
	assert.Equal(t, 1500.5, resp.Outputs.Totals.Fixed.EYearly)
}

func TestHTTPClient_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, zap.NewNop())
	_, err := client.Calc(context.Background(), CalcRequest{Lat: 200, Lng: -3.7, PeakPowerKwp: 1})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(1), calls.Load())
}
