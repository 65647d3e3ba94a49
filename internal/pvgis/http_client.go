package pvgis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// ErrUnavailable wraps any transport or upstream failure after retries are
// exhausted, so callers can map it to a 503 without inspecting causes.
var ErrUnavailable = errors.New("pvgis_unavailable")

type HTTPClient struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewHTTPClient(baseURL string, log *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

func (c *HTTPClient) Calc(ctx context.Context, req CalcRequest) (*CalcResponse, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(req.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(req.Lng, 'f', -1, 64))
	params.Set("peakpower", strconv.FormatFloat(req.PeakPowerKwp, 'f', -1, 64))
	params.Set("loss", strconv.FormatFloat(req.SystemLossPct, 'f', -1, 64))
	params.Set("outputformat", "json")
	params.Set("raddatabase", "PVGIS-SARAH2")
	params.Set("components", "1")
	params.Set("optimalinclination", boolParam(req.OptimalInclination))
	// "optimalangle" is PVGIS's name for optimal azimuth.
	params.Set("optimalangle", boolParam(req.OptimalAzimuth))

	endpoint := fmt.Sprintf("%s/PVcalc?%s", c.baseURL, params.Encode())

	var resp *CalcResponse
	operation := func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		httpResp, err := c.client.Do(httpReq)
		if err != nil {
			return err
		}
		defer httpResp.Body.Close()

		if httpResp.StatusCode >= 500 {
			return fmt.Errorf("pvgis status %d", httpResp.StatusCode)
		}
		if httpResp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("pvgis status %d", httpResp.StatusCode))
		}

		var decoded CalcResponse
		if err := json.NewDecoder(httpResp.Body).Decode(&decoded); err != nil {
			return backoff.Permanent(err)
		}
		resp = &decoded
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		c.log.Error("pvgis calc failed",
			zap.Float64("lat", req.Lat),
			zap.Float64("lng", req.Lng),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	return resp, nil
}

func boolParam(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
