package geocoding

//go:generate go run go.uber.org/mock/mockgen -source=./client.go -destination=./mocks/client_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"parkspot/config"
	"parkspot/infras/otel"
	"parkspot/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

// Coordinates is the resolved center of a free-text location query.
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Geocoder resolves a free-text query to coordinates. It only seeds a search
// center; failures here never affect booking or capacity state.
type Geocoder interface {
	Resolve(ctx context.Context, query string) (Coordinates, error)
}

type clientImpl struct {
	baseURL    string
	httpClient *http.Client
	otel       otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Geocoder {
	return &clientImpl{
		baseURL: cfg.External.Geocoding.BaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.External.Geocoding.TimeoutSeconds) * time.Second,
		},
		otel: otl,
	}
}

func (c *clientImpl) Resolve(ctx context.Context, query string) (res Coordinates, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".geocoding.Resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	endpoint := fmt.Sprintf("%s/search?q=%s", c.baseURL, url.QueryEscape(query))
	scope.SetAttribute("geocoding.query", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return res, fmt.Errorf("failed to create geocoding request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("geocoding request failed")

		return res, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return res, fmt.Errorf("geocoding returned unexpected status %d", resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return res, fmt.Errorf("failed to decode geocoding response: %w", err)
	}

	return res, nil
}
