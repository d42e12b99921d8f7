// Package eia fetches hourly fuel-type generation data from the EIA v2 API.
package eia

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/Nisarg-M-Patel/green-MoE/internal/carbon"
)

// DefaultBaseURL is the EIA v2 electricity RTO fuel-type-data endpoint.
const DefaultBaseURL = "https://api.eia.gov/v2/electricity/rto/fuel-type-data/data/"

// recordLimit caps how many recent rows are requested per balancing
// authority. 100 rows covers several hours across all fuel types.
const recordLimit = 100

// Client issues read-only fuel-mix queries against the EIA API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates an EIA client. The timeout bounds each request
// end to end, including body read.
func NewClient(apiKey string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

// SetBaseURL overrides the endpoint. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// FuelTypeData fetches the most recent hourly generation records for one
// balancing authority, sorted by period descending at the provider.
// Null generation values are coerced to zero; selecting the most recent
// period per fuel type is the parser's job, not the client's.
func (c *Client) FuelTypeData(ctx context.Context, balancingAuthority string) ([]carbon.GenerationRecord, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("frequency", "hourly")
	params.Set("data[0]", "value")
	params.Set("facets[respondent][]", balancingAuthority)
	params.Set("sort[0][column]", "period")
	params.Set("sort[0][direction]", "desc")
	params.Set("length", strconv.Itoa(recordLimit))

	reqURL := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build EIA request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("EIA request failed for %s: %w", balancingAuthority, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error().Err(err).Msg("failed to close EIA response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("EIA API returned %s for %s", resp.Status, balancingAuthority)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read EIA response for %s: %w", balancingAuthority, err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse EIA response for %s: %w", balancingAuthority, err)
	}

	records := make([]carbon.GenerationRecord, 0, len(parsed.Response.Data))
	for _, row := range parsed.Response.Data {
		var value float64
		if row.Value != nil {
			value = *row.Value
		}
		records = append(records, carbon.GenerationRecord{
			FuelType: row.FuelType,
			Period:   row.Period,
			ValueMWh: value,
		})
	}

	c.logger.Debug().
		Str("balancing_authority", balancingAuthority).
		Int("records", len(records)).
		Msg("fetched EIA fuel-type data")

	return records, nil
}
