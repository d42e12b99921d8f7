package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Nisarg-M-Patel/green-MoE/internal/api"
	"github.com/Nisarg-M-Patel/green-MoE/internal/cache"
	"github.com/Nisarg-M-Patel/green-MoE/internal/catalog"
	"github.com/Nisarg-M-Patel/green-MoE/internal/classify"
	"github.com/Nisarg-M-Patel/green-MoE/internal/eia"
	"github.com/Nisarg-M-Patel/green-MoE/internal/service"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mixedGridServer serves per-authority payloads so the fleet has a clear
// greenest region: BPAT is all hydro, everything else is all natural gas.
func mixedGridServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ba := r.URL.Query().Get("facets[respondent][]")
		fuel := "NG"
		if ba == "BPAT" {
			fuel = "WAT"
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"response": {"total": 1, "data": [
			{"period": "2026-08-26T10", "respondent": %q, "fueltype": %q, "value": 1000, "value-units": "megawatthours"}
		]}}`, ba, fuel)
	}))
}

type echoProcessor struct{}

func (echoProcessor) Process(_ context.Context, task classify.TaskType, text string) (string, error) {
	return string(task) + ": " + text, nil
}

// newTestAPI wires the real client, service, and router against a stub
// upstream, returning the assembled HTTP handler.
func newTestAPI(t *testing.T, upstream *httptest.Server) http.Handler {
	t.Helper()
	client := eia.NewClient("test-key", 5*time.Second, zerolog.Nop())
	client.SetBaseURL(upstream.URL)
	svc := service.New(catalog.Default(), client, cache.NewStore(30*time.Minute), zerolog.Nop())
	srv, err := api.NewServer(api.CORSConfig{}, svc, echoProcessor{}, zerolog.Nop())
	require.NoError(t, err)
	return srv.Handler()
}

// TestAPIFlow_Rankings walks a rankings request through the full stack and
// checks that the hydro-only region comes out on top.
func TestAPIFlow_Rankings(t *testing.T) {
	upstream := mixedGridServer(t)
	defer upstream.Close()
	handler := newTestAPI(t, upstream)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/carbon/rankings", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Rankings []api.RankingEntry `json:"rankings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	rankings := body.Rankings
	require.Len(t, rankings, catalog.Default().Len())

	assert.Equal(t, 1, rankings[0].Rank)
	assert.Equal(t, "us-west1", rankings[0].RegionID)
	assert.Equal(t, "BPAT", rankings[0].BalancingAuthority)
	assert.Equal(t, 0.0, rankings[0].CarbonIntensity)
	assert.Equal(t, 100.0, rankings[0].RenewableShare)

	for i := 1; i < len(rankings); i++ {
		assert.Equal(t, i+1, rankings[i].Rank)
		assert.GreaterOrEqual(t, rankings[i].CarbonIntensity, rankings[i-1].CarbonIntensity)
	}
}

// TestAPIFlow_RegionDetail checks a single-region request end to end,
// including the fuel mix shape.
func TestAPIFlow_RegionDetail(t *testing.T) {
	upstream := mixedGridServer(t)
	defer upstream.Close()
	handler := newTestAPI(t, upstream)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/carbon/regions/us-east4", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var region api.RegionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &region))

	assert.Equal(t, "us-east4", region.RegionID)
	assert.InDelta(t, 407.3, region.CarbonIntensity, 0.001) // 898 lb/MWh converted
	assert.Equal(t, 0.0, region.RenewableShare)
	require.Len(t, region.FuelMix, 1)
	assert.Equal(t, "ng", region.FuelMix[0].Fuel)
	assert.Equal(t, 100.0, region.FuelMix[0].Share)
}

// TestAPIFlow_Process checks the routing decision: the process endpoint
// should place work in the greenest region and report its intensity.
func TestAPIFlow_Process(t *testing.T) {
	upstream := mixedGridServer(t)
	defer upstream.Close()
	handler := newTestAPI(t, upstream)

	body := strings.NewReader(`{"text": "please fix the grammar in this sentence"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/process", body)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.ProcessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, string(classify.TaskGrammar), resp.TaskType)
	assert.Equal(t, "us-west1", resp.Region)
	assert.Equal(t, 0.0, resp.CarbonIntensity)
	assert.Contains(t, resp.Result, "please fix the grammar")
	assert.Contains(t, resp.CarbonSaved, "cleaner than fleet average")
}

// TestAPIFlow_UpstreamDown verifies the region endpoint degrades to the
// error fallback when the grid-data service is unreachable.
func TestAPIFlow_UpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()
	handler := newTestAPI(t, upstream)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/carbon/regions/us-west1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var region api.RegionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &region))

	assert.Equal(t, 350.0, region.CarbonIntensity)
	assert.Equal(t, 30.0, region.RenewableShare)
	assert.Equal(t, "error", region.DataHour)
}
