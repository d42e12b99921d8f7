package api

// ProcessRequest is the body of POST /api/process.
type ProcessRequest struct {
	Text string `json:"text" binding:"required"`
}

// ProcessResponse reports the routed work plus the carbon profile of the
// region it was routed to.
type ProcessResponse struct {
	Result          string  `json:"result"`
	TaskType        string  `json:"task_type"`
	Region          string  `json:"region"`
	CarbonIntensity float64 `json:"carbon_intensity"`
	CarbonSaved     string  `json:"carbon_saved"`
	ResponseTime    float64 `json:"response_time"`
}

// FuelMixEntry is one fuel's row in a region response.
type FuelMixEntry struct {
	Fuel       string  `json:"fuel"`
	Generation float64 `json:"generation"`
	Share      float64 `json:"share"`
}

// RankingEntry is one region in the greenest-first ranking. FuelMix is
// truncated to the top fuel sources.
type RankingEntry struct {
	Rank               int            `json:"rank"`
	RegionID           string         `json:"region_id"`
	BalancingAuthority string         `json:"balancing_authority"`
	CarbonIntensity    float64        `json:"carbon_intensity"`
	RenewableShare     float64        `json:"renewable_share"`
	DataHour           string         `json:"data_hour"`
	FuelMix            []FuelMixEntry `json:"fuel_mix"`
}

// RegionResponse is the single-region carbon shape with the full fuel mix.
// A fallback response carries the sentinel balancing_authority and
// data_hour values and an empty fuel mix.
type RegionResponse struct {
	RegionID           string         `json:"region_id"`
	BalancingAuthority string         `json:"balancing_authority"`
	CarbonIntensity    float64        `json:"carbon_intensity"`
	RenewableShare     float64        `json:"renewable_share"`
	DataHour           string         `json:"data_hour"`
	FuelMix            []FuelMixEntry `json:"fuel_mix"`
}

// GreenestResponse names the lowest-carbon region right now.
type GreenestResponse struct {
	RegionID string `json:"region_id"`
	Fallback bool   `json:"fallback"`
}
