package eia

// apiResponse mirrors the envelope of the EIA v2 data API.
type apiResponse struct {
	Response struct {
		Total any             `json:"total"`
		Data  []apiDataRecord `json:"data"`
	} `json:"response"`
}

// apiDataRecord is one per-fuel, per-hour generation row.
// Value is a pointer because the API reports missing generation as null.
type apiDataRecord struct {
	Period     string   `json:"period"`
	Respondent string   `json:"respondent"`
	FuelType   string   `json:"fueltype"`
	Value      *float64 `json:"value"`
	ValueUnits string   `json:"value-units"`
}
