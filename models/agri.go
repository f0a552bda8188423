package models

import "encoding/json"

// PredictionRequest is the yield prediction form. The JSON keys are the
// form field names and are forwarded unchanged to the model service.
type PredictionRequest struct {
	Crop           string   `json:"crop"`
	CropYear       *int     `json:"crop_year"`
	Season         string   `json:"season"`
	State          string   `json:"state"`
	Area           *float64 `json:"area"`
	AnnualRainfall *float64 `json:"annual_rainfall"`
	Fertilizer     *float64 `json:"fertilizer"`
	Pesticide      *float64 `json:"pesticide"`
}

// Missing lists the form fields that were left empty.
func (r PredictionRequest) Missing() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		empty bool
	}{
		{"crop", r.Crop == ""},
		{"crop_year", r.CropYear == nil},
		{"season", r.Season == ""},
		{"state", r.State == ""},
		{"area", r.Area == nil},
		{"annual_rainfall", r.AnnualRainfall == nil},
		{"fertilizer", r.Fertilizer == nil},
		{"pesticide", r.Pesticide == nil},
	} {
		if f.empty {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// PredictionResponse is the model service reply. Yield may be a number,
// a string or absent.
type PredictionResponse struct {
	Yield json.RawMessage `json:"Yield"`
}

type PredictionView struct {
	Success bool   `json:"success"`
	Yield   string `json:"yield"`
	Error   string `json:"error,omitempty"`
}

// AgriRequest is the body shared by the copilot, crop-gpt, chat and
// vision endpoints.
type AgriRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
	// ImageData is a data URL, e.g. "data:image/png;base64,...". Vision only.
	ImageData string `json:"image_data,omitempty"`
}

type AgriResponse struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId,omitempty"`
}

// PredictionRecord is a row of the prediction log.
type PredictionRecord struct {
	UserID  string
	Request PredictionRequest
	Yield   string
}
