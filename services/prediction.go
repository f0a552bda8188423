package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"agrisphere/database"
	"agrisphere/dispatcher"
	"agrisphere/models"
	"agrisphere/normalizer"
)

const predictionUnavailable = "Prediction service unavailable. Please try again later."

// PredictionService forwards yield prediction forms to the model service.
type PredictionService struct {
	Client  *dispatcher.Client
	BaseURL string
	// Store is optional; when set every served prediction is logged.
	Store  database.Store
	Logger *zap.Logger
}

func (s *PredictionService) log() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

// Predict validates the form and sends exactly one POST to <BaseURL>/predict. On failure the
// returned view is the "N/A" fallback and err carries the cause.
func (s *PredictionService) Predict(ctx context.Context, userID string, req models.PredictionRequest) (models.PredictionView, error) {
	if missing := req.Missing(); len(missing) > 0 {
		return models.PredictionView{}, &ValidationError{
			Message: fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")),
		}
	}

	var resp models.PredictionResponse
	endpoint := strings.TrimRight(s.BaseURL, "/") + "/predict"
	if err := s.Client.PostJSON(ctx, endpoint, req, &resp); err != nil {
		return models.PredictionView{
			Success: false,
			Yield:   normalizer.Yield(nil),
			Error:   predictionUnavailable,
		}, err
	}

	view := models.PredictionView{Success: true, Yield: normalizer.Yield(resp.Yield)}

	if s.Store != nil {
		record := models.PredictionRecord{UserID: userID, Request: req, Yield: view.Yield}
		if err := s.Store.LogPrediction(ctx, record); err != nil {
			s.log().Warn("prediction_log_failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return view, nil
}

// Count returns how many predictions a user has been served.
func (s *PredictionService) Count(ctx context.Context, userID string) (int, error) {
	if s.Store == nil {
		return 0, errors.New("prediction log not configured")
	}
	return s.Store.CountPredictions(ctx, userID)
}
