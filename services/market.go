package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"agrisphere/models"
	"agrisphere/utils"
)

const dateLayout = "2006-01-02"

var ErrMarketDataUnavailable = errors.New("market data unavailable")

// IndiaStandardTime is the market calendar when no Location is set.
var IndiaStandardTime = time.FixedZone("IST", 5*60*60+30*60)

// MarketService asks the model for mandi price rows. The model is told to
// answer with a bare JSON array; anything around the array is ignored.
type MarketService struct {
	Generator Generator
	Now       func() time.Time
	// Location decides which calendar day is "today" for the end date check.
	Location *time.Location
}

func (s *MarketService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *MarketService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return IndiaStandardTime
}

// Validate checks the form the same way the market page does.
func (s *MarketService) Validate(q models.MarketPriceQuery) error {
	if strings.TrimSpace(q.Commodity) == "" || strings.TrimSpace(q.State) == "" || q.StartDate == "" || q.EndDate == "" {
		return &ValidationError{Message: "Please select all parameters."}
	}
	start, err := time.Parse(dateLayout, q.StartDate)
	if err != nil {
		return &ValidationError{Message: "startDate must be YYYY-MM-DD"}
	}
	end, err := time.Parse(dateLayout, q.EndDate)
	if err != nil {
		return &ValidationError{Message: "endDate must be YYYY-MM-DD"}
	}
	today := s.now().In(s.location()).Format(dateLayout)
	if q.EndDate > today {
		return &ValidationError{Message: "End date cannot be in the future."}
	}
	if start.After(end) {
		return &ValidationError{Message: "Start date cannot be after end date."}
	}
	return nil
}

// Prices returns one page of rows, newest first.
func (s *MarketService) Prices(ctx context.Context, q models.MarketPriceQuery) ([]models.MarketPrice, *utils.Pagination, error) {
	if err := s.Validate(q); err != nil {
		return nil, nil, err
	}
	if s.Generator == nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMarketDataUnavailable, errNoGenerator)
	}

	text, err := s.Generator.Generate(ctx, "", marketPrompt(q), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMarketDataUnavailable, err)
	}
	rows, err := ParseMarketPrices(text)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMarketDataUnavailable, err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date > rows[j].Date
		}
		return rows[i].MarketName < rows[j].MarketName
	})

	pagination := utils.CreatePagination(len(rows), q.Page, q.PageSize)
	start, end := pagination.PageBounds(len(rows))
	return rows[start:end], pagination, nil
}

func marketPrompt(q models.MarketPriceQuery) string {
	return fmt.Sprintf(
		`Provide daily wholesale market (mandi) prices for %s in %s, India, from %s to %s. `+
			`Respond with only a JSON array, no prose and no code fences. Each element must have the keys `+
			`"date" (YYYY-MM-DD), "market_name", "variety", "min_price_per_quintal", `+
			`"max_price_per_quintal" and "modal_price_per_quintal", with prices in rupees per quintal as numbers.`,
		q.Commodity, q.State, q.StartDate, q.EndDate,
	)
}

// ParseMarketPrices extracts the JSON array from a model answer.
func ParseMarketPrices(text string) ([]models.MarketPrice, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil, errors.New("no JSON array in model output")
	}
	var rows []models.MarketPrice
	if err := json.Unmarshal([]byte(text[start:end+1]), &rows); err != nil {
		return nil, fmt.Errorf("malformed market rows: %w", err)
	}
	if rows == nil {
		rows = []models.MarketPrice{}
	}
	return rows, nil
}
