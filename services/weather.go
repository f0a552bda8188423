package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"agrisphere/dispatcher"
	"agrisphere/models"
	"agrisphere/normalizer"
)

var ErrMissingAPIKey = errors.New("weather API key not configured")

// Duration limits for the series endpoints, in days.
const (
	MaxForecastDays = 7
	MaxPastDays     = 60
	DefaultPastDays = 30
)

// WeatherService reads OpenWeather for current conditions and forecasts and
// Open-Meteo's archive for past days.
type WeatherService struct {
	Client     *dispatcher.Client
	APIKey     string
	BaseURL    string
	ArchiveURL string
	Logger     *zap.Logger
	Now        func() time.Time
}

func (s *WeatherService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *WeatherService) log() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *WeatherService) endpoint(path string) string {
	return strings.TrimRight(s.BaseURL, "/") + path
}

// Raw returns the provider's current-weather JSON untouched.
func (s *WeatherService) Raw(ctx context.Context, region string) (json.RawMessage, error) {
	if s.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	var raw json.RawMessage
	err := s.Client.GetJSON(ctx, s.endpoint("/data/2.5/weather"), url.Values{
		"q":     {region},
		"appid": {s.APIKey},
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather for %q: %w", region, err)
	}
	return raw, nil
}

func (s *WeatherService) current(ctx context.Context, region string) (models.OpenWeatherCurrent, error) {
	var raw models.OpenWeatherCurrent
	if s.APIKey == "" {
		return raw, ErrMissingAPIKey
	}
	err := s.Client.GetJSON(ctx, s.endpoint("/data/2.5/weather"), url.Values{
		"q":     {region},
		"appid": {s.APIKey},
	}, &raw)
	if err != nil {
		return raw, fmt.Errorf("failed to fetch weather for %q: %w", region, err)
	}
	return raw, nil
}

// Current returns the dashboard cards. On any failure it returns the
// fallback view together with the error, so callers always have something
// to render.
func (s *WeatherService) Current(ctx context.Context, region string) (models.WeatherView, error) {
	raw, err := s.current(ctx, region)
	if err != nil {
		return normalizer.Fallback(region), err
	}
	return normalizer.Current(region, raw), nil
}

// Forecast returns the first days of the 3-hourly forecast.
func (s *WeatherService) Forecast(ctx context.Context, region string, days int) (models.SeriesView, error) {
	if s.APIKey == "" {
		return models.SeriesView{}, ErrMissingAPIKey
	}
	var raw models.OpenWeatherForecast
	err := s.Client.GetJSON(ctx, s.endpoint("/data/2.5/forecast"), url.Values{
		"q":     {region},
		"appid": {s.APIKey},
	}, &raw)
	if err != nil {
		return models.SeriesView{}, fmt.Errorf("failed to fetch forecast for %q: %w", region, err)
	}
	return normalizer.Forecast(region, raw, days), nil
}

// Past returns one point per day for the days before today. The region is
// geocoded through the current-weather call first.
func (s *WeatherService) Past(ctx context.Context, region string, days int) (models.SeriesView, error) {
	current, err := s.current(ctx, region)
	if err != nil {
		return models.SeriesView{}, err
	}

	today := s.now().UTC()
	end := today.AddDate(0, 0, -1)
	start := today.AddDate(0, 0, -days)

	var raw models.OpenMeteoArchive
	err = s.Client.GetJSON(ctx, strings.TrimRight(s.ArchiveURL, "/")+"/v1/archive", url.Values{
		"latitude":        {strconv.FormatFloat(current.Coord.Lat, 'f', 4, 64)},
		"longitude":       {strconv.FormatFloat(current.Coord.Lon, 'f', 4, 64)},
		"start_date":      {start.Format("2006-01-02")},
		"end_date":        {end.Format("2006-01-02")},
		"daily":           {"temperature_2m_mean,relative_humidity_2m_mean,wind_speed_10m_max,weather_code"},
		"wind_speed_unit": {"ms"},
		"timezone":        {"auto"},
	}, &raw)
	if err != nil {
		return models.SeriesView{}, fmt.Errorf("failed to fetch past weather for %q: %w", region, err)
	}

	name := region
	if current.Name != "" {
		name = current.Name
	}
	return normalizer.Archive(name, raw), nil
}

// Overview fetches current conditions and the forecast concurrently. The
// current cards fall back on failure; a forecast failure is returned.
func (s *WeatherService) Overview(ctx context.Context, region string, days int) (models.WeatherOverview, error) {
	var overview models.WeatherOverview
	var g errgroup.Group

	g.Go(func() error {
		view, err := s.Current(ctx, region)
		if err != nil {
			s.log().Warn("weather_current_fallback", zap.String("region", region), zap.Error(err))
		}
		overview.Current = view
		return nil
	})
	g.Go(func() error {
		forecast, err := s.Forecast(ctx, region, days)
		if err != nil {
			return err
		}
		overview.Forecast = forecast
		return nil
	})

	if err := g.Wait(); err != nil {
		return overview, err
	}
	return overview, nil
}
