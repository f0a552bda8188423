package normalizer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrisphere/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int { return &v }

func TestKelvinToCelsius(t *testing.T) {
	assert.Equal(t, 0.0, KelvinToCelsius(273.15))
	assert.Equal(t, 26.85, KelvinToCelsius(300))
	assert.Equal(t, 24.57, KelvinToCelsius(297.721))
}

func TestTemperatureStatus(t *testing.T) {
	cases := []struct {
		celsius float64
		want    string
	}{
		{30.01, StatusHigh},
		{30, StatusOptimal},
		{22, StatusOptimal},
		{15, StatusOptimal},
		{14.99, StatusLow},
		{-5, StatusLow},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, TemperatureStatus(c.celsius), "%.2f°C", c.celsius)
	}
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, ColorGreen, StatusColor(StatusOptimal))
	assert.Equal(t, ColorBlue, StatusColor(StatusGood))
	assert.Equal(t, ColorYellow, StatusColor(StatusModerate))
	assert.Equal(t, ColorRed, StatusColor(StatusHigh))
	assert.Equal(t, ColorRed, StatusColor(StatusLow))
	assert.Equal(t, ColorRed, StatusColor(StatusUnknown))
}

func TestBuckets(t *testing.T) {
	assert.Equal(t, StatusHigh, HumidityStatus(85))
	assert.Equal(t, StatusGood, HumidityStatus(67))
	assert.Equal(t, StatusLow, HumidityStatus(20))

	assert.Equal(t, StatusLow, RainfallStatus(0))
	assert.Equal(t, StatusModerate, RainfallStatus(2.5))
	assert.Equal(t, StatusHigh, RainfallStatus(12))

	assert.Equal(t, StatusGood, WindStatus(3))
	assert.Equal(t, StatusModerate, WindStatus(6))
	assert.Equal(t, StatusHigh, WindStatus(15))
}

func TestCurrentWithoutRainRendersZero(t *testing.T) {
	var raw models.OpenWeatherCurrent
	payload := `{"name":"Kolkata","weather":[{"main":"Clouds","description":"broken clouds"}],
		"main":{"temp":305.15,"humidity":67},"wind":{"speed":3.1}}`
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	view := Current("kolkata", raw)
	require.Len(t, view.Readings, 4)

	assert.Equal(t, "Kolkata", view.Region)
	assert.Equal(t, "Clouds", view.Condition)
	assert.Equal(t, IconCloud, view.Icon)
	assert.False(t, view.Fallback)

	temp := view.Readings[0]
	assert.Equal(t, "32°C", temp.Value)
	assert.Equal(t, StatusHigh, temp.Status)
	assert.Equal(t, ColorRed, temp.Color)

	assert.Equal(t, "67%", view.Readings[1].Value)
	assert.Equal(t, StatusGood, view.Readings[1].Status)

	rain := view.Readings[2]
	assert.Equal(t, MetricRainfall, rain.Metric)
	assert.Equal(t, "0mm", rain.Value)
}

func TestCurrentWithRain(t *testing.T) {
	raw := models.OpenWeatherCurrent{
		Main: models.OpenWeatherMain{Temp: floatPtr(288.15)},
		Rain: map[string]float64{"1h": 3.25},
	}
	view := Current("pune", raw)

	assert.Equal(t, "15°C", view.Readings[0].Value)
	assert.Equal(t, StatusOptimal, view.Readings[0].Status)
	assert.Equal(t, "3.25mm", view.Readings[2].Value)
	assert.Equal(t, StatusModerate, view.Readings[2].Status)
}

func TestCurrentMissingFieldsAreNeutral(t *testing.T) {
	view := Current("nowhere", models.OpenWeatherCurrent{})

	assert.Equal(t, "nowhere", view.Region)
	assert.Equal(t, StatusUnknown, view.Condition)
	assert.Equal(t, "N/A", view.Readings[0].Value)
	assert.Equal(t, StatusUnknown, view.Readings[0].Status)
	assert.Equal(t, "N/A", view.Readings[1].Value)
	assert.Equal(t, "0mm", view.Readings[2].Value)
	assert.Equal(t, "N/A", view.Readings[3].Value)
}

func TestFallback(t *testing.T) {
	view := Fallback("kolkata")
	assert.True(t, view.Fallback)
	assert.Len(t, view.Readings, 4)
	for _, r := range view.Readings {
		assert.Equal(t, StatusUnknown, r.Status)
		assert.Equal(t, "N/A", r.Value)
	}
}

func TestConditionIcon(t *testing.T) {
	assert.Equal(t, IconCloud, ConditionIcon("Overcast Clouds"))
	assert.Equal(t, IconRain, ConditionIcon("light rain"))
	assert.Equal(t, IconStorm, ConditionIcon("Thunderstorm"))
	assert.Equal(t, IconSun, ConditionIcon("Clear"))
	assert.Equal(t, IconSun, ConditionIcon(""))
}

func TestForecastTruncatesAndConverts(t *testing.T) {
	var raw models.OpenWeatherForecast
	raw.City.Name = "Kolkata"
	for n := 0; n < 20; n++ {
		raw.List = append(raw.List, models.OpenWeatherForecastEntry{
			Dt:      1700000000 + int64(n)*3*3600,
			Main:    models.OpenWeatherMain{Temp: floatPtr(300), Humidity: floatPtr(70)},
			Wind:    models.OpenWeatherWind{Speed: floatPtr(2.346)},
			Weather: []models.OpenWeatherCondition{{Main: "Rain", Description: "light rain"}},
		})
	}

	view := Forecast("kolkata", raw, 2)
	require.Len(t, view.Data, 16)
	assert.Equal(t, "forecast", view.Kind)
	assert.Equal(t, "Kolkata", view.Region)

	p := view.Data[0]
	assert.Equal(t, "2023-11-14", p.Date)
	assert.Equal(t, "22:13", p.Time)
	assert.Equal(t, 26.85, p.Temperature)
	assert.Equal(t, 2.35, p.WindSpeed)
	assert.Equal(t, IconRain, p.Icon)

	require.Len(t, view.Charts, 3)
	assert.Len(t, view.Charts[0].Values, 16)
	assert.Equal(t, 26.85, view.Charts[0].Values[0])
}

func TestForecastShortList(t *testing.T) {
	raw := models.OpenWeatherForecast{List: make([]models.OpenWeatherForecastEntry, 3)}
	view := Forecast("x", raw, 7)
	assert.Len(t, view.Data, 3)
	assert.Equal(t, StatusUnknown, view.Data[0].Condition)
}

func TestArchive(t *testing.T) {
	var raw models.OpenMeteoArchive
	raw.Daily.Time = []string{"2026-10-01", "2026-10-02"}
	raw.Daily.Temperature = []*float64{floatPtr(28.123), nil}
	raw.Daily.Humidity = []*float64{floatPtr(80)}
	raw.Daily.WindSpeed = []*float64{floatPtr(4), floatPtr(5)}
	raw.Daily.WeatherCode = []*int{intPtr(63), nil}

	view := Archive("kolkata", raw)
	require.Len(t, view.Data, 2)
	assert.Equal(t, "past", view.Kind)

	assert.Equal(t, 28.12, view.Data[0].Temperature)
	assert.Equal(t, "Rain", view.Data[0].Condition)
	assert.Equal(t, IconRain, view.Data[0].Icon)

	assert.Zero(t, view.Data[1].Temperature)
	assert.Zero(t, view.Data[1].Humidity)
	assert.Equal(t, StatusUnknown, view.Data[1].Condition)
	assert.Equal(t, []string{"2026-10-01", "2026-10-02"}, view.Charts[0].Labels)
}

func TestWeatherCodeCondition(t *testing.T) {
	assert.Equal(t, "Clear Sky", WeatherCodeCondition(0))
	assert.Equal(t, "Partly Cloudy", WeatherCodeCondition(2))
	assert.Equal(t, "Thunderstorm", WeatherCodeCondition(95))
	assert.Equal(t, StatusUnknown, WeatherCodeCondition(120))
}

func TestYield(t *testing.T) {
	cases := map[string]string{
		``:            "N/A",
		`null`:        "N/A",
		`3.14159`:     "3.14",
		`42`:          "42",
		`"1.8 t/ha"`:  "1.8 t/ha",
		`"  "`:        "N/A",
		`[2.5]`:       "2.5",
		`[1, 2]`:      "N/A",
		`{"v": 1}`:    "N/A",
	}
	for in, want := range cases {
		assert.Equal(t, want, Yield(json.RawMessage(in)), "Yield(%s)", in)
	}
}
