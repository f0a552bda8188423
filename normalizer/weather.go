package normalizer

import (
	"strings"
	"time"

	"agrisphere/models"
)

// Card metrics and icons.
const (
	MetricTemperature = "Temperature"
	MetricHumidity    = "Humidity"
	MetricRainfall    = "Rainfall"
	MetricWind        = "Wind Speed"

	iconThermometer = "thermometer"
	iconDroplets    = "droplets"
	iconCloudRain   = "cloud-rain"
	iconWind        = "wind"

	notAvailable = "N/A"
)

// Condition icons.
const (
	IconCloud = "cloud"
	IconRain  = "rain"
	IconStorm = "storm"
	IconSun   = "sun"
)

// ConditionIcon picks the icon for a free-text condition. Cloud wins over
// rain, rain over storm, anything else is sunny.
func ConditionIcon(condition string) string {
	c := strings.ToLower(condition)
	switch {
	case strings.Contains(c, "cloud"):
		return IconCloud
	case strings.Contains(c, "rain"):
		return IconRain
	case strings.Contains(c, "storm"):
		return IconStorm
	default:
		return IconSun
	}
}

// Current turns an OpenWeather current-weather payload into dashboard cards.
// Absent sub-fields become neutral values rather than errors.
func Current(region string, raw models.OpenWeatherCurrent) models.WeatherView {
	view := models.WeatherView{
		Region:    region,
		Condition: StatusUnknown,
	}
	if raw.Name != "" {
		view.Region = raw.Name
	}
	if len(raw.Weather) > 0 {
		view.Condition = raw.Weather[0].Main
		view.Description = raw.Weather[0].Description
	}
	view.Icon = ConditionIcon(view.Condition)

	view.Readings = []models.WeatherReading{
		temperatureReading(raw.Main.Temp),
		humidityReading(raw.Main.Humidity),
		rainfallReading(raw.Rain["1h"]),
		windReading(raw.Wind.Speed),
	}
	return view
}

// Fallback is the sentinel view served when the provider cannot be reached.
func Fallback(region string) models.WeatherView {
	unknown := func(metric, icon string) models.WeatherReading {
		return models.WeatherReading{
			Metric: metric,
			Value:  notAvailable,
			Status: StatusUnknown,
			Color:  StatusColor(StatusUnknown),
			Icon:   icon,
		}
	}
	return models.WeatherView{
		Region:    region,
		Condition: StatusUnknown,
		Icon:      IconSun,
		Readings: []models.WeatherReading{
			unknown(MetricTemperature, iconThermometer),
			unknown(MetricHumidity, iconDroplets),
			unknown(MetricRainfall, iconCloudRain),
			unknown(MetricWind, iconWind),
		},
		Fallback: true,
	}
}

func temperatureReading(kelvin *float64) models.WeatherReading {
	r := models.WeatherReading{Metric: MetricTemperature, Icon: iconThermometer}
	if kelvin == nil {
		return unavailable(r)
	}
	c := KelvinToCelsius(*kelvin)
	r.Value = formatNumber(c) + "°C"
	r.Status = TemperatureStatus(c)
	r.Color = StatusColor(r.Status)
	return r
}

func humidityReading(pct *float64) models.WeatherReading {
	r := models.WeatherReading{Metric: MetricHumidity, Icon: iconDroplets}
	if pct == nil {
		return unavailable(r)
	}
	r.Value = formatNumber(*pct) + "%"
	r.Status = HumidityStatus(*pct)
	r.Color = StatusColor(r.Status)
	return r
}

// rainfallReading takes the zero value for an absent rain block, so a dry
// hour renders as "0mm".
func rainfallReading(mm float64) models.WeatherReading {
	status := RainfallStatus(mm)
	return models.WeatherReading{
		Metric: MetricRainfall,
		Value:  formatNumber(mm) + "mm",
		Status: status,
		Color:  StatusColor(status),
		Icon:   iconCloudRain,
	}
}

func windReading(mps *float64) models.WeatherReading {
	r := models.WeatherReading{Metric: MetricWind, Icon: iconWind}
	if mps == nil {
		return unavailable(r)
	}
	r.Value = formatNumber(*mps) + " m/s"
	r.Status = WindStatus(*mps)
	r.Color = StatusColor(r.Status)
	return r
}

func unavailable(r models.WeatherReading) models.WeatherReading {
	r.Value = notAvailable
	r.Status = StatusUnknown
	r.Color = StatusColor(StatusUnknown)
	return r
}

// SlotsPerDay is the number of 3-hour forecast slots in a day.
const SlotsPerDay = 8

// Forecast keeps the first days*SlotsPerDay slots and converts Kelvin.
func Forecast(region string, raw models.OpenWeatherForecast, days int) models.SeriesView {
	if raw.City.Name != "" {
		region = raw.City.Name
	}
	entries := raw.List
	if n := days * SlotsPerDay; n >= 0 && n < len(entries) {
		entries = entries[:n]
	}

	points := make([]models.WeatherPoint, 0, len(entries))
	for _, e := range entries {
		at := time.Unix(e.Dt, 0).UTC()
		p := models.WeatherPoint{
			Date: at.Format("2006-01-02"),
			Time: at.Format("15:04"),
		}
		if e.Main.Temp != nil {
			p.Temperature = KelvinToCelsius(*e.Main.Temp)
		}
		if e.Main.Humidity != nil {
			p.Humidity = *e.Main.Humidity
		}
		if e.Wind.Speed != nil {
			p.WindSpeed = Round2(*e.Wind.Speed)
		}
		p.Condition = StatusUnknown
		if len(e.Weather) > 0 {
			p.Condition = e.Weather[0].Main
			p.Weather = e.Weather[0].Description
		}
		p.Icon = ConditionIcon(p.Condition)
		points = append(points, p)
	}
	return series(region, "forecast", points)
}

// Archive converts an Open-Meteo daily archive (already Celsius, m/s).
// Days with a missing value keep the zero value for that field.
func Archive(region string, raw models.OpenMeteoArchive) models.SeriesView {
	d := raw.Daily
	points := make([]models.WeatherPoint, 0, len(d.Time))
	for i, day := range d.Time {
		p := models.WeatherPoint{Date: day}
		if v := at(d.Temperature, i); v != nil {
			p.Temperature = Round2(*v)
		}
		if v := at(d.Humidity, i); v != nil {
			p.Humidity = Round2(*v)
		}
		if v := at(d.WindSpeed, i); v != nil {
			p.WindSpeed = Round2(*v)
		}
		p.Condition = StatusUnknown
		if i < len(d.WeatherCode) && d.WeatherCode[i] != nil {
			p.Condition = WeatherCodeCondition(*d.WeatherCode[i])
		}
		p.Weather = p.Condition
		p.Icon = ConditionIcon(p.Condition)
		points = append(points, p)
	}
	return series(region, "past", points)
}

func at(vals []*float64, i int) *float64 {
	if i < len(vals) {
		return vals[i]
	}
	return nil
}

// WeatherCodeCondition maps a WMO weather code to a short condition.
func WeatherCodeCondition(code int) string {
	switch {
	case code < 0:
		return StatusUnknown
	case code == 0:
		return "Clear Sky"
	case code <= 3:
		return "Partly Cloudy"
	case code <= 48:
		return "Foggy"
	case code <= 57:
		return "Drizzle"
	case code <= 67:
		return "Rain"
	case code <= 77:
		return "Snow"
	case code <= 82:
		return "Rain Showers"
	case code <= 86:
		return "Snow Showers"
	case code <= 99:
		return "Thunderstorm"
	default:
		return StatusUnknown
	}
}

func series(region, kind string, points []models.WeatherPoint) models.SeriesView {
	labels := make([]string, len(points))
	temps := make([]float64, len(points))
	humidity := make([]float64, len(points))
	wind := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.Date
		if p.Time != "" {
			labels[i] = p.Date + " " + p.Time
		}
		temps[i] = p.Temperature
		humidity[i] = p.Humidity
		wind[i] = p.WindSpeed
	}
	return models.SeriesView{
		Region: region,
		Kind:   kind,
		Data:   points,
		Charts: []models.ChartSeries{
			{Label: "Temperature (°C)", Color: "#14b8a6", Labels: labels, Values: temps},
			{Label: "Humidity (%)", Color: "#6366f1", Labels: labels, Values: humidity},
			{Label: "Wind Speed (m/s)", Color: "#f59e42", Labels: labels, Values: wind},
		},
	}
}
