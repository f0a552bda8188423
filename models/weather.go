package models

// --- OpenWeather payloads ---

type OpenWeatherCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type OpenWeatherMain struct {
	Temp     *float64 `json:"temp"` // Kelvin
	Humidity *float64 `json:"humidity"`
}

type OpenWeatherWind struct {
	Speed *float64 `json:"speed"` // m/s
}

type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// OpenWeatherCurrent is the data/2.5/weather response. Rain is absent
// when no rain fell; its keys are "1h" and "3h".
type OpenWeatherCurrent struct {
	Name    string                 `json:"name"`
	Coord   Coord                  `json:"coord"`
	Weather []OpenWeatherCondition `json:"weather"`
	Main    OpenWeatherMain        `json:"main"`
	Wind    OpenWeatherWind        `json:"wind"`
	Rain    map[string]float64     `json:"rain,omitempty"`
	Dt      int64                  `json:"dt"`
}

type OpenWeatherForecastEntry struct {
	Dt      int64                  `json:"dt"`
	DtTxt   string                 `json:"dt_txt"`
	Main    OpenWeatherMain        `json:"main"`
	Weather []OpenWeatherCondition `json:"weather"`
	Wind    OpenWeatherWind        `json:"wind"`
	Rain    map[string]float64     `json:"rain,omitempty"`
}

// OpenWeatherForecast is the data/2.5/forecast response (3-hour slots).
type OpenWeatherForecast struct {
	City struct {
		Name  string `json:"name"`
		Coord Coord  `json:"coord"`
	} `json:"city"`
	List []OpenWeatherForecastEntry `json:"list"`
}

// OpenMeteoArchive is the Open-Meteo archive response for the daily
// variables the past-weather view requests.
type OpenMeteoArchive struct {
	Daily struct {
		Time        []string   `json:"time"`
		Temperature []*float64 `json:"temperature_2m_mean"`
		Humidity    []*float64 `json:"relative_humidity_2m_mean"`
		WindSpeed   []*float64 `json:"wind_speed_10m_max"`
		WeatherCode []*int     `json:"weather_code"`
	} `json:"daily"`
}

// --- View-models ---

// WeatherReading is one dashboard card.
type WeatherReading struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
	Status string `json:"status"`
	Color  string `json:"color"`
	Icon   string `json:"icon"`
}

type WeatherView struct {
	Region      string           `json:"region"`
	Condition   string           `json:"condition"`
	Description string           `json:"description"`
	Icon        string           `json:"icon"`
	Readings    []WeatherReading `json:"readings"`
	Fallback    bool             `json:"fallback"`
}

// WeatherPoint is one entry of a past or forecast series.
type WeatherPoint struct {
	Date        string  `json:"date"`
	Time        string  `json:"time,omitempty"`
	Temperature float64 `json:"temperature"` // Celsius
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Condition   string  `json:"condition"`
	Weather     string  `json:"weather"`
	Icon        string  `json:"icon"`
}

// ChartSeries is a single line of a chart.
type ChartSeries struct {
	Label  string    `json:"label"`
	Color  string    `json:"color"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type SeriesView struct {
	Region string         `json:"region"`
	Kind   string         `json:"kind"` // "past" or "forecast"
	Data   []WeatherPoint `json:"data"`
	Charts []ChartSeries  `json:"charts"`
}

type WeatherOverview struct {
	Current  WeatherView `json:"current"`
	Forecast SeriesView  `json:"forecast"`
}
