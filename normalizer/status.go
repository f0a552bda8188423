package normalizer

// Qualitative labels shown on the dashboard cards.
const (
	StatusOptimal  = "Optimal"
	StatusGood     = "Good"
	StatusModerate = "Moderate"
	StatusHigh     = "High"
	StatusLow      = "Low"
	StatusUnknown  = "Unknown"
)

// Card colours, one per status.
const (
	ColorGreen  = "text-green-600"
	ColorBlue   = "text-blue-600"
	ColorYellow = "text-yellow-600"
	ColorRed    = "text-red-600"
)

// Thresholds, Celsius / percent / mm per hour / m/s.
const (
	tempHighC       = 30.0
	tempLowC        = 15.0
	humidityHigh    = 80.0
	humidityLow     = 30.0
	rainLightMM     = 2.5
	rainHeavyMM     = 7.6
	windModerateMPS = 5.5
	windHighMPS     = 10.8
)

// TemperatureStatus buckets a Celsius value: High above 30, Low below 15.
func TemperatureStatus(c float64) string {
	switch {
	case c > tempHighC:
		return StatusHigh
	case c < tempLowC:
		return StatusLow
	default:
		return StatusOptimal
	}
}

func HumidityStatus(pct float64) string {
	switch {
	case pct > humidityHigh:
		return StatusHigh
	case pct < humidityLow:
		return StatusLow
	default:
		return StatusGood
	}
}

// RainfallStatus buckets the last hour's rainfall in millimetres.
func RainfallStatus(mm float64) string {
	switch {
	case mm > rainHeavyMM:
		return StatusHigh
	case mm >= rainLightMM:
		return StatusModerate
	default:
		return StatusLow
	}
}

func WindStatus(mps float64) string {
	switch {
	case mps > windHighMPS:
		return StatusHigh
	case mps > windModerateMPS:
		return StatusModerate
	default:
		return StatusGood
	}
}

// StatusColor returns the colour bound to a status. Anything that is not
// Optimal, Good or Moderate is red.
func StatusColor(status string) string {
	switch status {
	case StatusOptimal:
		return ColorGreen
	case StatusGood:
		return ColorBlue
	case StatusModerate:
		return ColorYellow
	default:
		return ColorRed
	}
}
