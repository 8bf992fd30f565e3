package emotion

// Weather category keys. Categories are derived from valence/arousal
// alone, independently of the primary emotion label.
const (
	WeatherHappyHigh    = "happy_high"
	WeatherHappyLow     = "happy_low"
	WeatherNegativeHigh = "negative_high"
	WeatherNegativeLow  = "negative_low"
	WeatherNeutral      = "neutral"
)

var weatherInfos = map[string]WeatherInfo{
	WeatherHappyHigh: {
		Icon:     "☀️",
		Internal: "sunny",
		Desc:     "Bright and energized, things feel like they are flowing.",
	},
	WeatherHappyLow: {
		Icon:     "🌤️",
		Internal: "partly_sunny",
		Desc:     "A gentle, settled warmth without much turbulence.",
	},
	WeatherNegativeHigh: {
		Icon:     "⛈️",
		Internal: "storm",
		Desc:     "Charged and unsettled, a lot of energy pushing in a hard direction.",
	},
	WeatherNegativeLow: {
		Icon:     "🌧️",
		Internal: "rainy",
		Desc:     "Heavy and slow, the kind of day that asks for patience.",
	},
	WeatherNeutral: {
		Icon:     "☁️",
		Internal: "cloudy",
		Desc:     "Muted and even, neither pulling up nor down.",
	},
}

// ResolveWeatherCategory picks the weather category via ordered
// threshold checks on valence and arousal.
func ResolveWeatherCategory(valence, arousal float64) string {
	switch {
	case valence > 0.2 && arousal > 0.4:
		return WeatherHappyHigh
	case valence > 0.1 && arousal < 0.4:
		return WeatherHappyLow
	case valence < -0.1 && arousal > 0.4:
		return WeatherNegativeHigh
	case valence < 0 && arousal < 0.4:
		return WeatherNegativeLow
	default:
		return WeatherNeutral
	}
}

// ResolveWeather returns the fixed icon/label/description triple for
// the valence/arousal position.
func ResolveWeather(valence, arousal float64) WeatherInfo {
	return weatherInfos[ResolveWeatherCategory(valence, arousal)]
}
