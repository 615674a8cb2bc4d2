package weather

import "strings"

var (
	rainKeywords  = []string{"rain", "drizzle", "thunderstorm"}
	cloudKeywords = []string{"cloud", "mist", "fog", "haze", "smoke"}
)

// ClassifyIcon maps a set of upstream condition names to an IconKind.
// Rain beats cloud, anything unrecognised is sun.
func ClassifyIcon(conditions []string) IconKind {
	joined := strings.ToLower(strings.Join(conditions, " "))

	switch {
	case containsAny(joined, rainKeywords):
		return IconRain
	case containsAny(joined, cloudKeywords):
		return IconCloud
	default:
		return IconSun
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
