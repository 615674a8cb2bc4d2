package weather

import "strings"

// IconKind is the coarse condition class rendered by the UI.
type IconKind string

const (
	IconSun   IconKind = "sun"
	IconCloud IconKind = "cloud"
	IconRain  IconKind = "rain"
)

// Condition is one entry of the upstream "weather" array.
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// CurrentConditions is the decoded current-weather payload. Optional
// numeric fields are pointers so that absence can be told apart from zero.
type CurrentConditions struct {
	Name     string      `json:"name"`
	Sys      CurrentSys  `json:"sys"`
	Dt       int64       `json:"dt"`
	Timezone int64       `json:"timezone"`
	Weather  []Condition `json:"weather"`
	Main     CurrentMain `json:"main"`
	Wind     CurrentWind `json:"wind"`
}

type CurrentSys struct {
	Country string `json:"country"`
}

type CurrentMain struct {
	Temp     float64  `json:"temp"`
	TempMin  *float64 `json:"temp_min,omitempty"`
	TempMax  *float64 `json:"temp_max,omitempty"`
	Humidity *float64 `json:"humidity,omitempty"`
}

type CurrentWind struct {
	Speed *float64 `json:"speed,omitempty"`
}

// ForecastResponse is the decoded 3-hour forecast payload.
type ForecastResponse struct {
	List []ForecastSample `json:"list"`
}

type ForecastSample struct {
	DtTxt   string       `json:"dt_txt"`
	Main    ForecastMain `json:"main"`
	Weather []Condition  `json:"weather"`
	Pop     *float64     `json:"pop,omitempty"`
}

type ForecastMain struct {
	Temp float64 `json:"temp"`
}

// Date returns the calendar date part of the sample timestamp as given by
// the source ("YYYY-MM-DD").
func (s ForecastSample) Date() string {
	if i := strings.IndexByte(s.DtTxt, ' '); i >= 0 {
		return s.DtTxt[:i]
	}
	return s.DtTxt
}

// ConditionName returns weather[0].main or "" when the array is empty.
func (s ForecastSample) ConditionName() string {
	if len(s.Weather) == 0 {
		return ""
	}
	return s.Weather[0].Main
}

// WeatherDay is one aggregated calendar day of forecast.
type WeatherDay struct {
	WeekDayLabel string   `json:"weekDayLabel"`
	Min          int      `json:"min"`
	Max          int      `json:"max"`
	Icon         IconKind `json:"icon"`
}

// CityWeather is the normalized snapshot handed to the rendering layer.
type CityWeather struct {
	CityName           string       `json:"cityName"`
	Description        string       `json:"description"`
	DateTimeLabel      string       `json:"dateTimeLabel"`
	CurrentTemp        int          `json:"currentTemp"`
	MinTemp            int          `json:"minTemp"`
	MaxTemp            int          `json:"maxTemp"`
	PrecipitationLabel string       `json:"precipitationLabel"`
	HumidityLabel      string       `json:"humidityLabel"`
	WindLabel          string       `json:"windLabel"`
	IconKind           IconKind     `json:"iconKind"`
	Daily              []WeatherDay `json:"daily"`
}
