package weather

import "fmt"

const defaultCondition = "Clear"

// BuildSnapshot normalizes one (current, forecast) pair into a CityWeather.
// Missing optional fields in current fall back to defaults: humidity and
// wind 0, min/max equal to the current temperature, condition "Clear".
// The local time label uses current.Dt shifted by current.Timezone, never
// the caller's clock.
func BuildSnapshot(current CurrentConditions, samples []ForecastSample) CityWeather {
	temp := current.Main.Temp
	tempMin := valueOr(current.Main.TempMin, temp)
	tempMax := valueOr(current.Main.TempMax, temp)
	humidity := valueOr(current.Main.Humidity, 0)
	windSpeed := valueOr(current.Wind.Speed, 0)

	condition, description := defaultCondition, ""
	if len(current.Weather) > 0 {
		if current.Weather[0].Main != "" {
			condition = current.Weather[0].Main
		}
		description = current.Weather[0].Description
	}
	if description == "" {
		description = condition
	}

	return CityWeather{
		CityName:           fmt.Sprintf("%s, %s", current.Name, current.Sys.Country),
		Description:        capitalize(description),
		DateTimeLabel:      localDateTimeLabel(current.Dt, current.Timezone),
		CurrentTemp:        round(temp),
		MinTemp:            round(tempMin),
		MaxTemp:            round(tempMax),
		PrecipitationLabel: precipitationLabel(samples),
		HumidityLabel:      percentLabel("Umidade", humidity),
		WindLabel:          fmt.Sprintf("Vento: %d km/h", round(windSpeed*3.6)),
		IconKind:           ClassifyIcon([]string{condition}),
		Daily:              AggregateDaily(samples),
	}
}

// precipitationLabel reads the probability of the first sample only.
func precipitationLabel(samples []ForecastSample) string {
	if len(samples) == 0 {
		return "Chuva: --%"
	}
	return percentLabel("Chuva", valueOr(samples[0].Pop, 0)*100)
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
