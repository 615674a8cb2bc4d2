package weather

// MaxDays bounds the number of entries AggregateDaily returns.
const MaxDays = 6

type dayBucket struct {
	date       string
	min, max   float64
	conditions []string
}

// AggregateDaily groups forecast samples by the calendar date found in
// their timestamp and reduces each group to a WeatherDay. Days keep the
// order in which they first appear in samples; at most MaxDays are kept.
func AggregateDaily(samples []ForecastSample) []WeatherDay {
	order := make([]string, 0, MaxDays)
	buckets := make(map[string]*dayBucket, MaxDays)

	for _, s := range samples {
		date := s.Date()
		temp := s.Main.Temp

		b, ok := buckets[date]
		if !ok {
			if len(order) == MaxDays {
				continue
			}
			b = &dayBucket{date: date, min: temp, max: temp}
			buckets[date] = b
			order = append(order, date)
		}

		if temp < b.min {
			b.min = temp
		}
		if temp > b.max {
			b.max = temp
		}
		if name := s.ConditionName(); name != "" {
			b.conditions = append(b.conditions, name)
		}
	}

	days := make([]WeatherDay, 0, len(order))
	for _, date := range order {
		b := buckets[date]
		days = append(days, WeatherDay{
			WeekDayLabel: shortWeekdayLabel(b.date),
			Min:          round(b.min),
			Max:          round(b.max),
			Icon:         ClassifyIcon(b.conditions),
		})
	}

	return days
}
