package weather

import "math"

// CityKey returns the composite key used to deduplicate geocoding hits.
// An absent state contributes an empty segment.
func CityKey(p Place) string {
	return p.Name + "-" + p.State + "-" + p.Country
}

// DisplayName renders "name, state, country", dropping the state segment when absent.
func DisplayName(p Place) string {
	if p.State == "" {
		return p.Name + ", " + p.Country
	}
	return p.Name + ", " + p.State + ", " + p.Country
}

// DedupePlaces reshapes geocoding hits into descriptors, keeping the first
// hit per (name, state, country) and preserving upstream order.
func DedupePlaces(places []Place) []CityDescriptor {
	seen := make(map[string]struct{}, len(places))
	cities := make([]CityDescriptor, 0, len(places))

	for _, p := range places {
		key := CityKey(p)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		cities = append(cities, CityDescriptor{
			ID:          key,
			Name:        p.Name,
			Country:     p.Country,
			State:       p.State,
			DisplayName: DisplayName(p),
			Coords:      p.Coords,
		})
	}
	return cities
}

// NewWeatherDescriptor reshapes flattened upstream conditions.
func NewWeatherDescriptor(c Conditions) WeatherDescriptor {
	return WeatherDescriptor{
		City:        c.City,
		Country:     c.Country,
		Temperature: RoundHalfUp(c.Temperature),
		Condition:   c.Condition,
		Description: c.Description,
		Humidity:    c.Humidity,
		WindSpeed:   c.WindSpeed,
		Pressure:    c.Pressure,
		Icon:        c.Icon,
		IconURL:     c.IconURL,
		Coords:      c.Coords,
	}
}

// RoundHalfUp rounds to the nearest integer with ties going towards +Inf,
// so 15.5 becomes 16 and -2.5 becomes -2.
func RoundHalfUp(v float64) int {
	f := math.Floor(v)
	if v-f >= 0.5 {
		f++
	}
	return int(f)
}
