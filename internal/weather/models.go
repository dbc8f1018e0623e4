package weather

import "time"

// Coords is a latitude/longitude pair as reported by the upstream.
type Coords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Place is a single geocoding hit, flattened from the upstream schema.
// State is empty when the upstream did not report one.
type Place struct {
	Name    string
	State   string
	Country string
	Coords  Coords
}

// Conditions is the upstream current-weather payload after flattening.
// Values are kept as reported; rounding happens when building the descriptor.
type Conditions struct {
	City        string
	Country     string
	Temperature float64
	Condition   string
	Description string
	Icon        string
	IconURL     string
	Humidity    int
	WindSpeed   float64
	Pressure    int
	Coords      Coords
}

// CityDescriptor is the reshaped city returned to the front-end.
type CityDescriptor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	State       string `json:"state,omitempty"`
	DisplayName string `json:"displayName"`
	Coords      Coords `json:"coords"`
}

// WeatherDescriptor is the reshaped current weather returned to the front-end.
type WeatherDescriptor struct {
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Temperature int     `json:"temperature"` // degrees Celsius, rounded half up
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Pressure    int     `json:"pressure"`
	Icon        string  `json:"icon"`
	IconURL     string  `json:"iconUrl"`
	Coords      Coords  `json:"coords"`
}

// ProbeResult records one upstream reachability check.
type ProbeResult struct {
	CheckedAt time.Time     `json:"checkedAt"` // always UTC
	OK        bool          `json:"ok"`
	Latency   time.Duration `json:"latencyNs"`
	Reason    string        `json:"reason,omitempty"` // see FailureReason
}
