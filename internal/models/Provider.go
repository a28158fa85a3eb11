package models

// Payload types of the OpenWeatherMap 2.5 API (metric units). Optional
// members are pointers so that absent and zero stay distinguishable.

type MainReadings struct {
	Temp      *float64 `json:"temp"`
	FeelsLike *float64 `json:"feels_like"`
	Humidity  *int     `json:"humidity"`
}

type WindReadings struct {
	Speed *float64 `json:"speed"`
}

type RainReadings struct {
	OneHour   *float64 `json:"1h"`
	ThreeHour *float64 `json:"3h"`
}

type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// CurrentConditions is the /weather response.
type CurrentConditions struct {
	Name    string        `json:"name"`
	Main    *MainReadings `json:"main"`
	Wind    *WindReadings `json:"wind"`
	Rain    *RainReadings `json:"rain"`
	Weather []Condition   `json:"weather"`
}

// ForecastSample is one timestamped entry of the /forecast list.
type ForecastSample struct {
	Dt      int64         `json:"dt"`
	Main    *MainReadings `json:"main"`
	Wind    *WindReadings `json:"wind"`
	Rain    *RainReadings `json:"rain"`
	Pop     *float64      `json:"pop"`
	Weather []Condition   `json:"weather"`
}

// ForecastList is the /forecast response.
type ForecastList struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []ForecastSample `json:"list"`
}
