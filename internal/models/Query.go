package models

// TimeIntent is the temporal scope of a weather query.
type TimeIntent string

const (
	TimeNow       TimeIntent = "now"
	TimeToday     TimeIntent = "today"
	TimeTomorrow  TimeIntent = "tomorrow"
	TimeTonight   TimeIntent = "tonight"
	TimeYesterday TimeIntent = "yesterday"
)

// IsForecast reports whether the intent is served from the forecast list
// instead of current conditions.
func (t TimeIntent) IsForecast() bool {
	return t == TimeTomorrow || t == TimeTonight
}

// Metric is the single weather attribute emphasized in the answer.
type Metric string

const (
	MetricTemperature Metric = "temperature"
	MetricRain        Metric = "rain"
	MetricHumidity    Metric = "humidity"
	MetricWind        Metric = "wind"
	MetricGeneral     Metric = "general"
)

// WeatherQuery is the validated input of the query pipeline.
type WeatherQuery struct {
	City       string
	TimeIntent TimeIntent
	Metric     Metric
}

// WithDefaults fills an empty time intent with now and an empty metric with general.
func (q WeatherQuery) WithDefaults() WeatherQuery {
	if q.TimeIntent == "" {
		q.TimeIntent = TimeNow
	}
	if q.Metric == "" {
		q.Metric = MetricGeneral
	}
	return q
}

// WeatherRequest is the inbound JSON body of POST /api/weather.
type WeatherRequest struct {
	City       string `json:"city" example:"Mumbai"`
	TimeIntent string `json:"timeIntent,omitempty" validate:"omitempty,oneof=now today tomorrow tonight yesterday" example:"now"`
	Metric     string `json:"metric,omitempty" validate:"omitempty,oneof=temperature rain humidity wind general" example:"rain"`
}

func (r WeatherRequest) Query() WeatherQuery {
	return WeatherQuery{
		City:       r.City,
		TimeIntent: TimeIntent(r.TimeIntent),
		Metric:     Metric(r.Metric),
	}.WithDefaults()
}

// AskRequest is the inbound JSON body of POST /api/ask.
type AskRequest struct {
	Text string `json:"text" validate:"required" example:"will it rain in Mumbai tonight?"`
}
