package models

import (
	"time"
)

// CurrentConditions is the raw "now" object served by the weather proxy.
// QWeather encodes every numeric field as a string; values are passed
// through without unit conversion.
type CurrentConditions struct {
	ObsTime   string `json:"obsTime"`
	Temp      string `json:"temp"`
	FeelsLike string `json:"feelsLike"`
	Icon      string `json:"icon"`
	Text      string `json:"text"`
	Wind360   string `json:"wind360"`
	WindDir   string `json:"windDir"`
	WindScale string `json:"windScale"`
	WindSpeed string `json:"windSpeed"`
	Humidity  string `json:"humidity"`
	Precip    string `json:"precip"`
	Pressure  string `json:"pressure"`
	Vis       string `json:"vis"`
}

// DailyEntry is one raw day of the upstream multi-day forecast.
type DailyEntry struct {
	FxDate       string `json:"fxDate"`
	Sunrise      string `json:"sunrise"`
	Sunset       string `json:"sunset"`
	TempMax      string `json:"tempMax"`
	TempMin      string `json:"tempMin"`
	TextDay      string `json:"textDay"`
	TextNight    string `json:"textNight"`
	IconDay      string `json:"iconDay"`
	IconNight    string `json:"iconNight"`
	Humidity     string `json:"humidity"`
	Precip       string `json:"precip"`
	WindDirDay   string `json:"windDirDay"`
	WindScaleDay string `json:"windScaleDay"`
}

// ForecastPayload matches the proxy's forecast response body.
type ForecastPayload struct {
	Daily      []DailyEntry `json:"daily"`
	UpdateTime string       `json:"updateTime"`
}

// HourlyEntry is one raw slot of the upstream 24-hour forecast.
type HourlyEntry struct {
	FxTime    string `json:"fxTime"`
	Temp      string `json:"temp"`
	Icon      string `json:"icon"`
	Text      string `json:"text"`
	WindDir   string `json:"windDir"`
	WindScale string `json:"windScale"`
	Humidity  string `json:"humidity"`
	Pop       string `json:"pop"`
	Precip    string `json:"precip"`
}

// HourlyPayload matches the proxy's hourly response body.
type HourlyPayload struct {
	Hourly     []HourlyEntry `json:"hourly"`
	UpdateTime string        `json:"updateTime"`
}

// WeatherSnapshot is the normalized current-conditions record consumed by
// the rendering layer.
type WeatherSnapshot struct {
	Temperature string `json:"temperature"`
	FeelsLike   string `json:"feelsLike"`
	Text        string `json:"text"`
	Icon        string `json:"icon"`
	Humidity    string `json:"humidity"`
	Precip      string `json:"precip"`
	Pressure    string `json:"pressure"`
	WindDir     string `json:"windDir"`
	WindScale   string `json:"windScale"`
	WindSpeed   string `json:"windSpeed"`
	Vis         string `json:"vis"`
	UpdateTime  string `json:"updateTime"`
}

// ForecastDay is a normalized forecast day with derived display fields.
type ForecastDay struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"dayOfWeek"`
	TempMax   string `json:"tempMax"`
	TempMin   string `json:"tempMin"`
	TextDay   string `json:"textDay"`
	TextNight string `json:"textNight"`
	IconDay   string `json:"iconDay"`
	IconNight string `json:"iconNight"`
	Humidity  string `json:"humidity"`
	Precip    string `json:"precip"`
	WindDir   string `json:"windDir"`
	WindScale string `json:"windScale"`
	Sunrise   string `json:"sunrise"`
	Sunset    string `json:"sunset"`
}

// HourlySlot is a normalized hourly forecast slot.
type HourlySlot struct {
	Time      string `json:"time"`
	Temp      string `json:"temp"`
	Icon      string `json:"icon"`
	Text      string `json:"text"`
	WindDir   string `json:"windDir"`
	WindScale string `json:"windScale"`
	Humidity  string `json:"humidity"`
	Pop       string `json:"pop"`
	Precip    string `json:"precip"`
}

// WeatherBundle is the merged view produced by a full weather load: one
// consistent set of current, daily and hourly data plus the load time.
type WeatherBundle struct {
	Current    WeatherSnapshot `json:"current"`
	Forecast   []ForecastDay   `json:"forecast"`
	Hourly     []HourlySlot    `json:"hourly"`
	UpdateTime time.Time       `json:"updateTime"`
}
