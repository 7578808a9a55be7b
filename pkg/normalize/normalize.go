// Package normalize reshapes raw upstream weather payloads into the
// stable records the rendering layer consumes. Every transformation is a
// pure projection over its input: derived display fields are computed
// fresh on each call, all other fields pass through unmodified.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"weather-dashboard/internal/models"
)

var weekdays = [7]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

// Normalizer reshapes raw payloads. It carries only a logger for the
// malformed-shape warnings; every transformation is a pure projection.
type Normalizer struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Current projects raw current conditions onto a WeatherSnapshot. No
// derived computation, field-for-field.
func (n *Normalizer) Current(raw models.CurrentConditions) models.WeatherSnapshot {
	return models.WeatherSnapshot{
		Temperature: raw.Temp,
		FeelsLike:   raw.FeelsLike,
		Text:        raw.Text,
		Icon:        raw.Icon,
		Humidity:    raw.Humidity,
		Precip:      raw.Precip,
		Pressure:    raw.Pressure,
		WindDir:     raw.WindDir,
		WindScale:   raw.WindScale,
		WindSpeed:   raw.WindSpeed,
		Vis:         raw.Vis,
		UpdateTime:  raw.ObsTime,
	}
}

// Forecast turns the raw daily array into display-ready forecast days.
// A payload without daily entries yields an empty slice, never a failure.
func (n *Normalizer) Forecast(raw models.ForecastPayload) []models.ForecastDay {
	if len(raw.Daily) == 0 {
		if raw.Daily == nil {
			n.logger.Warn("Forecast payload has no daily entries")
		}
		return []models.ForecastDay{}
	}

	days := make([]models.ForecastDay, 0, len(raw.Daily))
	for _, d := range raw.Daily {
		days = append(days, models.ForecastDay{
			Date:      FormatDate(d.FxDate),
			DayOfWeek: DayOfWeek(d.FxDate),
			TempMax:   d.TempMax,
			TempMin:   d.TempMin,
			TextDay:   d.TextDay,
			TextNight: d.TextNight,
			IconDay:   d.IconDay,
			IconNight: d.IconNight,
			Humidity:  d.Humidity,
			Precip:    d.Precip,
			WindDir:   d.WindDirDay,
			WindScale: d.WindScaleDay,
			Sunrise:   d.Sunrise,
			Sunset:    d.Sunset,
		})
	}
	return days
}

// Hourly turns the raw hourly array into display-ready slots. A payload
// without hourly entries yields an empty slice, never a failure.
func (n *Normalizer) Hourly(raw models.HourlyPayload) []models.HourlySlot {
	if len(raw.Hourly) == 0 {
		if raw.Hourly == nil {
			n.logger.Warn("Hourly payload has no hourly entries")
		}
		return []models.HourlySlot{}
	}

	slots := make([]models.HourlySlot, 0, len(raw.Hourly))
	for _, h := range raw.Hourly {
		slots = append(slots, models.HourlySlot{
			Time:      TimeOfDay(h.FxTime),
			Temp:      h.Temp,
			Icon:      h.Icon,
			Text:      h.Text,
			WindDir:   h.WindDir,
			WindScale: h.WindScale,
			Humidity:  h.Humidity,
			Pop:       h.Pop,
			Precip:    h.Precip,
		})
	}
	return slots
}

// FormatDate reformats an upstream date to YYYY-MM-DD. Unparseable input
// is passed through as-is rather than failing the whole load.
func FormatDate(value string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return value
}

// DayOfWeek derives the localized weekday label for an upstream date.
// Unparseable input yields an empty label.
func DayOfWeek(value string) string {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return ""
	}
	return weekdays[int(t.Weekday())]
}

// TimeOfDay extracts the HH:MM portion of a full upstream timestamp such
// as "2024-01-01T14:00+08:00" and trims the leading zero from the hour.
func TimeOfDay(fxTime string) string {
	if len(fxTime) < 16 {
		return fxTime
	}
	clock := fxTime[11:16]

	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return clock
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return clock
	}
	return fmt.Sprintf("%d:%s", hour, parts[1])
}
