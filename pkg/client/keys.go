package client

import (
	"fmt"
	"strconv"
)

// Cache keys mirror the dashboard's stored state layout: one entry per
// logical request, derived deterministically from the endpoint and its
// normalized parameters so identical requests always hit the same entry.

const (
	cityListKey  = "city_list"
	hotCitiesKey = "hot_cities"
)

func currentKey(city string) string {
	return "weather_current_" + city
}

func forecastKey(city string, days int) string {
	return fmt.Sprintf("weather_forecast_%s_%d", city, days)
}

func hourlyKey(city string) string {
	return "weather_hourly_" + city
}

func searchKey(keyword string) string {
	return "city_search_" + keyword
}

func locateKey(lat, lon float64) string {
	return fmt.Sprintf("city_locate_%s,%s", formatCoord(lat), formatCoord(lon))
}

// formatCoord renders a coordinate with fixed precision so the same
// position always yields the same key.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
