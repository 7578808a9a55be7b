package normalize

import "time"

// Day icons that have a dedicated night variant in the QWeather icon set.
var dayToNightIcons = map[string]string{
	"100": "150", // 晴
	"101": "151", // 多云
	"102": "152", // 少云
	"103": "153", // 晴间多云
	"104": "154", // 阴
}

// MapIcon resolves an upstream icon code to the icon to display at the
// given local time, switching to the night variant between 18:00 and
// 06:00 where one exists. Missing or unknown codes map to "999".
//
// Normalization passes icon codes through untouched; the rendering layer
// calls MapIcon when it decides which glyph to draw.
func MapIcon(code string, at time.Time) string {
	if code == "" || code == "999" {
		return "999"
	}

	hour := at.Hour()
	isDay := hour >= 6 && hour < 18

	if !isDay {
		if night, ok := dayToNightIcons[code]; ok {
			return night
		}
	}
	return code
}
