package noded

import (
	"fmt"
	"time"
)

// easternLocation is loaded once; a node that can't find the tzdata
// falls back to UTC rather than failing startup over a cosmetic field.
var easternLocation = loadEastern()

func loadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.UTC
	}
	return loc
}

// nowEastern formats the current time as a 24-hour clock value followed
// by an AM/PM marker and a literal "ET" suffix (not a real timezone
// abbreviation, so the label doesn't track daylight saving).
func nowEastern() string {
	now := time.Now().In(easternLocation)
	period := "AM"
	if now.Hour() >= 12 {
		period = "PM"
	}
	return fmt.Sprintf("%s %s ET", now.Format("Jan 02, 2006 15:04:05"), period)
}
