package domain

import (
	"math"
	"time"
)

const (
	MinBirthYear = 1900
	MaxBirthYear = 2100
)

// BirthInput is the civil birth moment plus the location pair resolved by a geocoder.
type BirthInput struct {
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Day       int     `json:"day"`
	Hour      int     `json:"hour"`
	TimeZone  string  `json:"timezone"`
	Longitude float64 `json:"longitude"`
}

// Validate checks ranges and that the date exists (no 30 February).
func (b BirthInput) Validate() error {
	const op = "domain.birth.validate"
	if b.Year < MinBirthYear || b.Year > MaxBirthYear {
		return InvalidInput(op, "year %d outside %d-%d", b.Year, MinBirthYear, MaxBirthYear)
	}
	if b.Month < 1 || b.Month > 12 {
		return InvalidInput(op, "month %d outside 1-12", b.Month)
	}
	if b.Day < 1 || b.Day > 31 {
		return InvalidInput(op, "day %d outside 1-31", b.Day)
	}
	if b.Hour < 0 || b.Hour > 23 {
		return InvalidInput(op, "hour %d outside 0-23", b.Hour)
	}
	d := time.Date(b.Year, time.Month(b.Month), b.Day, 0, 0, 0, 0, time.UTC)
	if d.Month() != time.Month(b.Month) || d.Day() != b.Day {
		return InvalidInput(op, "%04d-%02d-%02d is not a calendar date", b.Year, b.Month, b.Day)
	}
	return ValidateLongitude(b.Longitude)
}

// ValidateLongitude accepts -180..180 inclusive.
func ValidateLongitude(lon float64) error {
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return InvalidInput("domain.longitude", "longitude %v outside -180..180", lon)
	}
	return nil
}

// Location is a place resolved to the pair the engine consumes.
type Location struct {
	Name      string  `json:"name" yaml:"name"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	TimeZone  string  `json:"timezone" yaml:"timezone"`
	Source    string  `json:"source,omitempty" yaml:"-"`
}

// DefaultLocation is the fallback a geocoder may choose when a place cannot be resolved.
func DefaultLocation() Location {
	return Location{Name: "台北", Longitude: 121.5654, TimeZone: "Asia/Taipei", Source: "default"}
}
