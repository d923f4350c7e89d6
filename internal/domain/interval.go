package domain

import (
	"math"
	"time"
)

// RentalInterval is a half-open time window: Start is inclusive, End is
// exclusive. Two bookings that touch at an endpoint do not conflict.
type RentalInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether the interval has positive length.
func (iv RentalInterval) Valid() bool {
	return iv.End.After(iv.Start)
}

// Overlaps reports whether two half-open intervals share any instant.
func (iv RentalInterval) Overlaps(other RentalInterval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains reports whether t falls inside the interval.
func (iv RentalInterval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// DurationDays returns the interval length in billing days. Any started
// day counts as a full day, minimum 1.
func (iv RentalInterval) DurationDays() int64 {
	days := int64(math.Ceil(iv.End.Sub(iv.Start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// DurationHours returns the exact, possibly fractional, hour difference.
func (iv RentalInterval) DurationHours() float64 {
	return iv.End.Sub(iv.Start).Hours()
}
