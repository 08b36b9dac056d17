package dateutil

import "time"

// AgeAt returns the age in whole years reached at ref. The year is not counted
// until the birthday's month and day are reached. Invalid birthdates and
// reference dates before birth give 0.
func AgeAt(birth Date, ref time.Time) int {
	if !birth.Valid() || ref.IsZero() {
		return 0
	}
	b := birth.t
	age := ref.Year() - b.Year()
	if ref.Month() < b.Month() || (ref.Month() == b.Month() && ref.Day() < b.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// AgeOnMask parses mask and returns AgeAt; malformed masks give 0.
func AgeOnMask(mask string, ref time.Time) int {
	d, ok := Parse(mask)
	if !ok {
		return 0
	}
	return AgeAt(d, ref)
}

// DaysBetween counts calendar days from a to b, negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// YearsInclusive lists the calendar years from first to last, both included.
func YearsInclusive(first, last int) []int {
	if last < first {
		return nil
	}
	years := make([]int, 0, last-first+1)
	for y := first; y <= last; y++ {
		years = append(years, y)
	}
	return years
}
