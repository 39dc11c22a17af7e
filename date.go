package fat16

import (
	"time"
)

// ParseDate decodes a FAT date stamp. The format (bit 0 is the LSB) is:
//
//	Bits 0–4: Day of month, valid value range 1–31 inclusive.
//	Bits 5–8: Month of year, 1 = January, valid value range 1–12 inclusive.
//	Bits 9–15: Count of years from 1980, valid value range 0–127 inclusive (1980–2107).
//
// The result always has a time of 00:00:00 UTC.
// A day or month of 0 is invalid, in which case time.Time{} is returned so that
// time.Time.IsZero() can be used to check for it.
//
// A month above 12 is not rejected, time.Date normalizes it into the following year.
func ParseDate(input uint16) time.Time {
	dayOfMonth := input & 0x1F
	monthOfYear := (input >> 5) & 0x0F
	yearSince1980 := (input >> 9) & 0x7F

	if dayOfMonth == 0 || monthOfYear == 0 {
		return time.Time{}
	}

	return time.Date(1980+int(yearSince1980), time.Month(monthOfYear), int(dayOfMonth), 0, 0, 0, 0, time.UTC)
}

// ParseTime decodes a FAT time stamp with a granularity of 2 seconds:
//
//	Bits 0–4: 2-second count, valid value range 0–29 inclusive (0–58 seconds).
//	Bits 5–10: Minutes, valid value range 0–59 inclusive.
//	Bits 11–15: Hours, valid value range 0–23 inclusive.
//
// The result always has the date January 1, year 1, so midnight is time.Time{}.
// Out of range values are clamped to 23:59:59.
func ParseTime(input uint16) time.Time {
	seconds := int(input&0x1F) * 2
	minutes := int((input >> 5) & 0x3F)
	hours := int((input >> 11) & 0x1F)

	result := time.Date(1, 1, 1, hours, minutes, seconds, 0, time.UTC)
	if result.Day() > 1 {
		return time.Date(1, 1, 1, 23, 59, 59, 0, time.UTC)
	}

	return result
}

// ParseDateTime combines a date and a time stamp.
// It returns time.Time{} if the date is invalid.
func ParseDateTime(date, clock uint16) time.Time {
	d := ParseDate(date)
	if d.IsZero() {
		return time.Time{}
	}

	t := ParseTime(clock)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
