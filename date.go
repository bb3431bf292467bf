package fatreader

import (
	"fmt"
	"time"
)

// Time is a packed FAT time stamp with a granularity of 2 seconds.
// Bit 0 is the LSB of the 16-bit word:
//  Bits 0–4: 2-second count, valid value range 0–29 inclusive (0 – 58 seconds).
//  Bits 5–10: Minutes, valid value range 0–59 inclusive.
//  Bits 11–15: Hours, valid value range 0–23 inclusive.
type Time uint16

func (t Time) Hour() uint8 {
	return uint8(t >> 11 & 0x1F)
}

func (t Time) Minute() uint8 {
	return uint8(t >> 5 & 0x3F)
}

func (t Time) Second() uint8 {
	return uint8(t&0x1F) * 2
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// Date is a packed FAT date stamp relative to the MS-DOS epoch of 1980-01-01.
// Bit 0 is the LSB of the 16-bit word:
//  Bits 0–4: Day of month, valid value range 1-31 inclusive.
//  Bits 5–8: Month of year, 1 = January, valid value range 1–12 inclusive.
//  Bits 9–15: Count of years from 1980, valid value range 0–127 inclusive (1980–2107).
type Date uint16

func (d Date) Year() uint16 {
	return uint16(d>>9&0x7F) + 1980
}

func (d Date) Month() uint8 {
	return uint8(d >> 5 & 0x0F)
}

func (d Date) Day() uint8 {
	return uint8(d & 0x1F)
}

// IsValid reports whether day and month are not 0.
// Both are unspecified in that case, which is the usual content of unused stamps.
func (d Date) IsValid() bool {
	return d.Day() != 0 && d.Month() != 0
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year(), d.Month(), d.Day())
}

// Timestamp combines a date and a time stamp to a time.Time in UTC.
//
// As value 0 for day and month is defined as invalid, time.Time{} is returned in that case
// to be compatible with time.Time.IsZero().
//
// Note that values bigger than the specified ones are just added to the time by time.Date,
// e.g. month 13 results in January of the next year.
func Timestamp(d Date, t Time) time.Time {
	if !d.IsValid() {
		return time.Time{}
	}

	return time.Date(int(d.Year()), time.Month(d.Month()), int(d.Day()),
		int(t.Hour()), int(t.Minute()), int(t.Second()), 0, time.UTC)
}
