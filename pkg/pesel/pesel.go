// Package pesel implements the Polish national identity number (PESEL) as a
// domain value. The value itself only knows how to read the birth date out of
// its digits; deciding whether a number is well formed is delegated to a
// Validator so the rule stays pluggable.
package pesel

import (
	"strings"
	"time"

	"kantor/pkg/clock"
)

// Pesel is an 11-digit national identity number. Construct it with New so
// surrounding whitespace never reaches comparisons or storage.
type Pesel string

// New trims the raw input and wraps it. No validation happens here.
func New(raw string) Pesel {
	return Pesel(strings.TrimSpace(raw))
}

func (p Pesel) String() string {
	return string(p)
}

// Validator decides whether a PESEL is well formed, checksum included.
type Validator interface {
	IsValid(p Pesel) bool
}

// IsValid delegates to the given validator.
func (p Pesel) IsValid(v Validator) bool {
	return v.IsValid(p)
}

// Age is the number of whole calendar years between the encoded birth date
// and the clock's current date. It assumes the value already passed a
// Validator; calling it on a malformed number yields a meaningless result.
//
// The month field doubles as a century marker: a stored month above 12 means
// the true month is storedMonth-20 and the birth year is 20xx, otherwise the
// year is 19xx.
func (p Pesel) Age(c clock.Clock) int {
	birth := p.birthDate()
	now := c.Now()

	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

func (p Pesel) birthDate() time.Time {
	year := p.digits(0, 2)
	month := p.digits(2, 4)
	day := p.digits(4, 6)

	if month > 12 {
		month -= 20
		year += 2000
	} else {
		year += 1900
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func (p Pesel) digits(from, to int) int {
	n := 0
	for _, r := range string(p)[from:to] {
		n = n*10 + int(r-'0')
	}
	return n
}
