// Package payment validates the card fields of an order form.
package payment

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	ErrExpiryFormat = errors.New("expiry date format")
	ErrExpiryMonth  = errors.New("expiry month out of bounds")
	ErrCardExpired  = errors.New("card expired")
)

var expiryPattern = regexp.MustCompile(`^\s*(\d+)\s*/\s*(\d+)\s*$`)

// YearMonth is a calendar month with a four-digit year.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%02d/%04d", int(ym.Month), ym.Year)
}

// Before reports whether ym is strictly earlier than other.
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.Year < other.Year || (ym.Year == other.Year && ym.Month < other.Month)
}

func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ExpiryError carries the user-facing message; Reason is one of the
// ErrExpiry*/ErrCardExpired sentinels.
type ExpiryError struct {
	Reason error
	Detail string
}

func (e *ExpiryError) Error() string {
	return e.Detail
}

func (e *ExpiryError) Unwrap() error {
	return e.Reason
}

// ParseExpiry checks a "MM/YY" or "M/YYYY" value against now, which is
// read in its own location.
//
// Two-digit years 90..99 map to 1990..1999 and 00..89 to 2000..2089. A card
// that expires in the current month is accepted even though it may
// already have expired earlier in that month.
func ParseExpiry(value string, now time.Time) (YearMonth, error) {
	m := expiryPattern.FindStringSubmatch(value)
	if m == nil {
		return YearMonth{}, &ExpiryError{
			Reason: ErrExpiryFormat,
			Detail: fmt.Sprintf("Raw value '%s' does not match regular expression %s", value, expiryPattern),
		}
	}

	month, err := strconv.Atoi(m[1])
	if err != nil || month < 1 || month > 12 {
		return YearMonth{}, &ExpiryError{
			Reason: ErrExpiryMonth,
			Detail: fmt.Sprintf("Month is %s, and thus out of bounds", m[1]),
		}
	}

	year, err := strconv.Atoi(m[2])
	if err != nil {
		return YearMonth{}, &ExpiryError{
			Reason: ErrExpiryFormat,
			Detail: fmt.Sprintf("Year '%s' is not a valid year", m[2]),
		}
	}
	if year < 100 {
		if year >= 90 {
			year += 1900
		} else {
			year += 2000
		}
	}

	expiry := YearMonth{Year: year, Month: time.Month(month)}
	current := YearMonthOf(now)

	if expiry.Before(current) {
		return YearMonth{}, &ExpiryError{
			Reason: ErrCardExpired,
			Detail: fmt.Sprintf("%d/%d is before now, %d/%d - the card has expired",
				month, year, int(current.Month), current.Year),
		}
	}

	return expiry, nil
}
