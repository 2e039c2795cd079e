package payment

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tacocloud/internal/validation"
)

var (
	ErrCardNumber = errors.New("Not a valid credit card number")
	ErrCVV        = errors.New("Invalid credit card CVV")
)

// Card is the raw payment section of the order form.
type Card struct {
	Number     string `json:"cc_number"`
	Expiration string `json:"cc_expiration"`
	CVV        string `json:"cc_cvv"`
}

// Validated is what survives of a card after parsing. The full number and
// the CVV are not kept.
type Validated struct {
	Last4  string    `json:"last4"`
	Expiry YearMonth `json:"expiry"`
	digits string
}

// Digits returns the card number with separators removed.
func (v Validated) Digits() string {
	return v.digits
}

// Digest is a bcrypt hash of the card digits, stored instead of the number.
func (v Validated) Digest() (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(v.digits), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// MatchesDigest reports whether number hashes to digest.
func MatchesDigest(digest, number string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(normalizeNumber(number))) == nil
}

// Parse validates every card field and reports all failures.
func Parse(c Card, now time.Time) (Validated, validation.Errors) {
	var errs validation.Errors

	digits := normalizeNumber(c.Number)
	if !ValidNumber(digits) {
		errs.Check("cc_number", ErrCardNumber)
	}

	expiry, err := ParseExpiry(c.Expiration, now)
	errs.Check("cc_expiration", err)

	if !ValidCVV(c.CVV) {
		errs.Check("cc_cvv", ErrCVV)
	}

	if !errs.Empty() {
		return Validated{}, errs
	}
	return Validated{Last4: digits[len(digits)-4:], Expiry: expiry, digits: digits}, nil
}

// ValidNumber runs the Luhn checksum over 12 to 19 digits. Spaces and
// dashes are ignored.
func ValidNumber(number string) bool {
	digits := normalizeNumber(number)
	if len(digits) < 12 || len(digits) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if d < '0' || d > '9' {
			return false
		}
		n := int(d - '0')
		if double {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		double = !double
	}
	return sum%10 == 0
}

// ValidCVV accepts exactly three ASCII digits.
func ValidCVV(cvv string) bool {
	if len(cvv) != 3 {
		return false
	}
	for i := 0; i < len(cvv); i++ {
		if cvv[i] < '0' || cvv[i] > '9' {
			return false
		}
	}
	return true
}

func normalizeNumber(number string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(number))
}
