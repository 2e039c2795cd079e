package payment

import (
	"errors"
	"testing"
	"time"
)

func march2025() time.Time {
	return time.Date(2025, time.March, 15, 12, 0, 0, 0, time.Local)
}

func TestParseExpiry(t *testing.T) {
	now := march2025()

	cases := []struct {
		in     string
		want   YearMonth
		reason error
	}{
		{in: "01/26", want: YearMonth{2026, time.January}},
		{in: " 5 / 2026 ", want: YearMonth{2026, time.May}},
		{in: "03/25", want: YearMonth{2025, time.March}}, // current month is still accepted
		{in: "01/24", reason: ErrCardExpired},
		{in: "02/25", reason: ErrCardExpired},
		{in: "13/26", reason: ErrExpiryMonth},
		{in: "0/26", reason: ErrExpiryMonth},
		{in: "05-26", reason: ErrExpiryFormat},
		{in: "", reason: ErrExpiryFormat},
		{in: "ab/cd", reason: ErrExpiryFormat},
	}

	for _, tc := range cases {
		got, err := ParseExpiry(tc.in, now)
		if tc.reason != nil {
			if !errors.Is(err, tc.reason) {
				t.Errorf("ParseExpiry(%q): expected %v, got %v", tc.in, tc.reason, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseExpiry(%q): unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseExpiry(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseExpiryMessages(t *testing.T) {
	_, err := ParseExpiry("01/24", march2025())
	if err.Error() != "1/2024 is before now, 3/2025 - the card has expired" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	_, err = ParseExpiry("13/26", march2025())
	if err.Error() != "Month is 13, and thus out of bounds" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

// Two-digit years from 90 up are read as the 1990s. This accepts nothing
// today, but "99" silently becomes 1999 rather than 2099.
func TestParseExpiryNinetiesQuirk(t *testing.T) {
	_, err := ParseExpiry("5/99", march2025())
	if !errors.Is(err, ErrCardExpired) {
		t.Fatalf("expected 5/99 to be expired, got %v", err)
	}

	got, err := ParseExpiry("5/99", time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (YearMonth{1999, time.May}) {
		t.Fatalf("expected 1999-05, got %v", got)
	}

	got, err = ParseExpiry("5/89", march2025())
	if err != nil || got.Year != 2089 {
		t.Fatalf("expected 2089, got %v %v", got, err)
	}
}

func TestValidNumber(t *testing.T) {
	cases := map[string]bool{
		"4772687290188749":    true,
		"4111 1111 1111 1111": true,
		"3782-822463-10005":   true,
		"4111111111111112":    false,
		"4111":                false,
		"":                    false,
		"41111111111111x1":    false,
	}
	for in, want := range cases {
		if got := ValidNumber(in); got != want {
			t.Errorf("ValidNumber(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidCVV(t *testing.T) {
	cases := map[string]bool{
		"550":  true,
		"000":  true,
		"55":   false,
		"5500": false,
		"5a0":  false,
		"":     false,
	}
	for in, want := range cases {
		if got := ValidCVV(in); got != want {
			t.Errorf("ValidCVV(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseCollectsAllFields(t *testing.T) {
	_, errs := Parse(Card{Number: "1234", Expiration: "13/26", CVV: "12"}, march2025())
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %v", errs)
	}
	if got := errs.For("cc_number"); len(got) != 1 || got[0] != ErrCardNumber.Error() {
		t.Fatalf("unexpected cc_number errors: %v", got)
	}
	if got := errs.For("cc_cvv"); len(got) != 1 || got[0] != ErrCVV.Error() {
		t.Fatalf("unexpected cc_cvv errors: %v", got)
	}
}

func TestParseKeepsOnlyLastFour(t *testing.T) {
	v, errs := Parse(Card{Number: "4772 6872 9018 8749", Expiration: "05/2026", CVV: "550"}, march2025())
	if !errs.Empty() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if v.Last4 != "8749" {
		t.Fatalf("expected last4 8749, got %q", v.Last4)
	}

	digest, err := v.Digest()
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if digest == v.Digits() {
		t.Fatalf("digest must not be the plain number")
	}
	if !MatchesDigest(digest, "4772-6872-9018-8749") {
		t.Fatalf("expected digest to match the card number")
	}
	if MatchesDigest(digest, "4111111111111111") {
		t.Fatalf("digest matched another card number")
	}
}
