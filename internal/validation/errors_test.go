package validation

import (
	"errors"
	"testing"
)

func TestErrorsCollectsInOrder(t *testing.T) {
	var errs Errors

	if !errs.Empty() {
		t.Fatalf("expected empty list")
	}

	errs.Add("name", "Name is required")
	errs.Check("zip", errors.New("Zip code is required"))
	errs.Check("city", nil)
	errs.Add("name", "Name is too short")

	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d", len(errs))
	}

	got := errs.For("name")
	if len(got) != 2 || got[0] != "Name is required" || got[1] != "Name is too short" {
		t.Fatalf("unexpected messages for name: %v", got)
	}

	want := "name: Name is required; zip: Zip code is required; name: Name is too short"
	if errs.Error() != want {
		t.Fatalf("expected %q, got %q", want, errs.Error())
	}
}

func TestBlank(t *testing.T) {
	cases := map[string]bool{
		"":      true,
		"   ":   true,
		"\t\n":  true,
		" a ":   false,
		"Tacos": false,
	}
	for in, want := range cases {
		if Blank(in) != want {
			t.Errorf("Blank(%q) = %v, want %v", in, !want, want)
		}
	}
}
