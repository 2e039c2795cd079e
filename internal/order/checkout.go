package order

import (
	"errors"
	"fmt"
	"time"

	"tacocloud/internal/payment"
	"tacocloud/internal/validation"
)

var (
	errNameRequired   = errors.New("Name is required")
	errStreetRequired = errors.New("Street is required")
	errCityRequired   = errors.New("City is required")
	errStateRequired  = errors.New("State is required")
	errZipRequired    = errors.New("Zip code is required")
)

// CheckoutForm is the raw order form.
type CheckoutForm struct {
	Delivery Address      `json:"delivery"`
	Payment  payment.Card `json:"payment"`
}

// Checkout is a fully validated order form.
type Checkout struct {
	Delivery Address
	Card     payment.Validated
}

// ParseCheckout validates every field of the form against now and
// reports all failures at once.
func ParseCheckout(form CheckoutForm, now time.Time) (Checkout, validation.Errors) {
	var errs validation.Errors

	addr := form.Delivery.trimmed()
	required := []struct {
		field string
		value string
		err   error
	}{
		{"delivery.name", addr.Name, errNameRequired},
		{"delivery.street", addr.Street, errStreetRequired},
		{"delivery.city", addr.City, errCityRequired},
		{"delivery.state", addr.State, errStateRequired},
		{"delivery.zip", addr.Zip, errZipRequired},
	}
	for _, r := range required {
		if validation.Blank(r.value) {
			errs.Check(r.field, r.err)
		}
	}

	card, cardErrs := payment.Parse(form.Payment, now)
	for _, fe := range cardErrs {
		errs.Add("payment."+fe.Field, fe.Message)
	}

	if !errs.Empty() {
		return Checkout{}, errs
	}
	return Checkout{Delivery: addr, Card: card}, nil
}

// DefaultForm is a pre-filled, valid form shown before the customer edits
// it. The card expires two years after now.
func DefaultForm(now time.Time) CheckoutForm {
	expiry := now.AddDate(2, 0, 0)
	return CheckoutForm{
		Delivery: Address{
			Name:   "Whoever",
			Street: "Ammonia Ave.",
			City:   "Carcosa",
			State:  "Lowbar",
			Zip:    "B-7676",
		},
		Payment: payment.Card{
			Number:     "4772687290188749",
			Expiration: fmt.Sprintf("%02d/%02d", int(expiry.Month()), expiry.Year()%100),
			CVV:        "550",
		},
	}
}
