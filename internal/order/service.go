package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"tacocloud/internal/logger"
	"tacocloud/internal/taco"
	"tacocloud/internal/validation"
)

// SessionStore holds one Order per session. Implementations serialize
// callbacks for the same session.
type SessionStore interface {
	Update(id string, fn func(*Order) error) error
	View(id string, fn func(*Order))
	// Finish runs fn and drops the session when fn returns nil.
	Finish(id string, fn func(*Order) error) error
}

// Storage archives receipts. Upload returns the object's location.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Service struct {
	repo     Repository
	sessions SessionStore
	storage  Storage
	log      *logger.Logger
	now      func() time.Time
}

// NewService wires the order flow. storage may be nil, in which case
// receipts are not archived.
func NewService(repo Repository, sessions SessionStore, storage Storage, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
		storage:  storage,
		log:      log.WithComponent("order"),
		now:      time.Now,
	}
}

// SetClock replaces the time source used for expiry checks and PlacedAt.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) Now() time.Time {
	return s.now()
}

// Current returns a snapshot of the session's tacos, ordered by name.
func (s *Service) Current(sessionID string) []taco.Taco {
	var tacos []taco.Taco
	s.sessions.View(sessionID, func(o *Order) {
		tacos = o.Tacos()
	})
	return tacos
}

// AddTaco appends a validated taco to the session order.
func (s *Service) AddTaco(sessionID string, t taco.Taco) error {
	return s.sessions.Update(sessionID, func(o *Order) error {
		return o.AddTaco(t)
	})
}

// --------------------------------------------------
// SUBMIT
// --------------------------------------------------
func (s *Service) Submit(ctx context.Context, sessionID string, form CheckoutForm) (*Submitted, validation.Errors, error) {
	now := s.now()

	checkout, errs := ParseCheckout(form, now)

	var submitted *Submitted
	var fieldErrs validation.Errors

	err := s.sessions.Finish(sessionID, func(o *Order) error {
		if o.Len() == 0 {
			errs.Check("tacos", ErrEmptyOrder)
		}
		if !errs.Empty() {
			fieldErrs = errs
			return errs
		}

		digest, err := checkout.Card.Digest()
		if err != nil {
			return fmt.Errorf("digest card: %w", err)
		}

		sub := &Submitted{
			ID:         uuid.New(),
			PlacedAt:   now,
			Delivery:   checkout.Delivery,
			CardLast4:  checkout.Card.Last4,
			CardExpiry: checkout.Card.Expiry,
			CardDigest: digest,
			Tacos:      o.Tacos(),
		}

		if err := s.repo.Save(ctx, sub); err != nil {
			return fmt.Errorf("save order: %w", err)
		}
		submitted = sub
		return nil
	})
	if fieldErrs != nil {
		return nil, fieldErrs, nil
	}
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("order submitted",
		"order_id", submitted.ID.String(),
		"tacos", len(submitted.Tacos),
	)

	s.archive(ctx, submitted)
	return submitted, nil, nil
}

// archive uploads a JSON receipt. Failures are logged; the order is
// already persisted.
func (s *Service) archive(ctx context.Context, sub *Submitted) {
	if s.storage == nil {
		return
	}

	body, err := json.Marshal(sub)
	if err != nil {
		s.log.Error("encode receipt", "order_id", sub.ID.String(), "error", err)
		return
	}

	location, err := s.storage.Upload(ctx, ReceiptKey(sub), bytes.NewReader(body), "application/json")
	if err != nil {
		s.log.Warn("receipt upload failed", "order_id", sub.ID.String(), "error", err)
		return
	}
	s.log.Debug("receipt archived", "order_id", sub.ID.String(), "location", location)
}

// ReceiptKey is the object key of an order's receipt,
// receipts/YYYY/MM/<id>.json.
func ReceiptKey(sub *Submitted) string {
	placed := sub.PlacedAt.UTC()
	return fmt.Sprintf("receipts/%04d/%02d/%s.json", placed.Year(), int(placed.Month()), sub.ID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Submitted, error) {
	return s.repo.FindByID(ctx, id)
}
