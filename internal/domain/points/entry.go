package points

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount    = errors.New("points amount must be positive")
	ErrInvalidDirection = errors.New("invalid points direction")
	ErrInvalidSource    = errors.New("invalid points source")
	ErrEmptyTitle       = errors.New("points entry title cannot be empty")
	ErrNothingToDebit   = errors.New("points balance is zero")
)

type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
)

func (d Direction) IsValid() bool {
	return d == DirectionIncrease || d == DirectionDecrease
}

func (d Direction) String() string {
	return string(d)
}

type Source string

const (
	SourcePurchase Source = "purchase"
	SourceReview   Source = "review"
	SourceShare    Source = "share"
	SourceSignin   Source = "signin"
	SourceExchange Source = "exchange"
	SourceRegister Source = "register"
	SourceReferral Source = "referral"
	SourceBirthday Source = "birthday"
)

func (s Source) IsValid() bool {
	switch s {
	case SourcePurchase, SourceReview, SourceShare, SourceSignin,
		SourceExchange, SourceRegister, SourceReferral, SourceBirthday:
		return true
	default:
		return false
	}
}

func (s Source) String() string {
	return string(s)
}

// Links ties an entry to the business object that caused it.
type Links struct {
	OrderID   *uuid.UUID
	ReviewID  *uuid.UUID
	ProductID *uuid.UUID
}

// Entry is an append-only ledger line. Amount is the applied magnitude, never signed.
type Entry struct {
	id           uuid.UUID
	userID       uuid.UUID
	amount       int64
	direction    Direction
	source       Source
	title        string
	description  string
	links        Links
	balanceAfter int64
	createdAt    time.Time
}

type Movement struct {
	Amount      int64
	Direction   Direction
	Source      Source
	Title       string
	Description string
	Links       Links
}

func (m Movement) Validate() error {
	if m.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !m.Direction.IsValid() {
		return ErrInvalidDirection
	}
	if !m.Source.IsValid() {
		return ErrInvalidSource
	}
	if strings.TrimSpace(m.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Apply computes the entry produced by m against the current balance.
// Decreases are clamped so the balance never drops below zero; the entry records what was applied.
func Apply(userID uuid.UUID, balance int64, m Movement, now time.Time) (*Entry, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	applied := m.Amount
	after := balance
	switch m.Direction {
	case DirectionIncrease:
		after = balance + applied
	case DirectionDecrease:
		if balance <= 0 {
			return nil, ErrNothingToDebit
		}
		if applied > balance {
			applied = balance
		}
		after = balance - applied
	}

	return &Entry{
		id:           uuid.New(),
		userID:       userID,
		amount:       applied,
		direction:    m.Direction,
		source:       m.Source,
		title:        strings.TrimSpace(m.Title),
		description:  strings.TrimSpace(m.Description),
		links:        m.Links,
		balanceAfter: after,
		createdAt:    now,
	}, nil
}

func ReconstructEntry(
	id, userID uuid.UUID,
	amount int64,
	direction Direction,
	source Source,
	title, description string,
	links Links,
	balanceAfter int64,
	createdAt time.Time,
) *Entry {
	return &Entry{
		id:           id,
		userID:       userID,
		amount:       amount,
		direction:    direction,
		source:       source,
		title:        title,
		description:  description,
		links:        links,
		balanceAfter: balanceAfter,
		createdAt:    createdAt,
	}
}

// Signed returns the amount with the sign implied by the direction.
func (e *Entry) Signed() int64 {
	if e.direction == DirectionDecrease {
		return -e.amount
	}
	return e.amount
}

func (e *Entry) ID() uuid.UUID        { return e.id }
func (e *Entry) UserID() uuid.UUID    { return e.userID }
func (e *Entry) Amount() int64        { return e.amount }
func (e *Entry) Direction() Direction { return e.direction }
func (e *Entry) Source() Source       { return e.source }
func (e *Entry) Title() string        { return e.title }
func (e *Entry) Description() string  { return e.description }
func (e *Entry) Links() Links         { return e.links }
func (e *Entry) BalanceAfter() int64  { return e.balanceAfter }
func (e *Entry) CreatedAt() time.Time { return e.createdAt }

// ForOrder returns floor(grandTotal × rate).
func ForOrder(grandTotal, rate decimal.Decimal) int64 {
	if !grandTotal.IsPositive() || !rate.IsPositive() {
		return 0
	}
	return grandTotal.Mul(rate).Floor().IntPart()
}
