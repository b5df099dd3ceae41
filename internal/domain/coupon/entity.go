package coupon

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCouponExpired       = errors.New("coupon has expired")
	ErrCouponNotStarted    = errors.New("coupon is not yet valid")
	ErrCouponMinimumNotMet = errors.New("order amount does not meet the coupon minimum")
	ErrCouponAlreadyUsed   = errors.New("coupon already used")
	ErrCouponLimitReached  = errors.New("coupon usage limit reached")
	ErrEmptyCouponName     = errors.New("coupon name cannot be empty")
	ErrInvalidWindow       = errors.New("coupon end date must be after start date")
	ErrInvalidLimit        = errors.New("coupon limits must be positive")
)

type Coupon struct {
	id           uuid.UUID
	name         string
	code         Code
	rule         Rule
	minPurchase  decimal.Decimal
	startDate    time.Time
	endDate      time.Time
	totalLimit   *int
	perUserLimit int
	issuedCount  int
	usedCount    int
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

type Params struct {
	Name         string
	Code         string
	Type         DiscountType
	Amount       decimal.Decimal
	MinPurchase  decimal.Decimal
	MaxDiscount  *decimal.Decimal
	StartDate    time.Time
	EndDate      time.Time
	TotalLimit   *int
	PerUserLimit int
}

func NewCoupon(p Params, now time.Time) (*Coupon, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, ErrEmptyCouponName
	}
	code, err := NewCouponCode(p.Code)
	if err != nil {
		return nil, err
	}
	rule, err := NewRule(p.Type, p.Amount, p.MaxDiscount)
	if err != nil {
		return nil, err
	}
	if p.MinPurchase.IsNegative() {
		return nil, ErrInvalidDiscountAmount
	}
	if !p.EndDate.After(p.StartDate) {
		return nil, ErrInvalidWindow
	}
	if p.TotalLimit != nil && *p.TotalLimit < 1 {
		return nil, ErrInvalidLimit
	}
	perUser := p.PerUserLimit
	if perUser == 0 {
		perUser = 1
	}
	if perUser < 0 {
		return nil, ErrInvalidLimit
	}

	return &Coupon{
		id:           uuid.New(),
		name:         name,
		code:         code,
		rule:         rule,
		minPurchase:  p.MinPurchase.Round(2),
		startDate:    p.StartDate,
		endDate:      p.EndDate,
		totalLimit:   p.TotalLimit,
		perUserLimit: perUser,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

type Counters struct {
	IssuedCount int
	UsedCount   int
}

func ReconstructCoupon(
	id uuid.UUID,
	name string,
	code Code,
	rule Rule,
	minPurchase decimal.Decimal,
	startDate, endDate time.Time,
	totalLimit *int,
	perUserLimit int,
	counters Counters,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Coupon {
	return &Coupon{
		id:           id,
		name:         name,
		code:         code,
		rule:         rule,
		minPurchase:  minPurchase,
		startDate:    startDate,
		endDate:      endDate,
		totalLimit:   totalLimit,
		perUserLimit: perUserLimit,
		issuedCount:  counters.IssuedCount,
		usedCount:    counters.UsedCount,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ValidateAt treats a deactivated coupon as expired.
func (c *Coupon) ValidateAt(now time.Time) error {
	if !c.isActive || now.After(c.endDate) {
		return ErrCouponExpired
	}
	if now.Before(c.startDate) {
		return ErrCouponNotStarted
	}
	return nil
}

func (c *Coupon) ValidateForOrder(now time.Time, itemsTotal decimal.Decimal) error {
	if err := c.ValidateAt(now); err != nil {
		return err
	}
	if itemsTotal.LessThan(c.minPurchase) {
		return ErrCouponMinimumNotMet
	}
	return nil
}

func (c *Coupon) ValidateClaimable(now time.Time) error {
	if err := c.ValidateAt(now); err != nil {
		return err
	}
	if !c.HasClaimCapacity() {
		return ErrCouponLimitReached
	}
	return nil
}

func (c *Coupon) HasClaimCapacity() bool {
	return c.totalLimit == nil || c.issuedCount < *c.totalLimit
}

func (c *Coupon) HasRedemptionCapacity() bool {
	return c.totalLimit == nil || c.usedCount < *c.totalLimit
}

func (c *Coupon) CalculateDiscount(subtotal decimal.Decimal) decimal.Decimal {
	return c.rule.CalculateDiscount(subtotal)
}

func (c *Coupon) ID() uuid.UUID                { return c.id }
func (c *Coupon) Name() string                 { return c.name }
func (c *Coupon) Code() Code                   { return c.code }
func (c *Coupon) Rule() Rule                   { return c.rule }
func (c *Coupon) MinPurchase() decimal.Decimal { return c.minPurchase }
func (c *Coupon) StartDate() time.Time         { return c.startDate }
func (c *Coupon) EndDate() time.Time           { return c.endDate }
func (c *Coupon) TotalLimit() *int             { return c.totalLimit }
func (c *Coupon) PerUserLimit() int            { return c.perUserLimit }
func (c *Coupon) IssuedCount() int             { return c.issuedCount }
func (c *Coupon) UsedCount() int               { return c.usedCount }
func (c *Coupon) IsActive() bool               { return c.isActive }
func (c *Coupon) CreatedAt() time.Time         { return c.createdAt }
func (c *Coupon) UpdatedAt() time.Time         { return c.updatedAt }
