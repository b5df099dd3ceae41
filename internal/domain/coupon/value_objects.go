package coupon

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCouponCode      = errors.New("invalid coupon code format")
	ErrInvalidDiscountType    = errors.New("discount type must be percentage or fixed")
	ErrInvalidDiscountAmount  = errors.New("discount amount cannot be negative")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

var hundred = decimal.NewFromInt(100)

type Code string

func NewCouponCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

func (t DiscountType) IsValid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

func (t DiscountType) String() string {
	return string(t)
}

// Rule describes how much a coupon takes off a subtotal.
// For percentage rules Amount is the percent value; for fixed rules it is a currency amount.
type Rule struct {
	Type        DiscountType
	Amount      decimal.Decimal
	MaxDiscount *decimal.Decimal
}

func NewRule(t DiscountType, amount decimal.Decimal, maxDiscount *decimal.Decimal) (Rule, error) {
	if !t.IsValid() {
		return Rule{}, ErrInvalidDiscountType
	}
	if amount.IsNegative() {
		return Rule{}, ErrInvalidDiscountAmount
	}
	if t == DiscountPercentage && amount.GreaterThan(hundred) {
		return Rule{}, ErrInvalidDiscountPercent
	}
	if maxDiscount != nil && maxDiscount.IsNegative() {
		return Rule{}, ErrInvalidDiscountAmount
	}
	return Rule{Type: t, Amount: amount, MaxDiscount: maxDiscount}, nil
}

// CalculateDiscount never returns a negative amount or more than subtotal, and rounds to cents.
func (r Rule) CalculateDiscount(subtotal decimal.Decimal) decimal.Decimal {
	if !subtotal.IsPositive() {
		return decimal.Zero
	}

	var amount decimal.Decimal
	switch r.Type {
	case DiscountPercentage:
		amount = subtotal.Mul(r.Amount).Div(hundred)
		if r.MaxDiscount != nil {
			amount = decimal.Min(amount, *r.MaxDiscount)
		}
	case DiscountFixed:
		amount = r.Amount
	default:
		return decimal.Zero
	}

	amount = decimal.Min(floorAtZero(amount), subtotal)
	return amount.Round(2)
}

func floorAtZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
