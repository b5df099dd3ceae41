package order

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bruceg7333/water-shop-api/internal/domain/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MaxRemarkLength   = 500
	MaxVariantLength  = 64
	orderNumberDigits = 6
)

var (
	ErrEmptyItems           = errors.New("order must contain at least one item")
	ErrInvalidQuantity      = errors.New("item quantity must be at least 1")
	ErrNegativePrice        = errors.New("price cannot be negative")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidShipping      = errors.New("shipping name, phone and address are required")
	ErrInvalidShippingPhone = errors.New("shipping phone is not a valid mobile number")
	ErrRemarkTooLong        = errors.New("remark exceeds maximum length")
	ErrDiscountExceedsTotal = errors.New("discount cannot exceed items total")
)

type LineItem struct {
	productID   uuid.UUID
	productName string
	unitPrice   decimal.Decimal
	quantity    int
	variant     string
}

func NewLineItem(productID uuid.UUID, productName string, unitPrice decimal.Decimal, quantity int, variant string) (LineItem, error) {
	if quantity < 1 {
		return LineItem{}, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return LineItem{}, ErrNegativePrice
	}
	variant = strings.TrimSpace(variant)
	if utf8.RuneCountInString(variant) > MaxVariantLength {
		variant = string([]rune(variant)[:MaxVariantLength])
	}
	return LineItem{
		productID:   productID,
		productName: productName,
		unitPrice:   unitPrice.Round(2),
		quantity:    quantity,
		variant:     variant,
	}, nil
}

func (li LineItem) ProductID() uuid.UUID       { return li.productID }
func (li LineItem) ProductName() string        { return li.productName }
func (li LineItem) UnitPrice() decimal.Decimal { return li.unitPrice }
func (li LineItem) Quantity() int              { return li.quantity }
func (li LineItem) Variant() string            { return li.variant }

func (li LineItem) Subtotal() decimal.Decimal {
	return li.unitPrice.Mul(decimal.NewFromInt(int64(li.quantity)))
}

// Shipping is a copy of the address at checkout time; later address edits do not touch it.
type Shipping struct {
	Name     string
	Phone    string
	Province string
	City     string
	District string
	Address  string
}

func NewShipping(name, phone, province, city, district, address string) (Shipping, error) {
	s := Shipping{
		Name:     strings.TrimSpace(name),
		Phone:    strings.TrimSpace(phone),
		Province: strings.TrimSpace(province),
		City:     strings.TrimSpace(city),
		District: strings.TrimSpace(district),
		Address:  strings.TrimSpace(address),
	}
	if s.Name == "" || s.Phone == "" || s.Address == "" {
		return Shipping{}, ErrInvalidShipping
	}
	p, err := user.NewPhone(s.Phone)
	if err != nil {
		return Shipping{}, ErrInvalidShippingPhone
	}
	s.Phone = p.Value()
	return s, nil
}

type AppliedCoupon struct {
	CouponID uuid.UUID
	ClaimID  uuid.UUID
	Code     string
	Discount decimal.Decimal
}

type Remark struct {
	value string
}

func NewRemark(value string) (Remark, error) {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) > MaxRemarkLength {
		return Remark{}, ErrRemarkTooLong
	}
	return Remark{value: value}, nil
}

func (r Remark) String() string {
	return r.value
}

// Number is the customer-facing order number: YYYYMMDD followed by six random digits.
type Number string

func GenerateNumber(now time.Time) (Number, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate order number: %w", err)
	}
	return Number(fmt.Sprintf("%s%0*d", now.Format("20060102"), orderNumberDigits, n.Int64())), nil
}

func (n Number) String() string {
	return string(n)
}
