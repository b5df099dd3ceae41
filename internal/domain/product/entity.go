package product

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyProductName   = errors.New("product name cannot be empty")
	ErrProductNameTooLong = errors.New("product name is too long (max 255 characters)")
	ErrNegativePrice      = errors.New("product price cannot be negative")
	ErrNegativeStock      = errors.New("product stock cannot be negative")
	ErrProductInactive    = errors.New("product is not available for sale")
	ErrInsufficientStock  = errors.New("insufficient stock")
)

const (
	MaxProductNameLength = 255
)

// InsufficientStockError reports the stock observed when a decrement was refused.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.ProductName, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

type Product struct {
	id        uuid.UUID
	name      string
	price     decimal.Decimal
	stock     int
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

func NewProduct(id uuid.UUID, name string, price decimal.Decimal, stock int) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Product{
		id:       id,
		name:     strings.TrimSpace(name),
		price:    price.Round(2),
		stock:    stock,
		isActive: true,
	}, nil
}

func ReconstructProduct(id uuid.UUID, name string, price decimal.Decimal, stock int, isActive bool, createdAt, updatedAt time.Time) *Product {
	return &Product{
		id:        id,
		name:      name,
		price:     price,
		stock:     stock,
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// CheckPurchasable is a pre-flight check; the authoritative check is the conditional decrement.
func (p *Product) CheckPurchasable(quantity int) error {
	if !p.isActive {
		return ErrProductInactive
	}
	if p.stock < quantity {
		return &InsufficientStockError{
			ProductID:   p.id,
			ProductName: p.name,
			Requested:   quantity,
			Available:   p.stock,
		}
	}
	return nil
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyProductName
	}
	if len(name) > MaxProductNameLength {
		return ErrProductNameTooLong
	}
	return nil
}

func (p *Product) ID() uuid.UUID          { return p.id }
func (p *Product) Name() string           { return p.name }
func (p *Product) Price() decimal.Decimal { return p.price }
func (p *Product) Stock() int             { return p.stock }
func (p *Product) IsActive() bool         { return p.isActive }
func (p *Product) CreatedAt() time.Time   { return p.createdAt }
func (p *Product) UpdatedAt() time.Time   { return p.updatedAt }
