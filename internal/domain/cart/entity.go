package cart

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidQuantity = errors.New("cart quantity must be at least 1")

// Line is one product/variant row of a user's cart.
type Line struct {
	ProductID uuid.UUID
	Variant   string
	Quantity  int
}

func NewLine(productID uuid.UUID, variant string, quantity int) (Line, error) {
	if quantity < 1 {
		return Line{}, ErrInvalidQuantity
	}
	return Line{ProductID: productID, Variant: strings.TrimSpace(variant), Quantity: quantity}, nil
}

// Merge sums quantities of lines sharing product and variant, keeping first-seen order.
func Merge(lines []Line) []Line {
	type key struct {
		productID uuid.UUID
		variant   string
	}
	idx := make(map[key]int, len(lines))
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		k := key{l.ProductID, l.Variant}
		if i, ok := idx[k]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		idx[k] = len(out)
		out = append(out, l)
	}
	return out
}
