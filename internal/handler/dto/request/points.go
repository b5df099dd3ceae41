package request

import (
	"github.com/bruceg7333/water-shop-api/internal/domain/points"
	"github.com/bruceg7333/water-shop-api/internal/pkg/patch"
	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type PointsMovementRequest struct {
	UserID      uuid.UUID  `json:"user_id" binding:"required"`
	Amount      int64      `json:"amount" binding:"required,min=1,max=1000000"`
	Direction   string     `json:"direction" binding:"required,oneof=increase decrease"`
	Source      string     `json:"source" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description,omitempty"`
	OrderID     *uuid.UUID `json:"order_id,omitempty"`
	ReviewID    *uuid.UUID `json:"review_id,omitempty"`
	ProductID   *uuid.UUID `json:"product_id,omitempty"`
}

func (r *PointsMovementRequest) IsDebit() bool {
	return points.Direction(r.Direction) == points.DirectionDecrease
}

func (r *PointsMovementRequest) ToInput() commands.PointsMovementInput {
	return commands.PointsMovementInput{
		UserID:      r.UserID,
		Amount:      r.Amount,
		Source:      r.Source,
		Title:       r.Title,
		Description: patch.Text(r.Description),
		OrderID:     r.OrderID,
		ReviewID:    r.ReviewID,
		ProductID:   r.ProductID,
	}
}

type PageQuery struct {
	After string `form:"after"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (q *PageQuery) Cursor() *queries.Cursor {
	if q.After == "" {
		return nil
	}
	return &queries.Cursor{After: q.After}
}
