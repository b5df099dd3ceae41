package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/domain/order"
	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	insertOrder = `
INSERT INTO orders (
    id, order_number, user_id,
    shipping_name, shipping_phone, shipping_province, shipping_city, shipping_district, shipping_address,
    payment_method, remark, items_total, shipping_fee, discount_amount, grand_total,
    coupon_id, coupon_claim_id, coupon_code, status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	insertOrderItem = `
INSERT INTO order_items (order_id, line_no, product_id, product_name, unit_price, quantity, variant)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	findOrderForUpdate = `
SELECT id, order_number, user_id,
       shipping_name, shipping_phone, shipping_province, shipping_city, shipping_district, shipping_address,
       payment_method, remark, items_total, shipping_fee, discount_amount, grand_total,
       coupon_id, coupon_claim_id, coupon_code, status, payment_ref, points_granted,
       created_at, paid_at, delivered_at, completed_at, canceled_at, archived_at, updated_at
FROM orders
WHERE id = $1
FOR UPDATE`

	findOrderItems = `
SELECT product_id, product_name, unit_price, quantity, variant
FROM order_items
WHERE order_id = $1
ORDER BY line_no`

	findOrderIDByNumber = `SELECT id FROM orders WHERE order_number = $1`

	updateOrderStatus = `
UPDATE orders
SET status = $2, payment_ref = $3, paid_at = $4, delivered_at = $5, completed_at = $6, canceled_at = $7, updated_at = $8
WHERE id = $1 AND status = $9`

	updateOrderArchived = `
UPDATE orders
SET archived_at = $2, updated_at = $3
WHERE id = $1 AND archived_at IS NULL`

	markOrderPointsGranted = `
UPDATE orders
SET points_granted = TRUE, updated_at = now()
WHERE id = $1 AND status = 'completed' AND NOT points_granted
RETURNING id, order_number, user_id, grand_total, completed_at`
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order) error {
	s := o.Shipping()
	var (
		couponID, claimID *uuid.UUID
		couponCode        *string
	)
	if c := o.Coupon(); c != nil {
		couponID, claimID, couponCode = &c.CouponID, &c.ClaimID, &c.Code
	}

	_, err := tx.Exec(ctx, insertOrder,
		o.ID(), o.Number().String(), o.UserID(),
		s.Name, s.Phone, s.Province, s.City, s.District, s.Address,
		o.PaymentMethod().String(), o.Remark().String(), o.ItemsTotal(), o.ShippingFee(), o.Discount(), o.GrandTotal(),
		couponID, claimID, couponCode, o.Status().String(), o.CreatedAt(), o.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}

	for i, it := range o.Items() {
		_, err := tx.Exec(ctx, insertOrderItem,
			o.ID(), i+1, it.ProductID(), it.ProductName(), it.UnitPrice(), it.Quantity(), it.Variant(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to create order item", err)
		}
	}
	return nil
}

func (r *OrderRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*order.Order, error) {
	var (
		orderID, userID               uuid.UUID
		number, paymentMethod, remark string
		name, phone, province, city   string
		district, address, status     string
		itemsTotal, shippingFee       decimal.Decimal
		discount, grandTotal          decimal.Decimal
		couponID, claimID             *uuid.UUID
		couponCode, paymentRef        *string
		pointsGranted                 bool
		ts                            order.Timestamps
	)
	err := tx.QueryRow(ctx, findOrderForUpdate, id).Scan(
		&orderID, &number, &userID,
		&name, &phone, &province, &city, &district, &address,
		&paymentMethod, &remark, &itemsTotal, &shippingFee, &discount, &grandTotal,
		&couponID, &claimID, &couponCode, &status, &paymentRef, &pointsGranted,
		&ts.CreatedAt, &ts.PaidAt, &ts.DeliveredAt, &ts.CompletedAt, &ts.CanceledAt, &ts.ArchivedAt, &ts.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	items, err := r.findItems(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	var applied *order.AppliedCoupon
	if couponID != nil {
		applied = &order.AppliedCoupon{CouponID: *couponID, Discount: discount}
		if claimID != nil {
			applied.ClaimID = *claimID
		}
		if couponCode != nil {
			applied.Code = *couponCode
		}
	}

	remarkVO, _ := order.NewRemark(remark)
	return order.ReconstructOrder(
		orderID, order.Number(number), userID, items,
		order.Shipping{Name: name, Phone: phone, Province: province, City: city, District: district, Address: address},
		order.PaymentMethod(paymentMethod), remarkVO,
		itemsTotal, shippingFee, grandTotal,
		applied, order.Status(status), paymentRef, pointsGranted, ts,
	), nil
}

func (r *OrderRepository) findItems(ctx context.Context, tx db.DBTX, orderID uuid.UUID) ([]order.LineItem, error) {
	rows, err := tx.Query(ctx, findOrderItems, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order items", err)
	}
	defer rows.Close()

	var items []order.LineItem
	for rows.Next() {
		var (
			productID   uuid.UUID
			productName string
			unitPrice   decimal.Decimal
			quantity    int
			variant     string
		)
		if err := rows.Scan(&productID, &productName, &unitPrice, &quantity, &variant); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item", err)
		}
		li, err := order.NewLineItem(productID, productName, unitPrice, quantity, variant)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid stored order item", err)
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order items", err)
	}
	return items, nil
}

func (r *OrderRepository) FindIDByNumber(ctx context.Context, tx db.DBTX, number string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := tx.QueryRow(ctx, findOrderIDByNumber, number).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to find order by number", err)
	}
	return id, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, tx db.DBTX, o *order.Order, expected order.Status) error {
	tag, err := tx.Exec(ctx, updateOrderStatus,
		o.ID(), o.Status().String(), o.PaymentRef(),
		o.PaidAt(), o.DeliveredAt(), o.CompletedAt(), o.CanceledAt(), o.UpdatedAt(),
		expected.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order status changed concurrently", pgx.ErrNoRows, infra.KindConflict)
	}
	return nil
}

func (r *OrderRepository) UpdateArchived(ctx context.Context, tx db.DBTX, o *order.Order) error {
	archivedAt := o.ArchivedAt()
	if archivedAt == nil {
		return nil
	}
	if _, err := tx.Exec(ctx, updateOrderArchived, o.ID(), *archivedAt, o.UpdatedAt()); err != nil {
		return infra.WrapRepoErr("failed to archive order", err)
	}
	return nil
}

func (r *OrderRepository) MarkPointsGranted(ctx context.Context, tx db.DBTX, orderID uuid.UUID) (*shared.GrantableOrder, bool, error) {
	var (
		g           shared.GrantableOrder
		completedAt *time.Time
	)
	err := tx.QueryRow(ctx, markOrderPointsGranted, orderID).Scan(&g.ID, &g.Number, &g.UserID, &g.GrandTotal, &completedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, infra.WrapRepoErr("failed to mark order points granted", err)
	}
	g.CompletedAt = completedAt
	return &g, true, nil
}
