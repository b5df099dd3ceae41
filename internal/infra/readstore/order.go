package readstore

import (
	"context"
	"strings"

	"github.com/bruceg7333/water-shop-api/internal/domain/order"
	"github.com/bruceg7333/water-shop-api/internal/infra"
	"github.com/bruceg7333/water-shop-api/internal/infra/db"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	getOrderView = `
SELECT id, order_number, user_id,
       shipping_name, shipping_phone, shipping_province, shipping_city, shipping_district, shipping_address,
       payment_method, remark, items_total, shipping_fee, discount_amount, grand_total, coupon_code,
       status, payment_ref, points_granted,
       created_at, paid_at, delivered_at, completed_at, canceled_at, archived_at, updated_at
FROM orders
WHERE id = $1`

	getOrderItemViews = `
SELECT product_id, product_name, unit_price, quantity, variant
FROM order_items
WHERE order_id = $1
ORDER BY line_no`

	// $3/$4 carry the keyset; both NULL on the first page.
	listOrdersByUser = `
SELECT o.id, o.order_number, o.status, o.grand_total, o.created_at,
       (SELECT count(*) FROM order_items i WHERE i.order_id = o.id),
       COALESCE((SELECT i.product_name FROM order_items i WHERE i.order_id = o.id ORDER BY i.line_no LIMIT 1), '')
FROM orders o
WHERE o.user_id = $1
  AND o.archived_at IS NULL
  AND ($2::text IS NULL OR o.status = $2)
  AND ($3::timestamptz IS NULL OR (o.created_at, o.id) < ($3, $4::uuid))
ORDER BY o.created_at DESC, o.id DESC
LIMIT $5`

	// $1 status, $2 ILIKE pattern, $3/$4 created_at range, $5/$6 keyset.
	listAllOrders = `
SELECT o.id, o.user_id, o.shipping_name, o.order_number, o.status, o.grand_total, o.created_at,
       (SELECT count(*) FROM order_items i WHERE i.order_id = o.id),
       COALESCE((SELECT i.product_name FROM order_items i WHERE i.order_id = o.id ORDER BY i.line_no LIMIT 1), '')
FROM orders o
LEFT JOIN users u ON u.id = o.user_id
WHERE ($1::text IS NULL OR o.status = $1)
  AND ($2::text IS NULL
       OR o.order_number ILIKE $2
       OR o.shipping_name ILIKE $2
       OR o.shipping_phone ILIKE $2
       OR o.shipping_address ILIKE $2
       OR u.email ILIKE $2
       OR u.username ILIKE $2)
  AND ($3::timestamptz IS NULL OR o.created_at >= $3)
  AND ($4::timestamptz IS NULL OR o.created_at < $4)
  AND ($5::timestamptz IS NULL OR (o.created_at, o.id) < ($5, $6::uuid))
ORDER BY o.created_at DESC, o.id DESC
LIMIT $7`
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(db db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: db}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	var (
		v             queries.OrderView
		status        string
		paymentMethod string
	)
	s := &v.Shipping
	err := r.db.QueryRow(ctx, getOrderView, id).Scan(
		&v.ID, &v.OrderNumber, &v.UserID,
		&s.Name, &s.Phone, &s.Province, &s.City, &s.District, &s.Address,
		&paymentMethod, &v.Remark, &v.ItemsTotal, &v.ShippingFee, &v.DiscountAmount, &v.GrandTotal, &v.CouponCode,
		&status, &v.PaymentRef, &v.PointsGranted,
		&v.CreatedAt, &v.PaidAt, &v.DeliveredAt, &v.CompletedAt, &v.CanceledAt, &v.ArchivedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get order view", err)
	}
	st := order.Status(status)
	v.Status = status
	v.PaymentMethod = paymentMethod
	v.IsPaid = st.IsPaid()
	v.IsDelivered = st.IsDelivered()

	items, err := r.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Items = items
	return &v, nil
}

func (r *OrderReadStore) findItems(ctx context.Context, orderID uuid.UUID) ([]queries.OrderItemView, error) {
	rows, err := r.db.Query(ctx, getOrderItemViews, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get order items", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (queries.OrderItemView, error) {
		var it queries.OrderItemView
		err := row.Scan(&it.ProductID, &it.ProductName, &it.UnitPrice, &it.Quantity, &it.Variant)
		it.Subtotal = it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		return it, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan order items", err)
	}
	return items, nil
}

func (r *OrderReadStore) ListByUser(ctx context.Context, userID uuid.UUID, status *order.Status, after *queries.Keyset, limit int32) ([]*queries.OrderListItem, error) {
	var statusArg *string
	if status != nil {
		s := status.String()
		statusArg = &s
	}
	args := []any{userID, statusArg, nil, nil, limit}
	if after != nil {
		args[2], args[3] = after.CreatedAt, after.ID
	}

	rows, err := r.db.Query(ctx, listOrdersByUser, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.OrderListItem, error) {
		var it queries.OrderListItem
		err := row.Scan(&it.ID, &it.OrderNumber, &it.Status, &it.GrandTotal, &it.CreatedAt, &it.ItemCount, &it.FirstItem)
		return &it, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan orders", err)
	}
	return items, nil
}

func (r *OrderReadStore) ListAll(ctx context.Context, filters queries.OrderFilters, after *queries.Keyset, limit int32) ([]*queries.OrderListItem, error) {
	var statusArg, patternArg *string
	if filters.Status != nil {
		s := filters.Status.String()
		statusArg = &s
	}
	if filters.Keyword != "" {
		p := "%" + likeEscaper.Replace(filters.Keyword) + "%"
		patternArg = &p
	}
	args := []any{statusArg, patternArg, filters.From, filters.To, nil, nil, limit}
	if after != nil {
		args[4], args[5] = after.CreatedAt, after.ID
	}

	rows, err := r.db.Query(ctx, listAllOrders, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list all orders", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.OrderListItem, error) {
		var (
			it     queries.OrderListItem
			userID uuid.UUID
		)
		err := row.Scan(&it.ID, &userID, &it.Recipient, &it.OrderNumber, &it.Status, &it.GrandTotal, &it.CreatedAt, &it.ItemCount, &it.FirstItem)
		it.UserID = &userID
		return &it, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan orders", err)
	}
	return items, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
