//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	infradb "github.com/bruceg7333/water-shop-api/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Every seeded user shares TestPassword; TestPasswordHash is its bcrypt hash.
const (
	TestPassword     = "password123"
	TestPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."
)

// Querier is satisfied by the shared pool and by a transaction scoped to one test.
type Querier = infradb.DBTX

// Catalog seeded by SeedReferenceData.
var (
	SpringWaterID  = uuid.MustParse("0b7e4d3a-6a53-4c1e-9d8f-1a2b3c4d5e01")
	MineralWaterID = uuid.MustParse("0b7e4d3a-6a53-4c1e-9d8f-1a2b3c4d5e02")
	RetiredWaterID = uuid.MustParse("0b7e4d3a-6a53-4c1e-9d8f-1a2b3c4d5e03")
)

func CreateTestUser(t *testing.T, db Querier, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()
	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, username, password_hash, role, is_active) VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (email) WHERE is_active = true DO NOTHING",
		userID, email, strings.Split(email, "@")[0], TestPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1 AND is_active = true", email).Scan(&userID)
	}

	return userID
}

func CreateTestProduct(t *testing.T, db Querier, name, price string, stock int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO products (id, name, price, stock, is_active) VALUES ($1, $2, $3, $4, true)",
		id, name, decimal.RequireFromString(price), stock)
	require.NoError(t, err)
	return id
}

type CouponFixture struct {
	Code         string
	Type         string
	Amount       string
	MinPurchase  string
	MaxDiscount  *string
	TotalLimit   *int
	PerUserLimit int
	StartDate    time.Time
	EndDate      time.Time
}

// DefaultCoupon is a fixed 5.00 off coupon valid for the next 30 days.
func DefaultCoupon(code string) CouponFixture {
	now := time.Now()
	return CouponFixture{
		Code:         code,
		Type:         "fixed",
		Amount:       "5.00",
		MinPurchase:  "0",
		PerUserLimit: 1,
		StartDate:    now.Add(-time.Hour),
		EndDate:      now.Add(30 * 24 * time.Hour),
	}
}

func CreateTestCoupon(t *testing.T, db Querier, f CouponFixture) uuid.UUID {
	t.Helper()

	var maxDiscount *decimal.Decimal
	if f.MaxDiscount != nil {
		d := decimal.RequireFromString(*f.MaxDiscount)
		maxDiscount = &d
	}

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO coupons (id, name, code, discount_type, amount, min_purchase, max_discount,
		                     start_date, end_date, total_limit, per_user_limit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		id, "Coupon "+f.Code, f.Code, f.Type, decimal.RequireFromString(f.Amount),
		decimal.RequireFromString(f.MinPurchase), maxDiscount,
		f.StartDate, f.EndDate, f.TotalLimit, f.PerUserLimit)
	require.NoError(t, err)
	return id
}

func ProductStock(t *testing.T, db Querier, productID uuid.UUID) int {
	t.Helper()

	var stock int
	err := db.QueryRow(context.Background(), "SELECT stock FROM products WHERE id = $1", productID).Scan(&stock)
	require.NoError(t, err)
	return stock
}

func CouponCounts(t *testing.T, db Querier, couponID uuid.UUID) (issued, used int) {
	t.Helper()

	err := db.QueryRow(context.Background(),
		"SELECT issued_count, used_count FROM coupons WHERE id = $1", couponID).Scan(&issued, &used)
	require.NoError(t, err)
	return issued, used
}

func CountClaims(t *testing.T, db Querier, couponID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM user_coupons WHERE coupon_id = $1", couponID).Scan(&n)
	require.NoError(t, err)
	return n
}

func PointsBalance(t *testing.T, db Querier, userID uuid.UUID) int64 {
	t.Helper()

	var balance int64
	err := db.QueryRow(context.Background(),
		"SELECT COALESCE((SELECT balance FROM point_balances WHERE user_id = $1), 0)", userID).Scan(&balance)
	require.NoError(t, err)
	return balance
}

// PointsLedgerSum is the signed sum of the user's entries, which must equal the balance.
func PointsLedgerSum(t *testing.T, db Querier, userID uuid.UUID) int64 {
	t.Helper()

	var sum int64
	err := db.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(CASE WHEN direction = 'increase' THEN amount ELSE -amount END), 0)
		FROM point_entries WHERE user_id = $1`, userID).Scan(&sum)
	require.NoError(t, err)
	return sum
}

func OrderStatus(t *testing.T, db Querier, orderID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM orders WHERE id = $1", orderID).Scan(&status)
	require.NoError(t, err)
	return status
}

func CountOrders(t *testing.T, db Querier, userID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM orders WHERE user_id = $1", userID).Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO products (id, name, price, stock, is_active) VALUES
		    ($1, 'Spring Water 550ml x24', 12.50, 100, true),
		    ($2, 'Mineral Water 1.5L x12', 25.00, 100, true),
		    ($3, 'Glacier Water 330ml x24', 30.00, 100, false)
		ON CONFLICT (id) DO NOTHING;
	`, SpringWaterID, MineralWaterID, RetiredWaterID)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations', 'atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
