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

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// InsertCoupon writes a coupon row directly, bypassing issuance.
func InsertCoupon(t *testing.T, db DBLike, userID uuid.UUID, code string, pct int, expiresAt time.Time, active bool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO coupons (id, code, user_id, discount_percentage, expiration_date, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, code, userID, pct, expiresAt, active)
	require.NoError(t, err)
	return id
}

// InsertPaidOrder records a settled order that spent couponCode.
func InsertPaidOrder(t *testing.T, db DBLike, userID uuid.UUID, couponCode string, total string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		`INSERT INTO orders (user_id, line_items, original_amount, coupon_code, coupon_discount_amount,
		                     total_amount, currency, remote_order_id, remote_payment_id, remote_signature,
		                     status, paid_at)
		 VALUES ($1, '[{"product_ref":"seed","quantity":1,"unit_price":"0"}]'::jsonb, $2::numeric, $3, 0,
		         $2::numeric, 'INR', $4, 'pay_seed', 'seed', 'paid', now())
		 RETURNING id`,
		userID, total, couponCode, "order_seed_"+uuid.NewString()[:8]).Scan(&id)
	require.NoError(t, err)
	return id
}

func CountActiveCoupons(t *testing.T, db DBLike, userID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM coupons WHERE user_id = $1 AND is_active", userID).Scan(&n)
	require.NoError(t, err)
	return n
}

func CountOutboxEvents(t *testing.T, db DBLike, eventType string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM outbox_events WHERE event_type = $1", eventType).Scan(&n)
	require.NoError(t, err)
	return n
}

func OrderStatus(t *testing.T, db DBLike, orderID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM orders WHERE id = $1", orderID).Scan(&status)
	require.NoError(t, err)
	return status
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
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
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
