//go:build unit || e2e

// Package memstore is an in-memory shared.UnitOfWork. Transactions are fully serialized and
// roll back on error; the store enforces the same constraints as the schema.
package memstore

import (
	"context"
	"sync"
	"time"

	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/domain/order"
	"storefront-api/internal/infra"
	"storefront-api/internal/pkg/clock"
	"storefront-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type Op string

const (
	OpCreateOrder  Op = "orders.create"
	OpMarkPaid     Op = "orders.mark_paid"
	OpCreateCoupon Op = "coupons.create"
	OpEnqueue      Op = "outbox.enqueue"
)

type Store struct {
	mu    sync.Mutex
	clock clock.Clock
	data  state

	failures map[Op]error
	commits  int
}

type state struct {
	orders  map[uuid.UUID]*order.Order
	coupons []*coupon.Coupon
	events  []shared.OutboxEvent
}

func (s state) clone() state {
	orders := make(map[uuid.UUID]*order.Order, len(s.orders))
	for k, v := range s.orders {
		orders[k] = v
	}
	return state{
		orders:  orders,
		coupons: append([]*coupon.Coupon(nil), s.coupons...),
		events:  append([]shared.OutboxEvent(nil), s.events...),
	}
}

func New(clk clock.Clock) *Store {
	return &Store{
		clock:    clk,
		data:     state{orders: map[uuid.UUID]*order.Order{}},
		failures: map[Op]error{},
	}
}

// FailOnce makes the next call of op return err.
func (s *Store) FailOnce(op Op, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.data.clone()
	tx := &memTx{store: s, data: &working}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	s.data = working
	s.commits++
	return nil
}

func (s *Store) CommandReads() shared.CommandReads {
	return &lockedReads{store: s}
}

// Seeding and inspection helpers; they bypass transactions.

func (s *Store) PutOrder(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.orders[o.ID()] = o
}

func (s *Store) PutCoupon(c *coupon.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.coupons = append(s.data.coupons, c)
}

func (s *Store) Order(id uuid.UUID) *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.orders[id]
}

func (s *Store) Coupons(userID uuid.UUID) []*coupon.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*coupon.Coupon
	for _, c := range s.data.coupons {
		if c.UserID() == userID {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) ActiveCoupons(userID uuid.UUID) []*coupon.Coupon {
	var out []*coupon.Coupon
	for _, c := range s.Coupons(userID) {
		if c.IsActive() {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) Events() []shared.OutboxEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]shared.OutboxEvent(nil), s.data.events...)
}

func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

func (s *Store) takeFailure(op Op) error {
	err, ok := s.failures[op]
	if !ok {
		return nil
	}
	delete(s.failures, op)
	return err
}

type memTx struct {
	store *Store
	data  *state
}

func (t *memTx) Orders() shared.OrderRepository   { return &orderRepo{t} }
func (t *memTx) Coupons() shared.CouponRepository { return &couponRepo{t} }
func (t *memTx) Outbox() shared.OutboxRepository  { return &outboxRepo{t} }
func (t *memTx) Reads() shared.CommandReads       { return &reads{data: t.data} }

type orderRepo struct{ tx *memTx }

func (r *orderRepo) Create(_ context.Context, o *order.Order) (*order.Order, error) {
	if err := r.tx.store.takeFailure(OpCreateOrder); err != nil {
		return nil, infra.WrapRepoErr("failed to create order", err)
	}
	for _, existing := range r.tx.data.orders {
		if existing.RemoteOrderID() == o.RemoteOrderID() {
			return nil, infra.WrapRepoErr("remote order id already stored", nil, infra.KindDuplicateKey)
		}
	}

	now := r.tx.store.clock.Now()
	created := order.ReconstructOrder(
		uuid.New(), o.UserID(), o.LineItems(), o.OriginalAmount(), o.CouponCode(), o.CouponDiscount(),
		o.TotalAmount(), o.Currency(), o.RemoteOrderID(), nil, nil, order.StatusPending, nil, now, now,
	)
	r.tx.data.orders[created.ID()] = created
	return created, nil
}

func (r *orderRepo) MarkPaid(_ context.Context, id uuid.UUID, remotePaymentID, remoteSignature string, at time.Time) (*order.Order, error) {
	if err := r.tx.store.takeFailure(OpMarkPaid); err != nil {
		return nil, infra.WrapRepoErr("failed to mark order paid", err)
	}
	o, ok := r.tx.data.orders[id]
	if !ok {
		return nil, infra.WrapRepoErr("order is not pending", nil, infra.KindConflict)
	}

	// Committed state shares pointers with this tx, so transition a copy.
	paid := order.ReconstructOrder(
		o.ID(), o.UserID(), o.LineItems(), o.OriginalAmount(), o.CouponCode(), o.CouponDiscount(),
		o.TotalAmount(), o.Currency(), o.RemoteOrderID(), o.RemotePaymentID(), o.RemoteSignature(),
		o.Status(), o.PaidAt(), o.CreatedAt(), o.UpdatedAt(),
	)
	if err := paid.MarkPaid(remotePaymentID, remoteSignature, at); err != nil {
		return nil, infra.WrapRepoErr("order is not pending", err, infra.KindConflict)
	}
	r.tx.data.orders[id] = paid
	return paid, nil
}

type couponRepo struct{ tx *memTx }

func (r *couponRepo) LockUser(context.Context, uuid.UUID) error {
	return nil
}

func (r *couponRepo) DeactivateAllActive(_ context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	var n int64
	for i, c := range r.tx.data.coupons {
		if c.UserID() == userID && c.IsActive() {
			r.tx.data.coupons[i] = deactivated(c, at)
			n++
		}
	}
	return n, nil
}

func (r *couponRepo) Deactivate(_ context.Context, userID uuid.UUID, code string, at time.Time) (bool, error) {
	for i, c := range r.tx.data.coupons {
		if c.UserID() == userID && c.Code().String() == code && c.IsActive() {
			r.tx.data.coupons[i] = deactivated(c, at)
			return true, nil
		}
	}
	return false, nil
}

func (r *couponRepo) Create(_ context.Context, c *coupon.Coupon) (*coupon.Coupon, error) {
	if err := r.tx.store.takeFailure(OpCreateCoupon); err != nil {
		return nil, infra.WrapRepoErr("failed to create coupon", err)
	}
	for _, existing := range r.tx.data.coupons {
		if existing.UserID() != c.UserID() {
			continue
		}
		if existing.Code() == c.Code() {
			return nil, infra.WrapRepoErr("coupon code already issued", nil, infra.KindDuplicateKey)
		}
		if existing.IsActive() {
			return nil, infra.WrapRepoErr("user already holds an active coupon", nil, infra.KindDuplicateKey)
		}
	}
	r.tx.data.coupons = append(r.tx.data.coupons, c)
	return c, nil
}

func deactivated(c *coupon.Coupon, at time.Time) *coupon.Coupon {
	copied := coupon.ReconstructCoupon(c.ID(), c.Code(), c.UserID(), c.Discount(), c.ExpirationDate(), c.IsActive(), c.CreatedAt(), c.UpdatedAt())
	copied.Deactivate(at)
	return copied
}

type outboxRepo struct{ tx *memTx }

func (r *outboxRepo) Enqueue(_ context.Context, event shared.OutboxEvent) error {
	if err := r.tx.store.takeFailure(OpEnqueue); err != nil {
		return infra.WrapRepoErr("failed to enqueue outbox event", err)
	}
	r.tx.data.events = append(r.tx.data.events, event)
	return nil
}

type reads struct{ data *state }

func (r *reads) OrderByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	o, ok := r.data.orders[id]
	if !ok {
		return nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return o, nil
}

func (r *reads) PaidOrderByCoupon(_ context.Context, userID uuid.UUID, code string) (*order.Order, error) {
	for _, o := range r.data.orders {
		if o.UserID() == userID && o.IsPaid() && o.CouponCode() != nil && *o.CouponCode() == code {
			return o, nil
		}
	}
	return nil, infra.WrapRepoErr("paid order for coupon not found", nil, infra.KindNotFound)
}

func (r *reads) ActiveCoupon(_ context.Context, userID uuid.UUID) (*coupon.Coupon, error) {
	for _, c := range r.data.coupons {
		if c.UserID() == userID && c.IsActive() {
			return c, nil
		}
	}
	return nil, infra.WrapRepoErr("active coupon not found", nil, infra.KindNotFound)
}

func (r *reads) ActiveCouponByCode(_ context.Context, userID uuid.UUID, code string) (*coupon.Coupon, error) {
	for _, c := range r.data.coupons {
		if c.UserID() == userID && c.Code().String() == code && c.IsActive() {
			return c, nil
		}
	}
	return nil, infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)
}

// lockedReads serves reads outside a transaction against committed state.
type lockedReads struct{ store *Store }

func (r *lockedReads) committed() *reads {
	snapshot := r.store.data.clone()
	return &reads{data: &snapshot}
}

func (r *lockedReads) OrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.committed().OrderByID(ctx, id)
}

func (r *lockedReads) PaidOrderByCoupon(ctx context.Context, userID uuid.UUID, code string) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.committed().PaidOrderByCoupon(ctx, userID, code)
}

func (r *lockedReads) ActiveCoupon(ctx context.Context, userID uuid.UUID) (*coupon.Coupon, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.committed().ActiveCoupon(ctx, userID)
}

func (r *lockedReads) ActiveCouponByCode(ctx context.Context, userID uuid.UUID, code string) (*coupon.Coupon, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.committed().ActiveCouponByCode(ctx, userID, code)
}
