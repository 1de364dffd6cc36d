package readstore

import (
	"context"

	"storefront-api/internal/domain/order"
	"storefront-api/internal/infra"
	"storefront-api/internal/infra/repository/converter"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/pkg/pgconv"
	"storefront-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderReadQueries interface {
	GetOrderByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Orders, error)
	GetOrderByIDAndUser(ctx context.Context, db sqlc.DBTX, arg sqlc.GetOrderByIDAndUserParams) (sqlc.Orders, error)
	FindPaidOrderByCoupon(ctx context.Context, db sqlc.DBTX, arg sqlc.FindPaidOrderByCouponParams) (sqlc.Orders, error)
}

type OrderReadStore struct {
	queries OrderReadQueries
	db      sqlc.DBTX
}

func NewOrderReadStore(queries OrderReadQueries, db sqlc.DBTX) *OrderReadStore {
	return &OrderReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	row, err := r.queries.GetOrderByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}
	return decodeOrder(row)
}

func (r *OrderReadStore) FindPaidByCoupon(ctx context.Context, userID uuid.UUID, code string) (*order.Order, error) {
	row, err := r.queries.FindPaidOrderByCoupon(ctx, r.db, sqlc.FindPaidOrderByCouponParams{
		UserID:     userID,
		CouponCode: pgconv.StringToPgtype(code),
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("paid order for coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find paid order by coupon", err)
	}
	return decodeOrder(row)
}

func (r *OrderReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	o, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderView(o), nil
}

func (r *OrderReadStore) FindViewByIDForUser(ctx context.Context, id, userID uuid.UUID) (*queries.OrderView, error) {
	row, err := r.queries.GetOrderByIDAndUser(ctx, r.db, sqlc.GetOrderByIDAndUserParams{ID: id, UserID: userID})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID for user", err)
	}

	o, err := decodeOrder(row)
	if err != nil {
		return nil, err
	}
	return toOrderView(o), nil
}

func decodeOrder(row sqlc.Orders) (*order.Order, error) {
	o, err := converter.OrderFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode order", err)
	}
	return o, nil
}

func toOrderView(o *order.Order) *queries.OrderView {
	items := make([]queries.OrderItemView, len(o.LineItems()))
	for i, item := range o.LineItems() {
		items[i] = queries.OrderItemView{
			ProductRef: item.ProductRef(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
		}
	}

	return &queries.OrderView{
		ID:                   o.ID(),
		UserID:               o.UserID(),
		Status:               o.Status().String(),
		Items:                items,
		OriginalAmount:       o.OriginalAmount(),
		CouponCode:           o.CouponCode(),
		CouponDiscountAmount: o.CouponDiscount(),
		TotalAmount:          o.TotalAmount(),
		Currency:             o.Currency(),
		RemoteOrderID:        o.RemoteOrderID(),
		RemotePaymentID:      o.RemotePaymentID(),
		PaidAt:               o.PaidAt(),
		CreatedAt:            o.CreatedAt(),
		UpdatedAt:            o.UpdatedAt(),
	}
}
