package repository

import (
	"context"
	"time"

	"storefront-api/internal/domain/order"
	"storefront-api/internal/infra"
	"storefront-api/internal/infra/repository/converter"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type OrderWriteQueries interface {
	CreateOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderParams) (sqlc.Orders, error)
	MarkOrderPaid(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOrderPaidParams) (sqlc.Orders, error)
}

type OrderRepository struct {
	queries OrderWriteQueries
	db      sqlc.DBTX
}

func NewOrderRepository(queries OrderWriteQueries, db sqlc.DBTX) *OrderRepository {
	return &OrderRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) (*order.Order, error) {
	params, err := converter.OrderToInfra(o)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to encode order", err)
	}

	row, err := r.queries.CreateOrder(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create order", err)
	}

	created, err := converter.OrderFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode order", err)
	}
	return created, nil
}

func (r *OrderRepository) MarkPaid(
	ctx context.Context,
	id uuid.UUID,
	remotePaymentID, remoteSignature string,
	at time.Time,
) (*order.Order, error) {
	params := sqlc.MarkOrderPaidParams{
		ID:              id,
		RemotePaymentID: pgconv.StringToPgtype(remotePaymentID),
		RemoteSignature: pgconv.StringToPgtype(remoteSignature),
		PaidAt:          pgconv.TimeToPgtype(at),
	}

	row, err := r.queries.MarkOrderPaid(ctx, r.db, params)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order is not pending", err, infra.KindConflict)
		}
		return nil, infra.WrapRepoErr("failed to mark order paid", err)
	}

	paid, err := converter.OrderFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode order", err)
	}
	return paid, nil
}
