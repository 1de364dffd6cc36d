package repository

import (
	"context"

	"storefront-api/internal/infra"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/usecase/shared"
)

type OutboxWriteQueries interface {
	CreateOutboxEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOutboxEventParams) error
}

type OutboxRepository struct {
	queries OutboxWriteQueries
	db      sqlc.DBTX
}

func NewOutboxRepository(queries OutboxWriteQueries, db sqlc.DBTX) *OutboxRepository {
	return &OutboxRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, event shared.OutboxEvent) error {
	err := r.queries.CreateOutboxEvent(ctx, r.db, sqlc.CreateOutboxEventParams{
		AggregateID: event.AggregateID,
		EventType:   event.Type,
		Payload:     event.Payload,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue outbox event", err)
	}
	return nil
}
