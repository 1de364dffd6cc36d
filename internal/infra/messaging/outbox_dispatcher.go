package messaging

import (
	"context"
	"log/slog"
	"sync"
	"time"

	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/pkg/clock"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// claimLease is how long a claimed event stays invisible to other dispatchers.
const claimLease = 30 * time.Second

type OutboxQueries interface {
	ClaimOutboxEvents(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimOutboxEventsParams) ([]sqlc.ClaimOutboxEventsRow, error)
	MarkOutboxEventSent(ctx context.Context, db sqlc.DBTX, id uuid.UUID) error
	MarkOutboxEventFailed(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOutboxEventFailedParams) error
}

type OutboxDispatcher struct {
	db        sqlc.DBTX
	queries   OutboxQueries
	publisher Publisher
	clock     clock.Clock
	interval  time.Duration
	batchSize int32
	logger    *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewOutboxDispatcher(
	db sqlc.DBTX,
	queries OutboxQueries,
	publisher Publisher,
	clk clock.Clock,
	interval time.Duration,
	batchSize int32,
	logger *slog.Logger,
) *OutboxDispatcher {
	return &OutboxDispatcher{
		db:        db,
		queries:   queries,
		publisher: publisher,
		clock:     clk,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}
}

func (d *OutboxDispatcher) Start(ctx context.Context) {
	ctx, d.cancel = context.WithCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.loop(ctx)
	}()
}

func (d *OutboxDispatcher) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
	d.wg.Wait()
}

func (d *OutboxDispatcher) loop(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		if _, err := d.DispatchOnce(ctx); err != nil && ctx.Err() == nil {
			d.logger.Error("outbox dispatch failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// DispatchOnce publishes one claimed batch and returns how many events were sent.
func (d *OutboxDispatcher) DispatchOnce(ctx context.Context) (int, error) {
	rows, err := d.queries.ClaimOutboxEvents(ctx, d.db, sqlc.ClaimOutboxEventsParams{
		ReleaseAt: pgconv.TimeToPgtype(d.clock.Now().Add(claimLease)),
		BatchSize: d.batchSize,
	})
	if err != nil {
		return 0, errs.Wrap(err, "claim outbox events")
	}

	sent := 0
	for _, row := range rows {
		if err := d.publishOne(ctx, row); err != nil {
			d.logger.Warn("publish event failed",
				"event_id", row.ID,
				"event_type", row.EventType,
				"attempts", row.Attempts+1,
				"error", err)
			continue
		}
		sent++
	}
	return sent, nil
}

func (d *OutboxDispatcher) publishOne(ctx context.Context, row sqlc.ClaimOutboxEventsRow) error {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := d.publisher.Publish(pubCtx, row.EventType, row.Payload); err != nil {
		return d.markFailure(ctx, row, err)
	}

	return d.queries.MarkOutboxEventSent(ctx, d.db, row.ID)
}

func (d *OutboxDispatcher) markFailure(ctx context.Context, row sqlc.ClaimOutboxEventsRow, publishErr error) error {
	params := sqlc.MarkOutboxEventFailedParams{
		ID:        row.ID,
		NextRetry: pgconv.TimeToPgtype(d.clock.Now().Add(retryDelay(int(row.Attempts) + 1))),
		LastError: pgtype.Text{String: publishErr.Error(), Valid: true},
	}
	if err := d.queries.MarkOutboxEventFailed(ctx, d.db, params); err != nil {
		return errs.Wrap(err, "update retry")
	}
	return publishErr
}

func retryDelay(attempts int) time.Duration {
	if attempts < 0 {
		attempts = 0
	}
	if attempts > 5 {
		attempts = 5
	}
	delay := time.Duration(1<<attempts) * time.Second
	if delay > time.Minute {
		delay = time.Minute
	}
	return delay
}
