package bootstrap

import (
	"context"
	"log/slog"

	"storefront-api/internal/infra/messaging"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/pkg/clock"
	"storefront-api/internal/pkg/config"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Invoke(StartOutboxDispatcher),
)

// StartOutboxDispatcher leaves events queued in the outbox table when no broker is configured.
func StartOutboxDispatcher(
	lc fx.Lifecycle,
	cfg config.MessagingConfig,
	db sqlc.DBTX,
	queries *sqlc.Queries,
	clk clock.Clock,
	logger *slog.Logger,
) error {
	if cfg.RabbitURL == "" {
		logger.Warn("RABBITMQ_URL not set, outbox events will not be dispatched")
		return nil
	}

	publisher, err := messaging.NewRabbitPublisher(cfg.RabbitURL, cfg.Exchange)
	if err != nil {
		return err
	}
	dispatcher := messaging.NewOutboxDispatcher(db, queries, publisher, clk, cfg.PollInterval, cfg.BatchSize, logger)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			dispatcher.Start(context.Background())
			logger.Info("outbox dispatcher started", "exchange", cfg.Exchange)
			return nil
		},
		OnStop: func(_ context.Context) error {
			dispatcher.Stop()
			return publisher.Close()
		},
	})
	return nil
}
