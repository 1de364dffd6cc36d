package components

import (
	"storefront-api/internal/infra/readstore"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/infra/uow"
	"storefront-api/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	uowModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Order
		fx.Annotate(
			func(q *sqlc.Queries, db sqlc.DBTX) *readstore.OrderReadStore {
				return readstore.NewOrderReadStore(q, db)
			},
			fx.As(new(queries.OrderReadStore)),
		),
		// Coupon
		fx.Annotate(
			func(q *sqlc.Queries, db sqlc.DBTX) *readstore.CouponReadStore {
				return readstore.NewCouponReadStore(q, db)
			},
			fx.As(new(queries.CouponReadStore)),
		),
	),
)

// Write repositories are bound per transaction inside the unit of work.
var uowModule = fx.Module("persistence/uow",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}
