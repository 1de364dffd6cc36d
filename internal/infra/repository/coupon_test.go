//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-api/internal/infra"
	"storefront-api/internal/infra/repository"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/usecase/shared"
	"storefront-api/tests/common/builder"
	repositorymock "storefront-api/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCouponRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		queryErr      error
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{name: "success: coupon created"},
		{name: "error: code already issued to the user", queryErr: pgx.ErrNoRows, expectedError: true, expectKind: infra.KindDuplicateKey},
		{
			name:          "error: user already holds an active coupon",
			queryErr:      &pgconn.PgError{Code: "23505", ConstraintName: "uq_coupons_active_per_user"},
			expectedError: true,
			expectKind:    infra.KindDuplicateKey,
		},
		{name: "error: database error occurs", queryErr: errors.New("database connection error"), expectedError: true, expectKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockCouponWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewCouponRepository(mockQueries, mockDB)

			cb := builder.NewCouponBuilder()
			domainCoupon := cb.BuildDomain()

			if tc.queryErr != nil {
				mockQueries.EXPECT().CreateCoupon(ctx, mockDB, gomock.Any()).Return(sqlc.Coupons{}, tc.queryErr)
			} else {
				mockQueries.EXPECT().CreateCoupon(ctx, mockDB, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ sqlc.DBTX, arg sqlc.CreateCouponParams) (sqlc.Coupons, error) {
						assert.Equal(t, cb.ID, arg.ID)
						assert.Equal(t, cb.Code, arg.Code)
						assert.Equal(t, int32(10), arg.DiscountPercentage)
						return cb.BuildInfra(), nil
					})
			}

			created, actualError := repo.Create(ctx, domainCoupon)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
				assert.Nil(t, created)
			} else {
				require.NoError(t, actualError)
				assert.Equal(t, cb.ID, created.ID())
				assert.True(t, created.IsActive())
			}
		})
	}
}

func TestCouponRepository_Deactivate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("reports whether a row changed", func(t *testing.T) {
		for affected, expected := range map[int64]bool{0: false, 1: true} {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockCouponWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewCouponRepository(mockQueries, mockDB)

			mockQueries.EXPECT().DeactivateCoupon(ctx, mockDB, sqlc.DeactivateCouponParams{
				UserID:    userID,
				Code:      "GIFTAB12CD34",
				UpdatedAt: pgtype.Timestamptz{Time: at, Valid: true},
			}).Return(affected, nil)

			changed, err := repo.Deactivate(ctx, userID, "GIFTAB12CD34", at)
			require.NoError(t, err)
			assert.Equal(t, expected, changed)
		}
	})

	t.Run("deactivate all returns the count", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockCouponWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewCouponRepository(mockQueries, mockDB)

		mockQueries.EXPECT().DeactivateActiveCouponsByUser(ctx, mockDB, gomock.Any()).Return(int64(1), nil)

		n, err := repo.DeactivateAllActive(ctx, userID, at)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("lock failures are db failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockCouponWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewCouponRepository(mockQueries, mockDB)

		mockQueries.EXPECT().LockUserCoupons(ctx, mockDB, userID.String()).Return(errors.New("lock timeout"))

		err := repo.LockUser(ctx, userID)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestOutboxRepository_Enqueue(t *testing.T) {
	ctx := context.Background()
	event := shared.OutboxEvent{AggregateID: uuid.New(), Type: shared.EventOrderPaid, Payload: []byte(`{"order_id":"x"}`)}

	testCases := []struct {
		name          string
		queryErr      error
		expectedError bool
	}{
		{name: "success: event stored"},
		{name: "error: database error occurs", queryErr: errors.New("database connection error"), expectedError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockOutboxWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewOutboxRepository(mockQueries, mockDB)

			mockQueries.EXPECT().CreateOutboxEvent(ctx, mockDB, sqlc.CreateOutboxEventParams{
				AggregateID: event.AggregateID,
				EventType:   "order.paid",
				Payload:     event.Payload,
			}).Return(tc.queryErr)

			err := repo.Enqueue(ctx, event)
			if tc.expectedError {
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
