package commands

import (
	"context"
	"log/slog"
	"time"

	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/infra"
	"storefront-api/internal/pkg/clock"
	"storefront-api/internal/pkg/config"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxCodeAttempts = 3

type CouponPolicy struct {
	Discount       coupon.Percentage
	Validity       time.Duration
	IssueThreshold decimal.Decimal
}

func NewCouponPolicy(cfg config.CouponConfig) (CouponPolicy, error) {
	pct, err := coupon.NewPercentage(cfg.DiscountPercent)
	if err != nil {
		return CouponPolicy{}, err
	}
	threshold, err := decimal.NewFromString(cfg.IssueThreshold)
	if err != nil {
		return CouponPolicy{}, errs.Wrap(err, "parse coupon issue threshold")
	}
	if cfg.Validity <= 0 {
		return CouponPolicy{}, errs.New("coupon validity must be positive")
	}
	return CouponPolicy{Discount: pct, Validity: cfg.Validity, IssueThreshold: threshold}, nil
}

// CouponService holds the per-transaction coupon operations shared by the payment flow.
type CouponService struct {
	generator coupon.CodeGenerator
	policy    CouponPolicy
	clock     clock.Clock
}

func NewCouponService(generator coupon.CodeGenerator, policy CouponPolicy, clock clock.Clock) *CouponService {
	return &CouponService{generator: generator, policy: policy, clock: clock}
}

func (s *CouponService) Policy() CouponPolicy {
	return s.policy
}

// Issue replaces the user's active coupon with a fresh one.
func (s *CouponService) Issue(ctx context.Context, tx shared.Tx, userID uuid.UUID) (*coupon.Coupon, error) {
	if err := tx.Coupons().LockUser(ctx, userID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if _, err := tx.Coupons().DeactivateAllActive(ctx, userID, now); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := s.generator.Generate()
		if err != nil {
			return nil, errs.Wrap(err, "generate coupon code")
		}

		created, err := tx.Coupons().Create(ctx, coupon.NewCoupon(userID, code, s.policy.Discount, now, s.policy.Validity))
		if err == nil {
			return created, nil
		}
		if !infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, err
		}
		slog.Warn("coupon code collision, regenerating", "user_id", userID, "attempt", attempt)
	}

	return nil, errs.New("could not generate a unique coupon code")
}

func (s *CouponService) FindActive(ctx context.Context, tx shared.Tx, userID uuid.UUID) (*coupon.Coupon, error) {
	c, err := tx.Reads().ActiveCoupon(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// Validate deactivates an expired coupon as a side effect and still reports ErrCouponExpired,
// so the caller must commit when it sees that verdict.
func (s *CouponService) Validate(ctx context.Context, tx shared.Tx, userID uuid.UUID, code coupon.Code) (*coupon.Coupon, error) {
	c, err := tx.Reads().ActiveCouponByCode(ctx, userID, code.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	now := s.clock.Now()
	switch err := c.ValidateUsage(now); {
	case errs.Is(err, coupon.ErrCouponExpired):
		if _, err := tx.Coupons().Deactivate(ctx, userID, code.String(), now); err != nil {
			return nil, err
		}
		return nil, ErrCouponExpired
	case err != nil:
		return nil, errs.Mark(err, ErrCouponNotFound)
	}
	return c, nil
}

func (s *CouponService) Deactivate(ctx context.Context, tx shared.Tx, userID uuid.UUID, code string) error {
	_, err := tx.Coupons().Deactivate(ctx, userID, code, s.clock.Now())
	return err
}

type CouponCommands interface {
	// Validate runs the spent check and the coupon lookup for a code the user wants to apply.
	Validate(ctx context.Context, userID uuid.UUID, code string) (*coupon.Coupon, error)
}

type couponCommandsImpl struct {
	uow     shared.UnitOfWork
	service *CouponService
}

func NewCouponCommands(uow shared.UnitOfWork, service *CouponService) CouponCommands {
	return &couponCommandsImpl{uow: uow, service: service}
}

func (c *couponCommandsImpl) Validate(ctx context.Context, userID uuid.UUID, rawCode string) (*coupon.Coupon, error) {
	code, err := coupon.NewCouponCode(rawCode)
	if err != nil {
		return nil, ErrCouponNotFound
	}

	var (
		found   *coupon.Coupon
		verdict error
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, verdict = nil, nil

		spent, err := tx.Reads().PaidOrderByCoupon(ctx, userID, code.String())
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return err
		}
		if spent != nil {
			verdict = ErrCouponAlreadyUsed
			return nil
		}

		found, err = c.service.Validate(ctx, tx, userID, code)
		if errs.Is(err, ErrCouponNotFound) || errs.Is(err, ErrCouponExpired) {
			verdict = err
			return nil
		}
		return err
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if verdict != nil {
		return nil, verdict
	}
	return found, nil
}
