package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/domain/order"
	reqdto "storefront-api/internal/handler/dto/request"
	"storefront-api/internal/infra"
	"storefront-api/internal/pkg/clock"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/pkg/signature"
	"storefront-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateOrderResult struct {
	RemoteOrderID string
	OrderID       uuid.UUID
	AmountMinor   int64
	Currency      string
	KeyID         string
}

type VerifyPaymentResult struct {
	OrderID     uuid.UUID
	AlreadyPaid bool
	// IssuedCoupon is nil when the payment did not earn a coupon.
	IssuedCoupon *coupon.Coupon
}

type PaymentCommands interface {
	CreateOrder(ctx context.Context, req reqdto.CreateOrderRequest, userID uuid.UUID) (*CreateOrderResult, error)
	VerifyPayment(ctx context.Context, req reqdto.VerifyPaymentRequest, userID uuid.UUID) (*VerifyPaymentResult, error)
}

type PaymentSettings struct {
	KeyID    string
	Currency string
}

type paymentCommandsImpl struct {
	uow      shared.UnitOfWork
	coupons  *CouponService
	gateway  PaymentGateway
	verifier SignatureVerifier
	settings PaymentSettings
	clock    clock.Clock
}

func NewPaymentCommands(
	uow shared.UnitOfWork,
	coupons *CouponService,
	gateway PaymentGateway,
	verifier SignatureVerifier,
	settings PaymentSettings,
	clock clock.Clock,
) PaymentCommands {
	return &paymentCommandsImpl{
		uow:      uow,
		coupons:  coupons,
		gateway:  gateway,
		verifier: verifier,
		settings: settings,
		clock:    clock,
	}
}

func (p *paymentCommandsImpl) CreateOrder(
	ctx context.Context,
	req reqdto.CreateOrderRequest,
	userID uuid.UUID,
) (*CreateOrderResult, error) {
	items, err := req.ToLineItems()
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInput)
	}

	original := order.SumLineItems(items)

	couponCode := req.GetCouponCode()
	discount := decimal.Zero
	if couponCode != nil {
		applied, err := p.resolveCoupon(ctx, userID, *couponCode)
		if err != nil {
			return nil, err
		}
		discount = applied.DiscountFor(original)
		normalized := applied.Code().String()
		couponCode = &normalized
	}

	quote := order.NewQuote(original, discount)
	amountMinor, err := order.ToMinorUnits(quote.Total)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInput)
	}

	notes := map[string]string{"user_id": userID.String()}
	if couponCode != nil {
		notes["coupon_code"] = *couponCode
	}
	remote, err := p.gateway.CreateRemoteOrder(ctx, RemoteOrderRequest{
		AmountMinor: amountMinor,
		Currency:    p.settings.Currency,
		Receipt:     "rcpt_" + strconv.FormatInt(p.clock.Now().UnixMilli(), 10),
		Notes:       notes,
	})
	if err != nil {
		slog.Error("remote order creation failed", "user_id", userID, "error", err)
		return nil, errs.Mark(err, ErrGateway)
	}

	draft, err := order.NewPendingOrder(userID, items, quote, couponCode, p.settings.Currency, remote.ID)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInput)
	}

	var created *order.Order
	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		created, err = tx.Orders().Create(ctx, draft)
		return err
	})
	if err != nil {
		// The remote order already exists and is left orphaned.
		slog.Error("orphaned remote order", "user_id", userID, "remote_order_id", remote.ID, "error", err)
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if remote.AmountMinor != amountMinor || remote.Currency != created.Currency() {
		slog.Warn("remote order amount differs from local total",
			"order_id", created.ID(),
			"remote_order_id", remote.ID,
			"local_amount", amountMinor,
			"remote_amount", remote.AmountMinor,
			"local_currency", created.Currency(),
			"remote_currency", remote.Currency)
	}

	return &CreateOrderResult{
		RemoteOrderID: remote.ID,
		OrderID:       created.ID(),
		AmountMinor:   remote.AmountMinor,
		Currency:      remote.Currency,
		KeyID:         p.settings.KeyID,
	}, nil
}

func (p *paymentCommandsImpl) resolveCoupon(ctx context.Context, userID uuid.UUID, code string) (*coupon.Coupon, error) {
	var (
		found   *coupon.Coupon
		verdict error
	)
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, verdict = nil, nil

		parsed, err := coupon.NewCouponCode(code)
		if err != nil {
			verdict = errs.Mark(ErrCouponNotFound, ErrInvalidCoupon)
			return nil
		}

		spent, err := tx.Reads().PaidOrderByCoupon(ctx, userID, parsed.String())
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return err
		}
		if spent != nil {
			verdict = ErrCouponAlreadyUsed
			return nil
		}

		found, err = p.coupons.Validate(ctx, tx, userID, parsed)
		if errs.Is(err, ErrCouponNotFound) || errs.Is(err, ErrCouponExpired) {
			verdict = errs.Mark(err, ErrInvalidCoupon)
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

func (p *paymentCommandsImpl) VerifyPayment(
	ctx context.Context,
	req reqdto.VerifyPaymentRequest,
	userID uuid.UUID,
) (*VerifyPaymentResult, error) {
	if !req.HasAllFields() {
		return nil, ErrInvalidInput
	}

	masked := signature.Mask(req.RazorpaySignature)
	if !p.verifier.Verify(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		slog.Warn("payment signature mismatch",
			"user_id", userID,
			"order_id", req.OrderID,
			"remote_order_id", req.RazorpayOrderID,
			"signature", masked,
		)
		return nil, ErrSignatureMismatch
	}

	existing, err := p.uow.CommandReads().OrderByID(ctx, req.OrderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		slog.Error("failed to load order for verification", "order_id", req.OrderID, "error", err)
		return nil, errs.Mark(err, ErrReconciliationFailed)
	}
	if !existing.BelongsTo(userID) {
		return nil, ErrOrderNotFound
	}
	if existing.RemoteOrderID() != req.RazorpayOrderID {
		slog.Warn("remote order id does not match stored order",
			"user_id", userID,
			"order_id", req.OrderID,
			"remote_order_id", req.RazorpayOrderID,
			"signature", masked,
		)
		return nil, ErrSignatureMismatch
	}
	if existing.IsPaid() {
		return &VerifyPaymentResult{OrderID: existing.ID(), AlreadyPaid: true}, nil
	}

	result, err := p.settle(ctx, existing, req)
	if err != nil {
		slog.Error("payment reconciliation failed",
			"user_id", userID,
			"order_id", req.OrderID,
			"remote_order_id", req.RazorpayOrderID,
			"remote_payment_id", req.RazorpayPaymentID,
			"signature", masked,
			"error", err,
		)
		return nil, errs.Mark(err, ErrReconciliationFailed)
	}
	return result, nil
}

// settle runs the pending to paid transition, coupon bookkeeping and event
// enqueueing in one transaction. A concurrent settle that lost the race reports AlreadyPaid.
func (p *paymentCommandsImpl) settle(ctx context.Context, pending *order.Order, req reqdto.VerifyPaymentRequest) (*VerifyPaymentResult, error) {
	var result *VerifyPaymentResult

	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = &VerifyPaymentResult{OrderID: pending.ID()}
		now := p.clock.Now()

		paid, err := tx.Orders().MarkPaid(ctx, pending.ID(), req.RazorpayPaymentID, req.RazorpaySignature, now)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				current, readErr := tx.Reads().OrderByID(ctx, pending.ID())
				if readErr == nil && current.IsPaid() {
					result.AlreadyPaid = true
					return nil
				}
				return errs.Mark(err, ErrInvalidTransition)
			}
			return err
		}

		if err := tx.Coupons().LockUser(ctx, paid.UserID()); err != nil {
			return err
		}
		if code := paid.CouponCode(); code != nil {
			if err := p.coupons.Deactivate(ctx, tx, paid.UserID(), *code); err != nil {
				return err
			}
		}

		if paid.QualifiesForCoupon(p.coupons.Policy().IssueThreshold) {
			active, err := p.coupons.FindActive(ctx, tx, paid.UserID())
			if err != nil {
				return err
			}
			if active == nil {
				issued, err := p.coupons.Issue(ctx, tx, paid.UserID())
				if err != nil {
					return err
				}
				result.IssuedCoupon = issued
			}
		}

		return p.enqueueEvents(ctx, tx, paid, result.IssuedCoupon)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (p *paymentCommandsImpl) enqueueEvents(ctx context.Context, tx shared.Tx, paid *order.Order, issued *coupon.Coupon) error {
	payload, err := json.Marshal(orderPaidEvent{
		OrderID:         paid.ID(),
		UserID:          paid.UserID(),
		RemoteOrderID:   paid.RemoteOrderID(),
		RemotePaymentID: derefString(paid.RemotePaymentID()),
		TotalAmount:     paid.TotalAmount(),
		Currency:        paid.Currency(),
		PaidAt:          derefTime(paid.PaidAt()),
	})
	if err != nil {
		return errs.Wrap(err, "marshal order.paid event")
	}
	if err := tx.Outbox().Enqueue(ctx, shared.OutboxEvent{
		AggregateID: paid.ID(),
		Type:        shared.EventOrderPaid,
		Payload:     payload,
	}); err != nil {
		return err
	}

	if issued == nil {
		return nil
	}
	payload, err = json.Marshal(couponIssuedEvent{
		CouponID:           issued.ID(),
		UserID:             issued.UserID(),
		Code:               issued.Code().String(),
		DiscountPercentage: issued.Discount().Value(),
		ExpirationDate:     issued.ExpirationDate(),
	})
	if err != nil {
		return errs.Wrap(err, "marshal coupon.issued event")
	}
	return tx.Outbox().Enqueue(ctx, shared.OutboxEvent{
		AggregateID: issued.ID(),
		Type:        shared.EventCouponIssued,
		Payload:     payload,
	})
}

type orderPaidEvent struct {
	OrderID         uuid.UUID       `json:"order_id"`
	UserID          uuid.UUID       `json:"user_id"`
	RemoteOrderID   string          `json:"remote_order_id"`
	RemotePaymentID string          `json:"remote_payment_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Currency        string          `json:"currency"`
	PaidAt          time.Time       `json:"paid_at"`
}

type couponIssuedEvent struct {
	CouponID           uuid.UUID `json:"coupon_id"`
	UserID             uuid.UUID `json:"user_id"`
	Code               string    `json:"code"`
	DiscountPercentage int       `json:"discount_percentage"`
	ExpirationDate     time.Time `json:"expiration_date"`
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
