package converter

import (
	"encoding/json"

	"storefront-api/internal/domain/order"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/pkg/pgconv"

	"github.com/shopspring/decimal"
)

type lineItemRecord struct {
	ProductRef string          `json:"product_ref"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

func OrderToInfra(o *order.Order) (sqlc.CreateOrderParams, error) {
	records := make([]lineItemRecord, len(o.LineItems()))
	for i, item := range o.LineItems() {
		records[i] = lineItemRecord{
			ProductRef: item.ProductRef(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
		}
	}

	items, err := json.Marshal(records)
	if err != nil {
		return sqlc.CreateOrderParams{}, errs.Wrap(err, "marshal line items")
	}

	return sqlc.CreateOrderParams{
		UserID:               o.UserID(),
		LineItems:            items,
		OriginalAmount:       o.OriginalAmount(),
		CouponCode:           pgconv.StringPtrToPgtype(o.CouponCode()),
		CouponDiscountAmount: o.CouponDiscount(),
		TotalAmount:          o.TotalAmount(),
		Currency:             o.Currency(),
		RemoteOrderID:        o.RemoteOrderID(),
	}, nil
}

func OrderFromInfra(row sqlc.Orders) (*order.Order, error) {
	var records []lineItemRecord
	if err := json.Unmarshal(row.LineItems, &records); err != nil {
		return nil, errs.Wrap(err, "unmarshal line items")
	}

	items := make([]order.LineItem, len(records))
	for i, rec := range records {
		item, err := order.NewLineItem(rec.ProductRef, rec.Quantity, rec.UnitPrice)
		if err != nil {
			return nil, errs.Wrapf(err, "line item %d", i)
		}
		items[i] = item
	}

	status, err := order.NewStatus(row.Status)
	if err != nil {
		return nil, err
	}

	return order.ReconstructOrder(
		row.ID,
		row.UserID,
		items,
		row.OriginalAmount,
		pgconv.StringPtrFromPgtype(row.CouponCode),
		row.CouponDiscountAmount,
		row.TotalAmount,
		row.Currency,
		row.RemoteOrderID,
		pgconv.StringPtrFromPgtype(row.RemotePaymentID),
		pgconv.StringPtrFromPgtype(row.RemoteSignature),
		status,
		pgconv.TimePtrFromPgtype(row.PaidAt),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
