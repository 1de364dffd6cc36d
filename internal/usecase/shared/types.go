package shared

import (
	"github.com/google/uuid"
)

const (
	EventOrderPaid    = "order.paid"
	EventCouponIssued = "coupon.issued"
)

type OutboxEvent struct {
	AggregateID uuid.UUID
	Type        string
	Payload     []byte
}
