package model

import (
	"hostal/shared/model"

	"github.com/jmoiron/sqlx/types"
	"github.com/stripe/stripe-go/v79"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID              = "id"
	FieldStripeSessionID = "stripe_session_id"
	FieldReservationID   = "reservation_id"
	FieldStatus          = "status"
	FieldType            = "type"
	FieldAmount          = "amount"
	FieldCurrency        = "currency"
	FieldStripeChargeID  = "stripe_charge_id"
	FieldFailureReason   = "failure_reason"
	FieldProviderData    = "metadata"
)

// Status is the shared payment lifecycle vocabulary used by both providers.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
	StatusCanceled   Status = "canceled"
	StatusRefunded   Status = "refunded"
)

// Type classifies what a payment covers.
type Type string

const (
	TypeReservation Type = "reservation"
	TypeDeposit     Type = "deposit"
	TypeFullPayment Type = "full_payment"
)

// Outcome is the provider-neutral result of a payment event, normalized from
// either a Stripe session or a PayPal order/webhook resource.
type Outcome struct {
	Status            Status
	ExternalID        string
	ProviderPaymentID string
	PayerID           string
	FailureReason     string
}

// MapStripeSessionStatus maps a checkout session's payment_status onto the
// shared vocabulary: paid means succeeded, unpaid means still pending, and
// anything else is treated as failed.
func MapStripeSessionStatus(status stripe.CheckoutSessionPaymentStatus) Status {
	switch status {
	case stripe.CheckoutSessionPaymentStatusPaid:
		return StatusSucceeded
	case stripe.CheckoutSessionPaymentStatusUnpaid:
		return StatusPending
	default:
		return StatusFailed
	}
}

type Payment struct {
	ID              string         `db:"id"`
	StripeSessionID string         `db:"stripe_session_id"`
	ReservationID   string         `db:"reservation_id"`
	Status          Status         `db:"status"`
	Type            Type           `db:"type"`
	Amount          float64        `db:"amount"`
	Currency        string         `db:"currency"`
	StripeChargeID  string         `db:"stripe_charge_id"`
	FailureReason   string         `db:"failure_reason"`
	ProviderData    types.JSONText `db:"metadata"`
	model.Metadata
}
