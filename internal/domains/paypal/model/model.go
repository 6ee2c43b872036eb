package model

import (
	payModel "hostal/internal/domains/payment/model"
	"hostal/shared/model"

	"github.com/jmoiron/sqlx/types"
)

const (
	TableName  = "paypal_payments"
	EntityName = "paypal_payment"

	FieldID              = "id"
	FieldPaypalOrderID   = "paypal_order_id"
	FieldPaypalPaymentID = "paypal_payment_id"
	FieldPaypalPayerID   = "paypal_payer_id"
	FieldReservationID   = "reservation_id"
	FieldStatus          = "status"
	FieldType            = "type"
	FieldAmount          = "amount"
	FieldCurrency        = "currency"
	FieldFailureReason   = "failure_reason"
	FieldPaypalResponse  = "paypal_response"
)

// PayPal order statuses as returned by the orders API.
const (
	OrderStatusCompleted = "COMPLETED"
	OrderStatusApproved  = "APPROVED"
	OrderStatusCreated   = "CREATED"
	OrderStatusSaved     = "SAVED"
	OrderStatusVoided    = "VOIDED"
	OrderStatusDenied    = "DENIED"
)

// Webhook event types this service reacts to.
const (
	EventCaptureCompleted = "PAYMENT.CAPTURE.COMPLETED"
	EventCaptureDenied    = "PAYMENT.CAPTURE.DENIED"
	EventCapturePending   = "PAYMENT.CAPTURE.PENDING"
	EventCaptureRefunded  = "PAYMENT.CAPTURE.REFUNDED"
)

// MapCaptureStatus maps a PayPal order/capture status onto the shared payment
// vocabulary. Unknown statuses are treated as still pending.
func MapCaptureStatus(status string) payModel.Status {
	switch status {
	case OrderStatusCompleted:
		return payModel.StatusSucceeded
	case OrderStatusApproved:
		return payModel.StatusProcessing
	case OrderStatusCreated, OrderStatusSaved:
		return payModel.StatusPending
	case OrderStatusVoided, OrderStatusDenied:
		return payModel.StatusFailed
	default:
		return payModel.StatusPending
	}
}

// MapWebhookEvent maps a PayPal webhook event type onto the shared payment
// vocabulary. The second return is false for event types this service does
// not react to.
func MapWebhookEvent(eventType string) (payModel.Status, bool) {
	switch eventType {
	case EventCaptureCompleted:
		return payModel.StatusSucceeded, true
	case EventCaptureDenied:
		return payModel.StatusFailed, true
	case EventCapturePending:
		return payModel.StatusProcessing, true
	case EventCaptureRefunded:
		return payModel.StatusRefunded, true
	default:
		return payModel.StatusPending, false
	}
}

type PaypalPayment struct {
	ID              string          `db:"id"`
	PaypalOrderID   string          `db:"paypal_order_id"`
	PaypalPaymentID string          `db:"paypal_payment_id"`
	PaypalPayerID   string          `db:"paypal_payer_id"`
	ReservationID   string          `db:"reservation_id"`
	Status          payModel.Status `db:"status"`
	Type            payModel.Type   `db:"type"`
	Amount          float64         `db:"amount"`
	Currency        string          `db:"currency"`
	FailureReason   string          `db:"failure_reason"`
	PaypalResponse  types.JSONText  `db:"paypal_response"`
	model.Metadata
}
