package dto

import (
	"encoding/json"

	payModel "hostal/internal/domains/payment/model"
	"hostal/internal/domains/paypal/model"
	"hostal/shared"
	"hostal/shared/constant"
	gDto "hostal/shared/dto"
	gModel "hostal/shared/model"
	"hostal/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

type CreateOrderRequest struct {
	ReservationID string `json:"reservation_id" validate:"required,uuid"`
	Type          string `json:"type"           validate:"omitempty,oneof=reservation deposit full_payment"`
}

func (c *CreateOrderRequest) PaymentType() payModel.Type {
	if c.Type == constant.Empty {
		return payModel.TypeReservation
	}

	return payModel.Type(c.Type)
}

func (c *CreateOrderRequest) ToModel(user, orderID string, amount float64, currency string, providerResponse any) model.PaypalPayment {
	raw, _ := json.Marshal(providerResponse)

	return model.PaypalPayment{
		ID:             uuid.NewString(),
		PaypalOrderID:  orderID,
		ReservationID:  c.ReservationID,
		Status:         payModel.StatusPending,
		Type:           c.PaymentType(),
		Amount:         amount,
		Currency:       currency,
		PaypalResponse: types.JSONText(raw),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type CreateOrderResponse struct {
	PaymentID   string `json:"payment_id"`
	OrderID     string `json:"order_id"`
	ApprovalURL string `json:"approval_url"`
}

type CaptureOrderResponse struct {
	OrderID           string          `json:"order_id"`
	CaptureID         string          `json:"capture_id,omitempty"`
	PaymentStatus     payModel.Status `json:"payment_status"`
	ReservationStatus string          `json:"reservation_status"`
}

type OrderDetailsResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// WebhookEvent is the subset of PayPal's webhook envelope this service reads.
type WebhookEvent struct {
	ID        string          `json:"id"`
	EventType string          `json:"event_type"`
	Resource  WebhookResource `json:"resource"`
}

type WebhookResource struct {
	ID                string             `json:"id"`
	Status            string             `json:"status"`
	StatusDetails     *StatusDetails     `json:"status_details,omitempty"`
	SupplementaryData *SupplementaryData `json:"supplementary_data,omitempty"`
}

type StatusDetails struct {
	Reason string `json:"reason"`
}

type SupplementaryData struct {
	RelatedIDs *RelatedIDs `json:"related_ids,omitempty"`
}

type RelatedIDs struct {
	OrderID string `json:"order_id"`
}

// OrderID digs the checkout order id out of the capture resource's
// supplementary data; capture events carry the capture id in resource.id.
func (e *WebhookEvent) OrderID() string {
	if e.Resource.SupplementaryData != nil && e.Resource.SupplementaryData.RelatedIDs != nil {
		return e.Resource.SupplementaryData.RelatedIDs.OrderID
	}

	return constant.Empty
}

type PaypalPaymentResponse struct {
	ID              string          `json:"id"`
	PaypalOrderID   string          `json:"paypal_order_id"`
	PaypalPaymentID string          `json:"paypal_payment_id,omitempty"`
	PaypalPayerID   string          `json:"paypal_payer_id,omitempty"`
	ReservationID   string          `json:"reservation_id"`
	Status          payModel.Status `json:"status"`
	Type            payModel.Type   `json:"type"`
	Amount          float64         `json:"amount"`
	Currency        string          `json:"currency"`
	FailureReason   string          `json:"failure_reason,omitempty"`
	gDto.Metadata
}

func (p *PaypalPaymentResponse) FromModel(mod model.PaypalPayment) {
	p.ID = mod.ID
	p.PaypalOrderID = mod.PaypalOrderID
	p.PaypalPaymentID = mod.PaypalPaymentID
	p.PaypalPayerID = mod.PaypalPayerID
	p.ReservationID = mod.ReservationID
	p.Status = mod.Status
	p.Type = mod.Type
	p.Amount = mod.Amount
	p.Currency = mod.Currency
	p.FailureReason = mod.FailureReason
	p.Metadata.FromModel(mod.Metadata)
}

type GetPaypalPaymentsResponse struct {
	Payments  []PaypalPaymentResponse `json:"payments"`
	TotalPage int                     `json:"total_page"`
	TotalData int                     `json:"total_data"`
}

func (r *GetPaypalPaymentsResponse) FromModels(models []model.PaypalPayment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaypalPaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}
