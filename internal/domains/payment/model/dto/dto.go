package dto

import (
	"hostal/internal/domains/payment/model"
	"hostal/shared"
	"hostal/shared/constant"
	gDto "hostal/shared/dto"
	gModel "hostal/shared/model"
	"hostal/shared/timezone"

	"github.com/google/uuid"
)

type CreateCheckoutSessionRequest struct {
	ReservationID string `json:"reservation_id" validate:"required,uuid"`
	Type          string `json:"type"           validate:"omitempty,oneof=reservation deposit full_payment"`
}

func (c *CreateCheckoutSessionRequest) PaymentType() model.Type {
	if c.Type == constant.Empty {
		return model.TypeReservation
	}

	return model.Type(c.Type)
}

func (c *CreateCheckoutSessionRequest) ToModel(user, sessionID string, amount float64, currency string) model.Payment {
	return model.Payment{
		ID:              uuid.NewString(),
		StripeSessionID: sessionID,
		ReservationID:   c.ReservationID,
		Status:          model.StatusPending,
		Type:            c.PaymentType(),
		Amount:          amount,
		Currency:        currency,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type ConfirmCheckoutSessionRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

type CheckoutSessionResponse struct {
	PaymentID   string `json:"payment_id"`
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

type ConfirmCheckoutSessionResponse struct {
	SessionID         string       `json:"session_id"`
	PaymentStatus     model.Status `json:"payment_status"`
	ReservationStatus string       `json:"reservation_status"`
}

type PaymentResponse struct {
	ID              string       `json:"id"`
	StripeSessionID string       `json:"stripe_session_id"`
	ReservationID   string       `json:"reservation_id"`
	Status          model.Status `json:"status"`
	Type            model.Type   `json:"type"`
	Amount          float64      `json:"amount"`
	Currency        string       `json:"currency"`
	StripeChargeID  string       `json:"stripe_charge_id,omitempty"`
	FailureReason   string       `json:"failure_reason,omitempty"`
	gDto.Metadata
}

func (p *PaymentResponse) FromModel(mod model.Payment) {
	p.ID = mod.ID
	p.StripeSessionID = mod.StripeSessionID
	p.ReservationID = mod.ReservationID
	p.Status = mod.Status
	p.Type = mod.Type
	p.Amount = mod.Amount
	p.Currency = mod.Currency
	p.StripeChargeID = mod.StripeChargeID
	p.FailureReason = mod.FailureReason
	p.Metadata.FromModel(mod.Metadata)
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}
