package model_test

import (
	"testing"

	"hostal/internal/domains/payment/model"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v79"
)

func TestMapStripeSessionStatus(t *testing.T) {
	tests := []struct {
		name   string
		status stripe.CheckoutSessionPaymentStatus
		want   model.Status
	}{
		{
			name:   "paid maps to succeeded",
			status: stripe.CheckoutSessionPaymentStatusPaid,
			want:   model.StatusSucceeded,
		},
		{
			name:   "unpaid maps to pending",
			status: stripe.CheckoutSessionPaymentStatusUnpaid,
			want:   model.StatusPending,
		},
		{
			name:   "no_payment_required falls through to failed",
			status: stripe.CheckoutSessionPaymentStatusNoPaymentRequired,
			want:   model.StatusFailed,
		},
		{
			name:   "unknown value falls through to failed",
			status: stripe.CheckoutSessionPaymentStatus("something_else"),
			want:   model.StatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.MapStripeSessionStatus(tt.status))
		})
	}
}
