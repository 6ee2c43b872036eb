package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/mock/gomock"

	"hostal/config"
	"hostal/infras/otel/mocks"
	stripeInfra "hostal/infras/stripe"
	stripeMocks "hostal/infras/stripe/mocks"
	paymentMocks "hostal/internal/domains/payment/mocks"
	"hostal/internal/domains/payment/model"
	"hostal/internal/domains/payment/model/dto"
	"hostal/internal/domains/payment/service"
	resMocks "hostal/internal/domains/reservation/mocks"
	resModel "hostal/internal/domains/reservation/model"
	gDto "hostal/shared/dto"
	"hostal/shared/failure"
)

func TestPaymentService_CreateCheckoutSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := paymentMocks.NewMockPayment(ctrl)
	mockResRepo := resMocks.NewMockReservation(ctrl)
	mockStripe := stripeMocks.NewMockStripe(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.App.FrontendURL = "https://hostal.test"

	svc := service.New(mockRepo, mockResRepo, cfg, mockOtel, mockStripe)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful session creation",
			setupMock: func() {
				mockResRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(resModel.Reservation{
						ID:                "res-1",
						ReservationNumber: "RES-20260801-0001",
						ClientID:          "client-1",
						TotalPrice:        151,
					}, nil)

				mockResRepo.EXPECT().
					GetClient(gomock.Any(), "client-1").
					Return(resModel.Client{ID: "client-1", Email: "guest@hostal.test"}, nil)

				mockStripe.EXPECT().
					CreateCheckoutSession(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params stripeInfra.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
						assert.Equal(t, 151.0, params.Amount)
						assert.Equal(t, "guest@hostal.test", params.CustomerEmail)
						assert.Equal(t, "https://hostal.test/payment/cancel", params.CancelURL)

						return &stripe.CheckoutSession{ID: "cs_123", URL: "https://checkout.stripe.com/cs_123"}, nil
					})

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mod model.Payment) error {
						assert.Equal(t, "cs_123", mod.StripeSessionID)
						assert.Equal(t, model.StatusPending, mod.Status)

						return nil
					})
			},
		},
		{
			name: "reservation not found",
			setupMock: func() {
				mockResRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(resModel.Reservation{}, nil)
			},
			wantErr: true,
		},
		{
			name: "provider error",
			setupMock: func() {
				mockResRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(resModel.Reservation{ID: "res-1", ClientID: "client-1", TotalPrice: 151}, nil)

				mockResRepo.EXPECT().
					GetClient(gomock.Any(), "client-1").
					Return(resModel.Client{ID: "client-1"}, nil)

				mockStripe.EXPECT().
					CreateCheckoutSession(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("stripe is down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.CreateCheckoutSession(context.Background(), dto.CreateCheckoutSessionRequest{ReservationID: "res-1"})

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "cs_123", res.SessionID)
			assert.NotEmpty(t, res.CheckoutURL)
		})
	}
}

func TestPaymentService_ConfirmCheckoutSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := paymentMocks.NewMockPayment(ctrl)
	mockResRepo := resMocks.NewMockReservation(ctrl)
	mockStripe := stripeMocks.NewMockStripe(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockResRepo, cfg, mockOtel, mockStripe)

	mockStripe.EXPECT().
		GetCheckoutSession(gomock.Any(), "cs_123").
		Return(&stripe.CheckoutSession{
			ID:            "cs_123",
			PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
			PaymentIntent: &stripe.PaymentIntent{ID: "pi_1"},
		}, nil)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Payment{ID: "pay-1", ReservationID: "res-1", StripeSessionID: "cs_123"}, nil)

	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, model.StatusSucceeded, fields[model.FieldStatus])
			assert.Equal(t, "pi_1", fields[model.FieldStripeChargeID])

			return nil
		})

	mockResRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, resModel.StatusConfirmed, fields[resModel.FieldStatus])
			assert.Equal(t, resModel.PaymentStatusPaid, fields[resModel.FieldPaymentStatus])

			return nil
		})

	res, err := svc.ConfirmCheckoutSession(context.Background(), "cs_123")

	assert.NoError(t, err)
	assert.Equal(t, model.StatusSucceeded, res.PaymentStatus)
	assert.Equal(t, resModel.StatusConfirmed, res.ReservationStatus)
}

func TestPaymentService_HandleWebhook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := paymentMocks.NewMockPayment(ctrl)
	mockResRepo := resMocks.NewMockReservation(ctrl)
	mockStripe := stripeMocks.NewMockStripe(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.External.Stripe.WebhookSecret = "whsec_test"

	svc := service.New(mockRepo, mockResRepo, cfg, mockOtel, mockStripe)

	sessionJSON, _ := json.Marshal(map[string]any{
		"id":             "cs_123",
		"payment_intent": map[string]any{"id": "pi_1"},
	})

	tests := []struct {
		name      string
		signature string
		setupMock func()
		wantErr   bool
	}{
		{
			name:      "missing signature",
			signature: "",
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:      "invalid signature",
			signature: "t=1,v1=bad",
			setupMock: func() {
				mockStripe.EXPECT().
					ConstructWebhookEvent(gomock.Any(), gomock.Any()).
					Return(stripe.Event{}, errors.New("signature verification failed"))
			},
			wantErr: true,
		},
		{
			name:      "completed session confirms reservation",
			signature: "t=1,v1=good",
			setupMock: func() {
				mockStripe.EXPECT().
					ConstructWebhookEvent(gomock.Any(), gomock.Any()).
					Return(stripe.Event{
						Type: stripe.EventTypeCheckoutSessionCompleted,
						Data: &stripe.EventData{Raw: sessionJSON},
					}, nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Payment{ID: "pay-1", ReservationID: "res-1"}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockResRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:      "unknown session is acknowledged",
			signature: "t=1,v1=good",
			setupMock: func() {
				mockStripe.EXPECT().
					ConstructWebhookEvent(gomock.Any(), gomock.Any()).
					Return(stripe.Event{
						Type: stripe.EventTypeCheckoutSessionCompleted,
						Data: &stripe.EventData{Raw: sessionJSON},
					}, nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Payment{}, nil)
			},
		},
		{
			name:      "unhandled event type ignored",
			signature: "t=1,v1=good",
			setupMock: func() {
				mockStripe.EXPECT().
					ConstructWebhookEvent(gomock.Any(), gomock.Any()).
					Return(stripe.Event{Type: stripe.EventTypeInvoicePaid}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.HandleWebhook(context.Background(), []byte(`{}`), tt.signature)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestPaymentService_HandleWebhook_MissingSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := paymentMocks.NewMockPayment(ctrl)
	mockResRepo := resMocks.NewMockReservation(ctrl)
	mockStripe := stripeMocks.NewMockStripe(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockResRepo, cfg, mockOtel, mockStripe)

	// No ConstructWebhookEvent expectation: the event must never be parsed
	// when the secret is not configured.
	err := svc.HandleWebhook(context.Background(), []byte(`{}`), "t=1,v1=good")

	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestPaymentService_HandleWebhook_ReplayIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := paymentMocks.NewMockPayment(ctrl)
	mockResRepo := resMocks.NewMockReservation(ctrl)
	mockStripe := stripeMocks.NewMockStripe(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.External.Stripe.WebhookSecret = "whsec_test"

	svc := service.New(mockRepo, mockResRepo, cfg, mockOtel, mockStripe)

	sessionJSON, _ := json.Marshal(map[string]any{
		"id":             "cs_123",
		"payment_intent": map[string]any{"id": "pi_1"},
	})

	mockStripe.EXPECT().
		ConstructWebhookEvent(gomock.Any(), gomock.Any()).
		Return(stripe.Event{
			Type: stripe.EventTypeCheckoutSessionCompleted,
			Data: &stripe.EventData{Raw: sessionJSON},
		}, nil).
		Times(2)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Payment{ID: "pay-1", ReservationID: "res-1"}, nil).
		Times(2)

	var paymentUpdates []map[string]any

	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			paymentUpdates = append(paymentUpdates, fields)

			return nil
		}).
		Times(2)

	var reservationUpdates []map[string]any

	mockResRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			reservationUpdates = append(reservationUpdates, fields)

			return nil
		}).
		Times(2)

	for i := 0; i < 2; i++ {
		assert.NoError(t, svc.HandleWebhook(context.Background(), []byte(`{}`), "t=1,v1=good"))
	}

	// Statuses are set, not incremented: the replay stamps the exact same
	// state it stamped the first time.
	for _, fields := range paymentUpdates {
		assert.Equal(t, model.StatusSucceeded, fields[model.FieldStatus])
		assert.Equal(t, "pi_1", fields[model.FieldStripeChargeID])
	}

	for _, fields := range reservationUpdates {
		assert.Equal(t, resModel.StatusConfirmed, fields[resModel.FieldStatus])
		assert.Equal(t, resModel.PaymentStatusPaid, fields[resModel.FieldPaymentStatus])
		assert.Equal(t, "cs_123", fields[resModel.FieldStripePaymentIntentID])
	}
}
