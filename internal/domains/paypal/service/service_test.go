package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hostal/config"
	"hostal/infras/otel/mocks"
	paypalInfra "hostal/infras/paypal"
	paypalInfraMocks "hostal/infras/paypal/mocks"
	payModel "hostal/internal/domains/payment/model"
	paypalMocks "hostal/internal/domains/paypal/mocks"
	"hostal/internal/domains/paypal/model"
	"hostal/internal/domains/paypal/model/dto"
	"hostal/internal/domains/paypal/service"
	resMocks "hostal/internal/domains/reservation/mocks"
	resModel "hostal/internal/domains/reservation/model"
	gDto "hostal/shared/dto"
)

func TestPaypalService_CreateOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := paypalMocks.NewMockPaypalPayment(ctrl)
	mockResRepo := resMocks.NewMockReservation(ctrl)
	mockPaypal := paypalInfraMocks.NewMockPayPal(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.App.FrontendURL = "https://hostal.test"

	svc := service.New(mockRepo, mockResRepo, cfg, mockOtel, mockPaypal)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful order creation",
			setupMock: func() {
				mockResRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(resModel.Reservation{
						ID:                "res-1",
						ReservationNumber: "RES-20260801-0001",
						TotalPrice:        151,
					}, nil)

				mockPaypal.EXPECT().
					CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params paypalInfra.CreateOrderParams) (*paypalInfra.Order, error) {
						assert.Equal(t, 151.0, params.Amount)
						assert.Equal(t, "RES-20260801-0001", params.ReferenceID)

						return &paypalInfra.Order{
							ID:     "ord_1",
							Status: model.OrderStatusCreated,
							Links: []paypalInfra.Link{
								{Href: "https://paypal.test/approve/ord_1", Rel: "approve"},
							},
						}, nil
					})

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mod model.PaypalPayment) error {
						assert.Equal(t, "ord_1", mod.PaypalOrderID)
						assert.Equal(t, payModel.StatusPending, mod.Status)

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
					Return(resModel.Reservation{ID: "res-1", TotalPrice: 151}, nil)

				mockPaypal.EXPECT().
					CreateOrder(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("paypal is down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.CreateOrder(context.Background(), dto.CreateOrderRequest{ReservationID: "res-1"})

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "ord_1", res.OrderID)
			assert.Equal(t, "https://paypal.test/approve/ord_1", res.ApprovalURL)
		})
	}
}

func TestPaypalService_CapturePayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := paypalMocks.NewMockPaypalPayment(ctrl)
	mockResRepo := resMocks.NewMockReservation(ctrl)
	mockPaypal := paypalInfraMocks.NewMockPayPal(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockResRepo, cfg, mockOtel, mockPaypal)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.PaypalPayment{ID: "pay-1", ReservationID: "res-1", PaypalOrderID: "ord_1"}, nil)

	mockPaypal.EXPECT().
		CaptureOrder(gomock.Any(), "ord_1").
		Return(&paypalInfra.Order{
			ID:     "ord_1",
			Status: model.OrderStatusCompleted,
			Payer:  &paypalInfra.Payer{PayerID: "payer-1"},
		}, nil)

	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, payModel.StatusSucceeded, fields[model.FieldStatus])
			assert.Equal(t, "payer-1", fields[model.FieldPaypalPayerID])

			return nil
		})

	mockResRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, resModel.StatusConfirmed, fields[resModel.FieldStatus])

			return nil
		})

	res, err := svc.CapturePayment(context.Background(), "ord_1")

	assert.NoError(t, err)
	assert.Equal(t, payModel.StatusSucceeded, res.PaymentStatus)
	assert.Equal(t, resModel.StatusConfirmed, res.ReservationStatus)
}

func TestPaypalService_HandleWebhook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := paypalMocks.NewMockPaypalPayment(ctrl)
	mockResRepo := resMocks.NewMockReservation(ctrl)
	mockPaypal := paypalInfraMocks.NewMockPayPal(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockResRepo, cfg, mockOtel, mockPaypal)

	capturePayload := []byte(`{
		"event_type": "PAYMENT.CAPTURE.COMPLETED",
		"resource": {
			"id": "cap_1",
			"supplementary_data": {"related_ids": {"order_id": "ord_1"}}
		}
	}`)

	tests := []struct {
		name      string
		payload   []byte
		setupMock func()
		wantErr   bool
	}{
		{
			name:      "malformed payload",
			payload:   []byte(`not json`),
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:      "unhandled event type ignored",
			payload:   []byte(`{"event_type": "CHECKOUT.ORDER.APPROVED"}`),
			setupMock: func() {},
		},
		{
			name:    "capture completed updates payment without touching reservation",
			payload: capturePayload,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.PaypalPayment{ID: "pay-1", ReservationID: "res-1"}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, payModel.StatusSucceeded, fields[model.FieldStatus])
						assert.Equal(t, "cap_1", fields[model.FieldPaypalPaymentID])

						return nil
					})
			},
		},
		{
			name:    "unknown order is acknowledged",
			payload: capturePayload,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.PaypalPayment{}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.HandleWebhook(context.Background(), tt.payload)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestPaypalService_HandleWebhook_ReplayIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := paypalMocks.NewMockPaypalPayment(ctrl)
	mockResRepo := resMocks.NewMockReservation(ctrl)
	mockPaypal := paypalInfraMocks.NewMockPayPal(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockResRepo, cfg, mockOtel, mockPaypal)

	payload := []byte(`{
		"event_type": "PAYMENT.CAPTURE.COMPLETED",
		"resource": {
			"id": "cap_1",
			"supplementary_data": {"related_ids": {"order_id": "ord_1"}}
		}
	}`)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.PaypalPayment{ID: "pay-1", ReservationID: "res-1"}, nil).
		Times(2)

	var paymentUpdates []map[string]any

	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			paymentUpdates = append(paymentUpdates, fields)

			return nil
		}).
		Times(2)

	// No reservation Update expectation: the webhook path stamps the payment
	// row only, replayed or not.
	for i := 0; i < 2; i++ {
		assert.NoError(t, svc.HandleWebhook(context.Background(), payload))
	}

	for _, fields := range paymentUpdates {
		assert.Equal(t, payModel.StatusSucceeded, fields[model.FieldStatus])
		assert.Equal(t, "cap_1", fields[model.FieldPaypalPaymentID])
	}
}
