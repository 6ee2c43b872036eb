package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hostal/config"
	"hostal/infras/otel/mocks"
	stripeMocks "hostal/infras/stripe/mocks"
	payDto "hostal/internal/domains/payment/model/dto"
	paymentMocks "hostal/internal/domains/payment/mocks"
	resMocks "hostal/internal/domains/reservation/mocks"
	"hostal/internal/domains/reservation/model"
	"hostal/internal/domains/reservation/model/dto"
	"hostal/internal/domains/reservation/pricing"
	"hostal/internal/domains/reservation/service"
	roomMocks "hostal/internal/domains/room/mocks"
	roomModel "hostal/internal/domains/room/model"
	cacheMocks "hostal/shared/cache/mocks"
	gDto "hostal/shared/dto"
	gModel "hostal/shared/model"
	"hostal/shared/timezone"

	"github.com/stripe/stripe-go/v79"
)

func testRoom() roomModel.Room {
	return roomModel.Room{
		ID:               "room-1",
		Name:             "Habitación Doble",
		PricePerNight:    100,
		BaseCapacity:     2,
		ExtraCapacity:    1,
		ExtraGuestCharge: 20,
	}
}

func validRequest() dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		RoomID: "room-1",
		Client: dto.ClientRequest{
			FirstName: "Ana",
			LastName:  "García",
			Email:     "ana@example.com",
		},
		CheckInDate:     "2026-09-01",
		CheckOutDate:    "2026-09-03",
		BaseGuestsCount: 2,
	}
}

func TestReservationService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := resMocks.NewMockReservation(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockPayment := paymentMocks.NewMockPaymentService(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockStripe := stripeMocks.NewMockStripe(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, mockPayment, cfg, mockCache, mockOtel, mockStripe)

	tests := []struct {
		name      string
		req       dto.CreateReservationRequest
		setupMock func()
		wantErr   error
		check     func(t *testing.T, res dto.ReservationResponse)
	}{
		{
			name: "successful creation with price for extra guest",
			req: func() dto.CreateReservationRequest {
				req := validRequest()
				req.ExtraGuestsCount = 1

				return req
			}(),
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testRoom(), nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Reservation{}, nil)

				mockRepo.EXPECT().
					CreateWithClient(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			check: func(t *testing.T, res dto.ReservationResponse) {
				t.Helper()

				// 2 nights * 100 + 2 nights * 1 extra guest * 20.
				assert.InDelta(t, 240.0, res.TotalPrice, 0.001)
				assert.Equal(t, model.StatusPending, res.Status)
				assert.Regexp(t, `^R-\d{8}-[A-Z0-9]{6}$`, res.ReservationNumber)
				assert.Equal(t, "Ana", res.Client.FirstName)
			},
		},
		{
			name: "room not found",
			req:  validRequest(),
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, nil)
			},
			wantErr: errors.New("room not found"),
		},
		{
			name: "guest count over capacity",
			req: func() dto.CreateReservationRequest {
				req := validRequest()
				req.BaseGuestsCount = 3
				req.ExtraGuestsCount = 1

				return req
			}(),
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testRoom(), nil)
			},
			wantErr: pricing.ErrCapacityExceeded,
		},
		{
			name: "check-out before check-in",
			req: func() dto.CreateReservationRequest {
				req := validRequest()
				req.CheckInDate = "2026-09-03"
				req.CheckOutDate = "2026-09-01"

				return req
			}(),
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testRoom(), nil)
			},
			wantErr: pricing.ErrInvalidDateRange,
		},
		{
			name: "same-day turnover conflict",
			req: func() dto.CreateReservationRequest {
				req := validRequest()
				req.EarlyCheckIn = true

				return req
			}(),
			setupMock: func() {
				checkOut, _ := timezone.Parse("2006-01-02", "2026-09-01")

				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testRoom(), nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Reservation{
						{
							ID:           "res-2",
							RoomID:       "room-1",
							CheckInDate:  checkOut.AddDate(0, 0, -2),
							CheckOutDate: checkOut,
							LateCheckOut: true,
							Status:       model.StatusConfirmed,
						},
					}, nil)
			},
			wantErr: pricing.ErrTurnoverConflict,
		},
		{
			name: "repository error",
			req:  validRequest(),
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testRoom(), nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Reservation{}, nil)

				mockRepo.EXPECT().
					CreateWithClient(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)

			if tt.check != nil {
				tt.check(t, res)
			}

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestReservationService_CreateWithPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := resMocks.NewMockReservation(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockPayment := paymentMocks.NewMockPaymentService(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockStripe := stripeMocks.NewMockStripe(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, mockPayment, cfg, mockCache, mockOtel, mockStripe)

	mockRoomRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(testRoom(), nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Reservation{}, nil)

	mockRepo.EXPECT().
		CreateWithClient(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockPayment.EXPECT().
		CreateCheckoutSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req payDto.CreateCheckoutSessionRequest) (payDto.CheckoutSessionResponse, error) {
			assert.NotEmpty(t, req.ReservationID)

			return payDto.CheckoutSessionResponse{
				PaymentID:   "pay-1",
				SessionID:   "cs_test_123",
				CheckoutURL: "https://checkout.stripe.com/c/pay/cs_test_123",
			}, nil
		})

	res, err := svc.CreateWithPayment(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.Equal(t, "cs_test_123", res.SessionID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_123", res.CheckoutURL)
	assert.NotEmpty(t, res.Reservation.ID)

	time.Sleep(10 * time.Millisecond)
}

func TestReservationService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := resMocks.NewMockReservation(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockPayment := paymentMocks.NewMockPaymentService(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockStripe := stripeMocks.NewMockStripe(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, mockPayment, cfg, mockCache, mockOtel, mockStripe)

	checkIn, _ := timezone.Parse("2006-01-02", "2026-09-01")

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "cache miss then repository hit",
			id:   "res-1",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{
						ID:           "res-1",
						RoomID:       "room-1",
						ClientID:     "client-1",
						CheckInDate:  checkIn,
						CheckOutDate: checkIn.AddDate(0, 0, 2),
						Status:       model.StatusPending,
						Metadata:     gModel.Metadata{CreatedAt: timezone.Now()},
					}, nil)

				mockRepo.EXPECT().
					GetClient(gomock.Any(), "client-1").
					Return(model.Client{ID: "client-1", FirstName: "Ana"}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "not found",
			id:   "missing",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.id, res.ID)
			assert.Equal(t, "Ana", res.Client.FirstName)

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestReservationService_GetOccupiedDates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := resMocks.NewMockReservation(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockPayment := paymentMocks.NewMockPaymentService(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockStripe := stripeMocks.NewMockStripe(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, mockPayment, cfg, mockCache, mockOtel, mockStripe)

	checkIn, _ := timezone.Parse("2006-01-02", "2026-09-01")

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Reservation{
			{
				ID:           "res-1",
				RoomID:       "room-1",
				CheckInDate:  checkIn,
				CheckOutDate: checkIn.AddDate(0, 0, 2),
				Status:       model.StatusConfirmed,
			},
			{
				ID:           "res-2",
				RoomID:       "room-2",
				CheckInDate:  checkIn.AddDate(0, 0, 1),
				CheckOutDate: checkIn.AddDate(0, 0, 2),
				Status:       model.StatusPending,
			},
		}, nil)

	res, err := svc.GetOccupiedDates(context.Background())

	assert.NoError(t, err)
	// Check-in day is occupied, check-out day is not.
	assert.Equal(t, []string{"2026-09-01", "2026-09-02"}, res.OccupiedDates["room-1"])
	assert.Equal(t, []string{"2026-09-02"}, res.OccupiedDates["room-2"])
}

func TestReservationService_GetRoomOccupiedDates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := resMocks.NewMockReservation(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockPayment := paymentMocks.NewMockPaymentService(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockStripe := stripeMocks.NewMockStripe(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, mockPayment, cfg, mockCache, mockOtel, mockStripe)

	checkIn, _ := timezone.Parse("2006-01-02", "2026-09-01")

	mockRoomRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(testRoom(), nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Reservation{
			{
				ID:           "res-1",
				RoomID:       "room-1",
				CheckInDate:  checkIn,
				CheckOutDate: checkIn.AddDate(0, 0, 1),
				Status:       model.StatusConfirmed,
			},
		}, nil)

	res, err := svc.GetRoomOccupiedDates(context.Background(), "room-1")

	assert.NoError(t, err)
	assert.Equal(t, "room-1", res.RoomID)
	assert.Equal(t, []string{"2026-09-01"}, res.OccupiedDates)
}

func TestReservationService_GetSessionStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := resMocks.NewMockReservation(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockPayment := paymentMocks.NewMockPaymentService(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockStripe := stripeMocks.NewMockStripe(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, mockPayment, cfg, mockCache, mockOtel, mockStripe)

	mockStripe.EXPECT().
		GetCheckoutSession(gomock.Any(), "cs_test_123").
		Return(&stripe.CheckoutSession{
			ID:            "cs_test_123",
			PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
			Metadata:      map[string]string{"reservationId": "res-1"},
		}, nil)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Reservation{ID: "res-1", Status: model.StatusConfirmed}, nil)

	res, err := svc.GetSessionStatus(context.Background(), "cs_test_123")

	assert.NoError(t, err)
	assert.Equal(t, "cs_test_123", res.SessionID)
	assert.Equal(t, "paid", res.PaymentStatus)
	assert.Equal(t, model.StatusConfirmed, res.ReservationStatus)
}

func TestReservationService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := resMocks.NewMockReservation(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockPayment := paymentMocks.NewMockPaymentService(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockStripe := stripeMocks.NewMockStripe(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, mockPayment, cfg, mockCache, mockOtel, mockStripe)

	checkIn, _ := timezone.Parse("2006-01-02", "2026-09-01")

	current := model.Reservation{
		ID:              "res-1",
		RoomID:          "room-1",
		ClientID:        "client-1",
		CheckInDate:     checkIn,
		CheckOutDate:    checkIn.AddDate(0, 0, 2),
		BaseGuestsCount: 2,
		Status:          model.StatusPending,
		TotalPrice:      200,
	}

	tests := []struct {
		name      string
		req       dto.UpdateReservationRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "extends stay and recalculates the price",
			req:  dto.UpdateReservationRequest{CheckOutDate: "2026-09-05"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(current, nil)

				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testRoom(), nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Reservation{current}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.InDelta(t, 400.0, fields[model.FieldTotalPrice], 0.001)

						return nil
					})

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "not found",
			req:  dto.UpdateReservationRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantErr: true,
		},
		{
			name: "new guest count over capacity",
			req: func() dto.UpdateReservationRequest {
				count := 5

				return dto.UpdateReservationRequest{BaseGuestsCount: &count}
			}(),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(current, nil)

				mockRoomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testRoom(), nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(context.Background(), tt.req, "res-1")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestReservationService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := resMocks.NewMockReservation(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockPayment := paymentMocks.NewMockPaymentService(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()
	mockStripe := stripeMocks.NewMockStripe(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, mockPayment, cfg, mockCache, mockOtel, mockStripe)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "deletes the reservation and its client",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{ID: "res-1", ClientID: "client-1"}, nil)

				mockRepo.EXPECT().
					DeleteWithClient(gomock.Any(), "res-1", "client-1").
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), "res-1")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)

			time.Sleep(10 * time.Millisecond)
		})
	}
}
