package service

import (
	"context"
	"encoding/json"
	"fmt"

	"hostal/config"
	"hostal/infras/otel"
	paypalInfra "hostal/infras/paypal"
	payModel "hostal/internal/domains/payment/model"
	"hostal/internal/domains/paypal/model"
	"hostal/internal/domains/paypal/model/dto"
	"hostal/internal/domains/paypal/repository"
	resModel "hostal/internal/domains/reservation/model"
	resRepo "hostal/internal/domains/reservation/repository"
	"hostal/shared"
	"hostal/shared/constant"
	gDto "hostal/shared/dto"
	"hostal/shared/failure"
	"hostal/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	returnPath = "/payment/success"
	cancelPath = "/payment/cancel"
)

type Paypal interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (dto.CreateOrderResponse, error)
	CapturePayment(ctx context.Context, orderID string) (dto.CaptureOrderResponse, error)
	GetOrderDetails(ctx context.Context, orderID string) (dto.OrderDetailsResponse, error)
	HandleWebhook(ctx context.Context, payload []byte) error
	Get(ctx context.Context, id string) (dto.PaypalPaymentResponse, error)
	GetByReservation(ctx context.Context, reservationID string) (dto.GetPaypalPaymentsResponse, error)
}

type serviceImpl struct {
	repo            repository.PaypalPayment
	reservationRepo resRepo.Reservation
	cfg             *config.Config
	otel            otel.Otel
	paypal          paypalInfra.PayPal
}

func New(repo repository.PaypalPayment, reservationRepo resRepo.Reservation, cfg *config.Config, otel otel.Otel, paypal paypalInfra.PayPal) Paypal {
	return &serviceImpl{
		repo:            repo,
		reservationRepo: reservationRepo,
		cfg:             cfg,
		otel:            otel,
		paypal:          paypal,
	}
}

func (s *serviceImpl) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (res dto.CreateOrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reservation, err := s.reservationRepo.Get(ctx, shared.FilterByID(req.ReservationID, resModel.FieldID, resModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") //nolint:wrapcheck
	}

	frontendURL := s.cfg.App.FrontendURL

	order, err := s.paypal.CreateOrder(ctx, paypalInfra.CreateOrderParams{
		Amount:      reservation.TotalPrice,
		Currency:    constant.DefaultCurrency,
		ReferenceID: reservation.ReservationNumber,
		Description: "Reservation " + reservation.ReservationNumber,
		ReturnURL:   frontendURL + returnPath,
		CancelURL:   frontendURL + cancelPath,
	})
	if err != nil {
		log.Error().Err(err).Str("reservationID", reservation.ID).Msg("paypal order creation failed")

		return res, failure.ExternalProvider("failed to create order with payment provider") //nolint:wrapcheck
	}

	payment := req.ToModel(user, order.ID, reservation.TotalPrice, constant.DefaultCurrency, order)

	if err = s.repo.Insert(ctx, payment); err != nil {
		log.Error().Err(err).Msg("failed to insert paypal payment")

		return res, err
	}

	res.PaymentID = payment.ID
	res.OrderID = order.ID
	res.ApprovalURL = order.ApprovalLink()

	return res, nil
}

// CapturePayment is the synchronous confirmation path: it captures the
// approved order, maps the resulting status, and on COMPLETED cascades the
// reservation to confirmed.
func (s *serviceImpl) CapturePayment(ctx context.Context, orderID string) (res dto.CaptureOrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CapturePayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	payment, err := s.getByOrderID(ctx, orderID)
	if err != nil {
		return res, err
	}

	if payment.ID == constant.Empty {
		return res, failure.NotFound("paypal payment not found") //nolint:wrapcheck
	}

	order, err := s.paypal.CaptureOrder(ctx, orderID)
	if err != nil {
		log.Error().Err(err).Str("orderID", orderID).Msg("paypal capture failed")

		return res, failure.ExternalProvider("failed to capture order with payment provider") //nolint:wrapcheck
	}

	outcome := payModel.Outcome{
		Status:            model.MapCaptureStatus(order.Status),
		ExternalID:        order.ID,
		ProviderPaymentID: order.CaptureID(),
	}

	if order.Payer != nil {
		outcome.PayerID = order.Payer.PayerID
	}

	if err = s.apply(ctx, payment, outcome, true, order); err != nil {
		return res, err
	}

	res.OrderID = order.ID
	res.CaptureID = outcome.ProviderPaymentID
	res.PaymentStatus = outcome.Status
	res.ReservationStatus = resModel.StatusPending

	if outcome.Status == payModel.StatusSucceeded {
		res.ReservationStatus = resModel.StatusConfirmed
	}

	return res, nil
}

func (s *serviceImpl) GetOrderDetails(ctx context.Context, orderID string) (res dto.OrderDetailsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetOrderDetails")
	defer scope.End()
	defer scope.TraceIfError(err)

	order, err := s.paypal.GetOrder(ctx, orderID)
	if err != nil {
		log.Error().Err(err).Str("orderID", orderID).Msg("failed to get paypal order")

		return res, failure.ExternalProvider("failed to retrieve order from payment provider") //nolint:wrapcheck
	}

	res.OrderID = order.ID
	res.Status = order.Status

	return res, nil
}

// HandleWebhook applies PayPal's asynchronous capture events to the payment
// row. It deliberately never touches the reservation: the synchronous capture
// path already does, and both paths racing on the reservation row has caused
// double updates. An unknown order id is a logged no-op so PayPal stops
// retrying.
func (s *serviceImpl) HandleWebhook(ctx context.Context, payload []byte) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HandleWebhook")
	defer scope.End()
	defer scope.TraceIfError(err)

	var event dto.WebhookEvent
	if err = json.Unmarshal(payload, &event); err != nil {
		log.Error().Err(err).Msg("failed to parse paypal webhook payload")

		return failure.BadRequestFromString("malformed paypal webhook payload") //nolint:wrapcheck
	}

	status, handled := model.MapWebhookEvent(event.EventType)
	if !handled {
		log.Info().Str("eventType", event.EventType).Msg("ignoring unhandled paypal webhook event")

		return nil
	}

	orderID := event.OrderID()
	if orderID == constant.Empty {
		log.Warn().Str("eventType", event.EventType).Msg("paypal webhook without related order id, ignoring")

		return nil
	}

	payment, err := s.getByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	if payment.ID == constant.Empty {
		log.Warn().Str("orderID", orderID).Msg("paypal webhook for unknown order, ignoring")

		return nil
	}

	outcome := payModel.Outcome{
		Status:            status,
		ExternalID:        orderID,
		ProviderPaymentID: event.Resource.ID,
	}

	if status == payModel.StatusFailed && event.Resource.StatusDetails != nil {
		outcome.FailureReason = event.Resource.StatusDetails.Reason
	}

	return s.apply(ctx, payment, outcome, false, nil)
}

// apply stamps the payment row with the normalized outcome; when cascade is
// set and the outcome succeeded it also promotes the reservation. Statuses
// are set, not incremented, so replays are idempotent.
func (s *serviceImpl) apply(ctx context.Context, payment model.PaypalPayment, outcome payModel.Outcome, cascade bool, providerResponse any) error {
	updatedFields := map[string]any{
		model.FieldStatus:        outcome.Status,
		constant.FieldModifiedAt: timezone.Now(),
	}

	if outcome.ProviderPaymentID != constant.Empty {
		updatedFields[model.FieldPaypalPaymentID] = outcome.ProviderPaymentID
	}

	if outcome.PayerID != constant.Empty {
		updatedFields[model.FieldPaypalPayerID] = outcome.PayerID
	}

	if outcome.FailureReason != constant.Empty {
		updatedFields[model.FieldFailureReason] = outcome.FailureReason
	}

	if providerResponse != nil {
		if raw, err := json.Marshal(providerResponse); err == nil {
			updatedFields[model.FieldPaypalResponse] = raw
		}
	}

	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(payment.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("paymentID", payment.ID).Msg("failed to update paypal payment")

		return fmt.Errorf("failed to update paypal payment: %w", err)
	}

	if cascade && outcome.Status == payModel.StatusSucceeded {
		reservationFields := map[string]any{
			resModel.FieldStatus:        resModel.StatusConfirmed,
			resModel.FieldPaymentStatus: resModel.PaymentStatusPaid,
			constant.FieldModifiedAt:    timezone.Now(),
		}

		filter := shared.FilterByID(payment.ReservationID, resModel.FieldID, resModel.TableName)
		if err := s.reservationRepo.Update(ctx, reservationFields, filter); err != nil {
			log.Error().Err(err).Str("reservationID", payment.ReservationID).Msg("failed to confirm reservation after paypal capture")

			return fmt.Errorf("failed to confirm reservation after paypal capture: %w", err)
		}
	}

	return nil
}

func (s *serviceImpl) getByOrderID(ctx context.Context, orderID string) (model.PaypalPayment, error) {
	payment, err := s.repo.Get(ctx, shared.FilterByID(orderID, model.FieldPaypalOrderID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("orderID", orderID).Msg("failed to get paypal payment by order id")

		return payment, fmt.Errorf("failed to get paypal payment by order id: %w", err)
	}

	return payment, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PaypalPaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	payment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get paypal payment")

		return res, fmt.Errorf("failed to get paypal payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return res, failure.NotFound("paypal payment not found") //nolint:wrapcheck
	}

	res.FromModel(payment)

	return res, nil
}

func (s *serviceImpl) GetByReservation(ctx context.Context, reservationID string) (res dto.GetPaypalPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByReservation")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(reservationID, model.FieldReservationID, model.TableName)
	params := gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get paypal payments for reservation")

		return res, fmt.Errorf("failed to get paypal payments for reservation: %w", err)
	}

	res.FromModels(models, len(models), 0)

	return res, nil
}
