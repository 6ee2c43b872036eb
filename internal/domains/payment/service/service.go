package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hostal/config"
	"hostal/infras/otel"
	stripeInfra "hostal/infras/stripe"
	"hostal/internal/domains/payment/model"
	"hostal/internal/domains/payment/model/dto"
	"hostal/internal/domains/payment/repository"
	resModel "hostal/internal/domains/reservation/model"
	resRepo "hostal/internal/domains/reservation/repository"
	"hostal/shared"
	"hostal/shared/constant"
	gDto "hostal/shared/dto"
	"hostal/shared/failure"
	"hostal/shared/timezone"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v79"
)

const (
	successPath = "/payment/success?session_id={CHECKOUT_SESSION_ID}"
	cancelPath  = "/payment/cancel"
)

type Payment interface {
	CreateCheckoutSession(ctx context.Context, req dto.CreateCheckoutSessionRequest) (dto.CheckoutSessionResponse, error)
	ConfirmCheckoutSession(ctx context.Context, sessionID string) (dto.ConfirmCheckoutSessionResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	Get(ctx context.Context, id string) (dto.PaymentResponse, error)
	GetByReservation(ctx context.Context, reservationID string) (dto.GetPaymentsResponse, error)
}

type serviceImpl struct {
	repo            repository.Payment
	reservationRepo resRepo.Reservation
	cfg             *config.Config
	otel            otel.Otel
	stripe          stripeInfra.Stripe
}

func New(repo repository.Payment, reservationRepo resRepo.Reservation, cfg *config.Config, otel otel.Otel, stripe stripeInfra.Stripe) Payment {
	return &serviceImpl{
		repo:            repo,
		reservationRepo: reservationRepo,
		cfg:             cfg,
		otel:            otel,
		stripe:          stripe,
	}
}

func (s *serviceImpl) CreateCheckoutSession(ctx context.Context, req dto.CreateCheckoutSessionRequest) (res dto.CheckoutSessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateCheckoutSession")
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

	client, err := s.reservationRepo.GetClient(ctx, reservation.ClientID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation client")

		return res, fmt.Errorf("failed to get reservation client: %w", err)
	}

	frontendURL := s.cfg.App.FrontendURL

	session, err := s.stripe.CreateCheckoutSession(ctx, stripeInfra.CheckoutSessionParams{
		Amount:        reservation.TotalPrice,
		Currency:      constant.DefaultCurrency,
		ProductName:   "Reservation " + reservation.ReservationNumber,
		CustomerEmail: client.Email,
		SuccessURL:    frontendURL + successPath,
		CancelURL:     frontendURL + cancelPath,
		Metadata: map[string]string{
			"reservationId":     reservation.ID,
			"reservationNumber": reservation.ReservationNumber,
		},
	})
	if err != nil {
		log.Error().Err(err).Str("reservationID", reservation.ID).Msg("stripe checkout session creation failed")

		return res, failure.ExternalProvider("failed to create checkout session with payment provider") //nolint:wrapcheck
	}

	payment := req.ToModel(user, session.ID, reservation.TotalPrice, constant.DefaultCurrency)

	if err = s.repo.Insert(ctx, payment); err != nil {
		log.Error().Err(err).Msg("failed to insert payment")

		return res, err
	}

	res.PaymentID = payment.ID
	res.SessionID = session.ID
	res.CheckoutURL = session.URL

	return res, nil
}

// ConfirmCheckoutSession is the synchronous confirmation path used when the
// browser returns from the Stripe redirect flow. It retrieves the session,
// maps its payment_status, and on success cascades the reservation to
// confirmed.
func (s *serviceImpl) ConfirmCheckoutSession(ctx context.Context, sessionID string) (res dto.ConfirmCheckoutSessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmCheckoutSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.stripe.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		log.Error().Err(err).Str("sessionID", sessionID).Msg("failed to retrieve checkout session")

		return res, failure.ExternalProvider("failed to retrieve checkout session from payment provider") //nolint:wrapcheck
	}

	payment, err := s.getBySessionID(ctx, sessionID)
	if err != nil {
		return res, err
	}

	if payment.ID == constant.Empty {
		return res, failure.NotFound("payment not found") //nolint:wrapcheck
	}

	outcome := model.Outcome{
		Status:     model.MapStripeSessionStatus(session.PaymentStatus),
		ExternalID: session.ID,
	}

	if session.PaymentIntent != nil {
		outcome.ProviderPaymentID = session.PaymentIntent.ID
	}

	if err = s.apply(ctx, payment, outcome, true); err != nil {
		return res, err
	}

	res.SessionID = sessionID
	res.PaymentStatus = outcome.Status
	res.ReservationStatus = resModel.StatusPending

	if outcome.Status == model.StatusSucceeded {
		res.ReservationStatus = resModel.StatusConfirmed
	}

	return res, nil
}

// HandleWebhook processes Stripe's asynchronous deliveries. A missing webhook
// secret is a server misconfiguration; a bad signature is rejected so Stripe
// retries; an unknown session id is a logged no-op so Stripe stops retrying.
func (s *serviceImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HandleWebhook")
	defer scope.End()
	defer scope.TraceIfError(err)

	if s.cfg.External.Stripe.WebhookSecret == constant.Empty {
		log.Error().Msg("stripe webhook secret is not configured")

		return failure.InternalError(errors.New("stripe webhook secret is not configured")) //nolint:wrapcheck
	}

	if signature == constant.Empty {
		return failure.BadRequestFromString("missing stripe signature header") //nolint:wrapcheck
	}

	event, err := s.stripe.ConstructWebhookEvent(payload, signature)
	if err != nil {
		log.Error().Err(err).Msg("stripe webhook signature verification failed")

		return failure.BadRequestFromString("invalid stripe webhook signature") //nolint:wrapcheck
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		return s.handleSessionEvent(ctx, event, model.StatusSucceeded, true)
	case stripe.EventTypeCheckoutSessionExpired:
		return s.handleSessionEvent(ctx, event, model.StatusCanceled, false)
	default:
		log.Info().Str("eventType", string(event.Type)).Msg("ignoring unhandled stripe webhook event")

		return nil
	}
}

func (s *serviceImpl) handleSessionEvent(ctx context.Context, event stripe.Event, status model.Status, cascade bool) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		log.Error().Err(err).Msg("failed to parse checkout session from webhook event")

		return failure.BadRequestFromString("malformed stripe webhook payload") //nolint:wrapcheck
	}

	payment, err := s.getBySessionID(ctx, session.ID)
	if err != nil {
		return err
	}

	if payment.ID == constant.Empty {
		// Not ours; acknowledge so the provider stops retrying.
		log.Warn().Str("sessionID", session.ID).Msg("stripe webhook for unknown checkout session, ignoring")

		return nil
	}

	outcome := model.Outcome{
		Status:     status,
		ExternalID: session.ID,
	}

	if session.PaymentIntent != nil {
		outcome.ProviderPaymentID = session.PaymentIntent.ID
	}

	return s.apply(ctx, payment, outcome, cascade)
}

// apply is the single reconciliation point: it stamps the payment row with
// the normalized outcome and, when cascade is set and the outcome is a
// success, promotes the reservation to confirmed. Statuses are set, not
// incremented, so replaying the same event is idempotent.
func (s *serviceImpl) apply(ctx context.Context, payment model.Payment, outcome model.Outcome, cascade bool) error {
	updatedFields := map[string]any{
		model.FieldStatus:        outcome.Status,
		constant.FieldModifiedAt: timezone.Now(),
	}

	if outcome.ProviderPaymentID != constant.Empty {
		updatedFields[model.FieldStripeChargeID] = outcome.ProviderPaymentID
	}

	if outcome.FailureReason != constant.Empty {
		updatedFields[model.FieldFailureReason] = outcome.FailureReason
	}

	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(payment.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("paymentID", payment.ID).Msg("failed to update payment")

		return fmt.Errorf("failed to update payment: %w", err)
	}

	if cascade && outcome.Status == model.StatusSucceeded {
		reservationFields := map[string]any{
			resModel.FieldStatus:                resModel.StatusConfirmed,
			resModel.FieldPaymentStatus:         resModel.PaymentStatusPaid,
			resModel.FieldStripePaymentIntentID: outcome.ExternalID,
			constant.FieldModifiedAt:            timezone.Now(),
		}

		filter := shared.FilterByID(payment.ReservationID, resModel.FieldID, resModel.TableName)
		if err := s.reservationRepo.Update(ctx, reservationFields, filter); err != nil {
			log.Error().Err(err).Str("reservationID", payment.ReservationID).Msg("failed to confirm reservation after payment")

			return fmt.Errorf("failed to confirm reservation after payment: %w", err)
		}
	}

	return nil
}

func (s *serviceImpl) getBySessionID(ctx context.Context, sessionID string) (model.Payment, error) {
	payment, err := s.repo.Get(ctx, shared.FilterByID(sessionID, model.FieldStripeSessionID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("sessionID", sessionID).Msg("failed to get payment by session id")

		return payment, fmt.Errorf("failed to get payment by session id: %w", err)
	}

	return payment, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	payment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return res, failure.NotFound("payment not found") //nolint:wrapcheck
	}

	res.FromModel(payment)

	return res, nil
}

func (s *serviceImpl) GetByReservation(ctx context.Context, reservationID string) (res dto.GetPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByReservation")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(reservationID, model.FieldReservationID, model.TableName)
	params := gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments for reservation")

		return res, fmt.Errorf("failed to get payments for reservation: %w", err)
	}

	res.FromModels(models, len(models), 0)

	return res, nil
}
