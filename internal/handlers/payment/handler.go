package payment

import (
	"io"
	"net/http"

	"hostal/config"
	"hostal/infras/otel"
	"hostal/internal/domains/payment/model/dto"
	"hostal/internal/domains/payment/service"
	"hostal/shared/constant"
	"hostal/shared/validator"
	"hostal/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
	cfg     *config.Config
}

func New(service service.Payment, otel otel.Otel, cfg *config.Config) Handler {
	return Handler{
		service: service,
		otel:    otel,
		cfg:     cfg,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/create-checkout-session", handler.CreateCheckoutSession)
		routerGroup.Post("/confirm-checkout-session", handler.ConfirmCheckoutSession)
		routerGroup.Post("/webhook", handler.Webhook)
		routerGroup.Get("/success", handler.Success)
		routerGroup.Get("/cancel", handler.Cancel)
		routerGroup.Get("/reservation/{reservationId}", handler.GetPaymentsByReservation)
		routerGroup.Get("/{id}", handler.GetPaymentByID)
	})
}

// CreateCheckoutSession opens a Stripe checkout session for a reservation.
// @Summary Create a Stripe checkout session
// @Description Create a Stripe checkout session and a pending payment for a reservation.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.CreateCheckoutSessionRequest true "Reservation to pay for"
// @Success 201 {object} response.Data[dto.CheckoutSessionResponse] "Checkout session"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/create-checkout-session [post]
func (handler *Handler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCheckoutSession")
	defer scope.End()

	var req dto.CreateCheckoutSessionRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	session, err := handler.service.CreateCheckoutSession(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create checkout session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Checkout session created successfully")

	response.WithJSON(w, http.StatusCreated, session)
}

// ConfirmCheckoutSession confirms a checkout session against Stripe and reconciles the reservation.
// @Summary Confirm a Stripe checkout session
// @Description Retrieve the session from Stripe, update the payment and confirm the reservation when paid.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.ConfirmCheckoutSessionRequest true "Session to confirm"
// @Success 200 {object} response.Data[dto.ConfirmCheckoutSessionResponse] "Confirmation result"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/confirm-checkout-session [post]
func (handler *Handler) ConfirmCheckoutSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmCheckoutSession")
	defer scope.End()

	var req dto.ConfirmCheckoutSessionRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	result, err := handler.service.ConfirmCheckoutSession(ctx, req.SessionID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm checkout session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Checkout session confirmed successfully")

	response.WithJSON(w, http.StatusOK, result)
}

// Webhook processes Stripe webhook events.
// @Summary Stripe webhook
// @Description Verify and process Stripe webhook events for checkout sessions.
// @Tags Payment
// @Accept json
// @Produce json
// @Success 200 {object} response.Message "Webhook processed"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/webhook [post]
func (handler *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Webhook")
	defer scope.End()

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read webhook payload")

		response.WithError(w, err)

		return
	}

	signature := r.Header.Get(constant.RequestHeaderStripeSignature)

	if err := handler.service.HandleWebhook(ctx, payload, signature); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to handle webhook")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Webhook processed successfully")

	response.WithMessage(w, http.StatusOK, "Webhook processed")
}

// Success redirects the customer back to the frontend after a successful payment.
// @Summary Payment success redirect
// @Tags Payment
// @Success 303
// @Router /v1/payments/success [get]
func (handler *Handler) Success(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Success")
	defer scope.End()

	scope.AddEvent("Redirecting to frontend after successful payment")

	http.Redirect(w, r, handler.cfg.App.FrontendURL+"/payment/success?"+r.URL.RawQuery, http.StatusSeeOther)
}

// Cancel redirects the customer back to the frontend after a cancelled payment.
// @Summary Payment cancel redirect
// @Tags Payment
// @Success 303
// @Router /v1/payments/cancel [get]
func (handler *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Cancel")
	defer scope.End()

	scope.AddEvent("Redirecting to frontend after cancelled payment")

	http.Redirect(w, r, handler.cfg.App.FrontendURL+"/payment/cancel?"+r.URL.RawQuery, http.StatusSeeOther)
}

// GetPaymentsByReservation lists the payments recorded for a reservation.
// @Summary Get payments by reservation
// @Description Retrieve all Stripe payments recorded for a reservation.
// @Tags Payment
// @Accept json
// @Produce json
// @Param reservationId path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.GetPaymentsResponse] "Payments"
// @Failure 500 {object} response.Error
// @Router /v1/payments/reservation/{reservationId} [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentsByReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentsByReservation")
	defer scope.End()

	reservationID := chi.URLParam(r, constant.RequestParamReservationID)

	payments, err := handler.service.GetByReservation(ctx, reservationID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payments by reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payments retrieved successfully")

	response.WithJSON(w, http.StatusOK, payments)
}

// GetPaymentByID retrieves a payment by its ID.
// @Summary Get a payment by ID
// @Description Retrieve a Stripe payment by its unique identifier.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Data[dto.PaymentResponse] "Payment details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	payment, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment retrieved successfully")

	response.WithJSON(w, http.StatusOK, payment)
}
