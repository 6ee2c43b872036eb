package paypal

import (
	"io"
	"net/http"

	"hostal/infras/otel"
	"hostal/internal/domains/paypal/model/dto"
	"hostal/internal/domains/paypal/service"
	"hostal/shared/constant"
	"hostal/shared/validator"
	"hostal/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Paypal
	otel    otel.Otel
}

func New(service service.Paypal, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/paypal", func(routerGroup chi.Router) {
		routerGroup.Post("/create-order", handler.CreateOrder)
		routerGroup.Post("/capture-payment/{orderId}", handler.CapturePayment)
		routerGroup.Get("/order/{orderId}", handler.GetOrderDetails)
		routerGroup.Post("/webhook", handler.Webhook)
		routerGroup.Get("/payment/reservation/{reservationId}", handler.GetPaymentsByReservation)
		routerGroup.Get("/payment/{id}", handler.GetPaymentByID)
	})
}

// CreateOrder creates a PayPal order for a reservation.
// @Summary Create a PayPal order
// @Description Create a PayPal order and a pending payment for a reservation.
// @Tags Paypal
// @Accept json
// @Produce json
// @Param request body dto.CreateOrderRequest true "Reservation to pay for"
// @Success 201 {object} response.Data[dto.CreateOrderResponse] "Created order"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/paypal/create-order [post]
func (handler *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOrder")
	defer scope.End()

	var req dto.CreateOrderRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	order, err := handler.service.CreateOrder(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create PayPal order")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("PayPal order created successfully")

	response.WithJSON(w, http.StatusCreated, order)
}

// CapturePayment captures an approved PayPal order.
// @Summary Capture a PayPal payment
// @Description Capture an approved PayPal order and confirm the reservation when completed.
// @Tags Paypal
// @Accept json
// @Produce json
// @Param orderId path string true "PayPal order ID"
// @Success 200 {object} response.Data[dto.CaptureOrderResponse] "Capture result"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/paypal/capture-payment/{orderId} [post]
func (handler *Handler) CapturePayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CapturePayment")
	defer scope.End()

	orderID := chi.URLParam(r, constant.RequestParamOrderID)

	result, err := handler.service.CapturePayment(ctx, orderID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to capture PayPal payment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("PayPal payment captured successfully")

	response.WithJSON(w, http.StatusOK, result)
}

// GetOrderDetails retrieves the current state of a PayPal order.
// @Summary Get PayPal order details
// @Description Retrieve a PayPal order's current status from PayPal.
// @Tags Paypal
// @Accept json
// @Produce json
// @Param orderId path string true "PayPal order ID"
// @Success 200 {object} response.Data[dto.OrderDetailsResponse] "Order details"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/paypal/order/{orderId} [get]
func (handler *Handler) GetOrderDetails(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrderDetails")
	defer scope.End()

	orderID := chi.URLParam(r, constant.RequestParamOrderID)

	details, err := handler.service.GetOrderDetails(ctx, orderID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get PayPal order details")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("PayPal order details retrieved successfully")

	response.WithJSON(w, http.StatusOK, details)
}

// Webhook processes PayPal webhook events.
// @Summary PayPal webhook
// @Description Process PayPal capture events and update the matching payment.
// @Tags Paypal
// @Accept json
// @Produce json
// @Success 200 {object} response.Message "Webhook processed"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/paypal/webhook [post]
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

	if err := handler.service.HandleWebhook(ctx, payload); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to handle PayPal webhook")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("PayPal webhook processed successfully")

	response.WithMessage(w, http.StatusOK, "Webhook processed")
}

// GetPaymentsByReservation lists the PayPal payments recorded for a reservation.
// @Summary Get PayPal payments by reservation
// @Description Retrieve all PayPal payments recorded for a reservation.
// @Tags Paypal
// @Accept json
// @Produce json
// @Param reservationId path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.GetPaypalPaymentsResponse] "Payments"
// @Failure 500 {object} response.Error
// @Router /v1/paypal/payment/reservation/{reservationId} [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentsByReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentsByReservation")
	defer scope.End()

	reservationID := chi.URLParam(r, constant.RequestParamReservationID)

	payments, err := handler.service.GetByReservation(ctx, reservationID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get PayPal payments by reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("PayPal payments retrieved successfully")

	response.WithJSON(w, http.StatusOK, payments)
}

// GetPaymentByID retrieves a PayPal payment by its ID.
// @Summary Get a PayPal payment by ID
// @Description Retrieve a PayPal payment by its unique identifier.
// @Tags Paypal
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Data[dto.PaypalPaymentResponse] "Payment details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/paypal/payment/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	payment, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get PayPal payment by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("PayPal payment retrieved successfully")

	response.WithJSON(w, http.StatusOK, payment)
}
