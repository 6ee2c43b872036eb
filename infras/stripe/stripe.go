package stripe

//go:generate go run go.uber.org/mock/mockgen -source=./stripe.go -destination=./mocks/stripe_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hostal/config"
	"hostal/infras/otel"
	"hostal/shared/constant"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

const (
	otelScopeName     = "stripe"
	otelAttrSessionID = "stripe.session_id"
	otelAttrAmount    = "stripe.amount"
)

// CheckoutSessionParams carries everything needed to open a hosted checkout
// page for a single reservation charge.
type CheckoutSessionParams struct {
	Amount        float64
	Currency      string
	ProductName   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

type Stripe interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*stripe.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error)
	ConstructWebhookEvent(payload []byte, signatureHeader string) (stripe.Event, error)
}

type stripeImpl struct {
	client *client.API
	cfg    *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) Stripe {
	api := &client.API{}
	api.Init(cfg.External.Stripe.SecretKey, nil)

	if cfg.External.Stripe.SecretKey == constant.Empty {
		log.Warn().Msg("Stripe secret key is not configured, checkout sessions will fail")
	}

	return &stripeImpl{
		client: api,
		cfg:    cfg,
		otel:   ot,
	}
}

func (svc *stripeImpl) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (session *stripe.CheckoutSession, err error) {
	_, scope := svc.otel.NewScope(ctx, otelScopeName, otelScopeName+".CreateCheckoutSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrAmount, fmt.Sprintf("%.2f", params.Amount))

	sessionParams := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(params.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(params.ProductName),
					},
					UnitAmount: stripe.Int64(int64(math.Round(params.Amount * constant.CentsPerUnit))),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}

	if params.CustomerEmail != constant.Empty {
		sessionParams.CustomerEmail = stripe.String(params.CustomerEmail)
	}

	for key, value := range params.Metadata {
		sessionParams.AddMetadata(key, value)
	}

	session, err = svc.client.CheckoutSessions.New(sessionParams)
	if err != nil {
		log.Error().Err(err).Msg("failed to create stripe checkout session")

		return nil, fmt.Errorf("failed to create stripe checkout session: %w", err)
	}

	scope.SetAttribute(otelAttrSessionID, session.ID)

	return session, nil
}

func (svc *stripeImpl) GetCheckoutSession(ctx context.Context, sessionID string) (session *stripe.CheckoutSession, err error) {
	_, scope := svc.otel.NewScope(ctx, otelScopeName, otelScopeName+".GetCheckoutSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrSessionID, sessionID)

	session, err = svc.client.CheckoutSessions.Get(sessionID, nil)
	if err != nil {
		log.Error().Err(err).Str("sessionID", sessionID).Msg("failed to retrieve stripe checkout session")

		return nil, fmt.Errorf("failed to retrieve stripe checkout session: %w", err)
	}

	return session, nil
}

// ConstructWebhookEvent verifies the webhook signature against the configured
// endpoint secret and parses the event payload.
func (svc *stripeImpl) ConstructWebhookEvent(payload []byte, signatureHeader string) (stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, svc.cfg.External.Stripe.WebhookSecret)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("failed to verify stripe webhook signature: %w", err)
	}

	return event, nil
}
