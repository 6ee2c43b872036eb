package paypal

//go:generate go run go.uber.org/mock/mockgen -source=./paypal.go -destination=./mocks/paypal_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hostal/config"
	"hostal/infras/otel"
	"hostal/shared/constant"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	sandboxBaseURL = "https://api-m.sandbox.paypal.com"
	liveBaseURL    = "https://api-m.paypal.com"

	environmentLive = "live"

	requestTimeout = 30 * time.Second

	// tokens are refreshed slightly before PayPal's reported expiry
	tokenExpirySkew = 60 * time.Second

	otelScopeName   = "paypal"
	otelAttrOrderID = "paypal.order_id"
)

// CreateOrderParams carries the reservation charge details for a new
// PayPal checkout order.
type CreateOrderParams struct {
	Amount      float64
	Currency    string
	ReferenceID string
	Description string
	ReturnURL   string
	CancelURL   string
}

type Amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type Capture struct {
	ID     string  `json:"id"`
	Status string  `json:"status"`
	Amount *Amount `json:"amount,omitempty"`
}

type Payments struct {
	Captures []Capture `json:"captures,omitempty"`
}

type PurchaseUnit struct {
	ReferenceID string    `json:"reference_id,omitempty"`
	Description string    `json:"description,omitempty"`
	Amount      *Amount   `json:"amount,omitempty"`
	Payments    *Payments `json:"payments,omitempty"`
}

type Payer struct {
	PayerID string `json:"payer_id,omitempty"`
	Email   string `json:"email_address,omitempty"`
}

type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method,omitempty"`
}

// Order is the subset of PayPal's order resource the service layer needs.
type Order struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units,omitempty"`
	Payer         *Payer         `json:"payer,omitempty"`
	Links         []Link         `json:"links,omitempty"`
}

// ApprovalLink returns the URL the payer must visit to approve the order.
func (o *Order) ApprovalLink() string {
	for _, link := range o.Links {
		if link.Rel == "approve" {
			return link.Href
		}
	}

	return constant.Empty
}

// CaptureID returns the capture id of the first captured payment, if any.
func (o *Order) CaptureID() string {
	for _, unit := range o.PurchaseUnits {
		if unit.Payments == nil {
			continue
		}

		for _, capture := range unit.Payments.Captures {
			return capture.ID
		}
	}

	return constant.Empty
}

type PayPal interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (*Order, error)
	CaptureOrder(ctx context.Context, orderID string) (*Order, error)
	GetOrder(ctx context.Context, orderID string) (*Order, error)
}

type paypalImpl struct {
	httpClient *http.Client
	cfg        *config.Config
	otel       otel.Otel
	baseURL    string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func New(cfg *config.Config, ot otel.Otel) PayPal {
	baseURL := sandboxBaseURL
	if strings.EqualFold(cfg.External.Paypal.Environment, environmentLive) {
		baseURL = liveBaseURL
	}

	if cfg.External.Paypal.ClientID == constant.Empty {
		log.Warn().Msg("PayPal client id is not configured, order creation will fail")
	}

	return &paypalImpl{
		httpClient: &http.Client{Timeout: requestTimeout},
		cfg:        cfg,
		otel:       ot,
		baseURL:    baseURL,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// token returns a cached OAuth2 access token, fetching a fresh one from the
// client-credentials endpoint when the cached token is missing or near expiry.
func (svc *paypalImpl) token(ctx context.Context) (string, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.accessToken != constant.Empty && time.Now().Before(svc.tokenExpiry) {
		return svc.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to build paypal token request: %w", err)
	}

	req.SetBasicAuth(svc.cfg.External.Paypal.ClientID, svc.cfg.External.Paypal.ClientSecret)
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeFormURLEncoded)

	resp, err := svc.httpClient.Do(req)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to fetch paypal access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error().Int("status", resp.StatusCode).Str("body", string(body)).Msg("paypal token endpoint returned an error")

		return constant.Empty, fmt.Errorf("paypal token endpoint returned status %d", resp.StatusCode)
	}

	var token tokenResponse
	if err = json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return constant.Empty, fmt.Errorf("failed to decode paypal token response: %w", err)
	}

	svc.accessToken = token.AccessToken
	svc.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - tokenExpirySkew)

	return svc.accessToken, nil
}

func (svc *paypalImpl) CreateOrder(ctx context.Context, params CreateOrderParams) (order *Order, err error) {
	ctx, scope := svc.otel.NewScope(ctx, otelScopeName, otelScopeName+".CreateOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	payload := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{
			{
				"reference_id": params.ReferenceID,
				"description":  params.Description,
				"amount": Amount{
					CurrencyCode: params.Currency,
					Value:        fmt.Sprintf("%.2f", params.Amount),
				},
			},
		},
		"application_context": map[string]any{
			"brand_name":  svc.cfg.External.Paypal.BrandName,
			"user_action": "PAY_NOW",
			"return_url":  params.ReturnURL,
			"cancel_url":  params.CancelURL,
		},
	}

	order = &Order{}
	if err = svc.do(ctx, http.MethodPost, "/v2/checkout/orders", payload, order); err != nil {
		return nil, err
	}

	scope.SetAttribute(otelAttrOrderID, order.ID)

	return order, nil
}

func (svc *paypalImpl) CaptureOrder(ctx context.Context, orderID string) (order *Order, err error) {
	ctx, scope := svc.otel.NewScope(ctx, otelScopeName, otelScopeName+".CaptureOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrOrderID, orderID)

	order = &Order{}
	if err = svc.do(ctx, http.MethodPost, "/v2/checkout/orders/"+orderID+"/capture", struct{}{}, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (svc *paypalImpl) GetOrder(ctx context.Context, orderID string) (order *Order, err error) {
	ctx, scope := svc.otel.NewScope(ctx, otelScopeName, otelScopeName+".GetOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrOrderID, orderID)

	order = &Order{}
	if err = svc.do(ctx, http.MethodGet, "/v2/checkout/orders/"+orderID, nil, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (svc *paypalImpl) do(ctx context.Context, method, path string, payload, result any) error {
	accessToken, err := svc.token(ctx)
	if err != nil {
		return err
	}

	var body io.Reader

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal paypal request body: %w", err)
		}

		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, svc.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build paypal request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+accessToken)
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	resp, err := svc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call paypal %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		log.Error().Int("status", resp.StatusCode).Str("path", path).Str("body", string(raw)).Msg("paypal api returned an error")

		return fmt.Errorf("paypal api returned status %d for %s %s", resp.StatusCode, method, path)
	}

	if result != nil {
		if err = json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode paypal response: %w", err)
		}
	}

	return nil
}
