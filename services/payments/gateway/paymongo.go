package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iskolardev/paygate/internal/pkg/models"
	"github.com/iskolardev/paygate/services/payments"
	"github.com/shopspring/decimal"
)

// PayMongoGW implements the payments.PaymentGW interface against the
// PayMongo sources API
type PayMongoGW struct {
	cfg        models.PayMongoConfig
	authHeader string
	httpClient *http.Client
}

// NewPayMongoGW creates a new PayMongo gateway client. The Basic auth
// header is encoded once here and reused for every request.
func NewPayMongoGW(cfg models.PayMongoConfig) *PayMongoGW {
	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &PayMongoGW{
		cfg:        cfg,
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.SecretKey+":")),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// MinorUnits converts a major-currency amount to the provider's integer
// minor units via round(amount * 100). This is the single place money
// conversion happens.
func MinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

type sourceAttributes struct {
	Amount   int64                  `json:"amount"`
	Redirect sourceRedirect         `json:"redirect"`
	Type     string                 `json:"type"`
	Currency string                 `json:"currency"`
	Billing  map[string]interface{} `json:"billing"`
}

type sourceRedirect struct {
	Success string `json:"success"`
	Failed  string `json:"failed"`
}

type sourceRequest struct {
	Data struct {
		Attributes sourceAttributes `json:"attributes"`
	} `json:"data"`
}

type sourceResponse struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			Redirect struct {
				CheckoutURL string `json:"checkout_url"`
			} `json:"redirect"`
			Status string `json:"status"`
		} `json:"attributes"`
	} `json:"data"`
}

type providerErrorResponse struct {
	Errors []struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// CreateCheckout creates a payment source at the provider and returns
// the external identifier and redirect URL
func (g *PayMongoGW) CreateCheckout(ctx context.Context, req *models.CheckoutRequest) (*payments.CheckoutSession, error) {
	billing := map[string]interface{}{
		"name":  req.Billing.Name,
		"email": req.Billing.Email,
	}
	if billing["name"] == "" {
		billing["name"] = fmt.Sprintf("%s payer", req.PaymentMethodType)
	}
	if billing["email"] == "" {
		billing["email"] = "payer@example.com"
	}
	if req.Billing.Phone != "" {
		billing["phone"] = req.Billing.Phone
	}

	body := sourceRequest{}
	body.Data.Attributes = sourceAttributes{
		Amount: MinorUnits(req.Amount),
		Redirect: sourceRedirect{
			Success: g.cfg.SuccessURL,
			Failed:  g.cfg.FailedURL,
		},
		Type:     req.PaymentMethodType,
		Currency: g.cfg.Currency,
		Billing:  billing,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal source request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+"/sources", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build source request: %w", err)
	}
	httpReq.Header.Set("Authorization", g.authHeader)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		// Network failures and timeouts surface as gateway errors
		return nil, &payments.GatewayError{StatusCode: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &payments.GatewayError{
			StatusCode: resp.StatusCode,
			Message:    extractErrorDetail(raw),
		}
	}

	var source sourceResponse
	if err := json.Unmarshal(raw, &source); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	return &payments.CheckoutSession{
		ExternalID:  source.Data.ID,
		RedirectURL: source.Data.Attributes.Redirect.CheckoutURL,
	}, nil
}

// extractErrorDetail pulls the first structured error detail out of a
// provider error body, falling back to the raw body
func extractErrorDetail(raw []byte) string {
	var providerErr providerErrorResponse
	if err := json.Unmarshal(raw, &providerErr); err == nil && len(providerErr.Errors) > 0 && providerErr.Errors[0].Detail != "" {
		return providerErr.Errors[0].Detail
	}
	return string(raw)
}
