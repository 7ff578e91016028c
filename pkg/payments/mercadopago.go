package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultMercadoPagoBaseURL = "https://api.mercadopago.com"

// MercadoPagoGateway creates checkout preferences against the Mercado Pago
// REST API.
type MercadoPagoGateway struct {
	accessToken string
	notifyURL   string
	baseURL     string
	client      *http.Client
}

// NewMercadoPagoGateway creates a gateway client. notifyURL is the publicly
// reachable webhook endpoint the gateway will call back with payment updates.
func NewMercadoPagoGateway(accessToken, notifyURL string) *MercadoPagoGateway {
	return &MercadoPagoGateway{
		accessToken: accessToken,
		notifyURL:   notifyURL,
		baseURL:     defaultMercadoPagoBaseURL,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL overrides the API host, used by tests to point at a local server.
func (g *MercadoPagoGateway) WithBaseURL(baseURL string) *MercadoPagoGateway {
	g.baseURL = baseURL
	return g
}

type preferenceItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

type preferenceRequest struct {
	ExternalReference string           `json:"external_reference"`
	Items             []preferenceItem `json:"items"`
	NotificationURL   string           `json:"notification_url,omitempty"`
	PayerEmail        string           `json:"payer_email,omitempty"`
}

type preferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

type paymentResponse struct {
	ID                json.Number `json:"id"`
	Status            string      `json:"status"`
	ExternalReference string      `json:"external_reference"`
}

// CreateCheckout registers a checkout preference and returns the payment
// handle. The gateway deals in decimal currency units, so the cent amount is
// converted at this boundary only.
func (g *MercadoPagoGateway) CreateCheckout(ctx context.Context, checkout Checkout) (*Payment, error) {
	reqBody := preferenceRequest{
		ExternalReference: checkout.ReferenceID,
		Items: []preferenceItem{
			{
				Title:      checkout.Title,
				Quantity:   1,
				UnitPrice:  float64(checkout.Amount) / 100,
				CurrencyID: "BRL",
			},
		},
		NotificationURL: g.notifyURL,
		PayerEmail:      checkout.PayerEmail,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: marshal preference: %w", err)
	}

	url := g.baseURL + "/checkout/preferences"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("mercadopago: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.accessToken)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("mercadopago: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var pref preferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&pref); err != nil {
		return nil, fmt.Errorf("mercadopago: decode response: %w", err)
	}

	return &Payment{ID: pref.ID, RedirectURL: pref.InitPoint}, nil
}

// GetPayment looks up a payment's current status. Webhook notifications only
// carry the payment ID; the approval decision is made on this response.
func (g *MercadoPagoGateway) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	url := g.baseURL + "/v1/payments/" + paymentID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.accessToken)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("mercadopago: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var payment paymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("mercadopago: decode response: %w", err)
	}

	return &Payment{ID: paymentID, Status: payment.Status}, nil
}
