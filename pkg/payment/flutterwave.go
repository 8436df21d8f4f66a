package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FlutterwaveProvider creates Flutterwave Standard payment links.
type FlutterwaveProvider struct {
	BaseURL   string
	SecretKey string
	client    *http.Client
}

func NewFlutterwaveProvider(baseURL, secretKey string) *FlutterwaveProvider {
	if baseURL == "" {
		baseURL = "https://api.flutterwave.com"
	}
	return &FlutterwaveProvider{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		SecretKey: secretKey,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *FlutterwaveProvider) Name() string { return "FLUTTERWAVE" }

type flutterwaveCustomer struct {
	Email string `json:"email"`
}

type flutterwaveCustomizations struct {
	Title string `json:"title,omitempty"`
}

type flutterwavePayReq struct {
	TxRef          string                    `json:"tx_ref"`
	Amount         string                    `json:"amount"`
	Currency       string                    `json:"currency"`
	RedirectURL    string                    `json:"redirect_url"`
	Customer       flutterwaveCustomer       `json:"customer"`
	Customizations flutterwaveCustomizations `json:"customizations"`
	Meta           map[string]string         `json:"meta,omitempty"`
}

type flutterwaveResp struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Link   string `json:"link"`
		Status string `json:"status"`
		TxRef  string `json:"tx_ref"`
	} `json:"data"`
}

func (p *FlutterwaveProvider) InitiatePayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error) {
	ref := req.Reference
	if ref == "" {
		ref = "flw_" + uuid.NewString()
	}
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = "USD"
	}
	body, _ := json.Marshal(flutterwavePayReq{
		TxRef:          ref,
		Amount:         req.Amount.StringFixed(2),
		Currency:       currency,
		RedirectURL:    req.SuccessURL,
		Customer:       flutterwaveCustomer{Email: req.CustomerEmail},
		Customizations: flutterwaveCustomizations{Title: req.Description},
		Meta:           req.Metadata,
	})
	var out flutterwaveResp
	if err := p.do(ctx, http.MethodPost, "/v3/payments", body, &out); err != nil {
		return nil, err
	}
	if out.Status != "success" || out.Data.Link == "" {
		return nil, fmt.Errorf("%w: %s", ErrGatewayRejected, out.Message)
	}
	return &PaymentResponse{
		Gateway:     p.Name(),
		Reference:   ref,
		Status:      "PENDING",
		CheckoutURL: out.Data.Link,
		ExpiresAt:   time.Now().Add(req.ExpiresIn),
	}, nil
}

func (p *FlutterwaveProvider) VerifyPayment(ctx context.Context, reference string) (bool, error) {
	var out flutterwaveResp
	path := "/v3/transactions/verify_by_reference?tx_ref=" + url.QueryEscape(reference)
	if err := p.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return false, err
	}
	return out.Status == "success" && out.Data.Status == "successful", nil
}

func (p *FlutterwaveProvider) do(ctx context.Context, method, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, p.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.SecretKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: flutterwave status %d", ErrGatewayRejected, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
