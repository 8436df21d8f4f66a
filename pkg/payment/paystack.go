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
)

// PaystackProvider initializes hosted Paystack transactions.
type PaystackProvider struct {
	BaseURL   string
	SecretKey string
	client    *http.Client
}

func NewPaystackProvider(baseURL, secretKey string) *PaystackProvider {
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	return &PaystackProvider{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		SecretKey: secretKey,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *PaystackProvider) Name() string { return "PAYSTACK" }

type paystackInitReq struct {
	Email       string            `json:"email"`
	Amount      string            `json:"amount"` // minor units
	Currency    string            `json:"currency,omitempty"`
	Reference   string            `json:"reference,omitempty"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type paystackResp struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
		Status           string `json:"status"`
	} `json:"data"`
}

func (p *PaystackProvider) InitiatePayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error) {
	body, _ := json.Marshal(paystackInitReq{
		Email:       req.CustomerEmail,
		Amount:      fmt.Sprintf("%d", minorUnits(req.Amount)),
		Currency:    strings.ToUpper(req.Currency),
		Reference:   req.Reference,
		CallbackURL: req.SuccessURL,
		Metadata:    req.Metadata,
	})
	var out paystackResp
	if err := p.do(ctx, http.MethodPost, "/transaction/initialize", body, &out); err != nil {
		return nil, err
	}
	if !out.Status || out.Data.AuthorizationURL == "" {
		return nil, fmt.Errorf("%w: %s", ErrGatewayRejected, out.Message)
	}
	ref := out.Data.Reference
	if ref == "" {
		ref = req.Reference
	}
	return &PaymentResponse{
		Gateway:     p.Name(),
		Reference:   ref,
		Status:      "PENDING",
		CheckoutURL: out.Data.AuthorizationURL,
		ExpiresAt:   time.Now().Add(req.ExpiresIn),
	}, nil
}

func (p *PaystackProvider) VerifyPayment(ctx context.Context, reference string) (bool, error) {
	var out paystackResp
	if err := p.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil, &out); err != nil {
		return false, err
	}
	return out.Status && out.Data.Status == "success", nil
}

func (p *PaystackProvider) do(ctx context.Context, method, path string, body []byte, out any) error {
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
		return fmt.Errorf("%w: paystack status %d", ErrGatewayRejected, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
