package payment

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentRequest struct {
	Reference     string // our reference; gateways that accept one reuse it
	Amount        decimal.Decimal
	Currency      string
	Description   string
	CustomerEmail string
	CustomerRef   string // gateway-side customer id, when already known
	SuccessURL    string
	CancelURL     string
	ExpiresIn     time.Duration
	Metadata      map[string]string
}

type PaymentResponse struct {
	Gateway     string
	Reference   string
	Status      string
	CheckoutURL string
	CustomerRef string
	ExpiresAt   time.Time
}

type Provider interface {
	Name() string
	InitiatePayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error)
	VerifyPayment(ctx context.Context, reference string) (bool, error)
}

var ErrGatewayRejected = errors.New("payment gateway rejected the request")

// minorUnits converts a major-unit amount to the smallest currency unit.
func minorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
