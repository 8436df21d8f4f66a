package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// DefaultStripeSessionTTL is how long a hosted checkout stays open.
const DefaultStripeSessionTTL = 160 * time.Minute

// StripeProvider creates hosted Checkout Sessions.
type StripeProvider struct {
	sc *client.API
}

// NewStripeProvider builds a provider for secretKey. apiURL overrides the
// Stripe API base and is meant for tests; pass "" in production.
func NewStripeProvider(secretKey, apiURL string) *StripeProvider {
	sc := &client.API{}
	var backends *stripe.Backends
	if apiURL != "" {
		backends = &stripe.Backends{
			API: stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
				URL:               stripe.String(apiURL),
				MaxNetworkRetries: stripe.Int64(0),
			}),
		}
	}
	sc.Init(secretKey, backends)
	return &StripeProvider{sc: sc}
}

func (p *StripeProvider) Name() string { return "STRIPE" }

func (p *StripeProvider) InitiatePayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error) {
	customerID := req.CustomerRef
	if customerID == "" {
		params := &stripe.CustomerParams{Email: stripe.String(req.CustomerEmail)}
		params.Context = ctx
		cust, err := p.sc.Customers.New(params)
		if err != nil {
			return nil, fmt.Errorf("stripe customer: %w", err)
		}
		customerID = cust.ID
	}

	ttl := req.ExpiresIn
	if ttl <= 0 {
		ttl = DefaultStripeSessionTTL
	}
	expiresAt := time.Now().Add(ttl)
	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = "usd"
	}
	name := req.Description
	if name == "" {
		name = "Payment"
	}

	params := &stripe.CheckoutSessionParams{
		Mode:     stripe.String(string(stripe.CheckoutSessionModePayment)),
		Customer: stripe.String(customerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(minorUnits(req.Amount)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(name),
				},
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		ExpiresAt:  stripe.Int64(expiresAt.Unix()),
	}
	if req.Reference != "" {
		params.ClientReferenceID = stripe.String(req.Reference)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	sess, err := p.sc.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}
	return &PaymentResponse{
		Gateway:     p.Name(),
		Reference:   sess.ID,
		Status:      "PENDING",
		CheckoutURL: sess.URL,
		CustomerRef: customerID,
		ExpiresAt:   expiresAt,
	}, nil
}

func (p *StripeProvider) VerifyPayment(ctx context.Context, reference string) (bool, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := p.sc.CheckoutSessions.Get(reference, params)
	if err != nil {
		return false, fmt.Errorf("stripe get session: %w", err)
	}
	return sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid, nil
}
