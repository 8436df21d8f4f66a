package router

import (
	"rentdesk/config"
	"rentdesk/pkg/payment"
)

// NewGateways registers a provider for every gateway with credentials. The
// stub is added only when enabled, which config refuses in production.
func NewGateways(cfg config.PaymentConfig) *payment.Selector {
	var providers []payment.Provider
	if cfg.StubEnabled {
		providers = append(providers, &payment.StubProvider{})
	}
	if cfg.Stripe.SecretKey != "" {
		providers = append(providers, payment.NewStripeProvider(cfg.Stripe.SecretKey, ""))
	}
	if cfg.Paystack.SecretKey != "" {
		providers = append(providers, payment.NewPaystackProvider(cfg.Paystack.BaseURL, cfg.Paystack.SecretKey))
	}
	if cfg.Flutterwave.SecretKey != "" {
		providers = append(providers, payment.NewFlutterwaveProvider(cfg.Flutterwave.BaseURL, cfg.Flutterwave.SecretKey))
	}
	return payment.NewSelector(cfg.DefaultGateway, cfg.Routing, providers...)
}
