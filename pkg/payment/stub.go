package payment

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StubProvider is a no-op provider for development and tests. Every
// reference it hands out verifies as paid.
type StubProvider struct {
	BaseURL string

	issued sync.Map
}

func (s *StubProvider) Name() string { return "STUB" }

func (s *StubProvider) InitiatePayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error) {
	ref := req.Reference
	if ref == "" {
		ref = "stub_" + uuid.NewString()
	}
	s.issued.Store(ref, struct{}{})
	base := s.BaseURL
	if base == "" {
		base = "https://checkout.stub.local"
	}
	return &PaymentResponse{
		Gateway:     s.Name(),
		Reference:   ref,
		Status:      "PENDING",
		CheckoutURL: base + "/pay/" + ref,
		CustomerRef: req.CustomerRef,
		ExpiresAt:   time.Now().Add(req.ExpiresIn),
	}, nil
}

func (s *StubProvider) VerifyPayment(ctx context.Context, reference string) (bool, error) {
	if _, ok := s.issued.Load(reference); ok {
		return true, nil
	}
	return strings.HasPrefix(reference, "stub_"), nil
}
