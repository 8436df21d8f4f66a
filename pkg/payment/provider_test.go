package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubProvider(t *testing.T) {
	p := &StubProvider{}
	resp, err := p.InitiatePayment(context.Background(), PaymentRequest{Amount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Reference, "stub_"))
	assert.Contains(t, resp.CheckoutURL, resp.Reference)

	ok, err := p.VerifyPayment(context.Background(), resp.Reference)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = p.VerifyPayment(context.Background(), "abc")
	assert.False(t, ok)
}

func TestPaystackProvider_InitiateAndVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/transaction/initialize":
			var body paystackInitReq
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "150050", body.Amount)
			assert.Equal(t, "NGN", body.Currency)
			assert.Equal(t, "ref-1", body.Reference)
			_, _ = w.Write([]byte(`{"status":true,"message":"ok","data":{"authorization_url":"https://checkout.paystack.com/abc","reference":"ref-1"}}`))
		case r.Method == http.MethodGet && r.URL.Path == "/transaction/verify/ref-1":
			_, _ = w.Write([]byte(`{"status":true,"data":{"status":"success","reference":"ref-1"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p := NewPaystackProvider(srv.URL, "sk_test")
	resp, err := p.InitiatePayment(context.Background(), PaymentRequest{
		Reference:     "ref-1",
		Amount:        decimal.RequireFromString("1500.50"),
		Currency:      "ngn",
		CustomerEmail: "payer@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "PAYSTACK", resp.Gateway)
	assert.Equal(t, "ref-1", resp.Reference)
	assert.Equal(t, "https://checkout.paystack.com/abc", resp.CheckoutURL)

	ok, err := p.VerifyPayment(context.Background(), "ref-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPaystackProvider_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewPaystackProvider(srv.URL, "bad").InitiatePayment(context.Background(), PaymentRequest{Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrGatewayRejected)
}

func TestFlutterwaveProvider_InitiateAndVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v3/payments":
			var body flutterwavePayReq
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ref-9", body.TxRef)
			assert.Equal(t, "25.00", body.Amount)
			assert.Equal(t, "KES", body.Currency)
			_, _ = w.Write([]byte(`{"status":"success","message":"Hosted Link","data":{"link":"https://checkout.flutterwave.com/v3/hosted/pay/xyz"}}`))
		case r.Method == http.MethodGet && r.URL.Path == "/v3/transactions/verify_by_reference":
			assert.Equal(t, "ref-9", r.URL.Query().Get("tx_ref"))
			_, _ = w.Write([]byte(`{"status":"success","data":{"status":"successful","tx_ref":"ref-9"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p := NewFlutterwaveProvider(srv.URL, "FLWSECK")
	resp, err := p.InitiatePayment(context.Background(), PaymentRequest{
		Reference: "ref-9",
		Amount:    decimal.NewFromInt(25),
		Currency:  "KES",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.flutterwave.com/v3/hosted/pay/xyz", resp.CheckoutURL)

	ok, err := p.VerifyPayment(context.Background(), "ref-9")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStripeProvider_CheckoutSession(t *testing.T) {
	var sawCustomer, sawSession bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/customers":
			sawCustomer = true
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "payer@example.com", r.PostForm.Get("email"))
			_, _ = w.Write([]byte(`{"id":"cus_123","object":"customer"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/v1/checkout/sessions":
			sawSession = true
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "payment", r.PostForm.Get("mode"))
			assert.Equal(t, "cus_123", r.PostForm.Get("customer"))
			assert.Equal(t, "4200", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
			_, _ = w.Write([]byte(`{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_1"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/v1/checkout/sessions/cs_test_1":
			_, _ = w.Write([]byte(`{"id":"cs_test_1","object":"checkout.session","payment_status":"paid"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"message":"not found"}}`))
		}
	}))
	defer srv.Close()

	p := NewStripeProvider("sk_test_123", srv.URL)
	resp, err := p.InitiatePayment(context.Background(), PaymentRequest{
		Amount:        decimal.NewFromInt(42),
		Currency:      "USD",
		CustomerEmail: "payer@example.com",
		SuccessURL:    "https://app/success",
		CancelURL:     "https://app/cancel",
	})
	require.NoError(t, err)
	assert.True(t, sawCustomer)
	assert.True(t, sawSession)
	assert.Equal(t, "cs_test_1", resp.Reference)
	assert.Equal(t, "cus_123", resp.CustomerRef)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", resp.CheckoutURL)

	paid, err := p.VerifyPayment(context.Background(), "cs_test_1")
	require.NoError(t, err)
	assert.True(t, paid)
}
