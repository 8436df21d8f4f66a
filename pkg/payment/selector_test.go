package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedProvider struct {
	StubProvider
	name string
}

func (n *namedProvider) Name() string { return n.name }

func allProviders() []Provider {
	return []Provider{
		&namedProvider{name: "STRIPE"},
		&namedProvider{name: "PAYSTACK"},
		&namedProvider{name: "FLUTTERWAVE"},
		&StubProvider{},
	}
}

func TestSelector_RoutingOffAlwaysDefault(t *testing.T) {
	s := NewSelector("STRIPE", false, allProviders()...)
	for _, c := range []string{"NG", "KE", "US", ""} {
		assert.Equal(t, "STRIPE", s.ForCountry(c).Name(), c)
	}
}

func TestSelector_RoutingByCountry(t *testing.T) {
	s := NewSelector("STRIPE", true, allProviders()...)
	cases := map[string]string{
		"NG": "PAYSTACK", "gh": "PAYSTACK", "ZA": "PAYSTACK",
		"KE": "FLUTTERWAVE", "UG": "FLUTTERWAVE", "TZ": "FLUTTERWAVE", "RW": "FLUTTERWAVE",
		"US": "STRIPE", "": "STRIPE",
	}
	for country, want := range cases {
		assert.Equal(t, want, s.ForCountry(country).Name(), country)
	}
}

func TestSelector_FallsBackToStub(t *testing.T) {
	s := NewSelector("STRIPE", true, &StubProvider{})
	p := s.ForCountry("NG")
	require.NotNil(t, p)
	assert.Equal(t, "STUB", p.Name())

	_, ok := s.Get("paystack")
	assert.False(t, ok)
	_, ok = s.Get("stub")
	assert.True(t, ok)
}
