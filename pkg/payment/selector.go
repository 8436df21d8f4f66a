package payment

import "strings"

// countryGateway maps ISO country codes to the gateway that serves them best.
var countryGateway = map[string]string{
	"NG": "PAYSTACK",
	"GH": "PAYSTACK",
	"ZA": "PAYSTACK",
	"KE": "FLUTTERWAVE",
	"UG": "FLUTTERWAVE",
	"TZ": "FLUTTERWAVE",
	"RW": "FLUTTERWAVE",
}

// Selector picks the provider for a payment. With routing off every payment
// goes through the default gateway.
type Selector struct {
	providers      map[string]Provider
	defaultGateway string
	routing        bool
}

func NewSelector(defaultGateway string, routing bool, providers ...Provider) *Selector {
	s := &Selector{
		providers:      make(map[string]Provider, len(providers)),
		defaultGateway: strings.ToUpper(defaultGateway),
		routing:        routing,
	}
	for _, p := range providers {
		if p != nil {
			s.providers[p.Name()] = p
		}
	}
	return s
}

// Get returns the provider registered under gateway.
func (s *Selector) Get(gateway string) (Provider, bool) {
	p, ok := s.providers[strings.ToUpper(gateway)]
	return p, ok
}

// ForCountry returns the provider to use for a payer in country.
// Unregistered gateways fall back to the default, then to the stub.
func (s *Selector) ForCountry(country string) Provider {
	if s.routing {
		if gw, ok := countryGateway[strings.ToUpper(country)]; ok {
			if p, ok := s.providers[gw]; ok {
				return p
			}
		}
	}
	if p, ok := s.providers[s.defaultGateway]; ok {
		return p
	}
	if p, ok := s.providers["STRIPE"]; ok {
		return p
	}
	return s.providers["STUB"]
}
