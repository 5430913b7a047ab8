package holiday

import (
	"errors"
	"strings"
)

var (
	ErrCountryEmpty   = errors.New("--country cannot be empty")
	ErrCountryLength  = errors.New("--country must be a 2- or 3-letter ISO code")
	ErrCountryCharset = errors.New("--country must contain only ASCII letters")
)

// Provider identifies the remote API holidays are fetched from. The zero
// value is the ArgentinaDatos provider, which predates country selection;
// every other country maps to the OpenHolidays API.
type Provider struct {
	country string // empty for ArgentinaDatos, uppercase ISO code otherwise
}

// DefaultProvider returns the provider used when no country is configured
func DefaultProvider() Provider {
	return Provider{}
}

// ResolveProvider validates a user-supplied country code and maps it to a
// provider. "AR" resolves to the default ArgentinaDatos source rather than
// the generic API. Validation happens here, before any I/O.
func ResolveProvider(country string) (Provider, error) {
	trimmed := strings.TrimSpace(country)
	if trimmed == "" {
		return Provider{}, ErrCountryEmpty
	}

	code := strings.ToUpper(trimmed)
	if len(code) < 2 || len(code) > 3 {
		return Provider{}, ErrCountryLength
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return Provider{}, ErrCountryCharset
		}
	}

	if code == "AR" {
		return Provider{}, nil
	}

	return Provider{country: code}, nil
}

// IsDefault reports whether p is the ArgentinaDatos provider
func (p Provider) IsDefault() bool {
	return p.country == ""
}

// Country returns the uppercase ISO code, or empty for the default provider
func (p Provider) Country() string {
	return p.country
}

// Slug returns the identifier used in cache file names
func (p Provider) Slug() string {
	if p.IsDefault() {
		return "argentina-datos"
	}
	return "openholidays-" + strings.ToLower(p.country)
}
