// Package currency decides which currency a FedEx rate quote is requested
// in and converts reply charges back to the store's primary currency.
package currency

import "strings"

// countryCurrency is a deliberately narrow heuristic covering the US/Canada/
// India shipping scenario; the store has no designated currency per country.
var countryCurrency = map[string]string{
	"US": "USD",
	"CA": "CAD",
	"IN": "INR",
}

// Converter converts amounts between an arbitrary currency and the store's
// primary currency. Implementations are pure value mappings.
type Converter interface {
	// Primary returns the store's primary currency code.
	Primary() string
	// Known reports whether the currency code is recognized locally.
	Known(code string) bool
	// ToPrimary converts an amount into the primary currency. An unknown
	// code is presumed to already be the primary currency.
	ToPrimary(amount float64, code string) float64
	// FromPrimary converts an amount out of the primary currency. An
	// unknown code leaves the amount unchanged.
	FromPrimary(amount float64, code string) float64
}

// ResolveShipmentCurrency picks the currency a rate quote must be requested
// in. When neither leg's currency matches the store's primary currency FedEx
// rejects the request ("There are no valid services available.", code 556),
// so any match forces the primary currency. Otherwise the origin's currency
// is used, falling back to primary when it is not recognized locally.
func ResolveShipmentCurrency(originCountry, destinationCountry, primary string, known func(code string) bool) string {
	originCode := currencyForCountry(originCountry, primary)
	destinationCode := currencyForCountry(destinationCountry, primary)

	if originCode == primary || destinationCode == primary {
		return primary
	}
	if known != nil && known(originCode) {
		return originCode
	}
	return primary
}

func currencyForCountry(countryCode, primary string) string {
	if code, ok := countryCurrency[strings.ToUpper(countryCode)]; ok {
		return code
	}
	return primary
}

// FixedRateConverter converts via a static table of rates to the primary
// currency (units of primary per one unit of the foreign currency).
type FixedRateConverter struct {
	primary string
	rates   map[string]float64
}

// NewFixedRateConverter builds a converter for the given primary currency.
// The rates map may be nil; the primary currency is always known.
func NewFixedRateConverter(primary string, rates map[string]float64) *FixedRateConverter {
	normalized := make(map[string]float64, len(rates))
	for code, rate := range rates {
		if rate > 0 {
			normalized[strings.ToUpper(code)] = rate
		}
	}
	return &FixedRateConverter{primary: strings.ToUpper(primary), rates: normalized}
}

func (c *FixedRateConverter) Primary() string { return c.primary }

func (c *FixedRateConverter) Known(code string) bool {
	code = strings.ToUpper(code)
	if code == c.primary {
		return true
	}
	_, ok := c.rates[code]
	return ok
}

func (c *FixedRateConverter) ToPrimary(amount float64, code string) float64 {
	code = strings.ToUpper(code)
	if code == c.primary {
		return amount
	}
	rate, ok := c.rates[code]
	if !ok {
		// Unknown currency: presume the charge was already quoted in the
		// primary currency.
		return amount
	}
	return amount * rate
}

func (c *FixedRateConverter) FromPrimary(amount float64, code string) float64 {
	code = strings.ToUpper(code)
	if code == c.primary {
		return amount
	}
	rate, ok := c.rates[code]
	if !ok {
		return amount
	}
	return amount / rate
}
