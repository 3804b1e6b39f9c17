// Package symbol converts between the human "BASE/QUOTE" display form
// and the exchange's concatenated form ("BTC/USDT" <-> "BTCUSDT").
package symbol

import "strings"

// quoteAssets are tried longest-suffix-first when splitting a
// concatenated symbol back into display form.
var quoteAssets = []string{"USDT", "USDC", "BUSD", "TUSD", "BTC", "ETH", "BNB"}

// ToExchange normalizes any accepted spelling to the exchange form.
func ToExchange(s string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "/", "")
}

// ToDisplay converts an exchange-form symbol to "BASE/QUOTE". Symbols
// already in display form are normalized in place; a concatenated
// symbol with no recognized quote asset passes through unchanged.
func ToDisplay(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if strings.Contains(s, "/") {
		return s
	}
	for _, quote := range quoteAssets {
		if strings.HasSuffix(s, quote) && len(s) > len(quote) {
			return s[:len(s)-len(quote)] + "/" + quote
		}
	}
	return s
}
