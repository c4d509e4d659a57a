package config

import "strings"

// Currency describes how amounts are displayed. The backend stores plain
// numbers; the currency is a display preference only.
type Currency struct {
	Code     string
	Symbol   string
	Decimals int32
	// SymbolAfter places the symbol after the amount ("12,50 €").
	SymbolAfter bool
}

var currencies = map[string]Currency{
	"USD": {Code: "USD", Symbol: "$", Decimals: 2},
	"MXN": {Code: "MXN", Symbol: "$", Decimals: 2},
	"COP": {Code: "COP", Symbol: "$", Decimals: 0},
	"CLP": {Code: "CLP", Symbol: "$", Decimals: 0},
	"ARS": {Code: "ARS", Symbol: "$", Decimals: 2},
	"PEN": {Code: "PEN", Symbol: "S/", Decimals: 2},
	"EUR": {Code: "EUR", Symbol: "€", Decimals: 2, SymbolAfter: true},
	"GBP": {Code: "GBP", Symbol: "£", Decimals: 2},
	"JPY": {Code: "JPY", Symbol: "¥", Decimals: 0},
}

// LookupCurrency returns display settings for an ISO code, case-insensitive.
// Unknown codes fall back to two decimals with the code as the symbol.
func LookupCurrency(code string) (Currency, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if c, ok := currencies[code]; ok {
		return c, true
	}
	if code == "" {
		return currencies["USD"], false
	}
	return Currency{Code: code, Symbol: code + " ", Decimals: 2}, false
}

// CurrencyCodes lists the known codes, for the setup wizard.
func CurrencyCodes() []string {
	return []string{"USD", "MXN", "COP", "CLP", "ARS", "PEN", "EUR", "GBP", "JPY"}
}
