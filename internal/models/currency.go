package models

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency describes the currency an invoice is billed in.
type Currency struct {
	Code   string `json:"code" firestore:"code"`
	Label  string `json:"label" firestore:"label"`
	Symbol string `json:"symbol" firestore:"symbol"`
}

// Currencies is the fixed list offered by the invoice editor.
var Currencies = []Currency{
	{Code: "USD", Label: "US Dollar", Symbol: "$"},
	{Code: "EUR", Label: "Euro", Symbol: "€"},
	{Code: "GBP", Label: "British Pound", Symbol: "£"},
	{Code: "INR", Label: "Indian Rupee", Symbol: "₹"},
	{Code: "AED", Label: "UAE Dirham", Symbol: "AED"},
	{Code: "SAR", Label: "Saudi Riyal", Symbol: "SAR"},
	{Code: "CAD", Label: "Canadian Dollar", Symbol: "CA$"},
	{Code: "AUD", Label: "Australian Dollar", Symbol: "A$"},
	{Code: "JPY", Label: "Japanese Yen", Symbol: "¥"},
}

// DefaultCurrency is used for new invoices.
var DefaultCurrency = Currencies[0]

// LookupCurrency finds a currency by its code.
func LookupCurrency(code string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

var amountPrinter = message.NewPrinter(language.English)

// Format renders amount with the currency's symbol and standard number of
// decimals, e.g. "$1,234.50", "¥1,235" or "AED 99.00".
func (c Currency) Format(amount float64) string {
	scale := 2
	if unit, err := currency.ParseISO(c.Code); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
	}
	digits := amountPrinter.Sprintf("%v", number.Decimal(math.Abs(amount), number.Scale(scale)))

	symbol := c.Symbol
	if symbol == "" {
		symbol = c.Code
	}
	if isAlpha(symbol) {
		symbol += " "
	}
	if amount < 0 && strings.Trim(digits, "0.,") != "" {
		return "-" + symbol + digits
	}
	return symbol + digits
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
