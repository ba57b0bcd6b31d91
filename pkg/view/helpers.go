package view

import "fmt"

// MoneyFromCents converts cents to a human-readable currency string.
// E.g., 1299 USD -> "$12.99", -500 USD -> "-$5.00"
func MoneyFromCents(cents int, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, currencySymbol(currency), cents/100, cents%100)
}

func currencySymbol(code string) string {
	switch code {
	case "USD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "CAD":
		return "CA$"
	case "AUD":
		return "A$"
	case "MXN":
		return "MX$"
	default:
		return code + " "
	}
}
