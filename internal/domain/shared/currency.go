package shared

// CurrencyTable maps ISO currency codes to display symbols.
type CurrencyTable map[string]string

// DefaultCurrencyTable returns the symbols the store prices in.
func DefaultCurrencyTable() CurrencyTable {
	return CurrencyTable{
		"USD": "$",
		"INR": "₹",
		"EUR": "€",
		"GBP": "£",
		"CAD": "$",
		"AUD": "$",
		"JPY": "¥",
	}
}

// Symbol returns the display symbol for a currency code. Unknown codes
// fall back to the code itself followed by a space.
func (t CurrencyTable) Symbol(code string) string {
	if sym, ok := t[code]; ok {
		return sym
	}
	return code + " "
}
