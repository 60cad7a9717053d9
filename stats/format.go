package stats

// FormatMoney renders an amount with two decimals ("50.00", "-12.50").
func FormatMoney(x float64) string {
	return dec(x).StringFixed(2)
}

// FormatPercent renders a percentage with one decimal ("66.7").
func FormatPercent(x float64) string {
	return dec(x).StringFixed(1)
}
