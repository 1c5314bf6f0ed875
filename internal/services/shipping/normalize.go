package shipping

import "strings"

// NormalizeCity folds case and collapses whitespace so " JAKARTA " and
// "jakarta" compare equal.
func NormalizeCity(city string) string {
	return strings.ToLower(strings.Join(strings.Fields(city), " "))
}

// NormalizeMethod folds case and trims surrounding whitespace.
func NormalizeMethod(method string) string {
	return strings.ToLower(strings.TrimSpace(method))
}

func normalizePostalCode(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), ""))
}
