package source

import (
	"fmt"
	"regexp"
	"strings"
)

// tickerPattern matches ticker symbols.
// Allows: an optional leading caret for indices (^GSPC), uppercase letters,
// digits, dots (BRK.A), hyphens (BF-B, BTC-USD) and equals signs (GC=F).
// Max length: 10 characters after the caret.
var tickerPattern = regexp.MustCompile(`^\^?[A-Z0-9][A-Z0-9.=\-]{0,9}$`)

// ValidateTicker reports whether ticker is safe to place in a request URL or
// a Flux query.
func ValidateTicker(ticker string) error {
	if ticker == "" {
		return fmt.Errorf("ticker cannot be empty")
	}
	if !tickerPattern.MatchString(ticker) {
		return fmt.Errorf("invalid ticker format: %q (must be 1-10 uppercase alphanumeric chars, dots, hyphens or '=', optionally prefixed by '^')", ticker)
	}
	return nil
}

// SanitizeTicker normalizes and validates a ticker symbol.
// Returns the uppercase ticker if valid, or an error if invalid.
func SanitizeTicker(ticker string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(ticker))
	if err := ValidateTicker(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}
