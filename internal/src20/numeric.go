package src20

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/klingon-exchange/stampcore/internal/coreerr"
)

// normalizeDecimal validates and canonicalizes an arbitrary-precision
// non-negative decimal string: trailing zeros after the decimal point
// are trimmed, and a pure-integer value carries no decimal point.
// math/big is used throughout, per spec.md's Design Notes warning
// against routing SRC-20 numeric fields through float64 (mirroring the
// teacher's pkg/helpers.FormatAmount/ParseAmount big.Int pattern,
// generalized to arbitrary implicit scale instead of a fixed exponent).
func normalizeDecimal(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", coreerr.New(coreerr.CodeInvalidOptions, "numeric field must not be empty", coreerr.ErrInvalidInput, nil)
	}

	whole, frac, hasPoint := s, "", false
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		whole, frac, hasPoint = s[:idx], s[idx+1:], true
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || (hasPoint && !isDigits(frac)) {
		return "", coreerr.New(coreerr.CodeInvalidOptions, fmt.Sprintf("%q is not a valid non-negative decimal", s), coreerr.ErrInvalidInput, nil)
	}

	// Leading zeros in the whole part are dropped by the big.Int round
	// trip ("007" becomes "7"), giving the decimal canonical form.
	wholeBig, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return "", coreerr.New(coreerr.CodeInvalidOptions, fmt.Sprintf("%q has an invalid integer part", s), coreerr.ErrInvalidInput, nil)
	}

	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		return wholeBig.String(), nil
	}
	return wholeBig.String() + "." + frac, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// isZeroDecimal reports whether a normalized decimal string is "0".
func isZeroDecimal(normalized string) bool {
	return normalized == "0"
}
