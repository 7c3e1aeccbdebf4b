// Package asset parses and validates Counterparty asset identifiers
// (CPIDs): numeric (A<decimal>), named (alphabetic), and sub-asset
// (A<decimal>.<suffix>) forms, per spec.md sections 3 and 6.
package asset

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind distinguishes the three CPID grammars.
type Kind int

const (
	Numeric Kind = iota
	Named
	SubAsset
)

var (
	numericRe  = regexp.MustCompile(`^A[0-9]+$`)
	namedRe    = regexp.MustCompile(`^[B-Z][A-Z0-9]{0,12}$`)
	subAssetRe = regexp.MustCompile(`^A[0-9]+\.[A-Z0-9]{1,13}$`)
)

// minNumericID is the lower bound of a numeric CPID's decimal suffix,
// per spec.md: "A0" is rejected (must be >= 1). The upper bound
// (strictly less than 2^64) is enforced by parsing the suffix as a
// uint64 in parseNumericSuffix.
const minNumericID uint64 = 1

// CPID is a parsed, canonicalized Counterparty asset identifier.
type CPID struct {
	Kind       Kind
	Raw        string // canonical uppercased form
	numericID  uint64 // valid for Numeric and SubAsset (parent id)
	subSuffix  string // set for SubAsset only
}

// ParseCPID parses s (case-insensitive) into a CPID, rejecting any
// shape outside the three grammars in spec.md section 6.
func ParseCPID(s string) (CPID, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if upper == "" {
		return CPID{}, fmt.Errorf("empty asset identifier")
	}

	switch {
	case subAssetRe.MatchString(upper):
		parts := strings.SplitN(upper, ".", 2)
		id, err := parseNumericSuffix(parts[0])
		if err != nil {
			return CPID{}, err
		}
		return CPID{Kind: SubAsset, Raw: upper, numericID: id, subSuffix: parts[1]}, nil

	case numericRe.MatchString(upper):
		id, err := parseNumericSuffix(upper)
		if err != nil {
			return CPID{}, err
		}
		return CPID{Kind: Numeric, Raw: upper, numericID: id}, nil

	case namedRe.MatchString(upper):
		return CPID{Kind: Named, Raw: upper}, nil

	default:
		return CPID{}, fmt.Errorf("asset identifier %q matches no known CPID grammar", s)
	}
}

func parseNumericSuffix(withPrefix string) (uint64, error) {
	decimal := strings.TrimPrefix(withPrefix, "A")
	// A u64 has at most 20 decimal digits; ParseUint with bitSize 64
	// rejects anything >= 2^64 on its own, matching the spec's
	// "reject if >= 2^64" rule.
	id, err := strconv.ParseUint(decimal, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("asset id %q out of range for uint64: %w", withPrefix, err)
	}
	if id < minNumericID {
		return 0, fmt.Errorf("asset id %q must be >= %d", withPrefix, minNumericID)
	}
	return id, nil
}

// IsNamed reports whether the CPID is an alphabetic named asset,
// which the Stamp issuance flow rejects (it would require burning
// protocol tokens to register).
func (c CPID) IsNamed() bool { return c.Kind == Named }

// NumericID returns the numeric asset id to use when encoding an
// issuance. For a SubAsset this is the parent's numeric id only — a
// documented simplification (spec.md section 9, Open Questions #3):
// full sub-asset compatibility would require extending this to encode
// the suffix too, which this core does not attempt.
func (c CPID) NumericID() (uint64, error) {
	switch c.Kind {
	case Numeric, SubAsset:
		return c.numericID, nil
	case Named:
		return hashNamedAsset(c.Raw), nil
	default:
		return 0, fmt.Errorf("cpid has no numeric id")
	}
}

// hashNamedAsset derives a numeric id for a named asset by hashing its
// canonical form and taking the first 8 big-endian bytes modulo 2^64.
// spec.md section 4.3 notes this path exists for tests only; production
// callers are expected to supply numeric ids.
func hashNamedAsset(name string) uint64 {
	sum := sha256.Sum256([]byte(name))
	return binary.BigEndian.Uint64(sum[:8])
}

// String returns the canonical uppercased form, including the
// sub-asset suffix where present.
func (c CPID) String() string { return c.Raw }
