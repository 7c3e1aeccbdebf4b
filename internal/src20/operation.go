// Package src20 implements the SRC-20 encoder: canonical JSON
// serialization of DEPLOY/MINT/TRANSFER operations, "stamp:"-prefixed
// length framing, and standard-P2WSH chunk emission. See spec.md
// section 4.4.
package src20

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/klingon-exchange/stampcore/internal/coreerr"
)

var tickerRe = regexp.MustCompile(`^[A-Z0-9]{1,5}$`)

// Operation is the tagged SRC-20 operation interface. The concrete
// set is closed (Deploy, Mint, Transfer); callers do not implement
// their own variants.
type Operation interface {
	// CanonicalJSON serializes the operation with keys in the fixed
	// order spec.md section 4.4 mandates, no whitespace.
	CanonicalJSON() ([]byte, error)
}

// Deploy is the SRC-20 DEPLOY operation.
type Deploy struct {
	Tick string
	Max  string
	Lim  string
	Dec  uint8
}

// Mint is the SRC-20 MINT operation.
type Mint struct {
	Tick string
	Amt  string
}

// Transfer is the SRC-20 TRANSFER operation.
type Transfer struct {
	Tick string
	Amt  string
}

func normalizeTick(tick string) (string, error) {
	upper := strings.ToUpper(strings.TrimSpace(tick))
	if !tickerRe.MatchString(upper) {
		return "", coreerr.New(coreerr.CodeInvalidOptions, fmt.Sprintf("invalid ticker %q: must be 1-5 characters from [A-Z0-9]", tick), coreerr.ErrInvalidInput, map[string]any{"tick": tick})
	}
	return upper, nil
}

// CanonicalJSON implements Operation for Deploy.
func (d Deploy) CanonicalJSON() ([]byte, error) {
	tick, err := normalizeTick(d.Tick)
	if err != nil {
		return nil, err
	}
	max, err := normalizeDecimal(d.Max)
	if err != nil {
		return nil, fmt.Errorf("max: %w", err)
	}
	lim, err := normalizeDecimal(d.Lim)
	if err != nil {
		return nil, fmt.Errorf("lim: %w", err)
	}
	if d.Dec > 18 {
		return nil, coreerr.New(coreerr.CodeInvalidOptions, fmt.Sprintf("dec must be 0-18, got %d", d.Dec), coreerr.ErrInvalidInput, nil)
	}

	var b strings.Builder
	b.WriteString(`{"p":"SRC-20","op":"DEPLOY","tick":"`)
	b.WriteString(tick)
	b.WriteString(`","max":"`)
	b.WriteString(max)
	b.WriteString(`","lim":"`)
	b.WriteString(lim)
	b.WriteString(`","dec":`)
	fmt.Fprintf(&b, "%d}", d.Dec)
	return []byte(b.String()), nil
}

// CanonicalJSON implements Operation for Mint.
func (m Mint) CanonicalJSON() ([]byte, error) {
	tick, err := normalizeTick(m.Tick)
	if err != nil {
		return nil, err
	}
	amt, err := normalizeDecimal(m.Amt)
	if err != nil {
		return nil, fmt.Errorf("amt: %w", err)
	}
	if isZeroDecimal(amt) {
		return nil, coreerr.New(coreerr.CodeInvalidOptions, "mint amt must not be zero", coreerr.ErrInvalidInput, nil)
	}

	var b strings.Builder
	b.WriteString(`{"p":"SRC-20","op":"MINT","tick":"`)
	b.WriteString(tick)
	b.WriteString(`","amt":"`)
	b.WriteString(amt)
	b.WriteString(`"}`)
	return []byte(b.String()), nil
}

// CanonicalJSON implements Operation for Transfer.
func (tr Transfer) CanonicalJSON() ([]byte, error) {
	tick, err := normalizeTick(tr.Tick)
	if err != nil {
		return nil, err
	}
	amt, err := normalizeDecimal(tr.Amt)
	if err != nil {
		return nil, fmt.Errorf("amt: %w", err)
	}
	if isZeroDecimal(amt) {
		return nil, coreerr.New(coreerr.CodeInvalidOptions, "transfer amt must not be zero", coreerr.ErrInvalidInput, nil)
	}

	var b strings.Builder
	b.WriteString(`{"p":"SRC-20","op":"TRANSFER","tick":"`)
	b.WriteString(tick)
	b.WriteString(`","amt":"`)
	b.WriteString(amt)
	b.WriteString(`"}`)
	return []byte(b.String()), nil
}
