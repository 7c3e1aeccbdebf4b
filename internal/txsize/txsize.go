// Package txsize implements the virtual-size and fee model shared by
// every selector and the assembler: per-script-kind input/output byte
// costs, the dynamic dust threshold, and the RBF/CPFP fee formulas. See
// spec.md section 4.6.
//
// The per-script-kind constant tables below follow the worst-case
// serialize-size-table convention used throughout the btcsuite/Decred
// txsizes packages (fixed base cost + witness cost charged at 1/4
// weight), generalized from a single P2PKH/P2WPKH pair to the full
// script-kind set spec.md names.
package txsize

import (
	"github.com/klingon-exchange/stampcore/internal/config"
	"github.com/klingon-exchange/stampcore/internal/utxo"
)

// TxOverhead is the fixed non-input, non-output weight of a
// transaction: version (4) + segwit marker/flag (not counted as base,
// folded into witness weight by convention here) + locktime (4) +
// input/output counts (2), per spec.md section 4.6.
const TxOverhead = 10

// InputCost is the base and witness virtual-byte cost of spending a
// given script kind. Witness is counted separately because it is
// weighted 1/4 in the vsize formula.
type InputCost struct {
	Base    int
	Witness int
}

// OutputCost is the virtual-byte cost of an output carrying a given
// script kind.
const (
	OutputCostP2PKH  = 34
	OutputCostP2WPKH = 31
	OutputCostP2SH   = 32
	OutputCostP2WSH  = 43
	OutputCostP2TR   = 43
)

// inputCosts maps script kind to its worst-case spend cost, per the
// table in spec.md section 4.6.
var inputCosts = map[utxo.ScriptType]InputCost{
	utxo.P2PKH:  {Base: 148, Witness: 0},
	utxo.P2WPKH: {Base: 41, Witness: 27},
	utxo.P2SH:   {Base: 91, Witness: 0},
	utxo.P2WSH:  {Base: 41, Witness: 0},
	utxo.P2TR:   {Base: 57, Witness: 16},
}

// outputCosts maps script kind to its output byte cost.
var outputCosts = map[utxo.ScriptType]int{
	utxo.P2PKH:  OutputCostP2PKH,
	utxo.P2WPKH: OutputCostP2WPKH,
	utxo.P2SH:   OutputCostP2SH,
	utxo.P2WSH:  OutputCostP2WSH,
	utxo.P2TR:   OutputCostP2TR,
}

// InputVirtualSize returns the worst-case spend cost, in virtual
// bytes, for an input of the given script kind. Unrecognized kinds
// fall back to the P2PKH row (the widest non-witness-discounted
// standard kind), erring toward overestimation rather than
// underestimation of fees.
func InputVirtualSize(kind utxo.ScriptType) int {
	c, ok := inputCosts[kind]
	if !ok {
		c = inputCosts[utxo.P2PKH]
	}
	return c.Base + (c.Witness+3)/4
}

// OutputVirtualSize returns the output cost, in bytes, for the given
// script kind.
func OutputVirtualSize(kind utxo.ScriptType) int {
	if c, ok := outputCosts[kind]; ok {
		return c
	}
	return outputCosts[utxo.P2WSH]
}

// OPReturnVirtualSize returns the output cost of an OP_RETURN output
// carrying scriptLen bytes of pushed data: 8 (value) + 1 (varint
// script length, single byte for the sizes this core produces) +
// scriptLen.
func OPReturnVirtualSize(scriptLen int) int {
	return 8 + 1 + scriptLen
}

// VirtualSize computes the total transaction virtual size: overhead
// plus the sum of input and output costs, per spec.md section 4.6.
func VirtualSize(inputKinds []utxo.ScriptType, outputSizes []int) int {
	total := TxOverhead
	for _, k := range inputKinds {
		total += InputVirtualSize(k)
	}
	for _, sz := range outputSizes {
		total += sz
	}
	return total
}

// Fee returns the ceiling of vsize * feeRate (feeRate in sat/vbyte).
func Fee(vsize int, feeRate float64) int64 {
	f := float64(vsize) * feeRate
	fee := int64(f)
	if float64(fee) < f {
		fee++
	}
	return fee
}

// DustThreshold computes the dynamic dust threshold for an output of
// the given script kind, per spec.md section 4.6: the greater of the
// configured base dust value and the relay-fee-scaled cost of
// spending that output later, capped at cfg.HardCap.
func DustThreshold(kind utxo.ScriptType, cfg config.DustConfig) int64 {
	base := baseDust(kind, cfg)
	spendCost := int64(OutputVirtualSize(kind)+InputVirtualSize(kind)) * cfg.RelayFeeRate
	threshold := base
	if spendCost > threshold {
		threshold = spendCost
	}
	if threshold > cfg.HardCap {
		threshold = cfg.HardCap
	}
	return threshold
}

func baseDust(kind utxo.ScriptType, cfg config.DustConfig) int64 {
	switch kind {
	case utxo.P2PKH:
		return cfg.BasePKH
	case utxo.P2WPKH:
		return cfg.BaseWPKH
	case utxo.P2SH:
		return cfg.BaseSH
	case utxo.P2WSH:
		return cfg.BaseWSH
	case utxo.P2TR:
		return cfg.BaseTR
	default:
		return cfg.BaseWSH
	}
}

// BumpRBF computes a replacement fee for an existing transaction of
// vsize bytes and originalFee, targeting confTarget blocks, per
// spec.md section 4.6: max(originalFee + vsize*1, vsize*targetFeeRate),
// scaled by the confirmation-target priority factor, plus a 5%
// stamp-specific buffer (or cfg.StampBufferBPS if set).
func BumpRBF(originalFee int64, vsize int, targetFeeRate float64, confTarget int, cfg config.RBFConfig) int64 {
	byMinIncrement := originalFee + int64(vsize)
	byTargetRate := Fee(vsize, targetFeeRate)
	bumped := byMinIncrement
	if byTargetRate > bumped {
		bumped = byTargetRate
	}

	factor := cfg.PriorityFactors[confTarget]
	if factor == 0 {
		factor = 1.0
	}
	bumped = int64(float64(bumped) * factor)

	bufferBPS := int64(cfg.StampBufferBPS)
	if bufferBPS == 0 {
		bufferBPS = 500
	}
	bumped += bumped * bufferBPS / 10_000
	return bumped
}

// CPFPChildFee computes the child transaction's fee needed to bring
// the combined parent+child package to targetFeeRate, per spec.md
// section 4.6: max((parentVsize+childVsize)*targetFeeRate - parentFee,
// childVsize) — the child pays at least 1 sat/vbyte of its own weight
// even if the parent is already well-paid.
func CPFPChildFee(parentVsize, childVsize int, parentFee int64, targetFeeRate float64) int64 {
	packageFee := Fee(parentVsize+childVsize, targetFeeRate)
	need := packageFee - parentFee
	if need < int64(childVsize) {
		need = int64(childVsize)
	}
	return need
}
