package selector

import (
	"sort"

	"github.com/klingon-exchange/stampcore/internal/config"
	"github.com/klingon-exchange/stampcore/internal/txsize"
	"github.com/klingon-exchange/stampcore/internal/utxo"
)

func (o Options) dustConfig() config.DustConfig {
	return config.DustConfig{
		BasePKH:      o.DustBasePKH,
		BaseWPKH:     o.DustBaseWPKH,
		BaseSH:       o.DustBaseSH,
		BaseWSH:      o.DustBaseWSH,
		BaseTR:       o.DustBaseTR,
		HardCap:      o.DustHardCap,
		RelayFeeRate: o.RelayFeeRate,
	}
}

func (o Options) dustThreshold(kind utxo.ScriptType) int64 {
	return txsize.DustThreshold(kind, o.dustConfig())
}

// filterEligible drops UTXOs below the dust threshold for their own
// script kind or below the minimum confirmation count, per spec.md
// section 4.5's common rules.
func filterEligible(utxos []utxo.UTXO, opts Options) []utxo.UTXO {
	out := make([]utxo.UTXO, 0, len(utxos))
	for _, u := range utxos {
		if u.Value < opts.dustThreshold(u.ScriptType) {
			continue
		}
		if u.Confirmations < opts.MinConfirmations {
			continue
		}
		out = append(out, u)
	}
	return out
}

func sumValue(utxos []utxo.UTXO) int64 {
	var total int64
	for _, u := range utxos {
		total += u.Value
	}
	return total
}

func sortDescendingByValue(utxos []utxo.UTXO) []utxo.UTXO {
	out := make([]utxo.UTXO, len(utxos))
	copy(out, utxos)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

func sortAscendingByConfirmations(utxos []utxo.UTXO) []utxo.UTXO {
	out := make([]utxo.UTXO, len(utxos))
	copy(out, utxos)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confirmations < out[j].Confirmations })
	return out
}

func inputKinds(selected []utxo.UTXO) []utxo.ScriptType {
	kinds := make([]utxo.ScriptType, len(selected))
	for i, u := range selected {
		kinds[i] = u.ScriptType
	}
	return kinds
}

// feeFor computes vsize and fee for a candidate input set, optionally
// including a change output of opts.ChangeScriptKind.
func feeFor(selected []utxo.UTXO, opts Options, withChange bool) (vsize int, fee int64) {
	outputs := append([]int(nil), opts.OutputVirtualSizes...)
	if withChange {
		outputs = append(outputs, txsize.OutputVirtualSize(opts.ChangeScriptKind))
	}
	vsize = txsize.VirtualSize(inputKinds(selected), outputs)
	fee = txsize.Fee(vsize, opts.FeeRate)
	return
}

// finalize takes a selected input set whose total already covers
// target+fee (computed without change) and decides whether to keep a
// change output, per spec.md section 4.5: "compute change = total -
// target - fee; if 0 < change < dust_threshold, add the dust-change
// amount to fee instead of emitting a change output."
//
// This mirrors the estimate-then-reselect-on-shortfall pattern common
// to coin selectors that size fee against a tentative input set before
// committing to it.
func finalize(selected []utxo.UTXO, opts Options, algo Algorithm) Result {
	total := sumValue(selected)

	vsizeNoChange, feeNoChange := feeFor(selected, opts, false)
	if total < opts.TargetValue+feeNoChange {
		return Result{} // caller must have already verified sufficiency
	}
	remainder := total - opts.TargetValue - feeNoChange
	if remainder == 0 {
		return Result{
			Outcome:    Success,
			Inputs:     selected,
			TotalInput: total,
			Fee:        feeNoChange,
			Change:     0,
			VSize:      vsizeNoChange,
			Algorithm:  algo,
		}
	}

	vsizeWithChange, feeWithChange := feeFor(selected, opts, true)
	change := total - opts.TargetValue - feeWithChange
	changeDust := opts.dustThreshold(opts.ChangeScriptKind)
	if change < changeDust {
		// Fold the leftover into the fee rather than emit dust change.
		return Result{
			Outcome:    Success,
			Inputs:     selected,
			TotalInput: total,
			Fee:        total - opts.TargetValue,
			Change:     0,
			VSize:      vsizeNoChange,
			Algorithm:  algo,
		}
	}
	return Result{
		Outcome:    Success,
		Inputs:     selected,
		TotalInput: total,
		Fee:        feeWithChange,
		Change:     change,
		VSize:      vsizeWithChange,
		Algorithm:  algo,
	}
}

// waste computes the spec.md section 4.5 waste-optimized scoring
// metric: changeCost + excess + inputCost. changeCost is the cost of
// creating and later spending a change output (zero if none was
// created); excess is any leftover folded into fee instead of becoming
// change; inputCost is the fee attributable to the chosen inputs at
// the target fee rate.
func waste(r Result, opts Options) int64 {
	if r.Outcome != Success {
		return 1<<63 - 1
	}
	var inputCost int64
	for _, u := range r.Inputs {
		inputCost += int64(float64(txsize.InputVirtualSize(u.ScriptType)) * opts.FeeRate)
	}
	var changeCost int64
	var excess int64
	if r.Change > 0 {
		changeKind := opts.ChangeScriptKind
		changeCost = int64(float64(txsize.OutputVirtualSize(changeKind)+txsize.InputVirtualSize(changeKind)) * opts.FeeRate)
	} else {
		noChangeFee := r.TotalInput - opts.TargetValue
		_, feeNoChange := feeFor(r.Inputs, opts, false)
		if noChangeFee > feeNoChange {
			excess = noChangeFee - feeNoChange
		}
	}
	return changeCost + excess + inputCost
}
