package selector

import "github.com/klingon-exchange/stampcore/internal/utxo"

// selectBlackjack implements spec.md section 4.5's Blackjack selector:
// search combinations of up to opts.BlackjackMaxCombination inputs for
// one whose value lands in [target+fee, target+fee+tolerance], so the
// leftover is normally absorbed into fee. finalize still keeps a change
// output when the leftover, after paying for that output, reaches the
// change dust threshold, which can happen only when the tolerance is
// wider than that threshold.
// The sorted-by-descending-value walk with early pruning on overshoot
// mirrors the Accumulative selector's sort, narrowed to a bounded
// combination search.
func selectBlackjack(utxos []utxo.UTXO, opts Options) Result {
	eligible := filterEligible(utxos, opts)
	if len(eligible) == 0 {
		return noUTXOsAvailable()
	}
	if sumValue(eligible) < opts.TargetValue {
		return insufficientFunds(sumValue(eligible), opts.TargetValue)
	}

	maxCombo := opts.BlackjackMaxCombination
	if maxCombo <= 0 {
		maxCombo = 2
	}
	sorted := sortDescendingByValue(eligible)

	best, found := searchBlackjackCombo(sorted, nil, 0, maxCombo, opts)
	if !found {
		return noSolutionFound(map[string]any{
			"maxCombination": maxCombo,
			"toleranceSat":   opts.BlackjackToleranceSat,
		})
	}
	return finalize(best, opts, Blackjack)
}

// searchBlackjackCombo recursively extends combo with UTXOs at index
// start or later, returning the first combination (in descending-value
// traversal order) whose total lands within the tolerance window.
// Partial sums that already exceed the window's upper bound are
// pruned, since every UTXO in the candidate set has non-negative
// value.
func searchBlackjackCombo(sorted []utxo.UTXO, combo []utxo.UTXO, start, remainingDepth int, opts Options) ([]utxo.UTXO, bool) {
	if len(combo) > 0 {
		_, fee := feeFor(combo, opts, false)
		lower := opts.TargetValue + fee
		upper := lower + opts.BlackjackToleranceSat
		total := sumValue(combo)
		if total >= lower && total <= upper {
			return combo, true
		}
		if total > upper {
			return nil, false
		}
	}
	if remainingDepth == 0 {
		return nil, false
	}
	for i := start; i < len(sorted); i++ {
		if opts.MaxInputs > 0 && len(combo)+1 > opts.MaxInputs {
			break
		}
		next := append(append([]utxo.UTXO(nil), combo...), sorted[i])
		if found, ok := searchBlackjackCombo(sorted, next, i+1, remainingDepth-1, opts); ok {
			return found, true
		}
	}
	return nil, false
}
