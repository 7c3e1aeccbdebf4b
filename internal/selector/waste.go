package selector

import "github.com/klingon-exchange/stampcore/internal/utxo"

// selectWasteOptimized implements spec.md section 4.5's
// Waste-optimized selector: run a fixed subset of the other
// algorithms and return whichever Success scores lowest by the waste
// metric in common.go. Accumulative, Blackjack, and Branch-and-bound
// are run; Knapsack is excluded because its stochastic trials would
// make this selector's own output non-deterministic, which waste
// comparison assumes away.
func selectWasteOptimized(utxos []utxo.UTXO, opts Options) Result {
	candidates := []Result{
		selectAccumulative(utxos, opts, false),
		selectBlackjack(utxos, opts),
		selectBranchAndBound(utxos, opts),
	}

	var best Result
	haveBest := false
	for _, c := range candidates {
		if c.Outcome != Success {
			continue
		}
		if !haveBest || waste(c, opts) < waste(best, opts) {
			best = c
			haveBest = true
		}
	}
	if haveBest {
		best.Algorithm = WasteOptimized
		return best
	}

	// None of the sub-selectors succeeded; surface Accumulative's
	// failure, since it has the weakest requirements of the three and
	// its failure reason (typically INSUFFICIENT_FUNDS) is the most
	// informative to the caller.
	return candidates[0]
}
