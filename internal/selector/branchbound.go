package selector

import "github.com/klingon-exchange/stampcore/internal/utxo"

// selectBranchAndBound implements spec.md section 4.5's
// Branch-and-bound selector: a bounded depth-first search over the
// UTXO set sorted by descending value, looking for a changeless
// combination whose total falls within opts.BranchAndBoundWasteBudget
// of target+fee. Backtracks as soon as a partial sum exceeds the upper
// bound; gives up after opts.BranchAndBoundMaxTries nodes. Among
// equally valid solutions, prefers fewer inputs, then lower waste.
func selectBranchAndBound(utxos []utxo.UTXO, opts Options) Result {
	eligible := filterEligible(utxos, opts)
	if len(eligible) == 0 {
		return noUTXOsAvailable()
	}
	if sumValue(eligible) < opts.TargetValue {
		return insufficientFunds(sumValue(eligible), opts.TargetValue)
	}

	sorted := sortDescendingByValue(eligible)
	budget := opts.BranchAndBoundWasteBudget
	if budget <= 0 {
		budget = 1000
	}
	maxTries := opts.BranchAndBoundMaxTries
	if maxTries <= 0 {
		maxTries = 100_000
	}

	b := &bnbSearch{sorted: sorted, opts: opts, budget: budget, maxTries: maxTries}
	b.search(nil, 0)

	if b.best == nil {
		return noSolutionFound(map[string]any{
			"wasteBudget": budget,
			"maxTries":    maxTries,
		})
	}
	return finalize(b.best, opts, BranchAndBound)
}

type bnbSearch struct {
	sorted   []utxo.UTXO
	opts     Options
	budget   int64
	maxTries int
	tries    int
	best     []utxo.UTXO
	bestWay  int64 // waste of best, for tie-break
}

func (b *bnbSearch) search(combo []utxo.UTXO, start int) {
	if b.tries >= b.maxTries {
		return
	}
	b.tries++

	if b.opts.MaxInputs > 0 && len(combo) > b.opts.MaxInputs {
		return
	}

	if len(combo) > 0 {
		_, fee := feeFor(combo, b.opts, false)
		total := sumValue(combo)
		target := b.opts.TargetValue + fee
		if total >= target {
			over := total - target
			if over <= b.budget {
				candWaste := over
				if b.best == nil || len(combo) < len(b.best) || (len(combo) == len(b.best) && candWaste < b.bestWay) {
					b.best = append([]utxo.UTXO(nil), combo...)
					b.bestWay = candWaste
				}
			}
			// Any further addition only grows the total further past
			// target for a sorted-descending walk's remaining elements
			// in the worst case; still allow siblings at this depth to
			// be tried for a possibly-tighter match, but don't recurse
			// deeper from an already-covering combination.
			return
		}
	}

	for i := start; i < len(b.sorted); i++ {
		if b.tries >= b.maxTries {
			return
		}
		next := append(append([]utxo.UTXO(nil), combo...), b.sorted[i])
		b.search(next, i+1)
	}
}
