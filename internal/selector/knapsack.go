package selector

import (
	"math/rand"

	"github.com/klingon-exchange/stampcore/internal/utxo"
)

// selectKnapsack implements spec.md section 4.5's Knapsack selector:
// Bitcoin Core's historical strategy of running independent trials
// where each eligible UTXO is included with a fixed probability, then
// keeping the best feasible trial by waste. Unlike the other five
// selectors this one is intentionally non-deterministic between calls;
// spec.md's round-trip/idempotence guarantees are scoped to the
// encoders, not to Knapsack.
func selectKnapsack(utxos []utxo.UTXO, opts Options) Result {
	eligible := filterEligible(utxos, opts)
	if len(eligible) == 0 {
		return noUTXOsAvailable()
	}
	if sumValue(eligible) < opts.TargetValue {
		return insufficientFunds(sumValue(eligible), opts.TargetValue)
	}

	trials := opts.KnapsackTrials
	if trials <= 0 {
		trials = 1000
	}
	p := opts.KnapsackInclusionProbability
	if p <= 0 || p > 1 {
		p = 0.5
	}

	var best Result
	haveBest := false
	for t := 0; t < trials; t++ {
		trial := sampleTrial(eligible, p, opts.MaxInputs)
		if len(trial) == 0 {
			continue
		}
		_, fee := feeFor(trial, opts, false)
		if sumValue(trial) < opts.TargetValue+fee {
			continue
		}
		candidate := finalize(trial, opts, Knapsack)
		if candidate.Outcome != Success {
			continue
		}
		if !haveBest || waste(candidate, opts) < waste(best, opts) {
			best = candidate
			haveBest = true
		}
	}

	if !haveBest {
		return noSolutionFound(map[string]any{"trials": trials, "inclusionProbability": p})
	}
	return best
}

func sampleTrial(eligible []utxo.UTXO, p float64, maxInputs int) []utxo.UTXO {
	var trial []utxo.UTXO
	for _, u := range eligible {
		if maxInputs > 0 && len(trial) >= maxInputs {
			break
		}
		if rand.Float64() < p {
			trial = append(trial, u)
		}
	}
	return trial
}
