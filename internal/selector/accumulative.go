package selector

import "github.com/klingon-exchange/stampcore/internal/utxo"

// selectAccumulative implements spec.md section 4.5's Accumulative
// selector: sort by descending value (or, in FIFO mode, ascending
// confirmations), add inputs until the running total covers
// target+fee, then stop. It generalizes the teacher's
// selectUTXOsForAmount greedy descending-value walk (see
// internal/wallet/tx.go in the example pack) to spec.md's fee/dust
// rules and Success/Failure result shape.
func selectAccumulative(utxos []utxo.UTXO, opts Options, fifo bool) Result {
	eligible := filterEligible(utxos, opts)
	if len(eligible) == 0 {
		return noUTXOsAvailable()
	}
	if sumValue(eligible) < opts.TargetValue {
		return insufficientFunds(sumValue(eligible), opts.TargetValue)
	}

	var sorted []utxo.UTXO
	if fifo {
		sorted = sortAscendingByConfirmations(eligible)
	} else {
		sorted = sortDescendingByValue(eligible)
	}

	var selected []utxo.UTXO
	for _, u := range sorted {
		if opts.MaxInputs > 0 && len(selected) >= opts.MaxInputs {
			break
		}
		selected = append(selected, u)
		_, fee := feeFor(selected, opts, false)
		if sumValue(selected) >= opts.TargetValue+fee {
			algo := Accumulative
			if fifo {
				algo = AccumulativeFIFO
			}
			return finalize(selected, opts, algo)
		}
	}

	return insufficientFunds(sumValue(eligible), opts.TargetValue)
}
