package selector

import "github.com/klingon-exchange/stampcore/internal/utxo"

// Select runs the named algorithm over utxos with opts, returning a
// Success or Failure Result (spec.md section 4.5). This is the only
// entry point external callers use; the algorithm-specific
// select*-functions are unexported.
func Select(algorithm Algorithm, utxos []utxo.UTXO, opts Options) Result {
	log := opts.log()
	log.Debug("selection requested", "algorithm", algorithm, "candidates", len(utxos), "target", opts.TargetValue)

	if opts.TargetValue < 0 {
		return invalidOptions("target value must be non-negative")
	}
	if opts.FeeRate < 0 {
		return invalidOptions("fee rate must be non-negative")
	}

	result := dispatch(algorithm, utxos, opts)
	if result.Outcome == Success {
		log.Debug("selection succeeded", "algorithm", result.Algorithm, "inputs", len(result.Inputs), "fee", result.Fee, "change", result.Change)
	} else {
		log.Debug("selection failed", "algorithm", algorithm, "code", result.Err.Code)
	}
	return result
}

func dispatch(algorithm Algorithm, utxos []utxo.UTXO, opts Options) Result {
	switch algorithm {
	case Accumulative:
		return selectAccumulative(utxos, opts, false)
	case AccumulativeFIFO:
		return selectAccumulative(utxos, opts, true)
	case Blackjack:
		return selectBlackjack(utxos, opts)
	case BranchAndBound:
		return selectBranchAndBound(utxos, opts)
	case Knapsack:
		return selectKnapsack(utxos, opts)
	case WasteOptimized:
		return selectWasteOptimized(utxos, opts)
	case OutputGroup:
		return selectOutputGroup(utxos, opts)
	default:
		return invalidOptions("unknown selection algorithm")
	}
}
