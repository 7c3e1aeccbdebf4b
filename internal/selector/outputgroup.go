package selector

import (
	"sort"

	"github.com/klingon-exchange/stampcore/internal/txsize"
	"github.com/klingon-exchange/stampcore/internal/utxo"
)

type groupKey struct {
	scriptType  utxo.ScriptType
	valueBucket int64
	originTxid  string
}

// selectOutputGroup implements spec.md section 4.5's Output-group
// selector: groups eligible UTXOs by (script_type, coarse_value_bucket,
// origin_txid) and fills toward the target under one of three privacy
// levels, falling back to opts.OutputGroupFallback if grouping cannot
// meet the target.
func selectOutputGroup(utxos []utxo.UTXO, opts Options) Result {
	eligible := filterEligible(utxos, opts)
	if len(eligible) == 0 {
		return noUTXOsAvailable()
	}

	bucket := opts.OutputGroupValueBucketSat
	if bucket <= 0 {
		bucket = 10_000
	}
	groups := groupUTXOs(eligible, bucket)

	var result Result
	switch opts.OutputGroupPrivacy {
	case PrivacyHigh:
		result = selectWholeGroups(groups, opts, false)
	case PrivacyMedium:
		result = selectWholeGroups(groups, opts, true)
	default:
		result = selectByEffectiveValue(eligible, opts)
	}

	if result.Outcome == Success {
		result.Algorithm = OutputGroup
		return result
	}

	fallback := dispatch(opts.OutputGroupFallback, utxos, opts)
	if fallback.Outcome == Success {
		fallback.Algorithm = OutputGroup
	}
	return fallback
}

func groupUTXOs(utxos []utxo.UTXO, bucket int64) map[groupKey][]utxo.UTXO {
	groups := make(map[groupKey][]utxo.UTXO)
	for _, u := range utxos {
		key := groupKey{
			scriptType:  u.ScriptType,
			valueBucket: u.Value / bucket,
			originTxid:  u.TxID,
		}
		groups[key] = append(groups[key], u)
	}
	return groups
}

func groupValue(g []utxo.UTXO) int64 {
	return sumValue(g)
}

// selectWholeGroups adds whole groups, sorted by descending group
// value, until the target is met. A group that would push the
// selection past opts.MaxInputs is skipped, unless allowPartial is true
// (Medium privacy): then only its largest UTXOs that still fit are
// added, and no further groups are considered once the cap is reached.
func selectWholeGroups(groups map[groupKey][]utxo.UTXO, opts Options, allowPartial bool) Result {
	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return groupValue(groups[keys[i]]) > groupValue(groups[keys[j]]) })

	var selected []utxo.UTXO
	for _, k := range keys {
		g := groups[k]
		if opts.MaxInputs > 0 && len(selected)+len(g) > opts.MaxInputs {
			if !allowPartial {
				continue
			}
			room := opts.MaxInputs - len(selected)
			if room <= 0 {
				break
			}
			g = sortDescendingByValue(g)[:room]
		}
		selected = append(selected, g...)
		_, fee := feeFor(selected, opts, false)
		if sumValue(selected) >= opts.TargetValue+fee {
			return finalize(selected, opts, OutputGroup)
		}
		if allowPartial {
			continue
		}
	}

	if len(selected) == 0 {
		return noSolutionFound(map[string]any{"reason": "no group combination reached target"})
	}
	return insufficientFunds(sumValue(selected), opts.TargetValue)
}

// selectByEffectiveValue implements Low privacy: sort individual
// UTXOs by effective value (value minus the cost of spending that
// UTXO's script kind at the target fee rate) and fill greedily,
// ignoring group boundaries beyond using them to compute effective
// value.
func selectByEffectiveValue(eligible []utxo.UTXO, opts Options) Result {
	sorted := make([]utxo.UTXO, len(eligible))
	copy(sorted, eligible)
	sort.SliceStable(sorted, func(i, j int) bool {
		return effectiveValue(sorted[i], opts) > effectiveValue(sorted[j], opts)
	})

	var selected []utxo.UTXO
	for _, u := range sorted {
		if opts.MaxInputs > 0 && len(selected) >= opts.MaxInputs {
			break
		}
		selected = append(selected, u)
		_, fee := feeFor(selected, opts, false)
		if sumValue(selected) >= opts.TargetValue+fee {
			return finalize(selected, opts, OutputGroup)
		}
	}
	return insufficientFunds(sumValue(eligible), opts.TargetValue)
}

func effectiveValue(u utxo.UTXO, opts Options) int64 {
	return u.Value - int64(float64(txsize.InputVirtualSize(u.ScriptType))*opts.FeeRate)
}
