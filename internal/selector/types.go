// Package selector implements the six coin-selection algorithms named
// in spec.md section 4.5 as a closed discriminated-union dispatch:
// Accumulative (with a FIFO mode), Blackjack, Branch-and-Bound,
// Knapsack, Waste-optimized, and Output-group. Every algorithm shares
// the same Options input and Result output shape and the same
// filtering/waste helpers in common.go.
package selector

import (
	"fmt"
	"io"

	"github.com/klingon-exchange/stampcore/internal/config"
	"github.com/klingon-exchange/stampcore/internal/coreerr"
	"github.com/klingon-exchange/stampcore/internal/utxo"
	"github.com/klingon-exchange/stampcore/pkg/helpers"
	"github.com/klingon-exchange/stampcore/pkg/logging"
)

// Algorithm names the closed set of selection strategies. Callers
// choose one; the set is not open to external implementations (spec.md
// section 4.5 lists exactly these).
type Algorithm int

const (
	Accumulative Algorithm = iota
	AccumulativeFIFO
	Blackjack
	BranchAndBound
	Knapsack
	WasteOptimized
	OutputGroup
)

func (a Algorithm) String() string {
	switch a {
	case Accumulative:
		return "accumulative"
	case AccumulativeFIFO:
		return "accumulative_fifo"
	case Blackjack:
		return "blackjack"
	case BranchAndBound:
		return "branch_and_bound"
	case Knapsack:
		return "knapsack"
	case WasteOptimized:
		return "waste_optimized"
	case OutputGroup:
		return "output_group"
	default:
		return "unknown"
	}
}

// PrivacyLevel controls how strictly Output-group selection respects
// group boundaries (spec.md section 4.5).
type PrivacyLevel int

const (
	PrivacyHigh PrivacyLevel = iota
	PrivacyMedium
	PrivacyLow
)

// Options carries every tunable a selector needs. OutputVirtualSizes
// is the byte cost of every non-change output the assembler will emit
// (the recipient/encoder outputs); the selector adds the change
// output's cost itself when it decides to keep one.
type Options struct {
	TargetValue        int64
	FeeRate            float64
	OutputVirtualSizes []int
	ChangeScriptKind   utxo.ScriptType
	MaxInputs          int
	MinConfirmations   int64

	DustBasePKH  int64
	DustBaseWPKH int64
	DustBaseSH   int64
	DustBaseWSH  int64
	DustBaseTR   int64
	DustHardCap  int64
	RelayFeeRate int64

	BlackjackToleranceSat        int64
	BlackjackMaxCombination      int
	BranchAndBoundWasteBudget    int64
	BranchAndBoundMaxTries       int
	KnapsackTrials               int
	KnapsackInclusionProbability float64
	OutputGroupValueBucketSat    int64
	OutputGroupPrivacy           PrivacyLevel
	OutputGroupFallback          Algorithm

	// Logger, if non-nil, receives trade-off tracing (candidates
	// considered, waste scores, fallback decisions). It never affects
	// the returned Result; a nil Logger is the zero-cost default.
	Logger *logging.Logger
}

// log returns opts.Logger, or a no-op stand-in if unset, so call sites
// never need a nil check.
func (o Options) log() *logging.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return noopLogger
}

var noopLogger = logging.New(&logging.Config{Level: "fatal", Output: io.Discard})

// OptionsFromConfig builds Options from the shared config.Config,
// filling in the dust and per-algorithm tunables from cfg.Dust and
// cfg.Selector so callers only need to supply the request-specific
// fields (target value, fee rate, output sizes, change script kind).
func OptionsFromConfig(cfg *config.Config, targetValue int64, feeRate float64, outputVirtualSizes []int, changeKind utxo.ScriptType, maxInputs int, minConfirmations int64) Options {
	return Options{
		TargetValue:        targetValue,
		FeeRate:            feeRate,
		OutputVirtualSizes: outputVirtualSizes,
		ChangeScriptKind:   changeKind,
		MaxInputs:          maxInputs,
		MinConfirmations:   minConfirmations,

		DustBasePKH:  cfg.Dust.BasePKH,
		DustBaseWPKH: cfg.Dust.BaseWPKH,
		DustBaseSH:   cfg.Dust.BaseSH,
		DustBaseWSH:  cfg.Dust.BaseWSH,
		DustBaseTR:   cfg.Dust.BaseTR,
		DustHardCap:  cfg.Dust.HardCap,
		RelayFeeRate: cfg.Dust.RelayFeeRate,

		BlackjackToleranceSat:        cfg.Selector.BlackjackToleranceSat,
		BlackjackMaxCombination:      cfg.Selector.BlackjackMaxCombination,
		BranchAndBoundWasteBudget:    cfg.Selector.BranchAndBoundWasteBudget,
		BranchAndBoundMaxTries:       cfg.Selector.BranchAndBoundMaxTries,
		KnapsackTrials:               cfg.Selector.KnapsackTrials,
		KnapsackInclusionProbability: cfg.Selector.KnapsackInclusionProbability,
		OutputGroupValueBucketSat:    cfg.Selector.OutputGroupValueBucketSat,
		OutputGroupFallback:          Accumulative,
	}
}

// Outcome is the Success/Failure tag of a Result.
type Outcome int

const (
	Success Outcome = iota
	Failure
)

// Result is the discriminated Success/Failure union every selector
// returns (spec.md section 4.5). Inspect Outcome before reading the
// Success-only or Failure-only fields.
type Result struct {
	Outcome Outcome

	// Success fields.
	Inputs     []utxo.UTXO
	TotalInput int64
	Fee        int64
	Change     int64
	VSize      int
	Algorithm  Algorithm

	// Failure fields.
	Err *coreerr.Error
}

func failure(err *coreerr.Error) Result {
	return Result{Outcome: Failure, Err: err}
}

func noUTXOsAvailable() Result {
	return failure(coreerr.New(coreerr.CodeNoUTXOsAvailable, "no eligible UTXOs after filtering", coreerr.ErrInvalidInput, nil))
}

func insufficientFunds(totalAvailable, targetValue int64) Result {
	msg := fmt.Sprintf(
		"eligible UTXOs (%s BTC) do not cover target value (%s BTC) plus fee",
		helpers.SatoshisToBTC(uint64(totalAvailable)),
		helpers.SatoshisToBTC(uint64(targetValue)),
	)
	return failure(coreerr.New(
		coreerr.CodeInsufficientFund,
		msg,
		coreerr.ErrInsufficientFunds,
		map[string]any{
			"totalAvailable": totalAvailable,
			"targetValue":    targetValue,
		},
	))
}

func noSolutionFound(details map[string]any) Result {
	return failure(coreerr.New(coreerr.CodeNoSolutionFound, "no feasible combination found within search bounds", coreerr.ErrNoSolution, details))
}

func invalidOptions(msg string) Result {
	return failure(coreerr.New(coreerr.CodeInvalidOptions, msg, coreerr.ErrInvalidInput, nil))
}
