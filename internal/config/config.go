// Package config provides centralized tunables for the Stamps/SRC-20
// transaction core: dust thresholds, Stamp and SRC-20 encoder defaults,
// selector knobs, and RBF factors. The per-script-kind virtual-size
// tables live in internal/txsize and the 80-byte OP_RETURN ceiling in
// internal/stamps.
package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Dust Configuration
// =============================================================================

// DustConfig holds the base dust value per script kind and the hard
// cap applied to the dynamic dust formula in spec.md section 4.6.
type DustConfig struct {
	BasePKH  int64 `yaml:"base_pkh"`
	BaseWPKH int64 `yaml:"base_wpkh"`
	BaseSH   int64 `yaml:"base_sh"`
	BaseWSH  int64 `yaml:"base_wsh"`
	BaseTR   int64 `yaml:"base_tr"`

	// HardCap is the maximum dust threshold regardless of fee rate.
	HardCap int64 `yaml:"hard_cap"`

	// RelayFeeRate is the sat/vbyte rate used in the dynamic dust formula.
	RelayFeeRate int64 `yaml:"relay_fee_rate"`
}

// DefaultDustConfig returns the dust defaults from spec.md section 4.6.
func DefaultDustConfig() DustConfig {
	return DustConfig{
		BasePKH:      546,
		BaseWPKH:     294,
		BaseSH:       540,
		BaseWSH:      330,
		BaseTR:       330,
		HardCap:      5000,
		RelayFeeRate: 1,
	}
}

// =============================================================================
// Stamp Encoder Configuration
// =============================================================================

// StampConfig holds the Bitcoin Stamp encoder's tunable defaults, per
// spec.md "Design Notes" (enable_compression, dust_value, max_outputs,
// skip_validation, supply, is_locked).
type StampConfig struct {
	// EnableCompression must stay false: Stamps forbid compression.
	EnableCompression bool `yaml:"enable_compression"`

	DustValue      int64 `yaml:"dust_value"`
	MaxOutputs     int   `yaml:"max_outputs"`
	SkipValidation bool  `yaml:"skip_validation"`

	DefaultSupply   uint64 `yaml:"default_supply"`
	DefaultIsLocked bool   `yaml:"default_is_locked"`

	// MaxPayloadBytes rejects Stamp payloads above this size unless
	// SkipValidation is set.
	MaxPayloadBytes int `yaml:"max_payload_bytes"`

	// OPReturnDescriptionLimit is a description byte budget carried for
	// callers (54 by default). stamps.BuildIssuanceMessage does not read
	// it: that function enforces the 80-byte OP_RETURN total itself, and
	// its fixed part (CNTRPRTY 8 + type 1 + asset id 8 + quantity 8) is
	// 25 bytes, which leaves room for 55 description bytes.
	OPReturnDescriptionLimit int `yaml:"op_return_description_limit"`
}

// DefaultStampConfig returns spec.md's defaults for the Stamp encoder.
func DefaultStampConfig() StampConfig {
	return StampConfig{
		EnableCompression:        false,
		DustValue:                330,
		MaxOutputs:               50,
		SkipValidation:           false,
		DefaultSupply:            1,
		DefaultIsLocked:          true,
		MaxPayloadBytes:          100_000,
		OPReturnDescriptionLimit: 54,
	}
}

// =============================================================================
// SRC-20 Encoder Configuration
// =============================================================================

// SRC20Config holds the SRC-20 encoder's tunables.
type SRC20Config struct {
	// MinOutputValue is the protocol-convention minimum per chunk output.
	MinOutputValue int64 `yaml:"min_output_value"`

	// Network is inert to the encoder; it is carried only so a caller
	// can reuse it for address parsing around the core.
	Network string `yaml:"network"`
}

// DefaultSRC20Config returns spec.md's defaults for the SRC-20 encoder.
func DefaultSRC20Config() SRC20Config {
	return SRC20Config{
		MinOutputValue: 500_000,
		Network:        "mainnet",
	}
}

// =============================================================================
// Selector Configuration
// =============================================================================

// SelectorConfig holds knobs shared by the six selection algorithms.
type SelectorConfig struct {
	// BlackjackToleranceSat is the width of the acceptable-overshoot
	// window a Blackjack match may land in above target+fee.
	BlackjackToleranceSat int64 `yaml:"blackjack_tolerance_sat"`

	// BlackjackMaxCombination caps how many inputs Blackjack will
	// combine while searching for an exact-ish match.
	BlackjackMaxCombination int `yaml:"blackjack_max_combination"`

	// BranchAndBoundWasteBudget bounds the DFS waste search in
	// satoshis above the target before backtracking.
	BranchAndBoundWasteBudget int64 `yaml:"branch_and_bound_waste_budget"`

	// BranchAndBoundMaxTries caps the DFS node count.
	BranchAndBoundMaxTries int `yaml:"branch_and_bound_max_tries"`

	// KnapsackTrials is the number of stochastic trials Knapsack runs.
	KnapsackTrials int `yaml:"knapsack_trials"`

	// KnapsackInclusionProbability is the fixed per-UTXO inclusion
	// probability for each Knapsack trial.
	KnapsackInclusionProbability float64 `yaml:"knapsack_inclusion_probability"`

	// OutputGroupValueBucketSat is the bucket width used to coarsen
	// UTXO values when grouping for output-group selection.
	OutputGroupValueBucketSat int64 `yaml:"output_group_value_bucket_sat"`
}

// DefaultSelectorConfig returns reasonable defaults for the selector family.
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		BlackjackToleranceSat:        300,
		BlackjackMaxCombination:      2,
		BranchAndBoundWasteBudget:    1000,
		BranchAndBoundMaxTries:       100_000,
		KnapsackTrials:               1000,
		KnapsackInclusionProbability: 0.5,
		OutputGroupValueBucketSat:    10_000,
	}
}

// =============================================================================
// RBF / CPFP Configuration
// =============================================================================

// RBFConfig holds the replace-by-fee bump model's tunables (spec.md section 4.6).
type RBFConfig struct {
	// PriorityFactors maps a confirmation target (in blocks) to a
	// multiplier applied to the computed bump fee.
	PriorityFactors map[int]float64 `yaml:"priority_factors"`

	// StampBufferBPS is the extra buffer added on top of the bump fee,
	// in basis points (500 = 5%).
	StampBufferBPS int `yaml:"stamp_buffer_bps"`
}

// DefaultRBFConfig returns the RBF bump defaults.
func DefaultRBFConfig() RBFConfig {
	return RBFConfig{
		PriorityFactors: map[int]float64{
			1: 1.5,
			3: 1.2,
			6: 1.0,
		},
		StampBufferBPS: 500,
	}
}

// =============================================================================
// Top-level Config
// =============================================================================

// Config aggregates every tunable surface the core consults.
type Config struct {
	Dust     DustConfig     `yaml:"dust"`
	Stamp    StampConfig    `yaml:"stamp"`
	SRC20    SRC20Config    `yaml:"src20"`
	Selector SelectorConfig `yaml:"selector"`
	RBF      RBFConfig      `yaml:"rbf"`
}

// Default returns the complete default configuration.
func Default() *Config {
	return &Config{
		Dust:     DefaultDustConfig(),
		Stamp:    DefaultStampConfig(),
		SRC20:    DefaultSRC20Config(),
		Selector: DefaultSelectorConfig(),
		RBF:      DefaultRBFConfig(),
	}
}

// LoadYAML overlays YAML-encoded overrides from r onto the defaults.
// Fields absent from r keep their default value.
func LoadYAML(r io.Reader) (*Config, error) {
	cfg := Default()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
