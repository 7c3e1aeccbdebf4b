package selector

import (
	"testing"

	"github.com/klingon-exchange/stampcore/internal/config"
	"github.com/klingon-exchange/stampcore/internal/utxo"
)

func TestOptionsFromConfigCarriesDustAndSelectorDefaults(t *testing.T) {
	cfg := config.Default()
	opts := OptionsFromConfig(cfg, 50_000, 2.5, []int{31}, utxo.P2WPKH, 10, 1)

	if opts.DustBaseWPKH != cfg.Dust.BaseWPKH {
		t.Errorf("DustBaseWPKH = %d, want %d", opts.DustBaseWPKH, cfg.Dust.BaseWPKH)
	}
	if opts.BlackjackToleranceSat != cfg.Selector.BlackjackToleranceSat {
		t.Errorf("BlackjackToleranceSat = %d, want %d", opts.BlackjackToleranceSat, cfg.Selector.BlackjackToleranceSat)
	}
	if opts.TargetValue != 50_000 || opts.FeeRate != 2.5 || opts.MaxInputs != 10 {
		t.Errorf("request-specific fields not carried through: %+v", opts)
	}
	if opts.OutputGroupFallback != Accumulative {
		t.Errorf("OutputGroupFallback = %v, want Accumulative", opts.OutputGroupFallback)
	}
}
