package assembler

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"

	"github.com/klingon-exchange/stampcore/internal/utxo"
)

func TestResolveChangeScriptP2PKH(t *testing.T) {
	script, err := ResolveChangeScript("1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2", &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("ResolveChangeScript: %v", err)
	}
	if len(script) != 25 {
		t.Errorf("len(script) = %d, want 25 for P2PKH", len(script))
	}
}

func TestResolveChangeScriptP2WPKH(t *testing.T) {
	script, err := ResolveChangeScript("bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("ResolveChangeScript: %v", err)
	}
	if len(script) != 22 {
		t.Errorf("len(script) = %d, want 22 for P2WPKH", len(script))
	}
}

func TestResolveChangeScriptRejectsInvalidAddress(t *testing.T) {
	if _, err := ResolveChangeScript("not-a-real-address", &chaincfg.MainNetParams); err == nil {
		t.Fatal("expected an error for a malformed address")
	}
}

func TestResolveChangeScriptRejectsWrongNetwork(t *testing.T) {
	if _, err := ResolveChangeScript("bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", &chaincfg.TestNet3Params); err == nil {
		t.Fatal("expected an error for a mainnet address decoded against testnet params")
	}
}

func TestChangeScriptKindClassifiesP2WPKH(t *testing.T) {
	kind, err := ChangeScriptKind("bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("ChangeScriptKind: %v", err)
	}
	if kind != utxo.P2WPKH {
		t.Errorf("kind = %v, want P2WPKH", kind)
	}
}

func TestChangeScriptKindClassifiesP2PKH(t *testing.T) {
	kind, err := ChangeScriptKind("1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2", &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("ChangeScriptKind: %v", err)
	}
	if kind != utxo.P2PKH {
		t.Errorf("kind = %v, want P2PKH", kind)
	}
}

func TestAssembleToAddressSkipsResolutionWhenChangeless(t *testing.T) {
	inputs := []utxo.UTXO{{TxID: testTxid(1), Vout: 0, Value: 100_000, ScriptType: utxo.P2WPKH}}
	selection := successResult(inputs, 0)

	// A malformed change address would normally make ResolveChangeScript
	// fail; Change == 0 must short-circuit before that resolution runs.
	tx, err := AssembleToAddress([]*wire.TxOut{opReturnOutput()}, selection, "not-a-real-address", &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("AssembleToAddress: %v", err)
	}
	if len(tx.TxOut) != 1 {
		t.Errorf("len(TxOut) = %d, want 1 (no change output)", len(tx.TxOut))
	}
}

func TestAssembleToAddressResolvesChangeScript(t *testing.T) {
	inputs := []utxo.UTXO{{TxID: testTxid(1), Vout: 0, Value: 100_000, ScriptType: utxo.P2WPKH}}
	selection := successResult(inputs, 5000)

	tx, err := AssembleToAddress([]*wire.TxOut{opReturnOutput()}, selection, "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", &chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("AssembleToAddress: %v", err)
	}
	last := tx.TxOut[len(tx.TxOut)-1]
	if last.Value != 5000 || len(last.PkScript) != 22 {
		t.Errorf("change output = %+v, want value 5000 and a 22-byte P2WPKH script", last)
	}
}
