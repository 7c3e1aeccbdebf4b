package assembler

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/klingon-exchange/stampcore/internal/selector"
	"github.com/klingon-exchange/stampcore/internal/utxo"
)

func testTxid(seed byte) string {
	b := make([]byte, 32)
	for i := range b {
		b[i] = seed
	}
	const hexDigits = "0123456789abcdef"
	out := make([]byte, 64)
	for i, c := range b {
		out[2*i] = hexDigits[c>>4]
		out[2*i+1] = hexDigits[c&0xf]
	}
	return string(out)
}

func successResult(inputs []utxo.UTXO, change int64) selector.Result {
	return selector.Result{
		Outcome: selector.Success,
		Inputs:  inputs,
		Change:  change,
	}
}

func opReturnOutput() *wire.TxOut {
	script, _ := txscript.NewScriptBuilder().AddOp(txscript.OP_RETURN).AddData([]byte("x")).Script()
	return wire.NewTxOut(0, script)
}

func p2wshOutput() *wire.TxOut {
	script, _ := txscript.NewScriptBuilder().AddOp(txscript.OP_0).AddData(make([]byte, 32)).Script()
	return wire.NewTxOut(330, script)
}

func TestAssembleOrdersInputsThenOutputsThenChange(t *testing.T) {
	inputs := []utxo.UTXO{
		{TxID: testTxid(1), Vout: 0, Value: 100_000, ScriptType: utxo.P2WPKH},
		{TxID: testTxid(2), Vout: 1, Value: 50_000, ScriptType: utxo.P2WPKH},
	}
	encoderOutputs := []*wire.TxOut{opReturnOutput(), p2wshOutput()}
	changeScript := bytes.Repeat([]byte{0x51}, 22)

	tx, err := Assemble(encoderOutputs, successResult(inputs, 5000), changeScript)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if len(tx.TxIn) != 2 {
		t.Fatalf("len(TxIn) = %d, want 2", len(tx.TxIn))
	}
	if tx.TxIn[0].PreviousOutPoint.Index != 0 || tx.TxIn[1].PreviousOutPoint.Index != 1 {
		t.Error("input order does not match selection order")
	}
	if len(tx.TxOut) != 3 {
		t.Fatalf("len(TxOut) = %d, want 3 (2 encoder + 1 change)", len(tx.TxOut))
	}
	if !bytes.Equal(tx.TxOut[0].PkScript, encoderOutputs[0].PkScript) {
		t.Error("encoder outputs must come first, in emission order")
	}
	if tx.TxOut[2].Value != 5000 || !bytes.Equal(tx.TxOut[2].PkScript, changeScript) {
		t.Error("change output must be last")
	}
}

func TestAssembleDropsChangeWhenZero(t *testing.T) {
	inputs := []utxo.UTXO{{TxID: testTxid(1), Vout: 0, Value: 100_000, ScriptType: utxo.P2WPKH}}
	encoderOutputs := []*wire.TxOut{opReturnOutput()}

	tx, err := Assemble(encoderOutputs, successResult(inputs, 0), nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(tx.TxOut) != 1 {
		t.Fatalf("len(TxOut) = %d, want 1 (no change)", len(tx.TxOut))
	}
}

func TestAssembleDefaultSequenceSignalsRBF(t *testing.T) {
	inputs := []utxo.UTXO{{TxID: testTxid(1), Vout: 0, Value: 100_000, ScriptType: utxo.P2WPKH}}
	tx, err := Assemble([]*wire.TxOut{opReturnOutput()}, successResult(inputs, 0), nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if tx.TxIn[0].Sequence != DefaultSequence {
		t.Errorf("Sequence = %x, want %x", tx.TxIn[0].Sequence, DefaultSequence)
	}
	if tx.TxIn[0].Sequence != wire.MaxTxInSequenceNum-2 {
		t.Error("default sequence must signal RBF (MaxTxInSequenceNum - 2)")
	}
}

func TestAssembleRejectsFailureSelection(t *testing.T) {
	failure := selector.Result{Outcome: selector.Failure}
	_, err := Assemble([]*wire.TxOut{opReturnOutput()}, failure, nil)
	if err == nil {
		t.Fatal("expected error assembling from a Failure selection")
	}
}

func TestAssembleRejectsEmptyEncoderOutputs(t *testing.T) {
	inputs := []utxo.UTXO{{TxID: testTxid(1), Vout: 0, Value: 100_000, ScriptType: utxo.P2WPKH}}
	_, err := Assemble(nil, successResult(inputs, 0), nil)
	if err == nil {
		t.Fatal("expected error for empty encoder output list")
	}
}

func TestAssembleWithSequenceOverride(t *testing.T) {
	inputs := []utxo.UTXO{{TxID: testTxid(1), Vout: 0, Value: 100_000, ScriptType: utxo.P2WPKH}}
	tx, err := AssembleWithSequence([]*wire.TxOut{opReturnOutput()}, successResult(inputs, 0), nil, wire.MaxTxInSequenceNum)
	if err != nil {
		t.Fatalf("AssembleWithSequence: %v", err)
	}
	if tx.TxIn[0].Sequence != wire.MaxTxInSequenceNum {
		t.Errorf("Sequence = %x, want %x", tx.TxIn[0].Sequence, wire.MaxTxInSequenceNum)
	}
}

func TestAssembleTxVersion(t *testing.T) {
	inputs := []utxo.UTXO{{TxID: testTxid(1), Vout: 0, Value: 100_000, ScriptType: utxo.P2WPKH}}
	tx, err := Assemble([]*wire.TxOut{opReturnOutput()}, successResult(inputs, 0), nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if tx.Version != TxVersion {
		t.Errorf("Version = %d, want %d", tx.Version, TxVersion)
	}
}
