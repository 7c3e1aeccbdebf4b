// Package utxo holds the shared data model consumed by the encoders,
// selectors, and assembler: UTXO records, transaction outputs, and
// script-kind classification.
package utxo

import (
	"fmt"

	"github.com/btcsuite/btcd/txscript"
)

// ScriptType classifies an output script by the spend it requires.
type ScriptType int

const (
	Unknown ScriptType = iota
	P2PKH
	P2WPKH
	P2SH
	P2WSH
	P2TR
	NullData // OP_RETURN
)

func (t ScriptType) String() string {
	switch t {
	case P2PKH:
		return "P2PKH"
	case P2WPKH:
		return "P2WPKH"
	case P2SH:
		return "P2SH"
	case P2WSH:
		return "P2WSH"
	case P2TR:
		return "P2TR"
	case NullData:
		return "NULLDATA"
	default:
		return "UNKNOWN"
	}
}

// ClassifyScript inspects raw output-script bytes and returns the
// script kind, the same way the teacher's address decoders sniff
// witness-program shape before falling back to btcutil (see
// internal/wallet/tx.go's parseAddressToScript for the P2WPKH/P2WSH/P2TR
// witness-version dispatch this generalizes).
func ClassifyScript(script []byte) ScriptType {
	switch txscript.GetScriptClass(script) {
	case txscript.PubKeyHashTy:
		return P2PKH
	case txscript.WitnessV0PubKeyHashTy:
		return P2WPKH
	case txscript.ScriptHashTy:
		return P2SH
	case txscript.WitnessV0ScriptHashTy:
		return P2WSH
	case txscript.WitnessV1TaprootTy:
		return P2TR
	case txscript.NullDataTy:
		return NullData
	default:
		return Unknown
	}
}

// UTXO is an immutable, externally-sourced spendable output. The core
// never mutates a UTXO and never marks it spent; that bookkeeping is
// the caller's responsibility (spec.md section 5).
type UTXO struct {
	TxID          string // 32-byte txid, hex
	Vout          uint32
	Value         int64 // satoshis
	ScriptPubKey  []byte
	Address       string
	Confirmations int64
	ScriptType    ScriptType
}

// Validate checks the UTXO invariants from spec.md section 3.
func (u UTXO) Validate() error {
	if u.Value < 0 {
		return fmt.Errorf("utxo %s:%d: negative value %d", u.TxID, u.Vout, u.Value)
	}
	if len(u.TxID) != 64 {
		return fmt.Errorf("utxo %s:%d: txid must be 32 bytes hex (64 chars), got %d", u.TxID, u.Vout, len(u.TxID))
	}
	return nil
}

// TransactionOutput is an output destined for a transaction being
// assembled. Either Value is zero and Script starts with OP_RETURN, or
// Value is at least the dust threshold for its script kind.
type TransactionOutput struct {
	Script []byte
	Value  int64
}

// NewTransactionOutput validates and constructs a TransactionOutput
// per the invariant in spec.md section 3.
func NewTransactionOutput(script []byte, value int64, dustThreshold int64) (*TransactionOutput, error) {
	if value == 0 {
		if len(script) == 0 || script[0] != txscript.OP_RETURN {
			return nil, fmt.Errorf("zero-value output must be OP_RETURN")
		}
		return &TransactionOutput{Script: script, Value: value}, nil
	}
	if value < dustThreshold {
		return nil, fmt.Errorf("output value %d below dust threshold %d", value, dustThreshold)
	}
	return &TransactionOutput{Script: script, Value: value}, nil
}
