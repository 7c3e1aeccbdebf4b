// Package assembler composes the final unsigned transaction from a
// selector Result and an encoder's output list, per spec.md section
// 4.7. It generalizes the teacher's BuildAndSignTx input/output
// assembly (see internal/wallet/tx.go in the example pack) to the
// encoder-first, selector-driven shape this core uses, and drops
// everything downstream of building the unsigned transaction: signing,
// broadcast, and fee-rate sourcing are the caller's concern.
package assembler

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/klingon-exchange/stampcore/internal/coreerr"
	"github.com/klingon-exchange/stampcore/internal/selector"
	"github.com/klingon-exchange/stampcore/pkg/logging"
)

// pkgLogger is this package's optional tracing sink, following the
// teacher's Component(name) convention. Nil-safe: SetLogger(nil)
// restores the package default, which is Info-level and therefore
// silent on Assemble's Debug-level tracing.
var pkgLogger = logging.Default().Component("assembler")

// SetLogger overrides the assembler package's tracing logger. Passing
// nil restores the default.
func SetLogger(l *logging.Logger) {
	if l == nil {
		pkgLogger = logging.Default().Component("assembler")
		return
	}
	pkgLogger = l
}

// DefaultSequence is the RBF-signalling input sequence spec.md section
// 4.7 mandates unless the caller overrides it, matching the teacher's
// wire.MaxTxInSequenceNum-2 convention.
const DefaultSequence = wire.MaxTxInSequenceNum - 2

// TxVersion is the transaction version the assembler writes.
const TxVersion = 2

// Assemble builds an unsigned transaction from a selection Result and
// the encoder's output list, appending a change output at
// changeScript when the selection retained one. Inputs preserve
// selection order; encoder outputs preserve encoder emission order
// (spec.md section 5's ordering guarantees).
func Assemble(encoderOutputs []*wire.TxOut, selection selector.Result, changeScript []byte) (*wire.MsgTx, error) {
	if selection.Outcome != selector.Success {
		return nil, coreerr.New(coreerr.CodeSelectionFailed, "cannot assemble a transaction from a Failure selection", coreerr.ErrInvalidInput, nil)
	}
	if len(encoderOutputs) == 0 {
		return nil, coreerr.New(coreerr.CodeInvalidOptions, "encoder produced no outputs", coreerr.ErrInvalidInput, nil)
	}

	tx := wire.NewMsgTx(TxVersion)
	pkgLogger.Debug("assembling transaction", "inputs", len(selection.Inputs), "encoderOutputs", len(encoderOutputs), "change", selection.Change)

	for _, u := range selection.Inputs {
		hash, err := chainhash.NewHashFromStr(u.TxID)
		if err != nil {
			return nil, coreerr.New(coreerr.CodeInvalidOptions, "invalid input txid", coreerr.ErrInvalidInput, map[string]any{"txid": u.TxID})
		}
		outpoint := wire.NewOutPoint(hash, u.Vout)
		txIn := wire.NewTxIn(outpoint, nil, nil)
		txIn.Sequence = DefaultSequence
		tx.AddTxIn(txIn)
	}

	for _, out := range encoderOutputs {
		tx.AddTxOut(out)
	}

	if selection.Change > 0 {
		tx.AddTxOut(wire.NewTxOut(selection.Change, changeScript))
	}

	return tx, nil
}

// AssembleWithSequence is Assemble with an explicit per-input sequence
// override, for callers that need a different RBF/locktime posture
// than the default.
func AssembleWithSequence(encoderOutputs []*wire.TxOut, selection selector.Result, changeScript []byte, sequence uint32) (*wire.MsgTx, error) {
	tx, err := Assemble(encoderOutputs, selection, changeScript)
	if err != nil {
		return nil, err
	}
	for _, in := range tx.TxIn {
		in.Sequence = sequence
	}
	return tx, nil
}
