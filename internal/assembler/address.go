package assembler

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/klingon-exchange/stampcore/internal/coreerr"
	"github.com/klingon-exchange/stampcore/internal/selector"
	"github.com/klingon-exchange/stampcore/internal/utxo"
)

// ResolveChangeScript decodes a change address for the given network
// and returns its pkScript, generalizing the teacher's
// wallet.ParseAddress+txscript.PayToAddrScript pair (internal/wallet/
// address.go and internal/wallet/tx.go in the example pack) to the
// caller-supplied-address shape this core uses: the caller resolves
// which address to pay change to, this core only turns it into bytes.
func ResolveChangeScript(address string, params *chaincfg.Params) ([]byte, error) {
	addr, err := btcutil.DecodeAddress(address, params)
	if err != nil {
		return nil, coreerr.New(coreerr.CodeInvalidOptions, "invalid change address", coreerr.ErrInvalidInput, map[string]any{"address": address})
	}
	if !addr.IsForNet(params) {
		return nil, coreerr.New(coreerr.CodeInvalidOptions, "change address does not match the target network", coreerr.ErrInvalidInput, map[string]any{"address": address, "network": params.Name})
	}
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return nil, coreerr.New(coreerr.CodeInvalidOptions, "could not build pkScript for change address", coreerr.ErrEncoding, map[string]any{"address": address})
	}
	return script, nil
}

// ChangeScriptKind classifies a change address the same way
// internal/utxo classifies an input's scriptPubKey, so a caller can
// feed the result straight into selector.Options.ChangeScriptKind
// before ever building a script.
func ChangeScriptKind(address string, params *chaincfg.Params) (utxo.ScriptType, error) {
	addr, err := btcutil.DecodeAddress(address, params)
	if err != nil {
		return utxo.Unknown, coreerr.New(coreerr.CodeInvalidOptions, "invalid change address", coreerr.ErrInvalidInput, map[string]any{"address": address})
	}
	switch addr.(type) {
	case *btcutil.AddressPubKeyHash:
		return utxo.P2PKH, nil
	case *btcutil.AddressScriptHash:
		return utxo.P2SH, nil
	case *btcutil.AddressWitnessPubKeyHash:
		return utxo.P2WPKH, nil
	case *btcutil.AddressWitnessScriptHash:
		return utxo.P2WSH, nil
	case *btcutil.AddressTaproot:
		return utxo.P2TR, nil
	default:
		return utxo.Unknown, coreerr.New(coreerr.CodeInvalidOptions, "unsupported change address type", coreerr.ErrInvalidInput, map[string]any{"address": address})
	}
}

// AssembleToAddress is Assemble with the change script resolved from a
// human-readable address, for callers that have not already turned
// their change address into a pkScript.
func AssembleToAddress(encoderOutputs []*wire.TxOut, selection selector.Result, changeAddress string, params *chaincfg.Params) (*wire.MsgTx, error) {
	if selection.Change == 0 {
		return Assemble(encoderOutputs, selection, nil)
	}
	script, err := ResolveChangeScript(changeAddress, params)
	if err != nil {
		return nil, err
	}
	return Assemble(encoderOutputs, selection, script)
}
