// Package stamps implements the Bitcoin Stamp encoder: the
// Counterparty issuance OP_RETURN message and the fake-P2WSH data
// chunks that carry a Stamp's raw payload. See spec.md sections 4.2-4.3.
package stamps

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/klingon-exchange/stampcore/internal/coreerr"
)

// CounterpartyPrefix is the literal 8-byte ASCII prefix every
// Counterparty message body is concatenated behind before RC4
// obfuscation.
const CounterpartyPrefix = "CNTRPRTY"

// IssuanceMessageType is the Counterparty message type byte for
// "issuance with description" (spec.md section 4.3).
const IssuanceMessageType = 0x16

// StampDescription is the literal description carried by Stamp
// issuances.
const StampDescription = "stamp:"

// MaxOPReturnBytes is the consensus/relay-adjacent ceiling this
// protocol enforces on the cleartext OP_RETURN body (spec.md section 4.7).
const MaxOPReturnBytes = 80

// BuildIssuanceMessage constructs the cleartext Counterparty issuance
// body: CNTRPRTY ‖ 0x16 ‖ u64_be(assetID) ‖ u64_be(qty) ‖ description.
// It enforces the 80-byte ceiling named in spec.md section 4.7 before
// returning, naming the excess byte count in the error.
func BuildIssuanceMessage(assetID, qty uint64, description string) ([]byte, error) {
	fixed := len(CounterpartyPrefix) + 1 + 8 + 8
	total := fixed + len(description)
	if total > MaxOPReturnBytes {
		return nil, coreerr.New(
			"SIZE_EXCEEDED",
			"OP_RETURN body exceeds the 80-byte ceiling",
			coreerr.ErrSizeExceeded,
			map[string]any{
				"totalBytes": total,
				"maxBytes":   MaxOPReturnBytes,
				"excess":     total - MaxOPReturnBytes,
			},
		)
	}

	body := make([]byte, 0, total)
	body = append(body, []byte(CounterpartyPrefix)...)
	body = append(body, IssuanceMessageType)
	body = binary.BigEndian.AppendUint64(body, assetID)
	body = binary.BigEndian.AppendUint64(body, qty)
	body = append(body, []byte(description)...)
	return body, nil
}

// OPReturnOutput obfuscates cleartext with RC4(key) and wraps it in an
// OP_RETURN output with value 0. key must be the raw bytes of the
// first selected input's txid *hex string*, per the literal key
// derivation documented on RC4.
func OPReturnOutput(key, cleartext []byte) (*wire.TxOut, error) {
	obfuscated := RC4(key, cleartext)
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_RETURN).
		AddData(obfuscated).
		Script()
	if err != nil {
		return nil, err
	}
	return wire.NewTxOut(0, script), nil
}

// BuildCounterpartyIssuanceOutput is the composed operation: build the
// cleartext issuance body for a Stamp, obfuscate it keyed by
// firstInputTxidHex, and wrap it as an OP_RETURN output.
func BuildCounterpartyIssuanceOutput(assetID, qty uint64, firstInputTxidHex string) (*wire.TxOut, error) {
	cleartext, err := BuildIssuanceMessage(assetID, qty, StampDescription)
	if err != nil {
		return nil, err
	}
	return OPReturnOutput([]byte(firstInputTxidHex), cleartext)
}
