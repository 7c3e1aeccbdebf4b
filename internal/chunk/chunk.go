// Package chunk implements the P2WSH chunking primitive shared by the
// Stamp and SRC-20 encoders: splitting an opaque byte sequence into
// 32-byte chunks and emitting the witness-version-0 32-byte-push
// output shape, in both "fake" (raw payload) and standard
// (SHA-256-of-witness-script) modes. See spec.md section 4.1.
package chunk

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/klingon-exchange/stampcore/pkg/helpers"
)

// Size is the fixed chunk width mandated by spec.md section 4.1.
const Size = 32

// Split breaks payload into Size-byte chunks, right-padding the final
// chunk with zero bytes. An empty payload yields no chunks.
func Split(payload []byte) [][Size]byte {
	if len(payload) == 0 {
		return nil
	}
	n := (len(payload) + Size - 1) / Size
	chunks := make([][Size]byte, n)
	for i := 0; i < n; i++ {
		start := i * Size
		end := start + Size
		if end > len(payload) {
			end = len(payload)
		}
		copy(chunks[i][:], payload[start:end])
	}
	return chunks
}

// Reassemble concatenates chunk payloads in order. Callers strip any
// framing (length prefixes, padding) themselves; this only undoes the
// splitting step.
func Reassemble(chunks [][Size]byte) []byte {
	out := make([]byte, 0, len(chunks)*Size)
	for _, c := range chunks {
		out = append(out, c[:]...)
	}
	return out
}

// StripTrailingZeros trims the zero-padding Split appends to the
// final chunk. It trims every trailing zero byte, so a payload whose
// own final bytes are zero loses those too; zero bytes before the last
// non-zero byte are kept.
func StripTrailingZeros(payload []byte) []byte {
	end := len(payload)
	for end > 0 && helpers.IsZeroBytes(payload[end-1:end]) {
		end--
	}
	return payload[:end]
}

// FakeP2WSHOutput builds the "fake P2WSH" output for Stamp mode: the
// 32-byte field is data, not SHA-256(script). Script shape is
// OP_0 <32 bytes> (2 + 32 bytes total).
func FakeP2WSHOutput(payload [Size]byte, value int64) (*wire.TxOut, error) {
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(payload[:]).
		Script()
	if err != nil {
		return nil, err
	}
	return wire.NewTxOut(value, script), nil
}

// WitnessScript builds the SRC-20 standard-P2WSH witness script that
// embeds a chunk: OP_FALSE OP_IF <chunk> OP_ENDIF (36 bytes total:
// 0x00 0x63 0x20 <32 bytes> 0x68).
func WitnessScript(payload [Size]byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_FALSE).
		AddOp(txscript.OP_IF).
		AddData(payload[:]).
		AddOp(txscript.OP_ENDIF).
		Script()
}

// P2WSHOutputFromWitness builds the real P2WSH output script
// OP_0 <SHA-256(witnessScript)> for a given witness script and value.
func P2WSHOutputFromWitness(witnessScript []byte, value int64) (*wire.TxOut, error) {
	hash := sha256.Sum256(witnessScript)
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(hash[:]).
		Script()
	if err != nil {
		return nil, err
	}
	return wire.NewTxOut(value, script), nil
}
