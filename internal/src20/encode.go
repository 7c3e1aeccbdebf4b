package src20

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/wire"

	"github.com/klingon-exchange/stampcore/internal/chunk"
	"github.com/klingon-exchange/stampcore/internal/config"
	"github.com/klingon-exchange/stampcore/pkg/logging"
)

// pkgLogger is this package's optional tracing sink (teacher's
// Component(name) convention). Info-level by default, so Encode's
// Debug-level tracing is silent unless a caller raises the level.
var pkgLogger = logging.Default().Component("src20")

// SetLogger overrides the src20 package's tracing logger. Passing nil
// restores the default.
func SetLogger(l *logging.Logger) {
	if l == nil {
		pkgLogger = logging.Default().Component("src20")
		return
	}
	pkgLogger = l
}

// FramingPrefix is the ASCII prefix prepended to every SRC-20 JSON
// payload before length-prefixing and chunking.
const FramingPrefix = "stamp:"

// Frame builds the length-prefixed payload: u16_be(len("stamp:"+json))
// ‖ "stamp:" ‖ json, per spec.md section 4.4.
func Frame(jsonPayload []byte) []byte {
	body := make([]byte, 0, len(FramingPrefix)+len(jsonPayload))
	body = append(body, []byte(FramingPrefix)...)
	body = append(body, jsonPayload...)

	framed := make([]byte, 0, 2+len(body))
	framed = binary.BigEndian.AppendUint16(framed, uint16(len(body)))
	framed = append(framed, body...)
	return framed
}

// Encode serializes op to canonical JSON, frames it, splits it into
// 32-byte chunks, and emits one standard-P2WSH output per chunk.
func Encode(op Operation, cfg config.SRC20Config) ([]*wire.TxOut, error) {
	payload, err := op.CanonicalJSON()
	if err != nil {
		return nil, err
	}

	framed := Frame(payload)
	chunks := chunk.Split(framed)
	pkgLogger.Debug("encoding SRC-20 operation", "op", fmt.Sprintf("%T", op), "chunks", len(chunks))

	outputs := make([]*wire.TxOut, 0, len(chunks))
	for _, c := range chunks {
		witness, err := chunk.WitnessScript(c)
		if err != nil {
			return nil, err
		}
		out, err := chunk.P2WSHOutputFromWitness(witness, cfg.MinOutputValue)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}
