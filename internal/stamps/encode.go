package stamps

import (
	"github.com/btcsuite/btcd/wire"

	"github.com/klingon-exchange/stampcore/internal/asset"
	"github.com/klingon-exchange/stampcore/internal/chunk"
	"github.com/klingon-exchange/stampcore/internal/config"
	"github.com/klingon-exchange/stampcore/internal/coreerr"
	"github.com/klingon-exchange/stampcore/pkg/logging"
)

// pkgLogger is this package's optional tracing sink (teacher's
// Component(name) convention). Info-level by default, so Encode's
// Debug-level tracing is silent unless a caller raises the level.
var pkgLogger = logging.Default().Component("stamps")

// SetLogger overrides the stamps package's tracing logger. Passing nil
// restores the default.
func SetLogger(l *logging.Logger) {
	if l == nil {
		pkgLogger = logging.Default().Component("stamps")
		return
	}
	pkgLogger = l
}

// StampData is the caller-supplied input to Encode. Only Payload,
// CPID, and the flags that affect byte layout are consumed by the
// core; Title/Description/Creator/Filename are carried for callers
// that persist them off-chain but do not appear in the on-chain bytes
// (spec.md section 3 lists them as optional metadata, not wire fields).
type StampData struct {
	Payload     []byte
	Title       string
	Description string
	Creator     string
	Filename    string

	// CPID is the asset identifier. If empty, callers are expected to
	// have resolved one via an injected asset-name service before
	// calling Encode (spec.md section 1: "Out of scope" collaborators).
	CPID string

	Supply   uint64
	IsLocked bool
}

// Encode builds the full ordered output list for a Bitcoin Stamp
// issuance: [OP_RETURN, fakeP2WSH chunk...]. firstInputTxidHex is the
// hex txid of the first selected UTXO, used as the literal RC4 key
// material for the Counterparty OP_RETURN (spec.md section 4.3).
func Encode(data StampData, firstInputTxidHex string, cfg config.StampConfig) ([]*wire.TxOut, error) {
	if len(data.Payload) == 0 {
		return nil, coreerr.New(coreerr.CodeInvalidOptions, "stamp payload must not be empty", coreerr.ErrInvalidInput, nil)
	}
	if !cfg.SkipValidation && len(data.Payload) > cfg.MaxPayloadBytes {
		return nil, coreerr.New(
			"SIZE_EXCEEDED",
			"stamp payload exceeds the configured size ceiling",
			coreerr.ErrSizeExceeded,
			map[string]any{"payloadBytes": len(data.Payload), "maxBytes": cfg.MaxPayloadBytes},
		)
	}
	if firstInputTxidHex == "" {
		return nil, coreerr.New(coreerr.CodeInvalidOptions, "stamp encoding requires at least one bound UTXO to derive the RC4 key", coreerr.ErrInvalidInput, nil)
	}

	cpidStr := data.CPID
	if cpidStr == "" {
		return nil, coreerr.New(coreerr.CodeInvalidOptions, "stamp encoding requires a resolved asset identifier (cpid)", coreerr.ErrInvalidInput, nil)
	}
	cpid, err := asset.ParseCPID(cpidStr)
	if err != nil {
		return nil, coreerr.New(coreerr.CodeInvalidOptions, "invalid asset identifier", err, map[string]any{"cpid": cpidStr})
	}
	if cpid.IsNamed() {
		return nil, coreerr.New(
			coreerr.CodeInvalidOptions,
			"named assets cannot be used for stamp issuance: registering one burns protocol tokens",
			coreerr.ErrInvalidInput,
			map[string]any{"cpid": cpidStr},
		)
	}
	assetID, err := cpid.NumericID()
	if err != nil {
		return nil, coreerr.New(coreerr.CodeInvalidOptions, "could not resolve numeric asset id", err, nil)
	}

	supply := data.Supply
	if supply == 0 {
		supply = cfg.DefaultSupply
	}

	issuance, err := BuildCounterpartyIssuanceOutput(assetID, supply, firstInputTxidHex)
	if err != nil {
		return nil, err
	}

	framed := framePayload(data.Payload)
	chunks := chunk.Split(framed)
	if len(chunks)+1 > cfg.MaxOutputs {
		return nil, coreerr.New(
			"SIZE_EXCEEDED",
			"stamp payload would require more outputs than allowed",
			coreerr.ErrSizeExceeded,
			map[string]any{"requiredOutputs": len(chunks) + 1, "maxOutputs": cfg.MaxOutputs},
		)
	}

	pkgLogger.Debug("encoding stamp issuance", "cpid", cpidStr, "payloadBytes", len(data.Payload), "chunks", len(chunks))

	outputs := make([]*wire.TxOut, 0, len(chunks)+1)
	outputs = append(outputs, issuance)
	for _, c := range chunks {
		out, err := chunk.FakeP2WSHOutput(c, cfg.DustValue)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// framePayload prepends the 2-byte length prefix (0x00, len(P) mod
// 256) spec.md section 4.2 mandates ahead of the raw payload. The
// truncating modulo is a reproduced protocol quirk, not a bug — see
// SPEC_FULL.md's Open Questions.
func framePayload(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+2)
	out = append(out, 0x00, byte(len(payload)%256))
	out = append(out, payload...)
	return out
}
