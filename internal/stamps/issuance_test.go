package stamps

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/txscript"
)

func TestBuildIssuanceMessageLayout(t *testing.T) {
	msg, err := BuildIssuanceMessage(12345, 1, StampDescription)
	if err != nil {
		t.Fatalf("BuildIssuanceMessage: %v", err)
	}
	if !bytes.HasPrefix(msg, []byte(CounterpartyPrefix)) {
		t.Fatal("message does not start with CNTRPRTY")
	}
	if msg[8] != IssuanceMessageType {
		t.Errorf("type byte = %#x, want %#x", msg[8], IssuanceMessageType)
	}
	if !strings.HasSuffix(string(msg), StampDescription) {
		t.Error("message does not end with description")
	}
	wantLen := 8 + 1 + 8 + 8 + len(StampDescription)
	if len(msg) != wantLen {
		t.Errorf("len(msg) = %d, want %d", len(msg), wantLen)
	}
}

func TestBuildIssuanceMessageRejectsOversizeDescription(t *testing.T) {
	_, err := BuildIssuanceMessage(1, 1, strings.Repeat("x", 60))
	if err == nil {
		t.Fatal("expected size-exceeded error")
	}
}

func TestOPReturnOutputShape(t *testing.T) {
	cleartext, err := BuildIssuanceMessage(1, 1, StampDescription)
	if err != nil {
		t.Fatalf("BuildIssuanceMessage: %v", err)
	}
	key := []byte("aa" + strings.Repeat("bb", 31))
	out, err := OPReturnOutput(key, cleartext)
	if err != nil {
		t.Fatalf("OPReturnOutput: %v", err)
	}
	if out.Value != 0 {
		t.Errorf("Value = %d, want 0", out.Value)
	}
	if out.PkScript[0] != txscript.OP_RETURN {
		t.Error("output script does not start with OP_RETURN")
	}
	// Decrypting the embedded push recovers the cleartext.
	pushed := out.PkScript[2:]
	recovered := RC4(key, pushed)
	if !bytes.Equal(recovered, cleartext) {
		t.Error("embedded RC4 ciphertext does not decrypt to cleartext")
	}
}

func TestBuildCounterpartyIssuanceOutputUsesTxidHexBytesAsKey(t *testing.T) {
	txid := "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"
	out, err := BuildCounterpartyIssuanceOutput(1, 1, txid)
	if err != nil {
		t.Fatalf("BuildCounterpartyIssuanceOutput: %v", err)
	}

	cleartext, _ := BuildIssuanceMessage(1, 1, StampDescription)

	// Keying with the literal hex string bytes must recover the cleartext...
	pushed := out.PkScript[2:]
	if recovered := RC4([]byte(txid), pushed); !bytes.Equal(recovered, cleartext) {
		t.Error("expected hex-string-keyed RC4 to recover cleartext")
	}

	// ...while keying with the 32 raw decoded bytes must NOT, proving the
	// two key derivations are materially different.
	rawKey, err := hex.DecodeString(txid)
	if err != nil {
		t.Fatalf("hex.DecodeString: %v", err)
	}
	if recovered := RC4(rawKey, pushed); bytes.Equal(recovered, cleartext) {
		t.Error("raw-byte-keyed RC4 should not recover the cleartext")
	}
}
