package stamps

import "crypto/rc4"

// RC4 XORs buf against the RC4 keystream derived from key. Encryption
// and decryption are the same operation: rc4(key, rc4(key, buf)) ==
// buf for every key and buf (spec.md section 8).
//
// Callers obfuscating a Counterparty issuance message must pass the
// first selected input's txid as its literal hex-string bytes
// ([]byte(txidHex)), not the 32 raw decoded bytes. The source this
// protocol was derived from performs this key derivation, and
// indexers expect bit-compatible output — see
// BuildCounterpartyIssuanceOutput.
func RC4(key, buf []byte) []byte {
	if len(key) == 0 {
		return append([]byte(nil), buf...)
	}
	cipher, err := rc4.NewCipher(key)
	if err != nil {
		// rc4.NewCipher only errors on key length outside [1,256],
		// which cannot happen for a non-empty txid hex string.
		panic(err)
	}
	out := make([]byte, len(buf))
	cipher.XORKeyStream(out, buf)
	return out
}
