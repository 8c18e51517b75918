package core

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

const fingerprintSize = 32 // 256 bits

// Fingerprint computes the content hash of an extracted corpus: a
// BLAKE2b-256 digest over the UTF-8 bytes, rendered as 64 lowercase hex
// characters. Identical corpora always produce identical fingerprints,
// so the hash serves as the deduplication key independent of the item's
// name or source-local identifier.
func Fingerprint(corpus string) string {
	h, _ := blake2b.New(fingerprintSize, nil)
	h.Write([]byte(corpus))
	return hex.EncodeToString(h.Sum(nil))
}
