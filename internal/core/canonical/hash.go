package canonical

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes the content fingerprint over canonical bytes: SHA-256
// rendered as "0x" plus 64 lowercase hex characters. No secret material is
// involved; this is a fingerprint, not a MAC.
func Hash(canonicalDoc []byte) string {
	sum := sha256.Sum256(canonicalDoc)
	return "0x" + hex.EncodeToString(sum[:])
}
