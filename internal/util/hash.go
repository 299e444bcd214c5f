package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex fingerprints workbook uploads; the hash is recorded in the
// run's audit entry so re-imports of the same file can be spotted later.
func SHA256Hex(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
