package litereader

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// PageDigest returns the hex BLAKE3-256 hash of data. Identical pages across
// two images hash the same, which makes diffing snapshots cheap.
func PageDigest(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}
