package driver

import (
	"crypto/sha256"
	"encoding/binary"

	"apexdoc/internal/config"
)

// Digest is a SHA-256 cache key.
type Digest [32]byte

// cacheKey: H(content || options || mode || version). Any option change
// or tool upgrade lands on a different key.
func cacheKey(content [32]byte, cfg config.Options, whole bool, version string) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	_, _ = h.Write([]byte(cfg.Key()))
	var mode [8]byte
	if whole {
		binary.LittleEndian.PutUint64(mode[:], 1)
	}
	_, _ = h.Write(mode[:])
	_, _ = h.Write([]byte(version))
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
