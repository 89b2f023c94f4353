// Package anonymize derives stable, non-reversible keys for anonymous submissions.
package anonymize

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Hasher maps a user id to a keyed BLAKE2b-256 digest. The same user always
// yields the same key, which lets owners find their own submissions without
// the document ever storing who wrote it.
type Hasher struct {
	key []byte
}

func New(secret string) *Hasher {
	key := []byte(secret)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum256(key)
		key = sum[:]
	}
	return &Hasher{key: key}
}

func (h *Hasher) Key(userID string) string {
	mac, err := blake2b.New256(h.key)
	if err != nil {
		// only reachable with a key longer than 64 bytes, which New prevents
		panic(err)
	}
	mac.Write([]byte(userID))
	return hex.EncodeToString(mac.Sum(nil))
}
