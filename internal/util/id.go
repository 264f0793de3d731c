package util

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns a random hex identifier. Used for material row keys and
// generated request ids; 12 bytes keeps collisions out of reach at this
// bot's write volume.
func NewID() string {
	b := make([]byte, 12)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
