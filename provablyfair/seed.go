package provablyfair

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// NewServerSeed returns a fresh high-entropy server seed and its SHA-256
// commitment. The hash is published before play; the seed only after.
func NewServerSeed() (seed, hash string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	seed = hex.EncodeToString(buf)
	return seed, HashSeed(seed), nil
}

func HashSeed(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}

// NewClientSeed generates a seed for players who do not supply one.
func NewClientSeed() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "0000000000000000"
	}
	return hex.EncodeToString(buf)
}

// Verify reports whether the revealed server seed matches the commitment
// published before the round.
func Verify(serverSeed, serverSeedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashSeed(serverSeed)), []byte(serverSeedHash)) == 1
}
