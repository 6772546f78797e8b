package rng

import (
	"crypto/rand"
	"math/big"
)

// Crypto deals from crypto/rand
type Crypto struct{}

// Intn returns a random number in [0, n)
// It panics if the system's secure random source fails.
func (c Crypto) Intn(n int) int {
	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(b.Int64())
}
