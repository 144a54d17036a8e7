package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	idPrefix   = "bc"
	idLength   = 10
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// IDGenerator produces new category ids
type IDGenerator func() (string, error)

// NewCategoryID returns "bc" followed by 10 random base-36 characters.
// Existing ids are not checked for collisions.
func NewCategoryID() (string, error) {
	buf := make([]byte, idLength)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate category id: %w", err)
		}
		buf[i] = idAlphabet[n.Int64()]
	}
	return idPrefix + string(buf), nil
}
