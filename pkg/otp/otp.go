package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

const DefaultLength = 6

var ErrInvalidLength = errors.New("otp length must be positive")

// Generator produces numeric one-time codes.
type Generator interface {
	RandomCode(length int) (string, error)
}

// DigitGenerator draws every digit independently and uniformly from crypto/rand.
// Leading zeros are kept.
type DigitGenerator struct{}

func NewDigitGenerator() *DigitGenerator {
	return &DigitGenerator{}
}

func (g *DigitGenerator) RandomCode(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	ten := big.NewInt(10)
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("read random digit failed: %w", err)
		}
		code[i] = byte('0' + n.Int64())
	}

	return string(code), nil
}
