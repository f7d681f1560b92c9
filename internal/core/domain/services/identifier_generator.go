package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"tracking/internal/pkg/errs"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	// maxUnbiasedByte is the largest multiple of len(alphabet) that fits in a byte.
	// Bytes at or above it are discarded so every symbol is equally likely.
	maxUnbiasedByte = 256 - 256%len(alphabet)

	maxGenerateAttempts = 64
)

// ErrIdentifierExhausted is returned when no candidate with a digit was drawn
// within the attempt budget. With a healthy entropy source this does not happen.
var ErrIdentifierExhausted = errors.New("could not generate identifier containing a digit")

// IdentifierGenerator draws public tracking identifiers from an entropy source.
//
// Generated identifiers consist of [A-Za-z0-9] only and always contain at
// least one digit. The generator keeps no state between calls and is safe
// for concurrent use when its reader is; crypto/rand's reader is.
//
// Example usage:
//
//	gen := services.NewIdentifierGenerator(nil) // crypto/rand
//	id, err := gen.Generate(shipment.TrackingIDLength)
//	if err != nil {
//	    return err
//	}
//	// id == "q8ZkP0sWm3aLr7Tb"
type IdentifierGenerator struct {
	entropy io.Reader
}

// NewIdentifierGenerator builds a generator reading from entropy.
// A nil reader selects crypto/rand.
func NewIdentifierGenerator(entropy io.Reader) IdentifierGenerator {
	if entropy == nil {
		entropy = rand.Reader
	}
	return IdentifierGenerator{entropy: entropy}
}

// Generate returns a random identifier of exactly length symbols.
//
// Returns:
//   - string: the identifier
//   - error: ValueIsOutOfRangeError if length < 1, a wrapped reader error,
//     or ErrIdentifierExhausted
func (g IdentifierGenerator) Generate(length int) (string, error) {
	if length < 1 {
		return "", errs.NewValueIsOutOfRangeError("identifier length", length, 1, "unbounded")
	}

	buf := make([]byte, length)
	for range maxGenerateAttempts {
		if err := g.fill(buf); err != nil {
			return "", err
		}
		if containsDigit(buf) {
			return string(buf), nil
		}
	}

	return "", ErrIdentifierExhausted
}

// fill writes uniformly distributed alphabet symbols into buf.
func (g IdentifierGenerator) fill(buf []byte) error {
	chunk := make([]byte, len(buf)+len(buf)/4+1)
	filled := 0

	for reads := 0; filled < len(buf); reads++ {
		if reads == maxGenerateAttempts {
			return ErrIdentifierExhausted
		}
		if _, err := io.ReadFull(g.entropy, chunk); err != nil {
			return fmt.Errorf("read entropy: %w", err)
		}
		for _, b := range chunk {
			if int(b) >= maxUnbiasedByte {
				continue
			}
			buf[filled] = alphabet[int(b)%len(alphabet)]
			filled++
			if filled == len(buf) {
				break
			}
		}
	}

	return nil
}

func containsDigit(buf []byte) bool {
	for _, c := range buf {
		if c >= '0' && c <= '9' {
			return true
		}
	}
	return false
}
