// Package reference produces the short public identifiers shown to
// requesters (a fixed prefix plus six random digits). Collisions are rare and
// resolved by regeneration, not reservation.
package reference

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

const (
	Prefix      = "VB"
	digits      = 6
	maxAttempts = 10
)

var ErrExhausted = errors.New("reference generation exhausted")

// Generate returns one candidate reference number, e.g. "VB042917".
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%0*d", Prefix, digits, n.Int64()), nil
}

// GenerateUnique retries Generate until exists reports the candidate unused.
// The caller checks immediately before insert; the retry cap is defensive
// only, the id space is large enough that exhaustion should not occur.
func GenerateUnique(exists func(ref string) (bool, error)) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		ref, err := Generate()
		if err != nil {
			return "", err
		}
		used, err := exists(ref)
		if err != nil {
			return "", err
		}
		if !used {
			return ref, nil
		}
	}
	return "", ErrExhausted
}
