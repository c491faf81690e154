package credentials

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

const (
	// MinPasswordLength is the shortest password GeneratePassword will produce.
	MinPasswordLength = 16

	// DefaultPasswordLength gives roughly 190 bits of entropy over passwordAlphabet.
	DefaultPasswordLength = 32
)

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#%^&*-_=+"

	passwordAlphabet = upperChars + lowerChars + digitChars + symbolChars
)

var ErrPasswordTooShort = errors.New("password too short")

// Generator produces permanent passwords for provisioned accounts.
type Generator func() (string, error)

// NewGenerator returns a Generator producing passwords of the given length.
func NewGenerator(length int) Generator {
	return func() (string, error) {
		return GeneratePassword(length)
	}
}

// GeneratePassword returns a random password that always contains at least
// one uppercase letter, one lowercase letter, one digit and one symbol.
func GeneratePassword(length int) (string, error) {
	if length < MinPasswordLength {
		return "", ErrPasswordTooShort
	}

	classes := []string{upperChars, lowerChars, digitChars, symbolChars}

	b := make([]byte, length)
	for i := range b {
		set := passwordAlphabet
		if i < len(classes) {
			set = classes[i]
		}

		c, err := randomChar(set)
		if err != nil {
			return "", err
		}
		b[i] = c
	}

	// move the required classes away from the first positions
	for i := len(b) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", err
		}
		b[i], b[j] = b[j], b[i]
	}

	return string(b), nil
}

func randomChar(set string) (byte, error) {
	i, err := randomInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randomInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("credentials: failed to read random: %w", err)
	}
	return int(v.Int64()), nil
}
