package service

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"

	"github.com/mka-platform/lms-api/internal/core/domain"
)

// DefaultPasswordLength is the length of generated temporary passwords.
const DefaultPasswordLength = 10

// Character classes for temporary passwords. Visually ambiguous characters
// (I, O, l, 0, 1) are excluded so credentials survive being read off an
// email.
const (
	passwordUpper   = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	passwordLower   = "abcdefghijkmnopqrstuvwxyz"
	passwordDigits  = "23456789"
	passwordSymbols = "!@#$%^&*"
)

// GeneratePassword returns a random temporary password of the given length
// (minimum 4, DefaultPasswordLength when non-positive) containing at least
// one character from each class. The guaranteed characters are shuffled into
// random positions.
func GeneratePassword(length int) string {
	if length <= 0 {
		length = DefaultPasswordLength
	}
	if length < 4 {
		length = 4
	}

	all := passwordUpper + passwordLower + passwordDigits + passwordSymbols

	chars := make([]byte, 0, length)
	chars = append(chars,
		randomChar(passwordUpper),
		randomChar(passwordLower),
		randomChar(passwordDigits),
		randomChar(passwordSymbols),
	)
	for len(chars) < length {
		chars = append(chars, randomChar(all))
	}

	// Fisher-Yates so the class representatives are not always up front.
	for i := len(chars) - 1; i > 0; i-- {
		j := randomIndex(i + 1)
		chars[i], chars[j] = chars[j], chars[i]
	}

	return string(chars)
}

func randomChar(set string) byte {
	return set[randomIndex(len(set))]
}

func randomIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failing means the platform's entropy source is
		// broken; there is no sensible recovery.
		panic(err)
	}
	return int(v.Int64())
}

// HashPassword produces the bcrypt hash stored for a user.
func HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored bcrypt hash.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
