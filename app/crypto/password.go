package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	scheme     = "pbkdf2"
	algorithm  = "sha256"
	iterations = 150_000
	saltLen    = 16
	keyLen     = 32
)

// HashPassword derives a salted PBKDF2-HMAC-SHA256 digest and encodes it as
// a self-describing string: scheme$algo$iterations$salt$key. The parameters
// travel with the hash so old digests stay verifiable if defaults change.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	dk := pbkdf2.Key([]byte(password), salt, iterations, keyLen, sha256.New)
	return strings.Join([]string{
		scheme,
		algorithm,
		strconv.Itoa(iterations),
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(dk),
	}, "$"), nil
}

// VerifyPassword checks password against a stored digest using the iteration
// count and salt recorded in it. Any parse defect, unknown scheme, or
// mismatch yields false; nothing escapes this boundary as an error.
func VerifyPassword(password, stored string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 5 {
		return false
	}
	if parts[0] != scheme || parts[1] != algorithm {
		return false
	}
	iters, err := strconv.Atoi(parts[2])
	if err != nil || iters <= 0 {
		return false
	}
	salt, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil {
		return false
	}
	expected, err := base64.StdEncoding.DecodeString(parts[4])
	if err != nil || len(expected) == 0 {
		return false
	}
	dk := pbkdf2.Key([]byte(password), salt, iters, len(expected), sha256.New)
	return hmac.Equal(dk, expected)
}
