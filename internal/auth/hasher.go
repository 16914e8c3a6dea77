// Package auth produces password hashes in the encodings the web application's
// Django user model understands, so seeded accounts can log in.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"nird-backend/internal/config"
	"nird-backend/internal/domain"

	"github.com/matthewhartstonge/argon2"
	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength = 22
	saltChars  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// Django stores the argon2 encoding behind this prefix.
	argon2Prefix = "argon2"
)

// NewHasher returns the hasher selected by seed.password_hasher.
func NewHasher(cfg config.SeedConfig) (domain.PasswordHasher, error) {
	switch cfg.PasswordHasher {
	case config.HasherPBKDF2, "":
		iterations := cfg.PBKDF2Iterations
		if iterations <= 0 {
			return nil, fmt.Errorf("pbkdf2 iterations must be positive, got %d", iterations)
		}
		return &PBKDF2Hasher{Iterations: iterations}, nil
	case config.HasherArgon2:
		return NewArgon2Hasher(), nil
	default:
		return nil, fmt.Errorf("unsupported password hasher %q", cfg.PasswordHasher)
	}
}

// PBKDF2Hasher encodes as pbkdf2_sha256$<iterations>$<salt>$<base64 hash>.
type PBKDF2Hasher struct {
	Iterations int
}

func (h *PBKDF2Hasher) Hash(password string) (string, error) {
	salt, err := randomSalt()
	if err != nil {
		return "", err
	}
	return encodePBKDF2(password, salt, h.Iterations), nil
}

func encodePBKDF2(password, salt string, iterations int) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, sha256.Size, sha256.New)
	return fmt.Sprintf("%s$%d$%s$%s", config.HasherPBKDF2, iterations, salt, base64.StdEncoding.EncodeToString(key))
}

// Argon2Hasher encodes as argon2$argon2id$v=19$m=...,t=...,p=...$<salt>$<hash>.
type Argon2Hasher struct {
	cfg argon2.Config
}

// NewArgon2Hasher uses the same cost parameters as Django's Argon2PasswordHasher.
func NewArgon2Hasher() *Argon2Hasher {
	cfg := argon2.DefaultConfig()
	cfg.Mode = argon2.ModeArgon2id
	cfg.TimeCost = 2
	cfg.MemoryCost = 102400
	cfg.Parallelism = 8
	return &Argon2Hasher{cfg: cfg}
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	encoded, err := h.cfg.HashEncoded([]byte(password))
	if err != nil {
		return "", fmt.Errorf("argon2 hash: %w", err)
	}
	return argon2Prefix + string(encoded), nil
}

// Verify reports whether password matches an encoding produced by either hasher.
func Verify(password, encoded string) (bool, error) {
	switch {
	case strings.HasPrefix(encoded, config.HasherPBKDF2+"$"):
		parts := strings.Split(encoded, "$")
		if len(parts) != 4 {
			return false, fmt.Errorf("malformed pbkdf2 hash")
		}
		iterations, err := strconv.Atoi(parts[1])
		if err != nil || iterations <= 0 {
			return false, fmt.Errorf("malformed pbkdf2 iterations %q", parts[1])
		}
		expected := encodePBKDF2(password, parts[2], iterations)
		return subtle.ConstantTimeCompare([]byte(expected), []byte(encoded)) == 1, nil
	case strings.HasPrefix(encoded, argon2Prefix+"$"):
		return argon2.VerifyEncoded([]byte(password), []byte(strings.TrimPrefix(encoded, argon2Prefix)))
	default:
		return false, fmt.Errorf("unknown password hash algorithm")
	}
}

func randomSalt() (string, error) {
	var b strings.Builder
	b.Grow(saltLength)
	limit := big.NewInt(int64(len(saltChars)))
	for i := 0; i < saltLength; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate salt: %w", err)
		}
		b.WriteByte(saltChars[n.Int64()])
	}
	return b.String(), nil
}
