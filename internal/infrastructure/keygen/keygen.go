// Package keygen creates and parses API keys of the form
// {type}-{service}-{version}-{short}-{long}.
//
// The short token is derived from the long secret and is stored in clear for
// lookup. Only a BLAKE2b-256 hash of the long secret is persisted.
package keygen

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/rezkam/todolist/internal/domain"
)

// Defaults for keys issued by this service.
const (
	DefaultKeyType = "sk"
	DefaultService = "todolist"
	DefaultVersion = "v1"
)

const (
	secretBytes     = 32
	shortTokenBytes = 6
)

// Key holds the parts of an API key.
type Key struct {
	KeyType    string
	Service    string
	Version    string
	ShortToken string // 12 hex chars
	LongSecret string // 43 chars, base64url without padding
}

// String assembles the full key. It is shown to the user once, at creation.
func (k Key) String() string {
	return strings.Join([]string{k.KeyType, k.Service, k.Version, k.ShortToken, k.LongSecret}, "-")
}

// Display returns the key with the secret masked, safe for logs and listings.
func (k Key) Display() string {
	return fmt.Sprintf("%s-%s-%s-%s-****", k.KeyType, k.Service, k.Version, k.ShortToken)
}

// Generate creates a key with a fresh random secret.
func Generate(keyType, service, version string) (Key, error) {
	for name, part := range map[string]string{"key type": keyType, "service": service, "version": version} {
		if part == "" || strings.Contains(part, "-") {
			return Key{}, fmt.Errorf("%w: %s must be non-empty and contain no '-'", domain.ErrInvalidAPIKeyFormat, name)
		}
	}

	raw := make([]byte, secretBytes)
	if _, err := rand.Read(raw); err != nil {
		return Key{}, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	secret := base64.RawURLEncoding.EncodeToString(raw)

	return Key{
		KeyType:    keyType,
		Service:    service,
		Version:    version,
		ShortToken: shortToken(secret),
		LongSecret: secret,
	}, nil
}

// Parse splits an API key into its parts. The long secret may itself contain
// '-', so only the first four separators count.
func Parse(apiKey string) (Key, error) {
	parts := strings.SplitN(apiKey, "-", 5)
	if len(parts) != 5 {
		return Key{}, fmt.Errorf("%w: expected 5 parts, got %d", domain.ErrInvalidAPIKeyFormat, len(parts))
	}
	for i, p := range parts {
		if p == "" {
			return Key{}, fmt.Errorf("%w: part %d is empty", domain.ErrInvalidAPIKeyFormat, i+1)
		}
	}
	if len(parts[3]) != 2*shortTokenBytes {
		return Key{}, fmt.Errorf("%w: short token must be %d characters", domain.ErrInvalidAPIKeyFormat, 2*shortTokenBytes)
	}

	return Key{
		KeyType:    parts[0],
		Service:    parts[1],
		Version:    parts[2],
		ShortToken: parts[3],
		LongSecret: parts[4],
	}, nil
}

// HashSecret returns the hex-encoded BLAKE2b-256 hash of secret.
func HashSecret(secret string) string {
	sum := blake2b.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// Mask hides everything after the key type, e.g. "sk-***".
func Mask(apiKey string) string {
	k, err := Parse(apiKey)
	if err != nil {
		return "***"
	}
	return k.KeyType + "-***"
}

func shortToken(secret string) string {
	sum := blake2b.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:shortTokenBytes])
}
