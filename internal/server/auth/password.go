package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/usersvc/internal/common"
	"golang.org/x/crypto/argon2"
)

// Argon2id defaults. Memory is in KiB.
const (
	DefaultMemory      uint32 = 64 * 1024
	DefaultIterations  uint32 = 1
	DefaultParallelism uint8  = 4
	DefaultSaltLength  uint32 = 16
	DefaultKeyLength   uint32 = 32
)

// HashingParams are the argon2id cost parameters. Zero values fall back to
// the defaults above.
type HashingParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

func (p HashingParams) withDefaults() HashingParams {
	if p.Memory == 0 {
		p.Memory = DefaultMemory
	}
	if p.Iterations == 0 {
		p.Iterations = DefaultIterations
	}
	if p.Parallelism == 0 {
		p.Parallelism = DefaultParallelism
	}
	if p.SaltLength == 0 {
		p.SaltLength = DefaultSaltLength
	}
	if p.KeyLength == 0 {
		p.KeyLength = DefaultKeyLength
	}
	return p
}

// PasswordHasher hashes and verifies passwords with argon2id. The service
// wide secret is applied as a pepper: the password is keyed through
// HMAC-SHA256 before it reaches argon2.
//
// Hashes use the PHC string format, so verification only needs the stored
// value and the pepper:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<digest>
type PasswordHasher struct {
	pepper []byte
	params HashingParams
}

// NewPasswordHasher validates the parameters once at startup.
func NewPasswordHasher(secret string, params HashingParams) (*PasswordHasher, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: empty hashing secret", common.ErrHashing)
	}
	params = params.withDefaults()
	if params.Memory < 8*uint32(params.Parallelism) {
		return nil, fmt.Errorf("%w: memory must be at least 8*parallelism KiB", common.ErrHashing)
	}
	return &PasswordHasher{pepper: []byte(secret), params: params}, nil
}

// Params returns the effective cost parameters.
func (h *PasswordHasher) Params() HashingParams { return h.params }

// Hash returns the encoded argon2id hash of password with a fresh salt.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: reading salt: %w", common.ErrHashing, err)
	}

	p := h.params
	digest := argon2.IDKey(h.peppered(password), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Iterations, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	), nil
}

// Verify reports whether password matches encoded. A mismatch is (false, nil);
// an error wrapping common.ErrMalformedHash means encoded could not be parsed.
func (h *PasswordHasher) Verify(password, encoded string) (bool, error) {
	p, salt, want, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	got := argon2.IDKey(h.peppered(password), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func (h *PasswordHasher) peppered(password string) []byte {
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write([]byte(password))
	return mac.Sum(nil)
}

func decodeHash(encoded string) (HashingParams, []byte, []byte, error) {
	var p HashingParams

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return p, nil, nil, fmt.Errorf("%w: unexpected number of fields", common.ErrMalformedHash)
	}
	if parts[1] != "argon2id" {
		return p, nil, nil, fmt.Errorf("%w: unsupported algorithm %q", common.ErrMalformedHash, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, fmt.Errorf("%w: version: %v", common.ErrMalformedHash, err)
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("%w: unsupported version %d", common.ErrMalformedHash, version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return p, nil, nil, fmt.Errorf("%w: parameters: %v", common.ErrMalformedHash, err)
	}
	if p.Iterations == 0 || p.Parallelism == 0 || p.Memory < 8*uint32(p.Parallelism) {
		return p, nil, nil, fmt.Errorf("%w: invalid parameters", common.ErrMalformedHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, fmt.Errorf("%w: salt", common.ErrMalformedHash)
	}
	digest, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(digest) == 0 {
		return p, nil, nil, fmt.Errorf("%w: digest", common.ErrMalformedHash)
	}

	p.SaltLength = uint32(len(salt))
	p.KeyLength = uint32(len(digest))

	return p, salt, digest, nil
}
