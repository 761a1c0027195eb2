// ABOUTME: Password credential hashing and verification for account auth
// ABOUTME: PBKDF2-HMAC-SHA256 with per-credential salt, plus a legacy plaintext mode

package credential

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// methodPrefix tags credentials produced by Hash. Anything stored
	// without it is treated as a legacy plaintext credential.
	methodPrefix = "pbkdf2:sha256"

	// iterations is the PBKDF2 work factor for newly hashed credentials.
	// Verification honors whatever iteration count a stored credential
	// carries, so this can be raised without invalidating old hashes.
	iterations = 600000

	saltBytes = 16
	keyBytes  = 32
)

// Kind distinguishes the stored credential formats.
type Kind int

const (
	// KindHashed is a salted PBKDF2 credential produced by Hash.
	KindHashed Kind = iota

	// KindLegacyPlaintext is a stored value predating the hashing scheme.
	// It exists only so old accounts can log in once and be migrated;
	// fresh deployments should never produce it.
	KindLegacyPlaintext
)

// Credential is a parsed stored credential tagged with its format.
type Credential struct {
	Kind Kind

	raw string
}

// Parse classifies a stored credential value. It never fails: values that
// don't carry the current algorithm tag are legacy plaintext by definition.
func Parse(stored string) Credential {
	if strings.HasPrefix(stored, methodPrefix+":") {
		return Credential{Kind: KindHashed, raw: stored}
	}
	return Credential{Kind: KindLegacyPlaintext, raw: stored}
}

// Hash derives a storable credential from a plaintext password. Every call
// generates a fresh random salt, so hashing the same password twice yields
// two different credentials that both verify.
//
// The serialized form is "pbkdf2:sha256:<iterations>$<hex salt>$<hex key>".
func Hash(plaintext string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := pbkdf2.Key([]byte(plaintext), salt, iterations, keyBytes, sha256.New)

	return fmt.Sprintf("%s:%d$%s$%s",
		methodPrefix,
		iterations,
		hex.EncodeToString(salt),
		hex.EncodeToString(key),
	), nil
}

// Verify reports whether the provided plaintext matches the stored
// credential. Malformed stored values verify false; they never abort a login.
func Verify(stored, provided string) bool {
	return Parse(stored).Verify(provided)
}

// Verify reports whether the plaintext matches this credential.
func (c Credential) Verify(plaintext string) bool {
	switch c.Kind {
	case KindHashed:
		return c.verifyHashed(plaintext)
	case KindLegacyPlaintext:
		// Legacy values are compared as-is. Constant-time here too; the
		// stored value is still a secret.
		return subtle.ConstantTimeCompare([]byte(c.raw), []byte(plaintext)) == 1
	default:
		return false
	}
}

func (c Credential) verifyHashed(plaintext string) bool {
	fields := strings.Split(c.raw, "$")
	if len(fields) != 3 {
		return false
	}

	method := strings.Split(fields[0], ":")
	if len(method) != 3 || method[0] != "pbkdf2" || method[1] != "sha256" {
		return false
	}

	iter, err := strconv.Atoi(method[2])
	if err != nil || iter <= 0 {
		return false
	}

	salt, err := hex.DecodeString(fields[1])
	if err != nil {
		return false
	}

	want, err := hex.DecodeString(fields[2])
	if err != nil || len(want) == 0 {
		return false
	}

	got := pbkdf2.Key([]byte(plaintext), salt, iter, len(want), sha256.New)

	return subtle.ConstantTimeCompare(got, want) == 1
}
