// Package credential turns plaintext passwords into storable credentials
// and verifies plaintexts against stored values.
//
// A stored credential is one opaque string:
//
//	pbkdf2:sha256:<iterations>$<hex salt>$<hex derived key>
//
// Hashing uses PBKDF2-HMAC-SHA256 with a fresh 128-bit random salt per
// call, so the same password never hashes to the same credential twice.
// Verification recomputes the derivation with the embedded salt and
// iteration count and compares in constant time.
//
// Stored values without the algorithm tag are legacy plaintext
// credentials, kept only so accounts predating the hashing scheme can log
// in once and be migrated by the account controller. Parse surfaces the
// distinction as an explicit Kind so callers can disable the legacy path
// outright.
package credential
