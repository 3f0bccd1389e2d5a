package cipher

import "crypto/sha256"

// DeriveKey turns a password into the AES-256 key the format uses:
// K = SHA-256(password_utf8), spec.md §6 "Key derivation".
func DeriveKey(password string) [32]byte {
	return sha256.Sum256([]byte(password))
}

// VerificationHash computes the value stored in the header for password
// verification: pwd_hash = SHA-256(K).
func VerificationHash(key [32]byte) [32]byte {
	return sha256.Sum256(key[:])
}
