package service

import (
	"crypto/md5"
	"encoding/hex"
)

// HashPassword returns the hex md5 digest of the plaintext. md5 keeps
// digests compatible with existing rows; it is not a password KDF and
// should not be copied into new systems.
func HashPassword(password string) string {
	sum := md5.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}
