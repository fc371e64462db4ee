// Package credential implements password digesting and rotation.
package credential

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Supported digest algorithm names
const (
	SHA256   = "sha256"   // Default, compatible with existing rows
	SHA3_256 = "sha3-256" // Keccak based alternative
)

// Digester turns a plaintext password into its stored, fixed-length form.
// The output is deterministic so it can be matched inside a conditional update.
type Digester interface {
	Digest(plain string) string
}

// DigestFunc adapts a plain function to Digester
type DigestFunc func(plain string) string

func (f DigestFunc) Digest(plain string) string { return f(plain) }

// NewDigester returns the digester registered under algorithm
func NewDigester(algorithm string) (Digester, error) {
	switch algorithm {
	case "", SHA256:
		return DigestFunc(sha256Hex), nil
	case SHA3_256:
		return DigestFunc(sha3Hex), nil
	default:
		return nil, fmt.Errorf("unsupported password digest %q", algorithm)
	}
}

func sha256Hex(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func sha3Hex(plain string) string {
	sum := sha3.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
