package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// HashHeader carries the hex-encoded HMAC-SHA256 of a request or response
// body.
const HashHeader = "HashSHA256"

// Signer computes keyed HMAC-SHA256 digests over payloads exchanged between
// the client and the catalog server. A Signer built with an empty key is
// disabled: Sign returns "" and Verify accepts everything.
//
// Hash instances are pooled per Signer to avoid re-allocating the HMAC
// state on every request.
type Signer struct {
	key  []byte
	pool sync.Pool
}

// NewSigner returns a Signer for hashKey.
//
// Example usage:
//
//	s := utils.NewSigner("my-secret-key")
//	req.Header.Set(utils.HashHeader, s.Sign(body))
func NewSigner(hashKey string) *Signer {
	s := &Signer{key: []byte(hashKey)}
	s.pool.New = func() any {
		return hmac.New(sha256.New, s.key)
	}
	return s
}

// Enabled reports whether the signer has a key.
func (s *Signer) Enabled() bool {
	return s != nil && len(s.key) > 0
}

// Sum returns the raw HMAC-SHA256 digest of data.
func (s *Signer) Sum(data []byte) []byte {
	h := s.pool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	s.pool.Put(h)

	return sum
}

// Sign returns the hex-encoded digest of data, or "" when the signer is
// disabled.
func (s *Signer) Sign(data []byte) string {
	if !s.Enabled() {
		return ""
	}
	return hex.EncodeToString(s.Sum(data))
}

// Verify reports whether signature matches data. Comparison is constant
// time. A disabled signer accepts any input.
func (s *Signer) Verify(data []byte, signature string) bool {
	if !s.Enabled() {
		return true
	}

	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	return hmac.Equal(got, s.Sum(data))
}

// HashString computes an HMAC-SHA256 signature over data with hashKey and
// returns it hex-encoded. Unlike [Signer] it allocates a new HMAC on each
// call and suits one-off hashing.
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}
