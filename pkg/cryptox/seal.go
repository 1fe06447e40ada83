package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// SealKeySize is the AES-256 key length used by Sealer.
const SealKeySize = 32

// Sealer provides authenticated encryption for small client-held blobs
// (cookie sessions). The key is derived once from a secret via HKDF-SHA256 and
// held for the life of the process; there is no global key state.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives an AES-256-GCM sealer from the given secret. The info
// string domain-separates keys derived from the same secret for different
// purposes.
func NewSealer(secret, info string) (*Sealer, error) {
	if secret == "" {
		return nil, errors.New("cryptox: empty seal secret")
	}

	key := make([]byte, SealKeySize)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(info))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("cryptox: derive seal key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create GCM: %w", err)
	}

	return &Sealer{aead: aead}, nil
}

// Seal encrypts and authenticates plaintext. Output layout is
// [nonce][ciphertext][auth tag] with a fresh random nonce per call.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("cryptox: generate nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Unseal decrypts data produced by Seal, verifying the authentication tag.
// Any tampering or truncation yields an error.
func (s *Sealer) Unseal(sealed []byte) ([]byte, error) {
	nonceSize := s.aead.NonceSize()
	if len(sealed) < nonceSize {
		return nil, errors.New("cryptox: sealed data too short")
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("cryptox: unseal: %w", err)
	}
	return plaintext, nil
}
