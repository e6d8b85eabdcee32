package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	errInvalidEncryptionKeyLength = errors.New("TOKEN_ENCRYPTION_KEY must be exactly 32 bytes")
	errCiphertextTooShort         = errors.New("sealed token is too short or malformed")
)

// TokenSealer encrypts access tokens held for linked accounts using
// XChaCha20-Poly1305. A sealer built with an empty key passes tokens through
// unchanged.
type TokenSealer struct {
	key []byte
}

func NewTokenSealer(key string) (*TokenSealer, error) {
	if key == "" {
		return &TokenSealer{}, nil
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, errInvalidEncryptionKeyLength
	}
	return &TokenSealer{key: []byte(key)}, nil
}

func (s *TokenSealer) Enabled() bool { return len(s.key) > 0 }

func (s *TokenSealer) Seal(token string) (string, error) {
	if !s.Enabled() {
		return token, nil
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(token)+aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := aead.Seal(nonce, nonce, []byte(token), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (s *TokenSealer) Open(sealed string) (string, error) {
	if !s.Enabled() {
		return sealed, nil
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", err
	}

	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", err
	}

	if len(data) < aead.NonceSize()+aead.Overhead() {
		return "", errCiphertextTooShort
	}

	nonce, ciphertext := data[:aead.NonceSize()], data[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}
