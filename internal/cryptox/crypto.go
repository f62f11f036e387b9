// Package cryptox implements client-side sealing of recording blobs before
// they leave the device. Keys are derived from a user passphrase with
// Argon2id; payloads are encrypted with AES-256-GCM.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"

	"github.com/pocketlegal/pocketlegal/internal/common"
	"golang.org/x/crypto/argon2"
)

const keySize = 32

var ErrSealedTooShort = errors.New("sealed payload too short")

// DeriveKey derives a 32-byte sealing key from a passphrase and salt.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, keySize)
}

// Sealer encrypts and decrypts blobs with a fixed key. The nonce is generated
// per call and prepended to the ciphertext, so a sealed payload is
// self-contained.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer builds a Sealer from a 32-byte key (see DeriveKey).
func NewSealer(key []byte) (*Sealer, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext and returns nonce||ciphertext.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := common.GenerateRandByteArray(s.aead.NonceSize())
	sealed := s.aead.Seal(nil, nonce, plaintext, nil)
	return append(nonce, sealed...), nil
}

// Open decrypts a payload produced by Seal.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	ns := s.aead.NonceSize()
	if len(sealed) < ns {
		return nil, ErrSealedTooShort
	}
	return s.aead.Open(nil, sealed[:ns], sealed[ns:], nil)
}
