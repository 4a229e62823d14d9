// Package vault encrypts and decrypts a single account password.
//
// Every call to Encrypt draws a fresh random 256-bit key; keys are never
// derived from the password and never reused. The sealed form is a random
// 24-byte nonce followed by the NaCl secretbox output, so encrypting the same
// password twice yields unrelated ciphertexts.
//
// Any failure here (bad key size, truncated or tampered ciphertext, broken
// random source) is reported as ErrIntegrity. Callers treat it as
// unrecoverable.
package vault

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const (
	// KeySize is the length in bytes of a credential key.
	KeySize = 32
	// NonceSize is the length of the nonce prefixed to every ciphertext.
	NonceSize = 24
)

// ErrIntegrity marks a credential that cannot be produced or opened.
var ErrIntegrity = errors.New("credential integrity failure")

// randReader is swapped in tests to simulate a failing random source.
var randReader io.Reader = rand.Reader

// Credential is an encrypted password together with the key that opens it.
// Both fields always come from the same Encrypt call.
type Credential struct {
	Ciphertext []byte
	Key        []byte
}

// Encrypt seals plaintext under a newly generated key.
func Encrypt(plaintext string) (Credential, error) {
	var key [KeySize]byte
	if _, err := io.ReadFull(randReader, key[:]); err != nil {
		return Credential{}, fmt.Errorf("%w: generating key: %v", ErrIntegrity, err)
	}

	var nonce [NonceSize]byte
	if _, err := io.ReadFull(randReader, nonce[:]); err != nil {
		return Credential{}, fmt.Errorf("%w: generating nonce: %v", ErrIntegrity, err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &key)
	return Credential{Ciphertext: sealed, Key: key[:]}, nil
}

// Decrypt opens c and returns the plaintext password.
func Decrypt(c Credential) (string, error) {
	if len(c.Key) != KeySize {
		return "", fmt.Errorf("%w: key is %d bytes, want %d", ErrIntegrity, len(c.Key), KeySize)
	}
	if len(c.Ciphertext) < NonceSize+secretbox.Overhead {
		return "", fmt.Errorf("%w: ciphertext too short (%d bytes)", ErrIntegrity, len(c.Ciphertext))
	}

	var key [KeySize]byte
	copy(key[:], c.Key)
	var nonce [NonceSize]byte
	copy(nonce[:], c.Ciphertext[:NonceSize])

	plain, ok := secretbox.Open(nil, c.Ciphertext[NonceSize:], &nonce, &key)
	if !ok {
		return "", fmt.Errorf("%w: ciphertext does not match key", ErrIntegrity)
	}
	return string(plain), nil
}

// Valid reports whether c has the shape of a sealed credential. It does not
// try to open it.
func (c Credential) Valid() bool {
	return len(c.Key) == KeySize && len(c.Ciphertext) >= NonceSize+secretbox.Overhead
}
