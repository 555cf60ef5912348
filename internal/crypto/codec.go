// Package crypto implements the password-based export container: PBKDF2 key
// derivation plus AES-GCM authenticated encryption.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"github.com/marqs-app/marqs/internal/domain"
)

// Wire-format constants. Every export ever written used these values, so a
// conforming reader must match them exactly; they are compatibility
// contracts, not tunables.
const (
	pbkdf2Iterations = 100000
	keyLength        = 32 // 256 bits for AES-256
	saltLength       = 16
	nonceLength      = 12
)

// container is the encrypted export file: {salt, iv, ct}, all std base64.
// ct carries the GCM tag appended to the ciphertext.
type container struct {
	Salt string `json:"salt"`
	IV   string `json:"iv"`
	CT   string `json:"ct"`
}

// Encrypt seals plaintext under a key derived from password with a fresh
// salt and nonce, returning the JSON container.
func Encrypt(plaintext []byte, password string) ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := deriveKey(password, salt)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceLength)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	data, err := json.Marshal(container{
		Salt: base64.StdEncoding.EncodeToString(salt),
		IV:   base64.StdEncoding.EncodeToString(nonce),
		CT:   base64.StdEncoding.EncodeToString(ciphertext),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal container: %w", err)
	}
	return data, nil
}

// Decrypt opens a JSON container produced by Encrypt (or any conforming
// implementation). A malformed container surfaces as domain.ParseError; an
// authentication failure, meaning a wrong password or corrupted ciphertext,
// surfaces as domain.DecryptionError.
func Decrypt(data []byte, password string) ([]byte, error) {
	var c container
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, &domain.ParseError{Reason: "not an encrypted export container", Err: err}
	}
	if c.Salt == "" || c.IV == "" || c.CT == "" {
		return nil, &domain.ParseError{Reason: "container missing salt, iv or ct"}
	}

	salt, err := base64.StdEncoding.DecodeString(c.Salt)
	if err != nil {
		return nil, &domain.ParseError{Reason: "container salt is not valid base64", Err: err}
	}
	nonce, err := base64.StdEncoding.DecodeString(c.IV)
	if err != nil {
		return nil, &domain.ParseError{Reason: "container iv is not valid base64", Err: err}
	}
	ciphertext, err := base64.StdEncoding.DecodeString(c.CT)
	if err != nil {
		return nil, &domain.ParseError{Reason: "container ct is not valid base64", Err: err}
	}
	if len(nonce) != nonceLength {
		return nil, &domain.ParseError{Reason: fmt.Sprintf("container iv is %d bytes, want %d", len(nonce), nonceLength)}
	}

	key := deriveKey(password, salt)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, &domain.DecryptionError{Err: err}
	}
	return plaintext, nil
}

func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyLength, sha256.New)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}
