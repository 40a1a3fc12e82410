package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the required size of the decoded application key.
const KeySize = 32 // 256 bits for AES-256

// saltInfo provides domain separation for HKDF key derivation.
const saltInfo = "unigrow-secrets-v1"

// Config holds the application secret key.
type Config struct {
	AppKey string `env:"APP_SECRET_KEY,required"` // base64-encoded 32-byte key
}

// Encryptor encrypts and decrypts strings with a key derived from the
// application secret.
type Encryptor struct {
	key []byte
}

// New creates an Encryptor from the base64-encoded application key.
func New(cfg Config) (*Encryptor, error) {
	raw, err := base64.StdEncoding.DecodeString(cfg.AppKey)
	if err != nil {
		return nil, errors.Join(ErrInvalidKey, err)
	}
	if len(raw) != KeySize {
		return nil, ErrInvalidKey
	}

	key, err := deriveKey(raw)
	if err != nil {
		return nil, err
	}

	return &Encryptor{key: key}, nil
}

// Encrypt encrypts a string with AES-256-GCM and returns base64-encoded
// ciphertext in the format: nonce + encrypted data + tag.
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	aead, err := e.aead()
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	ciphertext := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decrypts a base64-encoded ciphertext back to the original string.
func (e *Encryptor) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", errors.Join(ErrInvalidCiphertext, err)
	}

	aead, err := e.aead()
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	nonceSize := aead.NonceSize()
	if len(raw) < nonceSize {
		return "", ErrInvalidCiphertext
	}

	nonce, sealed := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}

func (e *Encryptor) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// deriveKey stretches the application key through HKDF so the raw secret is
// never used as a cipher key directly.
func deriveKey(appKey []byte) ([]byte, error) {
	r := hkdf.New(sha256.New, appKey, nil, []byte(saltInfo))
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return key, nil
}

// GenerateKey creates a new random key in the encoding expected by Config.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
