package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/argon2"
)

// EnvPassphrase names the environment variable holding the vault passphrase.
const EnvPassphrase = "FLOWCTL_VAULT_PASSPHRASE"

// ErrNoPassphrase is returned by FromEnv when the passphrase variable is
// unset or empty.
var ErrNoPassphrase = errors.New("vault passphrase not set (" + EnvPassphrase + ")")

// Vault seals credentials extracted from legacy documents before they touch
// the store, using AES-256-GCM with a passphrase-derived key.
type Vault struct {
	key [32]byte
}

// New derives an AES-256 key from the passphrase via Argon2id. The salt is
// deterministic (SHA-256 of the passphrase), so the same passphrase always
// produces the same key across runs.
func New(passphrase string) *Vault {
	salt := sha256.Sum256([]byte(passphrase))
	key := argon2.IDKey([]byte(passphrase), salt[:16], 1, 64*1024, 4, 32)

	v := &Vault{}
	copy(v.key[:], key)
	return v
}

// FromEnv builds a Vault from the passphrase in EnvPassphrase.
func FromEnv() (*Vault, error) {
	passphrase := os.Getenv(EnvPassphrase)
	if passphrase == "" {
		return nil, ErrNoPassphrase
	}
	return New(passphrase), nil
}

// Seal encrypts plaintext with a random nonce. Both outputs are stored; both
// are needed to unseal.
func (v *Vault) Seal(plaintext []byte) (sealed, nonce []byte, err error) {
	block, err := aes.NewCipher(v.key[:])
	if err != nil {
		return nil, nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, fmt.Errorf("create gcm: %w", err)
	}

	nonce = make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("generate nonce: %w", err)
	}

	sealed = gcm.Seal(nil, nonce, plaintext, nil)
	return sealed, nonce, nil
}

// Unseal decrypts a sealed value. A wrong passphrase surfaces here as a
// decrypt error, not earlier.
func (v *Vault) Unseal(sealed, nonce []byte) ([]byte, error) {
	block, err := aes.NewCipher(v.key[:])
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("unseal: %w", err)
	}

	return plaintext, nil
}
