package vault

import (
	"bytes"
	"errors"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	v := New("test-passphrase")
	plaintext := []byte("sk-ant-REDACTED")

	sealed, nonce, err := v.Seal(plaintext)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	unsealed, err := v.Unseal(sealed, nonce)
	if err != nil {
		t.Fatalf("unseal: %v", err)
	}

	if !bytes.Equal(plaintext, unsealed) {
		t.Fatalf("got %q, want %q", unsealed, plaintext)
	}
}

func TestWrongPassphrase(t *testing.T) {
	v1 := New("correct-passphrase")
	v2 := New("wrong-passphrase")

	sealed, nonce, err := v1.Seal([]byte("secret"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	_, err = v2.Unseal(sealed, nonce)
	if err == nil {
		t.Fatal("expected error unsealing with wrong passphrase")
	}
}

func TestDifferentPassphrasesDifferentKeys(t *testing.T) {
	v1 := New("passphrase-one")
	v2 := New("passphrase-two")

	if v1.key == v2.key {
		t.Fatal("different passphrases produced the same key")
	}
}

func TestEmptyPlaintext(t *testing.T) {
	v := New("test")

	sealed, nonce, err := v.Seal([]byte{})
	if err != nil {
		t.Fatalf("seal empty: %v", err)
	}

	unsealed, err := v.Unseal(sealed, nonce)
	if err != nil {
		t.Fatalf("unseal empty: %v", err)
	}
	if len(unsealed) != 0 {
		t.Fatalf("expected empty plaintext, got %q", unsealed)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvPassphrase, "")
	if _, err := FromEnv(); !errors.Is(err, ErrNoPassphrase) {
		t.Fatalf("expected ErrNoPassphrase, got %v", err)
	}

	t.Setenv(EnvPassphrase, "from-env")
	v, err := FromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}

	sealed, nonce, err := v.Seal([]byte("value"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if _, err := New("from-env").Unseal(sealed, nonce); err != nil {
		t.Fatalf("expected same key from same passphrase: %v", err)
	}
}
