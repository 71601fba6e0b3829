package credential

import (
	"errors"
	"testing"

	"github.com/99designs/keyring"
)

func TestGet(t *testing.T) {
	ring := keyring.NewArrayKeyring([]keyring.Item{
		{Key: "alice", Data: []byte("secret")},
	})

	got, err := get(ring, "alice")
	if err != nil {
		t.Fatalf("get() error: %v", err)
	}
	if got != "secret" {
		t.Errorf("Expected 'secret', got %q", got)
	}
}

func TestGet_MissingKey(t *testing.T) {
	ring := keyring.NewArrayKeyring(nil)

	_, err := get(ring, "bob")
	if err == nil {
		t.Fatal("Expected an error for a missing key")
	}
	if !errors.Is(err, keyring.ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
}
