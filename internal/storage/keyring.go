package storage

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

// KeyringStore keeps slots in an OS keyring (or its encrypted file fallback)
type KeyringStore struct {
	ring keyring.Keyring
}

// NewKeyringStore wraps an opened keyring
func NewKeyringStore(ring keyring.Keyring) *KeyringStore {
	return &KeyringStore{ring: ring}
}

// OpenKeyring opens a keyring for the service, trying OS keychains first.
// When fileDir is set only the encrypted file backend is used.
func OpenKeyring(serviceName, fileDir, password string) (*KeyringStore, error) {
	cfg := keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,      // macOS Keychain
			keyring.SecretServiceBackend, // Linux Secret Service (gnome-keyring, kwallet)
			keyring.WinCredBackend,       // Windows Credential Manager
			keyring.FileBackend,          // Encrypted file fallback
		},
		FileDir: "~/.app-registry",
		FilePasswordFunc: func(prompt string) (string, error) {
			return password, nil
		},
	}
	if fileDir != "" {
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
		cfg.FileDir = fileDir
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}

	return &KeyringStore{ring: ring}, nil
}

// Get returns the value stored under key
func (s *KeyringStore) Get(key string) (string, error) {
	item, err := s.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return string(item.Data), nil
}

// Set overwrites the value stored under key
func (s *KeyringStore) Set(key, value string) error {
	item := keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: "app-registry " + key,
	}
	if err := s.ring.Set(item); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}
