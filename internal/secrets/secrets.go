// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package secrets provides at-rest protection for the persisted admin
// session credentials.
//
// A per-install random master key is held in a file keystore with 0600
// permissions; stored blobs are sealed with AES-256-GCM. A PBKDF2 layer
// stretches the master key so a copied keystore file alone is not directly
// usable as cipher key material.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"

	"github.com/motourapp/admin-tui/internal/util"
)

const (
	// KeySize is the AES-256 key size in bytes.
	KeySize = 32

	// SaltSize is the PBKDF2 salt size in bytes.
	SaltSize = 16

	// PBKDF2Iterations follows NIST SP 800-132 guidance.
	PBKDF2Iterations = 600000
)

var (
	// ErrNoKey indicates the keystore holds no master key yet.
	ErrNoKey = errors.New("no master key stored")

	// ErrCiphertextTooShort indicates a sealed blob is truncated.
	ErrCiphertextTooShort = errors.New("ciphertext too short")
)

// =============================================================================
// FILE KEYSTORE
// =============================================================================

// FileKeyStore holds the master key in a file with restricted permissions.
type FileKeyStore struct {
	path string
}

// NewFileKeyStore creates a keystore at the given path.
func NewFileKeyStore(path string) *FileKeyStore {
	return &FileKeyStore{path: path}
}

// Store saves the key.
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func (f *FileKeyStore) Store(key []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := util.AtomicWriteFile(f.path, key, 0600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return nil
}

// Retrieve reads the key, returning ErrNoKey if none exists.
func (f *FileKeyStore) Retrieve() ([]byte, error) {
	key, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoKey
		}
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	return key, nil
}

// Delete removes the key file. Removing an absent key is not an error.
func (f *FileKeyStore) Delete() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete key file: %w", err)
	}
	return nil
}

// Exists reports whether a key is stored.
func (f *FileKeyStore) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// =============================================================================
// SEALER
// =============================================================================

// Sealer encrypts and decrypts small blobs with a keystore-held master key.
type Sealer struct {
	store *FileKeyStore
}

// NewSealer creates a sealer backed by the keystore at keyPath. The master
// key is generated on first use.
func NewSealer(keyPath string) *Sealer {
	return &Sealer{store: NewFileKeyStore(keyPath)}
}

// masterKey returns the stored master key, generating one if absent.
func (s *Sealer) masterKey() ([]byte, error) {
	key, err := s.store.Retrieve()
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, ErrNoKey) {
		return nil, err
	}
	key = make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate master key: %w", err)
	}
	if err := s.store.Store(key); err != nil {
		return nil, err
	}
	return key, nil
}

// Seal encrypts plaintext. The output layout is salt || nonce || ciphertext.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	master, err := s.masterKey()
	if err != nil {
		return nil, err
	}
	defer zeroBytes(master)

	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	gcm, err := newGCM(master, salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 0, SaltSize+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plaintext, nil), nil
}

// Open decrypts a blob produced by Seal.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	master, err := s.store.Retrieve()
	if err != nil {
		return nil, err
	}
	defer zeroBytes(master)

	if len(sealed) < SaltSize {
		return nil, ErrCiphertextTooShort
	}
	salt, rest := sealed[:SaltSize], sealed[SaltSize:]

	gcm, err := newGCM(master, salt)
	if err != nil {
		return nil, err
	}
	if len(rest) < gcm.NonceSize() {
		return nil, ErrCiphertextTooShort
	}
	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}

// DeleteKey discards the master key, rendering existing sealed blobs
// unreadable.
func (s *Sealer) DeleteKey() error {
	return s.store.Delete()
}

// newGCM derives the cipher key via PBKDF2-SHA-256 and builds an AES-GCM.
func newGCM(master, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(master, salt, PBKDF2Iterations, KeySize, sha256.New)
	defer zeroBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM cipher: %w", err)
	}
	return gcm, nil
}

// SECURITY: Zero key material to prevent memory disclosure
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
