// Package domain defines the key, portable key and envelope models used to encrypt
// dream journal data at rest.
//
// A user's data is sealed with AES-256-GCM under either a device key (random, persisted
// in portable form by the key store) or a password key (PBKDF2-derived per call, never
// persisted). The only persisted artefacts are the portable device key and the Envelope.
package domain

import "fmt"

// Key is live symmetric key material.
//
// Keys are created per operation and must be destroyed by their owner once the
// operation completes; they are never cached between calls.
type Key struct {
	Algorithm   Algorithm
	Material    []byte
	Extractable bool // false for password-derived keys
}

// NewKey copies material into a new AES-256-GCM key.
func NewKey(material []byte, extractable bool) (*Key, error) {
	if len(material) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKeySize, KeySize, len(material))
	}

	m := make([]byte, KeySize)
	copy(m, material)

	return &Key{
		Algorithm:   AESGCM,
		Material:    m,
		Extractable: extractable,
	}, nil
}

// Destroy zeroes the key material. Safe to call on a nil key and more than once.
func (k *Key) Destroy() {
	if k == nil {
		return
	}
	Zero(k.Material)
	k.Material = nil
}

// Zero securely overwrites a byte slice with zeros to clear sensitive data from memory.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
