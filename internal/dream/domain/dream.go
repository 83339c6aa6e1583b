// Package domain defines dream records, their encrypted form and the encryption settings state machine.
package domain

import (
	"maps"

	cryptoDomain "github.com/allisson/dreamcrypt/internal/crypto/domain"
)

// Metadata keys kept in clear so callers can sort and filter without decrypting.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

var metadataFields = []string{FieldID, FieldCreatedAt, FieldUpdatedAt}

// Record is a dream journal entry as a JSON object (title, content, mood, tags, ...).
type Record map[string]any

// ID returns the record id, or "" when missing or not a string.
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// Split partitions the record into clear metadata and the sensitive remainder.
// Only metadata keys present in the record are copied.
func (r Record) Split() (metadata, sensitive map[string]any, err error) {
	if r.ID() == "" {
		return nil, nil, ErrInvalidDream
	}

	metadata = make(map[string]any, len(metadataFields))
	sensitive = maps.Clone(map[string]any(r))
	for _, field := range metadataFields {
		if v, ok := r[field]; ok {
			metadata[field] = v
			delete(sensitive, field)
		}
	}
	return metadata, sensitive, nil
}

// Merge reassembles a record from its metadata and decrypted sensitive part.
func Merge(metadata, sensitive map[string]any) Record {
	record := make(Record, len(metadata)+len(sensitive))
	maps.Copy(record, metadata)
	maps.Copy(record, sensitive)
	return record
}

// EncryptedDream is a dream whose sensitive fields are sealed in an Envelope.
type EncryptedDream struct {
	ID            string                `json:"id"`
	Metadata      map[string]any        `json:"metadata"`
	EncryptedData cryptoDomain.Envelope `json:"encryptedData"`
}

// EncryptionInfo reports the algorithm in use and whether the crypto provider is usable.
type EncryptionInfo struct {
	Algorithm       string `json:"algorithm"`
	KeySize         int    `json:"keySize"` // bits
	Version         string `json:"version"`
	CryptoAvailable bool   `json:"cryptoAvailable"`
}
