package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"slices"
)

const (
	portableKeyType      = "oct"
	portableKeyAlgorithm = "A256GCM"
)

// PortableKey is the serializable form of a device key, shaped like a JSON Web Key
// for an octet sequence so it survives storage in any string-valued key-value store.
type PortableKey struct {
	Kty    string   `json:"kty"`
	Alg    string   `json:"alg"`
	K      string   `json:"k"` // unpadded base64url key material
	Ext    bool     `json:"ext"`
	KeyOps []string `json:"key_ops"`
}

// NewPortableKey builds the portable form of raw key material.
func NewPortableKey(material []byte) PortableKey {
	return PortableKey{
		Kty:    portableKeyType,
		Alg:    portableKeyAlgorithm,
		K:      base64.RawURLEncoding.EncodeToString(material),
		Ext:    true,
		KeyOps: []string{"encrypt", "decrypt"},
	}
}

// ParsePortableKey decodes and validates a portable key from its JSON form.
func ParsePortableKey(data []byte) (PortableKey, error) {
	var pk PortableKey
	if err := json.Unmarshal(data, &pk); err != nil {
		return PortableKey{}, fmt.Errorf("%w: %v", ErrInvalidPortableKey, err)
	}
	if err := pk.Validate(); err != nil {
		return PortableKey{}, err
	}
	return pk, nil
}

// Validate checks the key type, algorithm, operations and material length.
func (p PortableKey) Validate() error {
	if p.Kty != portableKeyType {
		return fmt.Errorf("%w: unexpected kty %q", ErrInvalidPortableKey, p.Kty)
	}
	if p.Alg != portableKeyAlgorithm {
		return fmt.Errorf("%w: unexpected alg %q", ErrInvalidPortableKey, p.Alg)
	}
	if !slices.Contains(p.KeyOps, "encrypt") || !slices.Contains(p.KeyOps, "decrypt") {
		return fmt.Errorf("%w: key_ops must allow encrypt and decrypt", ErrInvalidPortableKey)
	}
	material, err := p.Material()
	if err != nil {
		return err
	}
	Zero(material)
	return nil
}

// Material decodes the raw key bytes. The caller owns the returned slice and should zero it.
func (p PortableKey) Material() ([]byte, error) {
	material, err := base64.RawURLEncoding.DecodeString(p.K)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPortableKey, err)
	}
	if len(material) != KeySize {
		Zero(material)
		return nil, fmt.Errorf("%w: %w", ErrInvalidPortableKey, ErrInvalidKeySize)
	}
	return material, nil
}

// Marshal returns the JSON form written to storage.
func (p PortableKey) Marshal() ([]byte, error) {
	return json.Marshal(p)
}
