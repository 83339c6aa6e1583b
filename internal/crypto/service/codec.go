package service

import "encoding/base64"

// Base64Codec encodes envelope fields with padded standard base64.
type Base64Codec struct{}

// NewBase64Codec creates a new Base64Codec.
func NewBase64Codec() *Base64Codec {
	return &Base64Codec{}
}

// Encode returns the standard base64 form of data.
func (c *Base64Codec) Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Decode parses standard base64, rejecting non-canonical padding bits.
func (c *Base64Codec) Decode(text string) ([]byte, error) {
	return base64.StdEncoding.Strict().DecodeString(text)
}
