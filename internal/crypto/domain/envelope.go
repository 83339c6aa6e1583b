package domain

import (
	"encoding/json"
	"reflect"
	"time"
)

// Envelope is the persisted form of one encrypted payload.
//
// All binary fields are standard base64. EncryptedContent carries the ciphertext with the
// GCM tag appended. Salt is generated on every call even in device-key mode so both modes
// share one format. Envelopes are values: produced once, consumed, never mutated.
type Envelope struct {
	EncryptedContent string `json:"encryptedContent"`
	IV               string `json:"iv"`
	Salt             string `json:"salt"`
	Timestamp        int64  `json:"timestamp"` // unix milliseconds, informational only
	Version          string `json:"version"`
}

// CreatedAt returns the informational creation time.
func (e Envelope) CreatedAt() time.Time {
	return time.UnixMilli(e.Timestamp).UTC()
}

// SupportedVersion reports whether this build knows how to open the envelope.
func (e Envelope) SupportedVersion() bool {
	return e.Version == FormatVersion
}

var envelopeFields = []string{"encryptedContent", "iv", "salt"}

// IsEncrypted reports whether value looks like an Envelope: a non-null object holding
// the encryptedContent, iv and salt keys. Raw JSON ([]byte, json.RawMessage, string) is
// inspected as well, and so are named map types and pointers to maps with string keys.
// It never returns an error and never panics.
func IsEncrypted(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case Envelope:
		return true
	case *Envelope:
		return v != nil
	case map[string]any:
		return hasEnvelopeFields(v)
	case map[string]json.RawMessage:
		return hasEnvelopeFields(v)
	case json.RawMessage:
		return isEncryptedJSON(v)
	case []byte:
		return isEncryptedJSON(v)
	case string:
		return isEncryptedJSON([]byte(v))
	default:
		return hasEnvelopeKeys(reflect.ValueOf(value))
	}
}

func hasEnvelopeKeys(v reflect.Value) bool {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Map || v.Type().Key().Kind() != reflect.String || v.IsNil() {
		return false
	}
	for _, field := range envelopeFields {
		if !v.MapIndex(reflect.ValueOf(field).Convert(v.Type().Key())).IsValid() {
			return false
		}
	}
	return true
}

func isEncryptedJSON(data []byte) bool {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return false
	}
	return hasEnvelopeFields(obj)
}

func hasEnvelopeFields[V any](obj map[string]V) bool {
	if obj == nil {
		return false
	}
	for _, field := range envelopeFields {
		if _, ok := obj[field]; !ok {
			return false
		}
	}
	return true
}
