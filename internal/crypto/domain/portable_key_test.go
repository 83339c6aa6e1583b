package domain

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortableKey_RoundTrip(t *testing.T) {
	material := bytes.Repeat([]byte{0x42}, KeySize)

	pk := NewPortableKey(material)
	assert.Equal(t, "oct", pk.Kty)
	assert.Equal(t, "A256GCM", pk.Alg)
	assert.True(t, pk.Ext)
	assert.ElementsMatch(t, []string{"encrypt", "decrypt"}, pk.KeyOps)

	data, err := pk.Marshal()
	require.NoError(t, err)

	parsed, err := ParsePortableKey(data)
	require.NoError(t, err)
	assert.Equal(t, pk, parsed)

	decoded, err := parsed.Material()
	require.NoError(t, err)
	assert.Equal(t, material, decoded)
}

func TestParsePortableKey_Errors(t *testing.T) {
	valid := NewPortableKey(make([]byte, KeySize))

	tests := []struct {
		name   string
		mutate func(pk *PortableKey)
		raw    []byte
	}{
		{name: "not json", raw: []byte("not-json")},
		{name: "json array", raw: []byte(`["a"]`)},
		{name: "wrong kty", mutate: func(pk *PortableKey) { pk.Kty = "RSA" }},
		{name: "wrong alg", mutate: func(pk *PortableKey) { pk.Alg = "A128GCM" }},
		{name: "missing decrypt op", mutate: func(pk *PortableKey) { pk.KeyOps = []string{"encrypt"} }},
		{name: "bad base64", mutate: func(pk *PortableKey) { pk.K = "!!!" }},
		{name: "short material", mutate: func(pk *PortableKey) { pk.K = "AAAA" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.raw
			if data == nil {
				pk := valid
				pk.KeyOps = append([]string(nil), valid.KeyOps...)
				tt.mutate(&pk)
				var err error
				data, err = json.Marshal(pk)
				require.NoError(t, err)
			}

			_, err := ParsePortableKey(data)
			assert.ErrorIs(t, err, ErrInvalidPortableKey)
		})
	}
}
