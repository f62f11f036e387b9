package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_DeterministicAndSaltSensitive(t *testing.T) {
	pass := []byte("correct horse")
	salt1 := []byte("salt-one........")
	salt2 := []byte("salt-two........")

	k1 := DeriveKey(pass, salt1)
	k2 := DeriveKey(pass, salt1)
	k3 := DeriveKey(pass, salt2)

	require.Len(t, k1, 32)
	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
}

func TestSealer_RoundTrip(t *testing.T) {
	s, err := NewSealer(DeriveKey([]byte("pass"), []byte("salt")))
	require.NoError(t, err)

	blob := []byte("webm bytes go here")
	sealed, err := s.Seal(blob)
	require.NoError(t, err)
	assert.NotEqual(t, blob, sealed)

	opened, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, blob, opened)
}

func TestSealer_OpenRejectsTampering(t *testing.T) {
	s, err := NewSealer(DeriveKey([]byte("pass"), []byte("salt")))
	require.NoError(t, err)

	sealed, err := s.Seal([]byte("evidence"))
	require.NoError(t, err)

	sealed[len(sealed)-1] ^= 0xff
	_, err = s.Open(sealed)
	require.Error(t, err)
}

func TestSealer_OpenTooShort(t *testing.T) {
	s, err := NewSealer(DeriveKey([]byte("p"), []byte("s")))
	require.NoError(t, err)

	_, err = s.Open([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrSealedTooShort)
}

func TestNewSealer_BadKeyLength(t *testing.T) {
	_, err := NewSealer([]byte("short"))
	require.Error(t, err)
}
