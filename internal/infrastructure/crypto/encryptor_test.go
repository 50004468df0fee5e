package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	return bytes.Repeat([]byte{0x42}, KeySize)
}

func TestAESEncryptor_RoundTrip(t *testing.T) {
	enc, err := NewAESEncryptor(testKey())
	require.NoError(t, err)

	ciphertext, err := enc.Encrypt("123-45-6789")
	require.NoError(t, err)
	assert.NotContains(t, string(ciphertext), "123-45-6789")

	plaintext, err := enc.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "123-45-6789", plaintext)
}

func TestAESEncryptor_NonceUniqueness(t *testing.T) {
	enc, err := NewAESEncryptor(testKey())
	require.NoError(t, err)

	a, err := enc.Encrypt("same input")
	require.NoError(t, err)
	b, err := enc.Encrypt("same input")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "two encryptions of the same plaintext must differ")
}

func TestAESEncryptor_TamperDetection(t *testing.T) {
	enc, err := NewAESEncryptor(testKey())
	require.NoError(t, err)

	ciphertext, err := enc.Encrypt("secret")
	require.NoError(t, err)

	ciphertext[len(ciphertext)-1] ^= 0xff

	_, err = enc.Decrypt(ciphertext)
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestNewAESEncryptor_RejectsBadKey(t *testing.T) {
	_, err := NewAESEncryptor([]byte("short"))
	assert.ErrorIs(t, err, ErrInvalidKeySize)
}
