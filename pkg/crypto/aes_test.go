package crypto

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, KeySize)
	c, err := NewCrypter(key)
	require.NoError(t, err)

	enc, err := c.Encrypt("s3cret密码")
	require.NoError(t, err)
	assert.True(t, IsEncrypted(enc))
	assert.NotContains(t, enc, "s3cret")

	dec, err := c.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "s3cret密码", dec)
}

func TestDecryptWrongKey(t *testing.T) {
	c1, err := NewCrypter(bytes.Repeat([]byte{0x01}, KeySize))
	require.NoError(t, err)
	c2, err := NewCrypter(bytes.Repeat([]byte{0x02}, KeySize))
	require.NoError(t, err)

	enc, err := c1.Encrypt("plaintext")
	require.NoError(t, err)

	_, err = c2.Decrypt(enc)
	assert.Error(t, err)
}

func TestDecryptRejectsPlainValue(t *testing.T) {
	c, err := NewCrypter(bytes.Repeat([]byte{0x01}, KeySize))
	require.NoError(t, err)

	_, err = c.Decrypt("not-encrypted")
	assert.Error(t, err)
}

func TestNewCrypterKeySize(t *testing.T) {
	_, err := NewCrypter([]byte("short"))
	assert.Error(t, err)
}

func TestLoadOrGenerateKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "profiles.key")

	key1, err := LoadOrGenerateKey(path)
	require.NoError(t, err)
	assert.Len(t, key1, KeySize)

	// 第二次加载必须得到同一把密钥
	key2, err := LoadOrGenerateKey(path)
	require.NoError(t, err)
	assert.Equal(t, key1, key2)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadOrGenerateKeyBadSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.key")
	require.NoError(t, os.WriteFile(path, []byte("too short"), 0600))

	_, err := LoadOrGenerateKey(path)
	assert.Error(t, err)
}
