package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasher(t *testing.T) {
	h := NewHasher(testPepper)

	hash, err := h.Hash("s3cret-password")
	require.NoError(t, err)
	require.True(t, h.Verify(hash, "s3cret-password"))
	require.False(t, h.Verify(hash, "wrong"))
	require.False(t, h.Verify("not-a-hash", "s3cret-password"))

	secret, err := h.Random()
	require.NoError(t, err)
	require.NotEmpty(t, secret)
	require.Equal(t, FingerprintToken(secret), h.Fingerprint(secret))
}

func TestLoadPepper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pepper")

	first, err := LoadPepper(path)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// Second load reads the file written by the first.
	second, err := LoadPepper(path)
	require.NoError(t, err)
	require.Equal(t, first, second)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadPepper_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pepper")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	_, err := LoadPepper(path)
	require.Error(t, err)
}

func TestNewHasherFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pepper")

	a, err := NewHasherFromFile(path)
	require.NoError(t, err)
	hash, err := a.Hash("password")
	require.NoError(t, err)

	b, err := NewHasherFromFile(path)
	require.NoError(t, err)
	require.True(t, b.Verify(hash, "password"))
}
