package auth

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestVerify(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, WriteHash(fs, DefaultHashFile, []byte("hunter2"), bcrypt.MinCost))

	t.Run("correct password", func(t *testing.T) {
		ok, err := Verify(fs, DefaultHashFile, []byte("hunter2"))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong password", func(t *testing.T) {
		ok, err := Verify(fs, DefaultHashFile, []byte("hunter3"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("trailing newline in hash file", func(t *testing.T) {
		hash, err := afero.ReadFile(fs, DefaultHashFile)
		require.NoError(t, err)
		require.NoError(t, afero.WriteFile(fs, "newline.hash", append(hash, '\n'), 0o600))

		ok, err := Verify(fs, "newline.hash", []byte("hunter2"))
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestVerify_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := Verify(fs, "missing.hash", []byte("x"))
	assert.ErrorContains(t, err, "could not read password hash")

	require.NoError(t, afero.WriteFile(fs, "empty.hash", []byte("  \n"), 0o600))
	_, err = Verify(fs, "empty.hash", []byte("x"))
	assert.ErrorIs(t, err, ErrEmptyHash)

	require.NoError(t, afero.WriteFile(fs, "garbage.hash", []byte("not a hash"), 0o600))
	ok, err := Verify(fs, "garbage.hash", []byte("x"))
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestHash(t *testing.T) {
	_, err := Hash(nil, bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrEmptyPassword)

	hash, err := Hash([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}
