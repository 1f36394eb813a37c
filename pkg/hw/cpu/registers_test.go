package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegister(t *testing.T) {
	t.Run("valid registers", func(t *testing.T) {
		for i := 0; i < RegisterCount; i++ {
			index, err := ParseRegister(RegisterName(i))
			require.NoError(t, err)
			assert.Equal(t, i, index)
		}
	})

	cases := []struct {
		token string
		err   error
	}{
		{"x16", ErrRegisterOutOfRange},
		{"x20", ErrRegisterOutOfRange},
		{"x-1", ErrRegisterOutOfRange},
		{"x99999999999999999999999", ErrRegisterOutOfRange},
		{"y1", ErrInvalidRegisterToken},
		{"X1", ErrInvalidRegisterToken},
		{"x", ErrInvalidRegisterToken},
		{"xa", ErrInvalidRegisterToken},
		{"x1.5", ErrInvalidRegisterToken},
		{"1", ErrInvalidRegisterToken},
	}

	for _, c := range cases {
		t.Run(c.token, func(t *testing.T) {
			_, err := ParseRegister(c.token)
			assert.ErrorIs(t, err, c.err)
			assert.Contains(t, err.Error(), c.token)
		})
	}
}

func TestRegisterFile_GetSet(t *testing.T) {
	rf := MakeRegisterFile()

	t.Run("zero initialized", func(t *testing.T) {
		for i := 0; i < RegisterCount; i++ {
			value, err := rf.Get(i)
			require.NoError(t, err)
			assert.Equal(t, Word(0), value)
		}
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, rf.Set(3, 0xDEADBEEF))
		value, err := rf.Get(3)
		require.NoError(t, err)
		assert.Equal(t, Word(0xDEADBEEF), value)
	})

	t.Run("set masks to 32 bits", func(t *testing.T) {
		require.NoError(t, rf.Set(4, 0x1_0000_0005))
		value, err := rf.Get(4)
		require.NoError(t, err)
		assert.Equal(t, Word(5), value)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := rf.Get(RegisterCount)
		assert.ErrorIs(t, err, ErrRegisterOutOfRange)

		_, err = rf.Get(-1)
		assert.ErrorIs(t, err, ErrRegisterOutOfRange)

		assert.ErrorIs(t, rf.Set(RegisterCount, 1), ErrRegisterOutOfRange)
	})

	t.Run("reset", func(t *testing.T) {
		rf.Reset()
		assert.Equal(t, [RegisterCount]Word{}, rf.Values())
	})
}

func TestMakeRegisterFile(t *testing.T) {
	rf := MakeRegisterFile(1, 2, 3)
	values := rf.Values()

	assert.Equal(t, Word(1), values[0])
	assert.Equal(t, Word(2), values[1])
	assert.Equal(t, Word(3), values[2])
	assert.Equal(t, Word(0), values[15])
	assert.Contains(t, rf.String(), "x2=3")
}
