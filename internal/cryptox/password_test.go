package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	encoded, err := HashPassword([]byte("s3cret"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(encoded, "argon2id$"))

	ok, err := VerifyPassword(encoded, []byte("s3cret"))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyPassword(encoded, []byte("wrong"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPassword_SaltIsRandom(t *testing.T) {
	a, err := HashPassword([]byte("same"))
	require.NoError(t, err)
	b, err := HashPassword([]byte("same"))
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []string{
		"",
		"argon2id$onlyonepart",
		"bcrypt$AAAA$BBBB",
		"argon2id$!!!$AAAA",
		"argon2id$AAAA$!!!",
	}
	for _, encoded := range tests {
		_, err := VerifyPassword(encoded, []byte("x"))
		require.ErrorIs(t, err, ErrMalformedHash, "input %q", encoded)
	}
}
