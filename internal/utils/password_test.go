package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vincecoscia/retriever-ai/internal/constants"
)

func TestGenerateTempPassword_Length(t *testing.T) {
	password, err := GenerateTempPassword()
	require.NoError(t, err)
	require.Len(t, password, constants.TempPasswordLength)
}

func TestGenerateTempPassword_Alphabet(t *testing.T) {
	password, err := GenerateTempPassword()
	require.NoError(t, err)

	for _, ch := range password {
		require.True(t, strings.ContainsRune(constants.TempPasswordAlphabet, ch),
			"unexpected character %q in generated password", ch)
	}
}

func TestGenerateTempPassword_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		password, err := GenerateTempPassword()
		require.NoError(t, err)
		seen[password] = true
	}
	require.Greater(t, len(seen), 1, "generator produced the same password repeatedly")
}
