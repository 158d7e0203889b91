package utils

import (
	"crypto/rand"
	"fmt"

	"github.com/vincecoscia/retriever-ai/internal/constants"
)

// GenerateTempPassword generates a random temporary password for provisioned
// users. Each character is drawn from the fixed alphabet via a modulo over a
// cryptographically strong byte.
func GenerateTempPassword() (string, error) {
	bytes := make([]byte, constants.TempPasswordLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	result := make([]byte, constants.TempPasswordLength)
	for i, b := range bytes {
		result[i] = constants.TempPasswordAlphabet[int(b)%len(constants.TempPasswordAlphabet)]
	}
	return string(result), nil
}
