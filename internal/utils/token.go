package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/webplanner/webplanner-api/internal/constants"
)

// GenerateToken generates a random bearer token
func GenerateToken() (string, error) {
	bytes := make([]byte, constants.TokenByteLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}
