package utils

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

// EnrollmentTokenPrefix marks tokens issued by the platform
const EnrollmentTokenPrefix = "NK-"

// GenerateEnrollmentToken returns a random, URL-safe enrollment code such as NK-MZXW6YTBOI3DEMRS
func GenerateEnrollmentToken() (string, error) {
	bytes := make([]byte, 10)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}

	// 10 bytes encode to exactly 16 base32 characters, no padding
	code := base32.StdEncoding.EncodeToString(bytes)
	code = strings.TrimRight(code, "=")
	return EnrollmentTokenPrefix + code, nil
}
