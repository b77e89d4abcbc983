package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

const (
	// AccessCodeLength is the fixed policy length of download access codes.
	// Codes are short because owners read them out to recipients over the
	// phone or paste them into chat; entropy comes from crypto/rand.
	AccessCodeLength = 6

	accessCodeAlphabet       = "0123456789"
	errGenerateRandomFmt     = "failed to generate random bytes: %w"
	errGenerateRandomInt     = "failed to generate random digit: %w"
	errByteLengthPositiveFmt = "byteLength must be positive"
)

// GenerateAccessCode returns a fresh 6-digit access code drawn from a
// cryptographically strong random source. Leading zeros are allowed; every
// code in [000000, 999999] is equally likely.
func GenerateAccessCode() (string, error) {
	alphabetSize := big.NewInt(int64(len(accessCodeAlphabet)))

	code := make([]byte, AccessCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf(errGenerateRandomInt, err)
		}
		code[i] = accessCodeAlphabet[n.Int64()]
	}

	return string(code), nil
}

// GenerateHex returns byteLength random bytes hex-encoded.
func GenerateHex(byteLength int) (string, error) {
	if byteLength <= 0 {
		return "", fmt.Errorf(errByteLengthPositiveFmt)
	}

	bytes := make([]byte, byteLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf(errGenerateRandomFmt, err)
	}

	return hex.EncodeToString(bytes), nil
}
