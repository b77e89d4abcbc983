package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAccessCode_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateAccessCode()
		assert.NoError(t, err)
		assert.Len(t, code, AccessCodeLength)
		for _, ch := range code {
			assert.True(t, ch >= '0' && ch <= '9', "unexpected character %q in code %s", ch, code)
		}
	}
}

func TestGenerateAccessCode_NotConstant(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateAccessCode()
		assert.NoError(t, err)
		seen[code] = true
	}
	// 50 draws from a million-value space colliding down to one value
	// would mean the random source is broken.
	assert.Greater(t, len(seen), 1)
}

func TestGenerateHex(t *testing.T) {
	s, err := GenerateHex(32)
	assert.NoError(t, err)
	assert.Len(t, s, 64)

	_, err = GenerateHex(0)
	assert.Error(t, err)
}
