package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCode(t *testing.T) {
	code := GenerateCode(nil)
	assert.Len(t, code, codeLength)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(string(letters), r), "unexpected letter %q", r)
	}
	assert.NotContains(t, code, "I")
	assert.NotContains(t, code, "O")
}

func TestGenerateCode_AvoidsExisting(t *testing.T) {
	existing := make(map[string]bool)
	for i := 0; i < 500; i++ {
		code := GenerateCode(existing)
		assert.False(t, existing[code], "duplicate code %s", code)
		existing[code] = true
	}
}

func TestSeedFor(t *testing.T) {
	assert.Equal(t, SeedFor("ABCD", 0), SeedFor("ABCD", 0))
	assert.NotEqual(t, SeedFor("ABCD", 0), SeedFor("ABCE", 0))
	assert.NotEqual(t, SeedFor("ABCD", 0), SeedFor("ABCD", 42))
}
