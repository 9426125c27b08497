package session

import (
	"math/rand"

	"github.com/cespare/xxhash/v2"
)

const codeLength = 4
const maxRetries = 100

// I and O are left out so codes survive being read aloud.
var letters = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ")

// GenerateCode creates a random 4-letter uppercase session code.
// It checks against existing codes to avoid duplicates.
func GenerateCode(existing map[string]bool) string {
	for range maxRetries {
		code := randomCode()
		if !existing[code] {
			return code
		}
	}
	// Fallback: extremely unlikely with 24^4 = 331,776 combinations
	return randomCode()
}

func randomCode() string {
	b := make([]rune, codeLength)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

// SeedFor derives the world seed of a session from its code and the
// configured base seed, so a code replays the same world.
func SeedFor(code string, base int64) int64 {
	return int64(xxhash.Sum64String(code) ^ uint64(base))
}
