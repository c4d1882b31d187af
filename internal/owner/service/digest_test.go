package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPasswordDeterministic(t *testing.T) {
	assert.Equal(t, HashPassword("password123"), HashPassword("password123"))
	assert.Equal(t, "482c811da5d5b4bc6d497ffa98491e38", HashPassword("password123"))
}

func TestHashPasswordNeverEchoesPlaintext(t *testing.T) {
	digest := HashPassword("password123")
	assert.NotEqual(t, "password123", digest)
	assert.NotContains(t, digest, "password123")
	assert.Len(t, digest, 32)
}

func TestHashPasswordDistinctInputs(t *testing.T) {
	assert.NotEqual(t, HashPassword("password123"), HashPassword("password124"))
}
