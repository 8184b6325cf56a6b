package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntropy(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
	}{
		{"empty", "", 0},
		{"single repeated char", strings.Repeat("a", 64), 0},
		{"sixteen distinct chars", "abcdefghijklmnop", 4.0},
		{"thirty-two distinct chars", "aAbBcCdDeEfFgGhH1!2@3#4$5%6^7&8*", 5.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Entropy(tt.value), 0.0001)
		})
	}
}

func TestEntropyThresholdSplit(t *testing.T) {
	assert.Less(t, Entropy("aaaabbbbcccc"), EntropyThreshold)
	assert.GreaterOrEqual(t, Entropy("k8Jx!pQ2mW@9zR4vL7&nB5^cY3*eT6(u"), EntropyThreshold)
}

func TestIsLikelyBase64(t *testing.T) {
	assert.True(t, isLikelyBase64("dGhpcyBpcyBhIHNlY3JldCB2YWx1ZQ=="))
	assert.False(t, isLikelyBase64("short=="))
	assert.False(t, isLikelyBase64("not base64 at all!"))
	// unpadded input (length not a multiple of four) is not accepted
	assert.False(t, isLikelyBase64("dGhpcyBpcyBhIHNlY3JldA"))
}

func TestIsUUID(t *testing.T) {
	assert.True(t, isUUID("123e4567-e89b-12d3-a456-426614174000"))
	assert.False(t, isUUID("123e4567e89b12d3a456426614174000"))
}
