package social

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalPair(t *testing.T) {
	a := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	b := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	first, second := CanonicalPair(a, b)
	assert.Equal(t, a, first)
	assert.Equal(t, b, second)

	// Order of arguments never changes the stored pair.
	first, second = CanonicalPair(b, a)
	assert.Equal(t, a, first)
	assert.Equal(t, b, second)

	first, second = CanonicalPair(a, a)
	assert.Equal(t, a, first)
	assert.Equal(t, a, second)
}
