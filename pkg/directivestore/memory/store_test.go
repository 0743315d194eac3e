package memory

import (
	"testing"

	"codeberg.org/miketth/wise/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectiveStore(t *testing.T) {
	s := NewDirectiveStore()

	_, found, err := s.LastDirective("com.apple.safari")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.SetLastDirective("com.apple.safari", geometry.Right))
	require.NoError(t, s.SetLastDirective("com.apple.safari", geometry.Left))

	directive, found, err := s.LastDirective("com.apple.safari")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, geometry.Left, directive)
}
