package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashStringsStable(t *testing.T) {
	a := HashStrings([]string{"firefox", "zoom"}, []string{"Zoom"})
	b := HashStrings([]string{"firefox", "zoom"}, []string{"Zoom"})
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestHashStringsSeparatesGroups(t *testing.T) {
	assert.NotEqual(t, HashStrings([]string{"ab"}), HashStrings([]string{"a", "b"}))
	assert.NotEqual(t, HashStrings([]string{"a"}, nil), HashStrings(nil, []string{"a"}))
}
