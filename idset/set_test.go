package idset_test

import (
	"testing"

	"github.com/leafbridge/leafbridge-hello/idset"
	"github.com/stretchr/testify/assert"
)

func TestSetOf(t *testing.T) {
	set := idset.Of("b", "a")
	assert.True(t, set.Contains("a"))
	assert.False(t, set.Contains("c"))
	assert.True(t, set.ContainsAll("a", "b"))
	assert.True(t, set.ContainsAll())
	assert.False(t, set.ContainsAll("a", "c"))
	assert.True(t, set.ContainsAny("c", "b"))
	assert.False(t, set.ContainsAny())

	clone := set.Clone()
	clone.Add("c")
	assert.False(t, set.Contains("c"), "clone must not share storage")
	assert.Equal(t, []string{"a", "b", "c"}, clone.Sorted())

	clone.Remove("a")
	assert.Equal(t, []string{"b", "c"}, clone.Sorted())
}
