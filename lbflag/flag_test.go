package lbflag_test

import (
	"testing"

	"github.com/leafbridge/leafbridge-hello/lbflag"
	"github.com/stretchr/testify/assert"
)

func TestSetIsMonotonic(t *testing.T) {
	var set lbflag.Set
	assert.False(t, set.Contains(lbflag.HelloInstalled))

	assert.True(t, set.Add(lbflag.HelloInstalled))
	assert.False(t, set.Add(lbflag.HelloInstalled), "setting a flag twice is not a change")
	assert.True(t, set.Contains(lbflag.HelloInstalled))

	snapshot := set.Clone()
	set.Add(lbflag.DatabaseConfigured)
	assert.False(t, snapshot.Contains(lbflag.DatabaseConfigured), "snapshots are independent")
	assert.Equal(t, lbflag.FlagList{lbflag.DatabaseConfigured, lbflag.HelloInstalled}, set.Sorted())
	assert.Equal(t, "database.configured, hello.installed", set.String())
}

func TestSetWithout(t *testing.T) {
	set := lbflag.NewSet(lbflag.HelloInstalled, lbflag.DatabaseConfigured)
	out := set.Without(lbflag.HelloInstalled)
	assert.True(t, set.Contains(lbflag.HelloInstalled))
	assert.False(t, out.Contains(lbflag.HelloInstalled))
	assert.Equal(t, 1, out.Len())
}

func TestFlagValidate(t *testing.T) {
	assert.NoError(t, lbflag.HelloInstalled.Validate())
	assert.Error(t, lbflag.Flag("").Validate())
	assert.Error(t, lbflag.Flag(" padded ").Validate())
}
