package lbreactive_test

import (
	"errors"
	"testing"

	"github.com/leafbridge/leafbridge-hello/lbflag"
	"github.com/leafbridge/leafbridge-hello/lbreactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardEvaluate(t *testing.T) {
	guard := lbreactive.Guard{
		When:    lbflag.FlagList{lbflag.HelloInstalled, lbflag.DatabaseConfigured},
		WhenNot: lbflag.FlagList{lbflag.GunicornConfigured},
	}

	tests := []struct {
		name  string
		flags lbflag.Set
		holds bool
	}{
		{"empty", lbflag.NewSet(), false},
		{"partial", lbflag.NewSet(lbflag.HelloInstalled), false},
		{"satisfied", lbflag.NewSet(lbflag.HelloInstalled, lbflag.DatabaseConfigured), true},
		{"excluded", lbflag.NewSet(lbflag.HelloInstalled, lbflag.DatabaseConfigured, lbflag.GunicornConfigured), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.holds, guard.Holds(tt.flags))
			assert.Equal(t, tt.holds, guard.Evaluate(tt.flags).Holds())
		})
	}

	result := guard.Evaluate(lbflag.NewSet(lbflag.GunicornConfigured))
	assert.Equal(t, lbflag.FlagList{lbflag.HelloInstalled, lbflag.DatabaseConfigured}, result.Missing)
	assert.Equal(t, lbflag.FlagList{lbflag.GunicornConfigured}, result.Present)
}

func TestHelloTableIsValid(t *testing.T) {
	table := lbreactive.HelloTable()
	require.NoError(t, table.Validate())
	assert.Len(t, table.Work(), 3)
	assert.Len(t, table.Reporters(), 1)

	gunicorn, found := table.Lookup(lbreactive.SetupGunicorn)
	require.True(t, found)
	assert.Equal(t, lbflag.FlagList{lbflag.HelloInstalled, lbflag.DatabaseConfigured}, gunicorn.Guard.When)
}

func TestTableValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		table lbreactive.Table
	}{
		{"missing ID", lbreactive.Table{{Guard: lbreactive.Guard{}}}},
		{"duplicate ID", lbreactive.Table{
			{ID: "a", Guard: lbreactive.Guard{WhenNot: lbflag.FlagList{"x"}}, Sets: lbflag.FlagList{"x"}},
			{ID: "a", Guard: lbreactive.Guard{WhenNot: lbflag.FlagList{"y"}}, Sets: lbflag.FlagList{"y"}},
		}},
		{"contradictory guard", lbreactive.Table{
			{ID: "a", Guard: lbreactive.Guard{When: lbflag.FlagList{"x"}, WhenNot: lbflag.FlagList{"x"}}},
		}},
		{"unguarded flag", lbreactive.Table{
			{ID: "a", Sets: lbflag.FlagList{"x"}},
		}},
		{"reporter sets flag", lbreactive.Table{
			{ID: "a", Kind: lbreactive.HandlerKindReporter, Guard: lbreactive.Guard{WhenNot: lbflag.FlagList{"x"}}, Sets: lbflag.FlagList{"x"}},
		}},
		{"external flag", lbreactive.Table{
			{ID: "a", Guard: lbreactive.Guard{WhenNot: lbflag.FlagList{lbflag.DatabaseAvailable}}, Sets: lbflag.FlagList{lbflag.DatabaseAvailable}},
		}},
		{"unknown kind", lbreactive.Table{{ID: "a", Kind: "other"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.table.Validate())
		})
	}
}

func TestHandlerErrorUnwraps(t *testing.T) {
	cause := errors.New("exit status 1")
	err := lbreactive.HandlerError{ID: lbreactive.InstallHello, Label: "Install", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "install-hello")
	assert.Contains(t, err.Error(), "exit status 1")
}

func TestOverlayBehavior(t *testing.T) {
	out := lbreactive.OverlayBehavior(
		lbreactive.Behavior{OnError: lbreactive.OnErrorStop},
		lbreactive.Behavior{},
		lbreactive.Behavior{OnError: lbreactive.OnErrorContinue},
	)
	assert.Equal(t, lbreactive.OnErrorContinue, out.OnError)
	assert.Error(t, lbreactive.OnErrorBehavior("explode").Validate())
}
