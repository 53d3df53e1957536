package main

import (
	"context"
	"fmt"

	"github.com/leafbridge/leafbridge-hello/lbflag"
)

// ResetCmd removes persisted flags. It is the only way a flag is ever
// removed, and is meant for reinstalling part or all of the application.
type ResetCmd struct {
	State string        `kong:"required,name='state',env='HELLO_STATE',help='Path to the persisted flag state. Paths ending in .db use SQLite.'"`
	Flags []lbflag.Flag `kong:"arg,optional,name='flag',help='Flags to remove. All flags are removed when none are given.'"`
}

// Run executes the hello reset command.
func (cmd ResetCmd) Run(ctx context.Context) error {
	for _, f := range cmd.Flags {
		if err := f.Validate(); err != nil {
			return err
		}
		if lbflag.IsExternal(f) {
			return fmt.Errorf("the \"%s\" flag is supplied by the hosting environment and is never persisted", f)
		}
	}

	store, err := lbflag.OpenStore(cmd.State)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Reset(ctx, cmd.Flags...); err != nil {
		return err
	}

	if len(cmd.Flags) == 0 {
		fmt.Println("Removed all flags.")
	} else {
		fmt.Printf("Removed %s.\n", lbflag.FlagList(cmd.Flags))
	}

	return nil
}
