package main

import (
	"context"
	"fmt"
	"runtime/debug"
)

// VersionCmd displays version information for the program.
type VersionCmd struct{}

// Run executes the hello version command.
func (cmd VersionCmd) Run(ctx context.Context) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		fmt.Println("leafbridge-hello (unknown version)")
		return nil
	}

	version := info.Main.Version
	if version == "" {
		version = "(devel)"
	}
	fmt.Printf("leafbridge-hello %s (%s)\n", version, info.GoVersion)

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision", "vcs.time", "vcs.modified":
			fmt.Printf("  %s: %s\n", setting.Key, setting.Value)
		}
	}

	return nil
}
