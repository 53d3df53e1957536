package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/leafbridge/leafbridge-hello/lbengine"
	"github.com/leafbridge/leafbridge-hello/lbflag"
	"github.com/leafbridge/leafbridge-hello/lbunit"
)

// ShowCmd shows information that is relevant to the hello application unit.
type ShowCmd struct {
	Config   ShowConfigCmd   `kong:"cmd,help='Shows configuration loaded from a unit configuration file.'"`
	Flags    ShowFlagsCmd    `kong:"cmd,help='Shows the persisted flags.'"`
	Status   ShowStatusCmd   `kong:"cmd,help='Shows the last reported unit status.'"`
	Handlers ShowHandlersCmd `kong:"cmd,help='Shows which handlers would run if the unit were invoked now.'"`
}

var (
	headingColor = color.New(color.Bold)
	setColor     = color.New(color.FgGreen)
	unsetColor   = color.New(color.FgHiBlack)
	blockedColor = color.New(color.FgYellow)
)

// ShowConfigCmd shows the configuration of the hello application unit.
type ShowConfigCmd struct {
	ConfigFile string `kong:"required,name='config-file',env='HELLO_CONFIG_FILE',help='Path to a YAML file holding the unit configuration.'"`
}

// Run executes the hello show config command.
func (cmd ShowConfigCmd) Run(ctx context.Context) error {
	// Read the unit configuration.
	config, err := lbunit.LoadConfig(cmd.ConfigFile)
	if err != nil {
		return err
	}

	headingColor.Printf("---- Configuration (%s) ----\n", cmd.ConfigFile)
	for _, key := range config.Keys() {
		fmt.Printf("  %-14s %s\n", key+":", config.Value(key))
	}

	// Report required keys that are missing.
	if err := config.Require(lbunit.ConfigAppDir, lbunit.ConfigAppVenvDir, lbunit.ConfigAppRepoURL); err != nil {
		blockedColor.Printf("  %s\n", err)
	}

	return nil
}

// ShowFlagsCmd shows the flags persisted for the hello application unit.
type ShowFlagsCmd struct {
	State string `kong:"required,name='state',env='HELLO_STATE',help='Path to the persisted flag state. Paths ending in .db use SQLite.'"`
}

// Run executes the hello show flags command.
func (cmd ShowFlagsCmd) Run(ctx context.Context) error {
	store, err := lbflag.OpenStore(cmd.State)
	if err != nil {
		return err
	}
	defer store.Close()

	flags, err := store.Load(ctx)
	if err != nil {
		return err
	}

	headingColor.Printf("---- Flags (%s) ----\n", cmd.State)
	for _, f := range []lbflag.Flag{lbflag.HelloInstalled, lbflag.DatabaseConfigured, lbflag.GunicornConfigured} {
		if flags.Contains(f) {
			setColor.Printf("  %-22s set\n", f)
		} else {
			unsetColor.Printf("  %-22s not set\n", f)
		}
	}

	return nil
}

// ShowStatusCmd shows the last status reported by the hello application
// unit.
type ShowStatusCmd struct {
	StatusFile string `kong:"required,name='status-file',env='HELLO_STATUS_FILE',help='Path to a JSON file that receives the unit status.'"`
}

// Run executes the hello show status command.
func (cmd ShowStatusCmd) Run(ctx context.Context) error {
	status, err := lbunit.ReadStatus(cmd.StatusFile)
	if err != nil {
		return err
	}

	headingColor.Printf("---- Status (%s) ----\n", cmd.StatusFile)
	if status.Tag == "" {
		unsetColor.Println("  No status has been reported.")
		return nil
	}

	c := setColor
	switch status.Tag {
	case lbunit.StatusBlocked:
		c = blockedColor
	case lbunit.StatusMaintenance:
		c = unsetColor
	}
	c.Printf("  %s: %s\n", status.Tag, status.Message)
	fmt.Printf("  Updated: %s\n", status.Updated.Local().Format("2006-01-02 15:04:05"))
	for _, port := range status.Ports {
		fmt.Printf("  Port:    %s\n", port)
	}

	return nil
}

// ShowHandlersCmd shows how each handler's guard evaluates against the
// current state.
type ShowHandlersCmd struct {
	ConfigFile string `kong:"optional,name='config-file',env='HELLO_CONFIG_FILE',help='Path to a YAML file holding the unit configuration.'"`
	State      string `kong:"required,name='state',env='HELLO_STATE',help='Path to the persisted flag state. Paths ending in .db use SQLite.'"`
	DBRelation string `kong:"optional,name='db-relation',env='HELLO_DB_RELATION',help='Path to a YAML file holding the database endpoint.'"`
}

// Run executes the hello show handlers command.
func (cmd ShowHandlersCmd) Run(ctx context.Context) error {
	var config lbunit.Config
	if cmd.ConfigFile != "" {
		var err error
		if config, err = lbunit.LoadConfig(cmd.ConfigFile); err != nil {
			return err
		}
	}

	store, err := lbflag.OpenStore(cmd.State)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := lbengine.Options{
		Store:  store,
		Config: config,
	}
	if cmd.DBRelation != "" {
		opts.Database = lbunit.EndpointFile{Path: cmd.DBRelation}
	}

	plan, err := lbengine.NewHelloController(opts).Plan(ctx)
	if err != nil {
		return err
	}

	headingColor.Println("---- Handlers ----")
	if plan.Flags.Len() > 0 {
		fmt.Printf("  Flags: %s\n", plan.Flags)
	}
	for _, hp := range plan.Handlers {
		if hp.Result.Holds() {
			setColor.Printf("  %-18s eligible\n", hp.Handler.ID)
		} else {
			unsetColor.Printf("  %-18s %s\n", hp.Handler.ID, hp.Result)
		}
		fmt.Printf("    %s (%s)\n", hp.Handler.Label, hp.Handler.Guard)
	}

	return nil
}
