package lbreactive

import "github.com/leafbridge/leafbridge-hello/lbflag"

// Handler IDs for the hello application.
const (
	InstallHello    HandlerID = "install-hello"
	SetupDatabase   HandlerID = "setup-database"
	SetupGunicorn   HandlerID = "setup-gunicorn"
	WaitForDatabase HandlerID = "wait-for-database"
)

// HelloTable returns the handler table for the hello application, in
// declaration order.
func HelloTable() Table {
	return Table{
		{
			ID:    InstallHello,
			Label: "Install the hello app",
			Kind:  HandlerKindWork,
			Guard: Guard{
				WhenNot: lbflag.FlagList{lbflag.HelloInstalled},
			},
			Sets: lbflag.FlagList{lbflag.HelloInstalled},
		},
		{
			ID:    SetupDatabase,
			Label: "Set up the database",
			Kind:  HandlerKindWork,
			Guard: Guard{
				When:    lbflag.FlagList{lbflag.DatabaseAvailable},
				WhenNot: lbflag.FlagList{lbflag.DatabaseConfigured},
			},
			Sets: lbflag.FlagList{lbflag.DatabaseConfigured},
		},
		{
			ID:    SetupGunicorn,
			Label: "Set up gunicorn",
			Kind:  HandlerKindWork,
			Guard: Guard{
				When:    lbflag.FlagList{lbflag.HelloInstalled, lbflag.DatabaseConfigured},
				WhenNot: lbflag.FlagList{lbflag.GunicornConfigured},
			},
			Sets: lbflag.FlagList{lbflag.GunicornConfigured},
		},
		{
			ID:    WaitForDatabase,
			Label: "Wait for a database",
			Kind:  HandlerKindReporter,
			Guard: Guard{
				When:    lbflag.FlagList{lbflag.HelloInstalled},
				WhenNot: lbflag.FlagList{lbflag.DatabaseAvailable},
			},
		},
	}
}
