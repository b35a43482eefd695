package cli

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Balance BalanceCmd `cmd:"" help:"Check bracket balance in a text file and count quote characters."`
	XML     XMLCmd     `cmd:"" name:"xml" help:"Check that every XML file under a directory is well-formed."`
	Beams   BeamsCmd   `cmd:"" help:"Pusher Beams push notification utilities."`
	Doctor  DoctorCmd  `cmd:"" help:"Doctor utilities for debugging bracket problems."`
}
