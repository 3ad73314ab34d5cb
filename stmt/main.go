// Command stmt replays a trader's actions and the market's corporate actions
// and prints the daily brokerage statements.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/statement/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Completion().Complete("stmt")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()

	// Unknown subcommands are looked up as stmt-<name> in the PATH.
	if name := flag.Arg(0); name != "" && !cmd.IsCommand(name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
