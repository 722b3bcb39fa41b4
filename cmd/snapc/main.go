// Command snapc compiles JSX element trees into Lynx snapshot definitions.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/snapc/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands print their own errors; cobra usage errors do not.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
