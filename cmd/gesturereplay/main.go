// Command gesturereplay replays gesture scripts through the touch recognizer.
package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/gesture/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !cli.Reported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
