package commands

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

// NewVersionCommand returns a cli.Command for "vecbench version".
func NewVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Shows vecbench version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := stdout(cmd)
			info, ok := debug.ReadBuildInfo()

			if !ok {
				fmt.Fprintln(w, `version not available in GOPATH mode; use "go install" with Go modules enabled`)
				return nil
			}

			version := info.Main.Version
			if version == "" {
				version = "(devel)"
			}
			_, err := fmt.Fprintf(w, "vecbench %v\n%v\n", version, info.GoVersion)
			return err
		},
	}
}
