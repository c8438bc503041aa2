package commands

import (
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// NewApp creates the vecbench CLI app.
// Without a subcommand, it runs the benchmark.
func NewApp() *cli.Command {
	bench := NewBenchCommand()

	return &cli.Command{
		Name:                  "vecbench",
		Usage:                 "Compare scalar and vectorized execution of SELECT COUNT(*) WHERE x = 3",
		UsageText:             bench.UsageText,
		Description:           bench.Description,
		EnableShellCompletion: true,
		Flags:                 benchFlags(),
		Action:                runBench,
		Commands: []*cli.Command{
			bench,
			NewCPUCommand(),
			NewVersionCommand(),
		},
	}
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
