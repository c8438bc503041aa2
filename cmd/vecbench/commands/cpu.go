package commands

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/chaisql/vecbench/internal/simd"
	"github.com/klauspost/cpuid/v2"
	"github.com/urfave/cli/v3"
)

// NewCPUCommand returns a cli.Command for "vecbench cpu".
func NewCPUCommand() *cli.Command {
	return &cli.Command{
		Name:  "cpu",
		Usage: "Describe the CPU and the kernel used for each vector width",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "features",
				Usage: "List every feature reported by the CPU.",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return describeCPU(stdout(cmd), cmd.Bool("features"))
		},
	}
}

// errWriter keeps the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

func describeCPU(w io.Writer, features bool) error {
	c := cpuid.CPU
	ew := errWriter{w: w}

	ew.printf("CPU:        %s (%s)\n", c.BrandName, c.VendorString)
	ew.printf("Arch:       %s/%s\n", runtime.GOOS, runtime.GOARCH)
	ew.printf("Cores:      %d physical, %d logical\n", c.PhysicalCores, c.LogicalCores)
	ew.printf("Cache line: %d bytes\n", c.CacheLine)
	ew.printf("L1D/L2/L3:  %d/%d/%d bytes\n", c.Cache.L1D, c.Cache.L2, c.Cache.L3)
	ew.printf("POPCNT %v, AVX2 %v, AVX-512F %v\n",
		c.Supports(cpuid.POPCNT), c.Supports(cpuid.AVX2), c.Supports(cpuid.AVX512F))

	ew.printf("\nKernels:\n")
	for _, width := range simd.Widths {
		k := simd.Select(width)
		ew.printf("  %-7s %-12s hardware=%v\n", width, k, k.Hardware())
	}
	ew.printf("  default %s\n", simd.Best())

	if features {
		ew.printf("\nFeatures: %s\n", strings.Join(c.FeatureSet(), " "))
	}

	return ew.err
}
