// Command procsim runs the out-of-order pipeline simulator against a
// decoded instruction trace and reports per-stage events and summary
// statistics, or generates a synthetic trace file for testing.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/procsim/config"
	"github.com/sarchlab/procsim/report"
	"github.com/sarchlab/procsim/sim"
	"github.com/sarchlab/procsim/trace"
	"github.com/sarchlab/procsim/workloads"
)

var (
	rFlag       uint64
	k0Flag      uint64
	k1Flag      uint64
	k2Flag      uint64
	fFlag       uint64
	configPath  string
	eventsPath  string
	progressN   uint64
	verboseFlag bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "procsim: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "procsim",
		Short: "A Tomasulo-style out-of-order pipeline simulator",
	}

	root.AddCommand(runCmd(), genCmd())
	return root
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <trace-file>",
		Short: "Run the simulator against a trace file",
		Args:  cobra.ExactArgs(1),
		RunE:  runRun,
	}

	cmd.Flags().Uint64Var(&rFlag, "r", 0, "result-bus count (overrides config/defaults)")
	cmd.Flags().Uint64Var(&k0Flag, "k0", 0, "class-0 function-unit count (overrides config/defaults)")
	cmd.Flags().Uint64Var(&k1Flag, "k1", 0, "class-1 function-unit count (overrides config/defaults)")
	cmd.Flags().Uint64Var(&k2Flag, "k2", 0, "class-2 function-unit count (overrides config/defaults)")
	cmd.Flags().Uint64Var(&fFlag, "f", 0, "fetch rate per cycle (overrides config/defaults)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a SimulatorConfig JSON file")
	cmd.Flags().StringVar(&eventsPath, "events", "", "path to write per-cycle stage events (default: stdout)")
	cmd.Flags().Uint64Var(&progressN, "progress", 10000, "print a progress line to stderr every N cycles (0 disables)")
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "print the final statistics report to stderr")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	reader, closer, err := trace.OpenFileReader(args[0])
	if err != nil {
		return err
	}
	defer closer.Close()

	eventsOut := os.Stdout
	if eventsPath != "" {
		f, err := os.Create(eventsPath)
		if err != nil {
			return fmt.Errorf("failed to create events output file: %w", err)
		}
		defer f.Close()
		eventsOut = f
	}
	reporter := report.New(eventsOut)

	var opts []sim.Option
	if progressN > 0 {
		opts = append(opts, sim.WithProgressHook(func(cycle uint64, rsLen, rsCap, dqLen int) {
			if cycle%progressN == 0 {
				fmt.Fprintf(os.Stderr, "Cycle %d: RS=%d/%d, DQ=%d\n", cycle, rsLen, rsCap, dqLen)
			}
		}))
	}

	s := sim.New(cfg, reader, reporter, opts...)
	rep := s.Run()

	if verboseFlag {
		fmt.Fprintf(os.Stderr, "run %s\n", rep.RunID)
		fmt.Fprintf(os.Stderr, "cycles=%d retired=%d avg_fired=%.4f avg_retired=%.4f avg_disp=%.4f max_disp=%d\n",
			rep.CycleCount, rep.RetiredInstructions, rep.AvgInstFired, rep.AvgInstRetired, rep.AvgDispSize, rep.MaxDispSize)
	}

	return nil
}

func resolveConfig() (*config.SimulatorConfig, error) {
	var cfg *config.SimulatorConfig
	var err error

	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.DefaultConfig()
	}

	if rFlag > 0 {
		cfg.R = rFlag
	}
	if k0Flag > 0 {
		cfg.K0 = k0Flag
	}
	if k1Flag > 0 {
		cfg.K1 = k1Flag
	}
	if k2Flag > 0 {
		cfg.K2 = k2Flag
	}
	if fFlag > 0 {
		cfg.F = fFlag
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func genCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen <workload-name> <out-file>",
		Short: "Write one of the standard workload traces to a file",
		Args:  cobra.ExactArgs(2),
		RunE:  runGen,
	}
}

func runGen(cmd *cobra.Command, args []string) error {
	name, outPath := args[0], args[1]

	var entries []trace.Entry
	found := false
	for _, w := range workloads.All() {
		if w.Name == name {
			entries = w.Entries
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("unknown workload %q", name)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create trace output file: %w", err)
	}
	defer f.Close()

	return trace.WriteTrace(f, entries)
}
