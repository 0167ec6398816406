// Command profile is a pprof wrapper around the simulator, used to find
// hot paths in the cycle loop the way cmd/profile does for M2Sim's
// emulation and timing modes.
//
// Usage:
//
//	go run ./cmd/profile -trace <file> [-cpuprofile out.prof] [-memprofile out.prof]
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sarchlab/procsim/config"
	"github.com/sarchlab/procsim/report"
	"github.com/sarchlab/procsim/sim"
	"github.com/sarchlab/procsim/trace"
)

var (
	tracePath  = flag.String("trace", "", "trace file to replay (required)")
	cpuProfile = flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile = flag.String("memprofile", "", "write memory profile to file")
	configPath = flag.String("config", "", "path to a SimulatorConfig JSON file")
)

func main() {
	flag.Parse()

	if *tracePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: profile -trace <file> [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	reader, closer, err := trace.OpenFileReader(*tracePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening trace: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	reporter := report.New(discard{})

	start := time.Now()
	s := sim.New(cfg, reader, reporter)
	rep := s.Run()
	elapsed := time.Since(start)

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating memory profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()

		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing memory profile: %v\n", err)
		}
	}

	fmt.Printf("Trace: %s\n", *tracePath)
	fmt.Printf("Cycles: %d\n", rep.CycleCount)
	fmt.Printf("Retired: %d\n", rep.RetiredInstructions)
	fmt.Printf("Elapsed: %v\n", elapsed)
	if rep.CycleCount > 0 {
		fmt.Printf("Cycles/second: %.0f\n", float64(rep.CycleCount)/elapsed.Seconds())
	}
}

// discard is an io.Writer sink, used so the profiling run keeps no event
// log; each event is still formatted by the reporter before being dropped.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
