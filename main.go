// Package main provides the entry point for ProcSim.
// ProcSim is a Tomasulo-style out-of-order pipeline simulator.
//
// For the full CLI, use: go run ./cmd/procsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("ProcSim - Out-of-Order Pipeline Simulator")
	fmt.Println("")
	fmt.Println("Usage: procsim <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  run <trace-file>           Run the simulator against a trace file")
	fmt.Println("  gen <workload> <out-file>  Write a standard workload trace to a file")
	fmt.Println("")
	fmt.Println("Options (run):")
	fmt.Println("  --r --k0 --k1 --k2 --f     Resource configuration overrides")
	fmt.Println("  --config                   Path to a SimulatorConfig JSON file")
	fmt.Println("  --events                   Path to write per-cycle stage events")
	fmt.Println("  --progress                 Print a progress line every N cycles")
	fmt.Println("  -v, --verbose              Print the final statistics report")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/procsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/procsim' instead.")
	}
}
