// Command layout runs the floor-plan layout pipeline against a plan file and
// prints (or saves) the resulting Layout.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/archiplan/floorplan/pkg/export"
	"github.com/archiplan/floorplan/pkg/floorplan"
)

const version = "0.1.0"

// Exit codes.
const (
	exitSuccess         = 0
	exitInvalidInput    = 1
	exitNoFeasibleSpace = 2
	exitTimeoutPartial  = 3
	exitUnexpectedError = 4
)

var (
	configPath string
	outPath    string
	seedFlag   uint64
	svgPath    string
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:     "layout PLAN_FILE",
		Short:   "Produce an ilot/corridor Layout from a floor-plan JSON file",
		Version: version,
		Args:    cobra.ExactArgs(1),
		RunE:    runLayout,
	}

	root.Flags().StringVar(&configPath, "config", "", "path to a placement/corridor config file (YAML or JSON); defaults are used when omitted")
	root.Flags().StringVar(&outPath, "out", "", "write the resulting Layout JSON here instead of stdout")
	root.Flags().Uint64Var(&seedFlag, "seed", 0, "override the config's placement seed (0 = keep config value)")
	root.Flags().StringVar(&svgPath, "svg", "", "also render the Layout to this SVG file")
	root.Flags().BoolVar(&verbose, "verbose", false, "print stage timings and stats to stderr")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUnexpectedError)
	}
}

func runLayout(cmd *cobra.Command, args []string) error {
	planPath := args[0]

	plan, err := loadPlan(planPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitInvalidInput)
		return nil
	}

	cfg := floorplan.DefaultConfig()
	if configPath != "" {
		loaded, err := floorplan.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitInvalidInput)
			return nil
		}
		cfg = *loaded
	}
	if seedFlag != 0 {
		cfg.Placement.Seed = seedFlag
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Running layout pipeline (seed=%d, strategy=%s)\n", cfg.Placement.Seed, cfg.Placement.Strategy)
	}

	start := time.Now()
	result, err := floorplan.ProduceLayout(context.Background(), plan, cfg)
	elapsed := time.Since(start)

	if err != nil {
		if coreErr, ok := err.(*floorplan.CoreError); ok && coreErr.Kind == floorplan.NoFeasibleSpace {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitNoFeasibleSpace)
			return nil
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitInvalidInput)
		return nil
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Run %s completed in %v: %d ilots, %d corridors, kernel_mode=%s\n",
			result.RunID, elapsed, len(result.Ilots), len(result.Corridors), result.Stats.KernelMode)
		for _, w := range result.Stats.Warnings {
			fmt.Fprintf(os.Stderr, "  warning: %s\n", w)
		}
	}

	if svgPath != "" {
		if err := export.SaveSVGToFile(plan, result, svgPath, export.DefaultSVGOptions()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to write SVG: %v\n", err)
			os.Exit(exitUnexpectedError)
			return nil
		}
	}

	if outPath != "" {
		if err := export.SaveJSONToFile(result, outPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to write output: %v\n", err)
			os.Exit(exitUnexpectedError)
			return nil
		}
		if verbose {
			info, statErr := os.Stat(outPath)
			if statErr == nil {
				fmt.Fprintf(os.Stderr, "Wrote %d bytes to %s\n", info.Size(), outPath)
			}
		}
	} else {
		data, err := export.ExportJSON(result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitUnexpectedError)
			return nil
		}
		fmt.Println(string(data))
	}

	if result.Stats.TimedOut {
		os.Exit(exitTimeoutPartial)
	}
	return nil
}

func loadPlan(path string) (*floorplan.FloorPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file %s: %w", filepath.Clean(path), err)
	}
	var plan floorplan.FloorPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parsing plan JSON: %w", err)
	}
	return &plan, nil
}
