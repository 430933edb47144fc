// Command kspdiv-bench drives one of the four kspdiv engines over a loaded
// or synthetic graph and prints the resulting paths, lengths, and explored
// count to stdout. It renders no charts; see SPEC_FULL.md's Non-goals.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kspdiv/kspdiv"
	"github.com/kspdiv/kspdiv/core"
	"github.com/kspdiv/kspdiv/internal/synthgraph"
	"github.com/kspdiv/kspdiv/loader"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "kspdiv-bench:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("kspdiv-bench", flag.ContinueOnError)
	graphPath := fs.String("graph", "", "path to an edge-list or DIMACS graph file (optionally gzipped)")
	synthetic := fs.Bool("synthetic", false, "ignore -graph and generate a reproducible synthetic graph instead")
	seed := fs.Uint64("seed", 1, "PRNG seed for -synthetic")
	src := fs.String("src", "", "source vertex ID")
	dest := fs.String("dest", "", "destination vertex ID")
	k := fs.Int("k", 3, "number of paths to find")
	tau := fs.Float64("tau", 0.5, "diversity similarity threshold in (0,1); ignored by -algo iterbound")
	algo := fs.String("algo", "kspd", "algorithm: kspd, kspd-, yen, or iterbound")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var g *core.Graph
	var err error
	switch {
	case *synthetic:
		g, err = synthgraph.Generate(synthgraph.DefaultOptions(*seed))
	case *graphPath != "":
		g, err = loader.Load(*graphPath)
	default:
		return fmt.Errorf("one of -graph or -synthetic is required")
	}
	if err != nil {
		return err
	}

	if *src == "" || *dest == "" {
		return fmt.Errorf("-src and -dest are required")
	}

	alg, err := parseAlgorithm(*algo)
	if err != nil {
		return err
	}

	eng, err := kspdiv.New(alg, g, *tau)
	if err != nil {
		return err
	}

	start := time.Now()
	paths, err := eng.FindPaths(*src, *dest, *k)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for i, p := range paths {
		fmt.Fprintf(out, "%d: %s (length=%d)\n", i+1, strings.Join(p.Route, " -> "), p.Length)
	}
	fmt.Fprintf(out, "paths_found=%d paths_explored=%d elapsed=%s\n", len(paths), eng.PathsExplored(), elapsed)
	return nil
}

func parseAlgorithm(s string) (kspdiv.Algorithm, error) {
	switch strings.ToLower(s) {
	case "kspd":
		return kspdiv.KSPD, nil
	case "kspd-", "kspdminus", "kspd_minus":
		return kspdiv.KSPDMinus, nil
	case "yen":
		return kspdiv.Yen, nil
	case "iterbound":
		return kspdiv.IterBound, nil
	default:
		return 0, fmt.Errorf("unknown -algo %q (want kspd, kspd-, yen, or iterbound)", s)
	}
}
