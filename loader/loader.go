// Package loader parses graph input files into *core.Graph values for
// kspdiv's benchmark CLI. Two textual formats are recognized: plain
// whitespace-separated edge lists ("u v" or "u v w") and DIMACS challenge-9
// arc lines ("a u v w", with "c"/"p" lines skipped). Either may be
// transparently gzip-compressed.
package loader

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kspdiv/kspdiv/core"
)

// Load reads the graph file at path and returns a directed, weighted
// *core.Graph. Format and gzip-wrapping are both auto-detected.
func Load(path string) (*core.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open %s: %w", path, err)
	}
	defer f.Close()

	r, err := maybeGunzip(f)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", path, err)
	}
	if rc, ok := r.(io.Closer); ok {
		defer rc.Close()
	}

	g := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	seenEdge := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch line[0] {
		case 'c', 'p':
			// DIMACS comment/problem line.
			continue
		case '#':
			// SNAP-style comment line (SNAP header lines start with "#").
			continue
		}

		fields := strings.Fields(line)
		var u, v string
		var weight int64 = 1
		switch {
		case fields[0] == "a" && len(fields) >= 4:
			u, v = fields[1], fields[2]
			w, err := strconv.ParseInt(fields[3], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("loader: %s: bad arc weight %q: %w", path, fields[3], err)
			}
			weight = w
		case len(fields) >= 2 && fields[0] != "a":
			u, v = fields[0], fields[1]
			if len(fields) >= 3 {
				w, err := strconv.ParseInt(fields[2], 10, 64)
				if err != nil {
					return nil, fmt.Errorf("loader: %s: bad edge weight %q: %w", path, fields[2], err)
				}
				weight = w
			}
		default:
			continue
		}

		if _, err := g.AddEdge(u, v, weight); err != nil {
			return nil, fmt.Errorf("loader: %s: add edge %s->%s: %w", path, u, v, err)
		}
		seenEdge = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loader: %s: %w", path, err)
	}
	if !seenEdge {
		return nil, fmt.Errorf("loader: %s: no edges parsed", path)
	}
	return g, nil
}

// maybeGunzip sniffs the gzip magic header and, if present, wraps r in a
// gzip.Reader; otherwise it returns r unchanged.
func maybeGunzip(f *os.File) (io.Reader, error) {
	magic := make([]byte, 2)
	n, err := f.Read(magic)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	if n == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		return gzip.NewReader(f)
	}
	return f, nil
}
