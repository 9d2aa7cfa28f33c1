// bench - network-status parse throughput runner
//
// Parses each given blob repeatedly and reports:
//   - Documents and relay entries per second
//   - Bytes per second over the decompressed input
//
// Output: CSV plus a summary on stdout
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pankajsharmacs18/metrics-lib/intake"
	"github.com/pankajsharmacs18/metrics-lib/netstatus"
)

type caseResult struct {
	Name       string
	Kind       string
	Bytes      int
	Documents  int
	Relays     int
	Iterations int
	Elapsed    time.Duration
}

func (r caseResult) docsPerSec() float64 {
	return float64(r.Documents*r.Iterations) / r.Elapsed.Seconds()
}

func (r caseResult) mbPerSec() float64 {
	return float64(r.Bytes*r.Iterations) / r.Elapsed.Seconds() / (1 << 20)
}

func main() {
	iterations := 100
	var files []string
	for i := 1; i < len(os.Args); i++ {
		switch arg := os.Args[i]; arg {
		case "--iterations":
			if i+1 >= len(os.Args) {
				fmt.Fprintln(os.Stderr, "--iterations requires a value")
				os.Exit(1)
			}
			i++
			n, err := strconv.Atoi(os.Args[i])
			if err != nil || n < 1 {
				fmt.Fprintf(os.Stderr, "illegal iteration count %q\n", os.Args[i])
				os.Exit(1)
			}
			iterations = n
		default:
			files = append(files, arg)
		}
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: bench [--iterations n] blob...")
		fmt.Fprintln(os.Stderr, "Blob kind is taken from the filename: *vote* parses as votes,")
		fmt.Fprintln(os.Stderr, "everything else as consensuses.")
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Network-Status Parse Benchmark\n")
	fmt.Fprintf(os.Stderr, "==============================\n")
	fmt.Fprintf(os.Stderr, "Blobs: %d, iterations: %d\n\n", len(files), iterations)

	var results []caseResult
	for _, file := range files {
		result, err := runCase(file, iterations)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skip %s: %v\n", file, err)
			continue
		}
		results = append(results, result)
	}

	csvPath := "bench_results.csv"
	if csvFile, err := os.Create(csvPath); err == nil {
		writeCSV(csvFile, results)
		csvFile.Close()
		fmt.Fprintf(os.Stderr, "CSV written to: %s\n", csvPath)
	}

	var totalBytes, totalDocs, totalRelays int
	var totalElapsed time.Duration
	for _, r := range results {
		totalBytes += r.Bytes * r.Iterations
		totalDocs += r.Documents * r.Iterations
		totalRelays += r.Relays * r.Iterations
		totalElapsed += r.Elapsed
	}
	fmt.Printf("\n=== SUMMARY ===\n")
	fmt.Printf("Blobs:      %d\n", len(results))
	fmt.Printf("Documents:  %d\n", totalDocs)
	fmt.Printf("Relays:     %d\n", totalRelays)
	fmt.Printf("Throughput: %.1f MB/s, %.0f docs/s\n",
		float64(totalBytes)/totalElapsed.Seconds()/(1<<20),
		float64(totalDocs)/totalElapsed.Seconds())
}

func runCase(file string, iterations int) (caseResult, error) {
	f, err := os.Open(file)
	if err != nil {
		return caseResult{}, err
	}
	defer f.Close()
	blob, err := intake.ReadAll(f)
	if err != nil {
		return caseResult{}, err
	}

	kind := "consensus"
	if strings.Contains(filepath.Base(file), "vote") {
		kind = "votes"
	}

	result := caseResult{
		Name:       filepath.Base(file),
		Kind:       kind,
		Bytes:      len(blob),
		Iterations: iterations,
	}
	start := time.Now()
	for i := 0; i < iterations; i++ {
		docs, relays, err := parseOnce(blob, kind)
		if err != nil {
			return caseResult{}, err
		}
		result.Documents = docs
		result.Relays = relays
	}
	result.Elapsed = time.Since(start)
	return result, nil
}

func parseOnce(blob []byte, kind string) (docs, relays int, err error) {
	if kind == "votes" {
		votes, err := netstatus.ParseVotes(blob, netstatus.ParseOptions{})
		if err != nil {
			return 0, 0, err
		}
		for _, v := range votes {
			relays += len(v.StatusEntries)
		}
		return len(votes), relays, nil
	}
	consensuses, err := netstatus.ParseConsensuses(blob, netstatus.ParseOptions{})
	if err != nil {
		return 0, 0, err
	}
	for _, c := range consensuses {
		relays += len(c.StatusEntries)
	}
	return len(consensuses), relays, nil
}

func writeCSV(w io.Writer, results []caseResult) {
	fmt.Fprintln(w, "name,kind,bytes,documents,relays,iterations,elapsed_ms,docs_per_sec,mb_per_sec")
	for _, r := range results {
		fmt.Fprintf(w, "%s,%s,%d,%d,%d,%d,%.1f,%.0f,%.2f\n",
			r.Name, r.Kind, r.Bytes, r.Documents, r.Relays, r.Iterations,
			float64(r.Elapsed.Milliseconds()), r.docsPerSec(), r.mbPerSec())
	}
}
