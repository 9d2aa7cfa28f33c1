// ntstat - network-status document inspection tool
//
// Usage:
//
//	ntstat votes [--lenient] [--config file] [file]      Parse a blob of votes
//	ntstat consensus [--lenient] [--config file] [file]  Parse a consensus blob
//	ntstat version                                       Print version info
//
// Blobs may be plain, gzip- or zstd-compressed; compression is detected
// from the magic bytes. If no file is given, reads from stdin.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/pankajsharmacs18/metrics-lib/intake"
	"github.com/pankajsharmacs18/metrics-lib/netstatus"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	if cmd == "version" {
		fmt.Printf("ntstat %s\n", version)
		return
	}

	cfg, input := parseArgs(os.Args[2:])
	logger := newLogger(cfg.LogLevel)
	opts := netstatus.ParseOptions{Lenient: cfg.Lenient}

	blob, err := intake.ReadAll(input)
	if err != nil {
		logger.Fatal().Err(err).Msg("read input")
	}

	switch cmd {
	case "votes":
		votes, err := netstatus.ParseVotes(blob, opts)
		for _, vote := range votes {
			logger.Info().
				Str("digest", vote.DigestSHA1Hex).
				Str("authority", vote.Nickname).
				Time("valid_after", vote.ValidAfter).
				Int("relays", len(vote.StatusEntries)).
				Int("unrecognized", len(vote.UnrecognizedLines)).
				Msg("vote")
		}
		if err != nil {
			logger.Fatal().Err(err).Msg("parse votes")
		}
	case "consensus":
		consensuses, err := netstatus.ParseConsensuses(blob, opts)
		for _, c := range consensuses {
			logger.Info().
				Str("digest", c.DigestSHA1Hex).
				Str("flavor", c.Flavor).
				Int("method", c.ConsensusMethod).
				Time("valid_after", c.ValidAfter).
				Int("authorities", len(c.DirSources)).
				Int("relays", len(c.StatusEntries)).
				Int("unrecognized", len(c.UnrecognizedLines)).
				Msg("consensus")
		}
		if err != nil {
			logger.Fatal().Err(err).Msg("parse consensuses")
		}
	default:
		fmt.Fprintf(os.Stderr, "ntstat: unknown command %q\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

// parseArgs handles the per-command flags and resolves the input source.
func parseArgs(args []string) (config, io.Reader) {
	cfg := defaultConfig()
	var input io.Reader = os.Stdin
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--lenient":
			cfg.Lenient = true
		case "--config":
			if i+1 >= len(args) {
				fatal("--config requires a file argument")
			}
			i++
			loaded, err := loadConfig(args[i])
			if err != nil {
				fatal("%v", err)
			}
			loaded.Lenient = loaded.Lenient || cfg.Lenient
			cfg = loaded
		default:
			if arg == "-" {
				continue
			}
			f, err := os.Open(arg)
			if err != nil {
				fatal("open file: %v", err)
			}
			input = f
		}
	}
	return cfg, input
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ntstat: "+format+"\n", args...)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `ntstat - network-status document inspection tool

Usage:
  ntstat votes [--lenient] [--config file] [file]
  ntstat consensus [--lenient] [--config file] [file]
  ntstat version

If no file is given, reads from stdin. Compressed (gzip/zstd) blobs are
decompressed transparently.`)
}
