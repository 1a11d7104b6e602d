// freqcount is a CLI front end over pkg/freqcount: it reads a file or
// stdin, counts ASCII-letter tokens, and reports the sorted frequency
// table. It is a collaborator of the counter, not part of its core
// contract - none of this package's I/O, flag parsing, or formatting
// logic is reachable from pkg/freqcount itself.
//
// Usage:
//
//	freqcount [options] [file]
//	freqcount --repl [options]
//
// Options:
//
//	--max-token-len N       clamp tokens to N bytes (default 64)
//	--byte-budget N         cap allocator bytes_used (default: $BYTE_BUDGET, 0=unlimited)
//	--static-region-size N  carve a static N-byte region instead of the heap
//	--hash-seed N           mix N into the FNV-1a basis
//	--format {text,json,yaml,table}
//	--out FILE              write the report atomically instead of stdout
//	--config FILE           load tuning overrides from a JSONC file
//	--repl                  open an interactive counting session
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "freqcount: error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("freqcount", pflag.ContinueOnError)

	maxTokenLen := flags.Int("max-token-len", 0, "clamp tokens to this many bytes (0 = default)")
	byteBudget := flags.Uint64("byte-budget", 0, "cap allocator bytes used (0 = $BYTE_BUDGET or unlimited)")
	staticRegionSize := flags.Uint64("static-region-size", 0, "carve a static region of this size instead of using the heap")
	hashSeed := flags.Uint32("hash-seed", 0, "value mixed into the FNV-1a basis")
	format := flags.String("format", "text", "output format: text, json, yaml, table")
	outPath := flags.String("out", "", "write the report to this file atomically instead of stdout")
	configPath := flags.String("config", "", "load tuning overrides from a JSONC file")
	repl := flags.Bool("repl", false, "open an interactive counting session")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: freqcount [options] [file]\n\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return err
	}

	opts := cliOptions{
		maxTokenLen:      *maxTokenLen,
		byteBudget:       *byteBudget,
		staticRegionSize: *staticRegionSize,
		hashSeed:         *hashSeed,
		format:           *format,
		outPath:          *outPath,
	}

	if *configPath != "" {
		fileOpts, err := loadConfigFile(*configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		opts = mergeConfigFile(opts, fileOpts)
	}

	opts.byteBudget = resolveByteBudget(opts.byteBudget, flags.Changed("byte-budget"))

	counter, err := opts.openCounter()
	if err != nil {
		return fmt.Errorf("opening counter: %w", err)
	}

	defer counter.Close()

	if *repl {
		return runREPL(counter)
	}

	if err := ingestArg(counter, flags.Arg(0)); err != nil {
		return err
	}

	return writeReport(counter, opts.format, opts.outPath)
}
