package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/KrishRVH/word-frequency-counter/pkg/freqcount"
)

// runREPL drives an interactive peterh/liner session over counter: every
// plain line is scanned as text, and a handful of `:`-prefixed commands
// inspect state without affecting it.
func runREPL(counter *freqcount.Counter) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(replCompleter)

	if f, err := os.Open(historyFile()); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("freqcount %s - type text to scan, :help for commands\n", freqcount.Version())

	for {
		input, err := line.Prompt("freqcount> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println()

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line.AppendHistory(input)

		if strings.HasPrefix(strings.TrimSpace(input), ":") {
			if !replCommand(counter, strings.TrimSpace(input)) {
				break
			}

			continue
		}

		if err := counter.Scan([]byte(input)); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}

	if f, err := os.Create(historyFile()); err == nil {
		line.WriteHistory(f)
		f.Close()
	}

	return nil
}

// replCommand executes one `:`-prefixed command and reports whether the
// REPL should keep running.
func replCommand(counter *freqcount.Counter, cmd string) bool {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return true
	}

	switch fields[0] {
	case ":quit", ":exit", ":q":
		return false

	case ":total":
		fmt.Printf("total=%d\n", counter.Total())

	case ":unique":
		fmt.Printf("unique=%d\n", counter.Unique())

	case ":top":
		n := 10

		if len(fields) >= 2 {
			if parsed, err := strconv.Atoi(fields[1]); err == nil && parsed > 0 {
				n = parsed
			}
		}

		printTop(counter, n)

	case ":help", ":?":
		fmt.Println(":total          show cumulative token count")
		fmt.Println(":unique         show distinct token count")
		fmt.Println(":top [N]        show the N most frequent tokens (default 10)")
		fmt.Println(":quit           exit")

	default:
		fmt.Printf("unknown command: %s (try :help)\n", fields[0])
	}

	return true
}

func printTop(counter *freqcount.Counter, n int) {
	entries, err := counter.Snapshot()
	if err != nil {
		fmt.Printf("error: %v\n", err)

		return
	}

	if len(entries) > n {
		entries = entries[:n]
	}

	for i, e := range entries {
		fmt.Printf("%3d. %-20s %d\n", i+1, string(e.Key), e.Count)
	}
}

func replCompleter(line string) []string {
	commands := []string{":total", ":unique", ":top", ":help", ":quit", ":exit"}

	var out []string

	for _, c := range commands {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}

	return out
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".freqcount_history")
}
