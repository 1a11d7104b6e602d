package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-runewidth"
	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/KrishRVH/word-frequency-counter/pkg/freqcount"
)

// reportEntry is the serializable shape of one frequency-table row; it
// exists so json/yaml output carries a string key instead of freqcount's
// borrowed []byte, which must not be serialized after the counter closes.
type reportEntry struct {
	Token string `json:"token" yaml:"token"`
	Count uint64 `json:"count" yaml:"count"`
}

type report struct {
	Total   uint64        `json:"total" yaml:"total"`
	Unique  uint64        `json:"unique" yaml:"unique"`
	Entries []reportEntry `json:"entries" yaml:"entries"`
}

// writeReport snapshots counter, renders it in the requested format, and
// writes the result to outPath (atomically) or stdout when outPath is
// empty.
func writeReport(counter *freqcount.Counter, format, outPath string) error {
	entries, err := counter.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshotting counter: %w", err)
	}

	rep := report{
		Total:  counter.Total(),
		Unique: counter.Unique(),
	}

	for _, e := range entries {
		rep.Entries = append(rep.Entries, reportEntry{Token: string(e.Key), Count: e.Count})
	}

	var buf bytes.Buffer

	if err := renderReport(&buf, rep, format); err != nil {
		return err
	}

	if outPath == "" {
		_, err := io.Copy(os.Stdout, &buf)

		return err
	}

	// atomic.WriteFile writes to a temp file in the same directory and
	// renames over the destination, so a crash mid-write never leaves a
	// truncated report at outPath.
	return atomic.WriteFile(outPath, &buf)
}

func renderReport(w io.Writer, rep report, format string) error {
	switch format {
	case "", "text":
		return renderText(w, rep)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(rep)
	case "yaml":
		data, err := yaml.Marshal(rep)
		if err != nil {
			return err
		}

		_, err = w.Write(data)

		return err
	case "table":
		return renderTable(w, rep)
	default:
		return fmt.Errorf("unknown format %q (want text, json, yaml, or table)", format)
	}
}

func renderText(w io.Writer, rep report) error {
	if _, err := fmt.Fprintf(w, "total=%d unique=%d\n", rep.Total, rep.Unique); err != nil {
		return err
	}

	for _, e := range rep.Entries {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", e.Token, e.Count); err != nil {
			return err
		}
	}

	return nil
}

// renderTable right-pads the token column to the widest entry, measured
// with go-runewidth so a token column padded alongside wide-rune display
// data (e.g. a source filename echoed in a future --annotate mode) still
// lines up under a monospace terminal.
func renderTable(w io.Writer, rep report) error {
	width := runewidth.StringWidth("TOKEN")

	for _, e := range rep.Entries {
		if wd := runewidth.StringWidth(e.Token); wd > width {
			width = wd
		}
	}

	if _, err := fmt.Fprintf(w, "%s  COUNT\n", runewidth.FillRight("TOKEN", width)); err != nil {
		return err
	}

	for _, e := range rep.Entries {
		padded := runewidth.FillRight(e.Token, width)
		if _, err := fmt.Fprintf(w, "%s  %d\n", padded, e.Count); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\ntotal=%d unique=%d\n", rep.Total, rep.Unique); err != nil {
		return err
	}

	return nil
}
