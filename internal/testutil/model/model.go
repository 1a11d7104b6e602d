// Package model provides a deliberately simple, in-memory reference model
// of freqcount's publicly observable behavior.
//
// The model favors clarity over performance: it never truncates or hashes
// anything itself beyond what the caller feeds it, and its snapshot is
// produced by an ordinary sort.Slice call. Tests drive both the real
// Counter and the Model with the same operations and compare observable
// output (Total, Unique, Snapshot).
package model

import "sort"

// Model is a trivially-correct word-frequency oracle.
type Model struct {
	counts map[string]uint64
	total  uint64
}

// New returns an empty Model.
func New() *Model {
	return &Model{counts: make(map[string]uint64)}
}

// Add records one occurrence of tok verbatim (the caller is responsible
// for any truncation/case-folding it wants reflected, exactly as the real
// Counter requires of its own callers for Add).
func (m *Model) Add(tok string) {
	if tok == "" {
		return
	}

	m.counts[tok]++
	m.total++
}

// Total returns the cumulative number of Add calls with nonempty input.
func (m *Model) Total() uint64 {
	return m.total
}

// Unique returns the number of distinct tokens recorded.
func (m *Model) Unique() uint64 {
	return uint64(len(m.counts))
}

// Entry mirrors freqcount.Entry without importing the package under test,
// keeping the model independent of the implementation it checks.
type Entry struct {
	Key   string
	Count uint64
}

// Snapshot returns every (token, count) pair sorted by count descending,
// tie-broken lexicographically ascending - the same ordering contract as
// Counter.Snapshot.
func (m *Model) Snapshot() []Entry {
	out := make([]Entry, 0, len(m.counts))

	for k, v := range m.counts {
		out = append(out, Entry{Key: k, Count: v})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		return out[i].Key < out[j].Key
	})

	return out
}
