// Package freqcount provides an embeddable, bounded-memory word-frequency
// counter.
//
// freqcount ingests byte streams, extracts tokens under a strict
// ASCII-letter model, and maintains per-token occurrence counts with sorted
// and streaming result enumeration. It is built for callers that need
// frequency statistics as a building block under tight memory discipline:
// every internal allocation is routed through a single budgeted allocator
// that can optionally be backed by a caller-supplied fixed-size region
// instead of the heap.
//
// # Basic usage
//
//	c, err := freqcount.Open(0)
//	if err != nil {
//	    // handle allocation failure
//	}
//	defer c.Close()
//
//	_ = c.Scan([]byte("Hello World hello"))
//	entries, _ := c.Snapshot()
//	// entries == [{"hello", 2}, {"world", 1}]
//
// # Bounded / static-region usage
//
//	region := make([]byte, 64*1024)
//	c, err := freqcount.OpenWithConfig(0, freqcount.Config{
//	    StaticRegion: region,
//	})
//	if err != nil {
//	    // region too small for even the minimal configuration; Open fails
//	    // fast at construction rather than on the first Add/Scan.
//	}
//
// # Concurrency
//
// A Counter is single-threaded: all methods must be called from one
// goroutine at a time. Distinct Counters may be used concurrently on
// distinct goroutines with no coordination required.
//
// # Error handling
//
// Errors are classified with [errors.Is] against the package's sentinel
// values ([ErrInvalidArg], [ErrOutOfMemory], [ErrInvariantViolation]).
// A failed [Counter.Add] or [Counter.Scan] never corrupts the counter:
// queries, enumeration, and [Counter.Close] all remain well defined
// afterward.
package freqcount
