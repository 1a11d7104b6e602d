package freqcount

// Entry is an observable (token, count) pair returned by [Counter.Snapshot]
// and [Cursor.Next].
//
// Key borrows arena-owned bytes; it is valid only until the Counter that
// produced it is closed.
type Entry struct {
	Key   []byte
	Count uint64
}

// Config configures [OpenWithConfig]. The zero value of every field
// requests a derived default — callers only need to set the fields they
// care about.
type Config struct {
	// ByteBudget caps total allocator bytes_used (padding included). 0
	// means unlimited.
	ByteBudget uint64

	// InitialCapacity seeds the hash index's starting slot count. 0 means
	// platform default. Rounded up to a power of two.
	InitialCapacity uint64

	// BlockSize seeds the arena's first block size. 0 means platform
	// default.
	BlockSize uint64

	// StaticRegion, when non-nil, switches the Counter into static mode:
	// every internal allocation is bump-carved from this caller-owned
	// slice instead of the heap. The region must remain valid and
	// exclusively owned by the Counter for its lifetime.
	StaticRegion []byte

	// HashSeed is XOR-mixed into the FNV-1a basis. 0 uses the unmixed
	// basis.
	HashSeed uint32
}

// BuildInfo is an immutable, process-wide descriptor of the compile-time
// constants governing every Counter in this process.
type BuildInfo struct {
	Version         string
	MaxTokenCeiling int
	MinInitCapacity int
	MinBlockSize    int
	StackScanBuffer bool
}

// buildInfo is the single process-global BuildInfo value. It and the
// static error strings in errors.go are the only process-global state in
// this package; both are read-only after init and therefore safe for
// concurrent access from any number of Counters on any number of
// goroutines.
var buildInfo = BuildInfo{
	Version:         version,
	MaxTokenCeiling: maxTokenCeiling,
	MinInitCapacity: minInitCapacity,
	MinBlockSize:    minBlockSize,
	StackScanBuffer: true,
}

// Info returns the process-wide build descriptor.
func Info() BuildInfo {
	return buildInfo
}

const version = "1.0.0"

// Version returns the semantic version of this package's wire/behavioral
// contract.
func Version() string {
	return version
}
