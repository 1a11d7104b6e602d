package freqcount

// Counter is a process-local word-frequency counter. It owns exactly one
// hash index and one string arena, both backed by a single allocator
// state fixed at construction (heap or a caller-supplied static region).
//
// A Counter must not be used from more than one goroutine at a time; see
// the package doc for the full concurrency contract.
type Counter struct {
	alloc        allocator
	index        *hashIndex
	arena        *stringArena
	maxTokenLen  int
	hashSeed     uint32
	total        uint64
	scanBuf      []byte // only non-nil when !buildInfo.StackScanBuffer
	closed       bool
}

// Open constructs a Counter with default configuration and the given
// max_token_len (0 requests the default of 64). Returns an error only on
// allocation failure, which cannot happen in unlimited heap mode - Open
// never fails in practice unless the process is out of memory.
func Open(maxTokenLen int) (*Counter, error) {
	return OpenWithConfig(maxTokenLen, Config{})
}

// OpenWithConfig constructs a Counter under full caller control. It
// returns ErrOutOfMemory if a static region is too small to admit even
// the minimal tuned configuration (detected by a dry-run precheck before
// any real state is committed) or if the region's base pointer is
// misaligned.
func OpenWithConfig(maxTokenLen int, cfg Config) (*Counter, error) {
	tokenLen := clampTokenLen(maxTokenLen)

	tuning, err := tuneParameters(tokenLen, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.StaticRegion != nil {
		if err := dryRunPrecheck(cfg, tuning, tokenLen); err != nil {
			return nil, err
		}
	}

	var alloc allocator

	if cfg.StaticRegion != nil {
		a, ok := newStaticAllocator(cfg.StaticRegion, cfg.ByteBudget)
		if !ok {
			return nil, ErrOutOfMemory
		}

		alloc = a
	} else {
		alloc = newHeapAllocator(cfg.ByteBudget)
	}

	index, err := newHashIndex(&alloc, tuning.capacity, cfg.StaticRegion != nil, cfg.HashSeed)
	if err != nil {
		return nil, err
	}

	arena := newStringArena(&alloc, tuning.blockSize, cfg.StaticRegion != nil)

	var scanBuf []byte

	if !buildInfo.StackScanBuffer {
		buf, err := alloc.allocate(uint64(tokenLen))
		if err != nil {
			return nil, err
		}

		scanBuf = buf
	}

	c := &Counter{
		alloc:       alloc,
		index:       index,
		arena:       arena,
		maxTokenLen: tokenLen,
		hashSeed:    cfg.HashSeed,
		scanBuf:     scanBuf,
	}

	// Every allocation above mutated the local alloc through a pointer to
	// it; alloc was then copied by value into c.alloc, so index/arena
	// must be repointed at the Counter-owned copy before any further use.
	c.index.alloc = &c.alloc
	c.arena.alloc = &c.alloc

	return c, nil
}

// Close releases every block, the slot array, the optional scan buffer,
// and the handle itself in heap mode. In static mode it only logically
// invalidates the counter - the caller-owned region is never freed by
// this package.
func (c *Counter) Close() {
	c.closed = true
	c.index = nil
	c.arena = nil
	c.scanBuf = nil
}

// Total returns the cumulative count of all Add/Scan insertions. Returns
// 0 on a nil Counter.
func (c *Counter) Total() uint64 {
	if c == nil {
		return 0
	}

	return c.total
}

// Unique returns the number of distinct tokens seen. Returns 0 on a nil
// Counter.
func (c *Counter) Unique() uint64 {
	if c == nil || c.index == nil {
		return 0
	}

	return c.index.unique
}

// clampTokenLen applies the [4, maxTokenCeiling] clamp, defaulting a
// zero request to defaultMaxTokenLen.
func clampTokenLen(requested int) int {
	if requested == 0 {
		requested = defaultMaxTokenLen
	}

	if requested < minTokenLen {
		return minTokenLen
	}

	if requested > maxTokenCeiling {
		return maxTokenCeiling
	}

	return requested
}

// tunedParameters holds the derived capacity/block-size pair computed by
// tuneParameters.
type tunedParameters struct {
	capacity  uint64
	blockSize uint64
}

// effectiveBudget computes min(byteBudget, staticRegionSize) when both are
// nonzero, else whichever is nonzero, else 0 (unlimited).
func effectiveBudget(cfg Config) uint64 {
	regionSize := uint64(len(cfg.StaticRegion))

	switch {
	case cfg.ByteBudget != 0 && regionSize != 0:
		if cfg.ByteBudget < regionSize {
			return cfg.ByteBudget
		}

		return regionSize
	case cfg.ByteBudget != 0:
		return cfg.ByteBudget
	default:
		return regionSize
	}
}

// tuneParameters derives the hash index's starting capacity and the
// arena's first block size from the caller's Config, the effective
// budget, and maxTokenLen.
func tuneParameters(maxTokenLen int, cfg Config) (tunedParameters, error) {
	budget := effectiveBudget(cfg)

	capacity := cfg.InitialCapacity
	if capacity == 0 {
		capacity = platformDefaultCapacity()
	}

	var tableBudget uint64

	if budget > 0 {
		tableBudget = budget / 2

		if capacity*slotSize > tableBudget {
			capacity = largestPow2LE(tableBudget / slotSize)
		}
	}

	if capacity < minInitCapacity {
		capacity = minInitCapacity
	}

	capacity = nextPow2(capacity)

	blockSize := cfg.BlockSize
	if blockSize == 0 {
		blockSize = platformDefaultBlockSize()
	}

	if budget > 0 {
		cap4 := (budget - tableBudget) / 4
		if blockSize > cap4 {
			blockSize = cap4
		}
	}

	if blockSize < minBlockSize {
		blockSize = minBlockSize
	}

	minForToken := uint64(maxTokenLen) + 1
	if blockSize < minForToken {
		blockSize = minForToken
	}

	return tunedParameters{capacity: capacity, blockSize: blockSize}, nil
}

// nextPow2 returns the smallest power of two >= x (x >= 1).
func nextPow2(x uint64) uint64 {
	if x == 0 {
		return 1
	}

	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32

	return x + 1
}

// largestPow2LE returns the largest power of two <= x, flooring at 1.
func largestPow2LE(x uint64) uint64 {
	if x == 0 {
		return 1
	}

	p := uint64(1)
	for p*2 <= x {
		p *= 2
	}

	return p
}

// dryRunPrecheck simulates, on a scratch allocator-state copy, the exact
// sequence of allocations OpenWithConfig performs against a static
// region: the initial slot-array allocation, the first arena block, and
// (if the scan buffer is heap-resident) a maxTokenLen-byte buffer. Any
// simulated failure aborts construction before any real state is
// committed - this is what makes Open fail fast rather than surfacing
// ErrOutOfMemory on the first Add.
func dryRunPrecheck(cfg Config, tuning tunedParameters, tokenLen int) error {
	scratch, ok := newStaticAllocator(cfg.StaticRegion, cfg.ByteBudget)
	if !ok {
		return ErrOutOfMemory
	}

	if _, err := scratch.allocate(tuning.capacity * slotSize); err != nil {
		return err
	}

	if _, err := scratch.allocate(tuning.blockSize); err != nil {
		return err
	}

	if !buildInfo.StackScanBuffer {
		if _, err := scratch.allocate(uint64(tokenLen)); err != nil {
			return err
		}
	}

	return nil
}
