package freqcount

import "unsafe"

// slot is one entry of the hash index's open-addressed slot array. An
// empty slot has occupied == false and every other field at its zero
// value.
type slot struct {
	key      []byte // arena-owned, NUL-terminated; key[:keyLen] is the token
	keyLen   int
	count    uint64
	hash     uint32
	occupied bool
}

// hashIndex is a power-of-two open-addressed table with linear probing.
// In dynamic mode it doubles and rehashes on reaching the 0.7 load
// factor; in static mode reaching the threshold fails insertion instead,
// since no second slot array can be carved from the fixed region.
type hashIndex struct {
	slots    []slot
	capacity uint64
	unique   uint64
	static   bool
	alloc    *allocator
	seed     uint32
}

// newHashIndex builds an index with the given starting capacity (already
// rounded to a power of two by the caller). The initial slot array itself
// is allocated through alloc, so its bytes are accounted for like any
// other allocation.
func newHashIndex(alloc *allocator, capacity uint64, static bool, seed uint32) (*hashIndex, error) {
	slots, err := allocSlots(alloc, capacity)
	if err != nil {
		return nil, err
	}

	return &hashIndex{
		slots:    slots,
		capacity: capacity,
		static:   static,
		alloc:    alloc,
		seed:     seed,
	}, nil
}

// slotSize is the real in-memory footprint of one slot record, used both
// to account bytes_used and to size the raw region the slot array is
// carved from.
var slotSize = uint64(unsafe.Sizeof(slot{}))

// allocSlots carves capacity slots worth of raw bytes out of alloc and
// reinterprets them as a []slot. In heap mode the raw bytes are an
// ordinary make([]byte, n); in static mode they are a sub-slice of the
// caller-supplied region. Either way the backing bytes are pointer-free
// memory to the garbage collector: the slot.key headers stored in it do
// not by themselves keep arena blocks alive. The blocks stay reachable
// through the arena's own block chain (heap mode) or the allocator's
// reference to the region (static mode).
func allocSlots(alloc *allocator, capacity uint64) ([]slot, error) {
	raw, err := alloc.allocate(capacity * slotSize)
	if err != nil {
		return nil, err
	}

	return unsafe.Slice((*slot)(unsafe.Pointer(&raw[0])), capacity), nil
}

// insert looks up tok (already truncated and case-folded by the caller).
// On a match it increments the slot's count; on a miss it asks arena for
// storage and occupies a fresh slot. Returns (isNewKey, error).
func (h *hashIndex) insert(tok []byte, arena *stringArena) (bool, error) {
	return h.insertHashed(tok, fnv1a32(tok, h.seed), arena)
}

// insertHashed is insert with a precomputed hash, letting Scan's
// incremental per-letter hashing avoid rehashing the token from scratch.
func (h *hashIndex) insertHashed(tok []byte, hash uint32, arena *stringArena) (bool, error) {
	if h.loadFactorExceeded(h.unique + 1) {
		if h.static {
			return false, ErrOutOfMemory
		}

		if err := h.grow(); err != nil {
			return false, err
		}
	}

	mask := h.capacity - 1
	start := uint64(hash) & mask

	for probe := uint64(0); probe < h.capacity; probe++ {
		idx := (start + probe) & mask
		s := &h.slots[idx]

		if !s.occupied {
			stored, err := arena.copyBytes(tok)
			if err != nil {
				return false, err
			}

			s.key = stored
			s.keyLen = len(tok)
			s.hash = hash
			s.count = 1
			s.occupied = true
			h.unique++

			return true, nil
		}

		if s.hash == hash && s.keyLen == len(tok) && bytesEqual(s.key, tok) {
			s.count++

			return false, nil
		}
	}

	// Every slot probed without finding an empty one or a match: the
	// load-factor check above should always leave at least one empty
	// slot, so reaching here indicates static-mode exhaustion at the
	// threshold boundary.
	return false, ErrOutOfMemory
}

// loadFactorExceeded reports whether occupying candidateUnique slots
// would violate the strict 0.7 load factor (unique*10 < capacity*7).
func (h *hashIndex) loadFactorExceeded(candidateUnique uint64) bool {
	return candidateUnique*loadFactorDen >= h.capacity*loadFactorNum
}

// grow doubles capacity and rehashes every occupied slot into a freshly
// allocated array. A failed grow leaves the table completely unchanged:
// the new array is built in full locally and only swapped in on success.
func (h *hashIndex) grow() error {
	newCapacity := h.capacity * 2

	newSlots, err := allocSlots(h.alloc, newCapacity)
	if err != nil {
		return err
	}

	mask := newCapacity - 1

	for i := range h.slots {
		old := &h.slots[i]
		if !old.occupied {
			continue
		}

		start := uint64(old.hash) & mask

		for probe := uint64(0); probe < newCapacity; probe++ {
			idx := (start + probe) & mask
			if !newSlots[idx].occupied {
				newSlots[idx] = *old

				break
			}
		}
	}

	oldCapacity := h.capacity
	h.alloc.release(oldCapacity * slotSize)
	h.slots = newSlots
	h.capacity = newCapacity

	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
