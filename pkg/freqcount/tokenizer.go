package freqcount

// isLetter reports whether b is an ASCII letter (A-Z or a-z), matching
// the compile-time-verified identity (b|0x20)-0x61 < 26.
func isLetter(b byte) bool {
	return (b|0x20)-0x61 < 26
}

// foldLetter lowercases an ASCII letter. 'A'^'a' == 0x20 for every letter,
// which is what makes b|0x20 a valid case fold.
func foldLetter(b byte) byte {
	return b | 0x20
}

// Add inserts a single token, case-sensitively. Empty input is a no-op
// success. A token longer than the counter's max_token_len is truncated
// to that length before hashing and insertion - only the prefix
// contributes to equality, so distinct words sharing the same prefix are
// intentionally merged.
func (c *Counter) Add(key []byte) error {
	if c == nil || c.closed || c.index == nil {
		return ErrInvalidArg
	}

	if len(key) == 0 {
		return nil
	}

	tok := key
	if len(tok) > c.maxTokenLen {
		tok = tok[:c.maxTokenLen]
	}

	_, err := c.index.insert(tok, c.arena)
	if err != nil {
		return err
	}

	c.total++

	return nil
}

// Scan walks buf, case-insensitively extracting maximal runs of ASCII
// letters as tokens. Embedded NUL bytes are read transparently - buf is
// governed entirely by its length, never by a terminator byte. A
// separator flushes the token accumulated so far; end of buffer flushes
// whatever remains.
//
// Any insertion failure aborts the scan at that token with the
// underlying error; tokens already inserted during this call remain
// committed. Re-invoking Scan on further input is permitted.
func (c *Counter) Scan(buf []byte) error {
	if c == nil || c.closed || c.index == nil {
		return ErrInvalidArg
	}

	if len(buf) == 0 {
		return nil
	}

	var stackBuf [maxTokenCeiling]byte

	scratch := c.scanBuf
	if buildInfo.StackScanBuffer {
		scratch = stackBuf[:]
	}

	scratch = scratch[:c.maxTokenLen]

	n := 0
	hash := fnv1aOffsetBasis32 ^ c.hashSeed

	flush := func() error {
		if n == 0 {
			return nil
		}

		tok := scratch[:n]

		if _, err := c.index.insertHashed(tok, hash, c.arena); err != nil {
			return err
		}

		c.total++
		n = 0
		hash = fnv1aOffsetBasis32 ^ c.hashSeed

		return nil
	}

	for _, b := range buf {
		if !isLetter(b) {
			if err := flush(); err != nil {
				return err
			}

			continue
		}

		folded := foldLetter(b)

		if n < c.maxTokenLen {
			scratch[n] = folded
			n++
			hash ^= uint32(folded)
			hash *= fnv1aPrime32
		}
		// Bytes beyond max_token_len still belong to the same run (so the
		// separator that eventually ends it is found correctly) but do
		// not extend the token or its hash - this is the truncation rule.
	}

	return flush()
}
