package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/KrishRVH/word-frequency-counter/pkg/freqcount"
)

// stdinChunkSize bounds how much of stdin is buffered at once when no file
// operand is given. It is large enough that the per-chunk Scan overhead is
// negligible relative to syscall overhead, small enough to keep memory use
// bounded on an unbounded stream.
const stdinChunkSize = 64 * 1024

// ingestArg feeds either the named file (memory-mapped) or, when path is
// empty, stdin (streamed in fixed chunks) into counter.
func ingestArg(counter *freqcount.Counter, path string) error {
	if path == "" {
		return ingestStdin(counter, os.Stdin)
	}

	return ingestFile(counter, path)
}

// ingestFile memory-maps path and feeds the mapped bytes directly to Scan,
// avoiding a read-side copy of the whole file.
func ingestFile(counter *freqcount.Counter, path string) error {
	f, err := os.Open(path) //nolint:gosec // path is an explicit CLI operand
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	size := info.Size()
	if size == 0 {
		return nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("mmap %s: %w", path, err)
	}

	defer unix.Munmap(data) //nolint:errcheck // best-effort unmap on a read-only mapping

	return counter.Scan(data)
}

// ingestStdin reads r in stdinChunkSize chunks, carrying any trailing
// partial token across a chunk boundary so that a token split by a chunk
// edge is neither double-counted nor silently truncated.
//
// A "partial token" here is a suffix run of ASCII letters abutting the end
// of the chunk: it might continue in the next chunk, so it is held back
// and prefixed onto the next read instead of being scanned immediately.
func ingestStdin(counter *freqcount.Counter, r io.Reader) error {
	buf := make([]byte, stdinChunkSize)

	var carry []byte

	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			chunk := buf[:n]

			if len(carry) > 0 {
				chunk = append(append([]byte{}, carry...), chunk...)
				carry = nil
			}

			splitAt := trailingLetterRunStart(chunk)

			if err := counter.Scan(chunk[:splitAt]); err != nil {
				return err
			}

			if splitAt < len(chunk) {
				carry = append(carry, chunk[splitAt:]...)
			}
		}

		if readErr == io.EOF {
			break
		}

		if readErr != nil {
			return fmt.Errorf("reading stdin: %w", readErr)
		}
	}

	if len(carry) > 0 {
		return counter.Scan(carry)
	}

	return nil
}

// trailingLetterRunStart returns the index where a maximal run of ASCII
// letters ending at len(buf) begins, or len(buf) if buf does not end in a
// letter. Scanning buf[:idx] and holding buf[idx:] back as carry ensures a
// token is never split across two Scan calls.
func trailingLetterRunStart(buf []byte) int {
	i := len(buf)
	for i > 0 && isASCIILetter(buf[i-1]) {
		i--
	}

	return i
}

func isASCIILetter(b byte) bool {
	return (b|0x20)-0x61 < 26
}
