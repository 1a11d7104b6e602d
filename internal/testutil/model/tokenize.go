package model

// Tokenize splits s into maximal runs of ASCII letters, lowercased and
// truncated to maxLen, mirroring freqcount.Counter.Scan's extraction rule
// independently of the package under test.
func Tokenize(s string, maxLen int) []string {
	var out []string

	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}

		tok := []byte(s[start:end])
		for i := range tok {
			tok[i] = tok[i] | 0x20
		}

		if len(tok) > maxLen {
			tok = tok[:maxLen]
		}

		out = append(out, string(tok))
		start = -1
	}

	for i := 0; i < len(s); i++ {
		b := s[i]
		if isLetter(b) {
			if start < 0 {
				start = i
			}

			continue
		}

		flush(i)
	}

	flush(len(s))

	return out
}

func isLetter(b byte) bool {
	return (b|0x20)-0x61 < 26
}
