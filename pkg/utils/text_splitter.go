package utils

import "unicode"

// SplitText splits a long string into chunks of approximately 'chunkSize'
// characters with an 'overlap' to preserve context at boundaries. Chunk
// ends are pulled back to the nearest whitespace when one is close, so
// words are not cut in half. The next chunk starts relative to the
// actual end of the previous one, so nothing between chunks is skipped
// even when a boundary was pulled back.
func SplitText(text string, chunkSize int, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	totalLen := len(runes)

	start := 0
	for start < totalLen {
		end := start + chunkSize
		if end >= totalLen {
			chunks = append(chunks, string(runes[start:totalLen]))
			break
		}
		end = backtrackToSpace(runes, start, end)

		chunks = append(chunks, string(runes[start:end]))

		next := end - overlap
		if next <= start {
			next = end // guarantee forward progress when overlap >= chunk length
		}
		start = next
	}

	return chunks
}

// backtrackToSpace moves end left to the nearest whitespace, searching at
// most a tenth of the chunk. If none is found the hard cut stands.
func backtrackToSpace(runes []rune, start, end int) int {
	limit := end - (end-start)/10
	for i := end; i > limit; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}
	return end
}
