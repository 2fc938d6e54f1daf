package parser

import "strings"

const fence = "```"

// ExtractBlocks returns the bodies of the fenced blocks opened with "```"+tag,
// in document order, and the trimmed text left once those blocks are cut out.
//
// A block ends at the first following line that starts with "```". An
// opening fence that is never closed does not produce a block; it and the
// rest of the document stay in the remainder.
func ExtractBlocks(content, tag string) ([]string, string) {
	lines := strings.Split(content, "\n")

	var blocks []string
	var rest []string
	for i := 0; i < len(lines); i++ {
		if !isOpenFence(lines[i], tag) {
			rest = append(rest, lines[i])
			continue
		}

		end := closingFence(lines, i+1)
		if end < 0 {
			rest = append(rest, lines[i:]...)
			break
		}
		blocks = append(blocks, strings.Join(lines[i+1:end], "\n"))
		i = end

		// Collapse the blank lines that surrounded the block into one.
		if n := len(rest); n > 0 && isBlank(rest[n-1]) && i+1 < len(lines) && isBlank(lines[i+1]) {
			i++
		}
	}

	return blocks, strings.TrimSpace(strings.Join(rest, "\n"))
}

func isOpenFence(line, tag string) bool {
	return strings.TrimSpace(line) == fence+tag
}

// closingFence returns the index of the first fence line at or after i, or -1.
func closingFence(lines []string, i int) int {
	for ; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), fence) {
			return i
		}
	}
	return -1
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
