package scaffold

import "strings"

// Dedent removes the longest run of leading whitespace shared by every
// non-blank line of s, keeping the indentation of lines relative to each
// other. Lines holding only spaces and tabs become empty and do not take
// part in computing the margin. Tabs and spaces are never treated as
// equivalent.
func Dedent(s string) string {
	lines := strings.Split(s, "\n")

	margin := ""
	first := true
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			lines[i] = ""
			continue
		}
		indent := line[:len(line)-len(trimmed)]
		if first {
			margin = indent
			first = false
			continue
		}
		margin = commonPrefix(margin, indent)
	}

	if margin != "" {
		for i, line := range lines {
			lines[i] = strings.TrimPrefix(line, margin)
		}
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
