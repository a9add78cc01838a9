// Package merge compares deployed rule files against the currently shipped
// templates. It backs "rulekit update --check", which reports drift without
// writing anything.
package merge

import (
	"fmt"
	"strings"
)

// EditOp represents a single edit operation in a diff.
type EditOp int

const (
	// OpEqual means the line is unchanged.
	OpEqual EditOp = iota
	// OpInsert means a line was added.
	OpInsert
	// OpDelete means a line was removed.
	OpDelete
)

// Edit is one line-level operation of an edit script.
type Edit struct {
	Op   EditOp
	Text string
}

// DiffLines computes an edit script transforming a into b using an LCS
// table. Equal lines are included so callers can render full context.
func DiffLines(a, b []string) []Edit {
	m, n := len(a), len(b)

	// dp[i][j] = length of LCS of a[:i] and b[:j]
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			switch {
			case a[i-1] == b[j-1]:
				dp[i][j] = dp[i-1][j-1] + 1
			case dp[i-1][j] >= dp[i][j-1]:
				dp[i][j] = dp[i-1][j]
			default:
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	// Backtrack to produce the script in reverse.
	var edits []Edit
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && a[i-1] == b[j-1]:
			edits = append(edits, Edit{Op: OpEqual, Text: a[i-1]})
			i--
			j--
		case j > 0 && (i == 0 || dp[i][j-1] >= dp[i-1][j]):
			edits = append(edits, Edit{Op: OpInsert, Text: b[j-1]})
			j--
		default:
			edits = append(edits, Edit{Op: OpDelete, Text: a[i-1]})
			i--
		}
	}

	for left, right := 0, len(edits)-1; left < right; left, right = left+1, right-1 {
		edits[left], edits[right] = edits[right], edits[left]
	}
	return edits
}

// Changed reports whether the edit script contains any non-equal operation.
func Changed(edits []Edit) bool {
	for _, e := range edits {
		if e.Op != OpEqual {
			return true
		}
	}
	return false
}

// UnifiedDiff renders a unified diff of base and current. Rule files are
// small, so the whole file is emitted as one full-context hunk. Returns an
// empty string when the contents are identical.
func UnifiedDiff(filename string, base, current []byte) string {
	aLines := splitLines(string(base))
	bLines := splitLines(string(current))

	edits := DiffLines(aLines, bLines)
	if !Changed(edits) {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n", filename)
	fmt.Fprintf(&sb, "+++ b/%s\n", filename)
	fmt.Fprintf(&sb, "@@ -1,%d +1,%d @@\n", len(aLines), len(bLines))

	for _, e := range edits {
		switch e.Op {
		case OpEqual:
			sb.WriteString(" " + e.Text + "\n")
		case OpDelete:
			sb.WriteString("-" + e.Text + "\n")
		case OpInsert:
			sb.WriteString("+" + e.Text + "\n")
		}
	}
	return sb.String()
}

// splitLines splits content into lines, dropping the trailing empty line
// caused by a final newline.
func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}
