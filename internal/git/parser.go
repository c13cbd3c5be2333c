package git

import (
	"strings"

	"github.com/Akashdeep-Patra/diffpane/internal/diff"
)

// ── Diff parsing ────────────────────────────────────────────────────────────

// ParseDiff turns the unified output of `git diff` for a single file into
// hunks of classified lines. Every "@@" line opens a new hunk and is kept
// as that hunk's header. The file preamble (diff --git, index, ---/+++)
// is dropped. Output without any "@@" line, such as "Binary files differ",
// becomes one hunk of context lines so it is still visible.
func ParseDiff(raw string) diff.Diff {
	if raw == "" {
		return diff.Diff{}
	}

	var (
		d        diff.Diff
		cur      *diff.Hunk
		preamble []diff.Line
	)

	for len(raw) > 0 {
		nl := strings.IndexByte(raw, '\n')
		var line string
		if nl < 0 {
			line = raw
			raw = ""
		} else {
			line = raw[:nl]
			raw = raw[nl+1:]
		}
		line = strings.TrimSuffix(line, "\r")

		if strings.HasPrefix(line, "@@") {
			d.Hunks = append(d.Hunks, diff.Hunk{})
			cur = &d.Hunks[len(d.Hunks)-1]
			cur.Lines = append(cur.Lines, diff.Line{Content: line, Type: diff.Header})
			continue
		}

		if cur == nil {
			if !isPreamble(line) && line != "" {
				preamble = append(preamble, diff.Line{Content: line, Type: diff.Context})
			}
			continue
		}
		cur.Lines = append(cur.Lines, diff.Line{Content: line, Type: classify(line)})
	}

	if len(d.Hunks) == 0 && len(preamble) > 0 {
		d.Hunks = append(d.Hunks, diff.Hunk{Lines: preamble})
	}
	return d
}

// classify maps a hunk body line to its line type by its origin column.
func classify(line string) diff.LineType {
	if line == "" {
		return diff.Context
	}
	switch line[0] {
	case '+':
		return diff.Add
	case '-':
		return diff.Delete
	default:
		return diff.Context
	}
}

func isPreamble(line string) bool {
	for _, p := range []string{"diff ", "index ", "--- ", "+++ ", "new file mode", "deleted file mode",
		"old mode", "new mode", "similarity index", "rename from", "rename to", "copy from", "copy to"} {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// ── Status parsing ──────────────────────────────────────────────────────────

// ParseStatusOutput parses `git status --porcelain=v1 -z`.
// NUL-delimited scanning avoids allocating a massive []string for repos
// with thousands of changed files.
func ParseStatusOutput(out string) *StatusResult {
	result := &StatusResult{}
	if len(out) == 0 {
		return result
	}

	// Pre-allocate with reasonable defaults for monorepos.
	result.Staged = make([]FileStatus, 0, 32)
	result.Unstaged = make([]FileStatus, 0, 32)
	result.Untracked = make([]FileStatus, 0, 16)

	// Scan NUL-separated entries without strings.Split.
	for len(out) > 0 {
		nul := strings.IndexByte(out, '\x00')
		var entry string
		if nul < 0 {
			entry = out
			out = ""
		} else {
			entry = out[:nul]
			out = out[nul+1:]
		}
		if len(entry) < 4 {
			continue
		}

		staging := StatusCode(entry[0])
		worktree := StatusCode(entry[1])
		path := entry[3:]

		fs := FileStatus{Staging: staging, Worktree: worktree, Path: path}

		// Renames/copies have an extra NUL-separated entry for the original path.
		if staging == StatusRenamed || staging == StatusCopied ||
			worktree == StatusRenamed || worktree == StatusCopied {
			nul2 := strings.IndexByte(out, '\x00')
			if nul2 < 0 {
				fs.OrigPath = out
				out = ""
			} else {
				fs.OrigPath = out[:nul2]
				out = out[nul2+1:]
			}
		}

		if staging == StatusUntracked && worktree == StatusUntracked {
			result.Untracked = append(result.Untracked, fs)
			continue
		}

		if staging == StatusUnmerged || worktree == StatusUnmerged ||
			(staging == StatusAdded && worktree == StatusAdded) ||
			(staging == StatusDeleted && worktree == StatusDeleted) {
			result.Conflicts = append(result.Conflicts, fs)
			continue
		}

		if staging != StatusUnmodified && staging != StatusUntracked {
			staged := fs
			staged.IsStaged = true
			result.Staged = append(result.Staged, staged)
		}
		if worktree != StatusUnmodified && worktree != StatusUntracked {
			result.Unstaged = append(result.Unstaged, fs)
		}
	}
	return result
}
