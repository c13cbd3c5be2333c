package git

// Service defines the read-only Git operations the diff pane host needs.
// The app depends on this interface, never on exec.Command directly, so it
// can be driven by a fake in tests.
type Service interface {
	// ── Repository info ──────────────────────────────────────────────
	RepoRoot() string
	GitDir() string
	Head() (string, error)
	IsClean() (bool, error)
	IsMerging() bool
	IsRebasing() bool
	AheadBehind() (ahead, behind int, err error)

	// ── Status & diff ────────────────────────────────────────────────
	Status() (*StatusResult, error)
	Diff(staged bool, path string) (string, error)
}
