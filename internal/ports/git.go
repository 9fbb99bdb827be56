package ports

import "context"

// GitInfo carries the repository context captured with a focus session.
type GitInfo struct {
	Branch string
	Commit string
}

// GitDetector reads git context from a working directory. This is a driven
// port (implemented by adapters).
type GitDetector interface {
	// Detect returns the current branch and commit for the directory.
	Detect(ctx context.Context, workingDir string) (*GitInfo, error)

	// IsAvailable reports whether a git repository is reachable from the
	// current directory.
	IsAvailable() bool
}
