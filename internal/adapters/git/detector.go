// Package git provides git context detection using go-git.
package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"

	"github.com/xvierd/pomo-cli/internal/ports"
)

// Detector implements the ports.GitDetector interface using go-git.
type Detector struct{}

var _ ports.GitDetector = (*Detector)(nil)

// NewDetector creates a new git detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect reads the current branch and commit for the working directory.
func (d *Detector) Detect(ctx context.Context, workingDir string) (*ports.GitInfo, error) {
	if workingDir == "" {
		var err error
		workingDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	repoPath, err := findGitRepo(workingDir)
	if err != nil {
		return nil, fmt.Errorf("git repository not found: %w", err)
	}

	repo, err := gogit.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	branch := head.Name().Short()
	if branch == "HEAD" {
		branch = "HEAD detached"
	}

	return &ports.GitInfo{
		Branch: branch,
		Commit: head.Hash().String(),
	}, nil
}

// IsAvailable checks if a git repository is reachable from the current
// directory.
func (d *Detector) IsAvailable() bool {
	wd, err := os.Getwd()
	if err != nil {
		return false
	}
	_, err = findGitRepo(wd)
	return err == nil
}

// findGitRepo traverses up the directory tree looking for a .git
// directory.
func findGitRepo(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no git repository above %s", start)
		}
		dir = parent
	}
}
