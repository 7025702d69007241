package nvmelite

import (
	"os/exec"
	"strings"

	"github.com/dutsim/nvmelite/internal/trace"
)

// FileSink writes a run's trace to a single file via an atomic rename, so
// a reader never observes a partially written trace.
type FileSink = trace.FileSink

// NewFileSink returns a FileSink writing to path.
func NewFileSink(path string) *FileSink {
	return trace.NewFileSink(path)
}

// ResolveGitCommit returns commit unchanged unless it is the literal
// string "auto", in which case it shells out to git to resolve HEAD. This
// convenience lives at the CLI boundary, not in the core: a RunConfig
// built directly (as opposed to through the CLI) never sees "auto".
func ResolveGitCommit(commit string) (string, error) {
	if commit != "auto" {
		return commit, nil
	}
	out, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		return "", WrapError("resolve-git-commit", ErrCodeInputInvalid, err)
	}
	return strings.TrimSpace(string(out)), nil
}
