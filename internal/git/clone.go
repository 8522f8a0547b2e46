// Package git shells out to the git binary for fetching remote templates.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// ErrInvalidRepo is returned when a repository reference is not of the
// form owner/name.
var ErrInvalidRepo = errors.New("git: repository must be of the form owner/name")

// CloneError carries the stderr of a failed git invocation.
type CloneError struct {
	URL    string
	Stderr string
	Err    error
}

func (e *CloneError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git clone %s failed: %s", e.URL, e.Stderr)
	}
	return fmt.Sprintf("git clone %s failed: %v", e.URL, e.Err)
}

func (e *CloneError) Unwrap() error { return e.Err }

// CloneURL builds the SSH clone URL for an owner/name repository
// reference. It validates the reference shape.
func CloneURL(repo string) (string, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidRepo, repo)
	}
	return fmt.Sprintf("git@github.com:%s/%s.git", owner, name), nil
}

// Clone fetches a GitHub repository into dest. The repository is cloned
// over SSH, so the caller needs a configured SSH key.
func Clone(ctx context.Context, repo, dest string) error {
	url, err := CloneURL(repo)
	if err != nil {
		return err
	}

	slog.Debug("cloning template repository", "url", url, "dest", dest)

	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", url, dest)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &CloneError{
			URL:    url,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return nil
}
