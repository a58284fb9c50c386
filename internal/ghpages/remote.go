package ghpages

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// ResolveRemoteURL reads the URL of the named remote from the repository at
// repoPath. Used when no explicit remote URL is configured.
func ResolveRemoteURL(repoPath, remoteName string) (string, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return "", fmt.Errorf("failed to open repository %s: %w", repoPath, err)
	}

	remote, err := repo.Remote(remoteName)
	if err != nil {
		return "", fmt.Errorf("remote %q not configured in %s: %w", remoteName, repoPath, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %q has no URL", remoteName)
	}
	return urls[0], nil
}
