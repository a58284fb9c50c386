package ghpages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"git.home.luguber.info/inful/stylepub/internal/fileset"
	"git.home.luguber.info/inful/stylepub/internal/logfields"
	"git.home.luguber.info/inful/stylepub/internal/publisher"
	"git.home.luguber.info/inful/stylepub/internal/workspace"
)

// Options configures a Client.
type Options struct {
	RemoteURL   string               // remote the hosting branch is pushed to
	RemoteName  string               // remote name used in the staging checkout, default "origin"
	Branch      string               // hosting branch, default "gh-pages"
	AuthorName  string               // commit signature
	AuthorEmail string               //
	Auth        transport.AuthMethod // optional
	StagingDir  string               // base directory for staging checkouts, default os temp
}

// Client implements publisher.Publisher against a git remote.
type Client struct {
	opts Options
}

// NewClient creates a publishing client for the given remote.
func NewClient(opts Options) (*Client, error) {
	if opts.RemoteURL == "" {
		return nil, fmt.Errorf("remote URL is required")
	}
	if opts.RemoteName == "" {
		opts.RemoteName = "origin"
	}
	if opts.Branch == "" {
		opts.Branch = "gh-pages"
	}
	return &Client{opts: opts}, nil
}

// Publish resolves the request's patterns under its source directory and
// commits the matched files onto the hosting branch.
func (c *Client) Publish(ctx context.Context, req publisher.Request) error {
	files, err := fileset.Match(req.SourceDir, req.Patterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files matched patterns %v under %s", req.Patterns, req.SourceDir)
	}

	ws := workspace.NewManager(c.opts.StagingDir)
	if err := ws.Create(); err != nil {
		return err
	}
	defer func() {
		if cleanupErr := ws.Cleanup(); cleanupErr != nil {
			slog.Warn("Failed to cleanup staging directory", logfields.Error(cleanupErr))
		}
	}()

	checkoutDir, err := ws.CreateSubdir("checkout")
	if err != nil {
		return err
	}

	repo, fresh, err := c.checkout(ctx, checkoutDir)
	if err != nil {
		return err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	// Replace mode drops the previously published tree; the branch history
	// stays intact since the new commit builds on the old tip.
	if !req.Append && !fresh {
		if err := clearWorktree(checkoutDir); err != nil {
			return fmt.Errorf("failed to clear staging checkout: %w", err)
		}
	}

	if err := copyFiles(req.SourceDir, checkoutDir, files); err != nil {
		return err
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("failed to stage files: %w", err)
	}

	hash, err := wt.Commit(req.Message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  c.opts.AuthorName,
			Email: c.opts.AuthorEmail,
			When:  time.Now(),
		},
	})
	if errors.Is(err, git.ErrEmptyCommit) {
		slog.Info("No changes to publish", logfields.Branch(c.opts.Branch))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to commit to %s: %w", c.opts.Branch, err)
	}

	refSpec := gitcfg.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", c.opts.Branch, c.opts.Branch))
	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: c.opts.RemoteName,
		RefSpecs:   []gitcfg.RefSpec{refSpec},
		Auth:       c.opts.Auth,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return classifyPublishError("push", c.opts.RemoteURL, err)
	}

	slog.Info("Published files to hosting branch",
		logfields.Branch(c.opts.Branch),
		logfields.Commit(hash.String()[:8]),
		logfields.Count(len(files)),
		slog.Bool("append", req.Append))
	return nil
}

// checkout clones the hosting branch into dir. When the branch (or any remote
// history) does not exist yet, it initializes a fresh repository whose first
// commit will create the branch. The second return value reports that case.
func (c *Client) checkout(ctx context.Context, dir string) (*git.Repository, bool, error) {
	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:           c.opts.RemoteURL,
		RemoteName:    c.opts.RemoteName,
		ReferenceName: plumbing.NewBranchReferenceName(c.opts.Branch),
		SingleBranch:  true,
		Auth:          c.opts.Auth,
	})
	if err == nil {
		return repo, false, nil
	}
	if !isMissingBranch(err) {
		return nil, false, classifyPublishError("clone", c.opts.RemoteURL, err)
	}

	slog.Debug("Hosting branch does not exist yet, starting fresh",
		logfields.Branch(c.opts.Branch), logfields.URL(c.opts.RemoteURL))

	repo, err = git.PlainInit(dir, false)
	if err != nil {
		return nil, false, fmt.Errorf("failed to init staging repository: %w", err)
	}
	if _, err := repo.CreateRemote(&gitcfg.RemoteConfig{
		Name: c.opts.RemoteName,
		URLs: []string{c.opts.RemoteURL},
	}); err != nil {
		return nil, false, fmt.Errorf("failed to add remote: %w", err)
	}
	// Point HEAD at the hosting branch so the first commit creates it.
	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(c.opts.Branch))
	if err := repo.Storer.SetReference(head); err != nil {
		return nil, false, fmt.Errorf("failed to set HEAD: %w", err)
	}
	return repo, true, nil
}

// isMissingBranch reports whether a clone failure means the hosting branch (or
// the whole remote history) is absent rather than a real error.
func isMissingBranch(err error) bool {
	if errors.Is(err, transport.ErrEmptyRemoteRepository) {
		return true
	}
	l := strings.ToLower(err.Error())
	return strings.Contains(l, "couldn't find remote ref") || strings.Contains(l, "reference not found")
}

// clearWorktree removes everything in dir except the .git directory.
func clearWorktree(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Name() == git.GitDirName {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// copyFiles copies the matched files from sourceDir into the staging checkout,
// preserving relative paths.
func copyFiles(sourceDir, dstDir string, files []string) error {
	for _, rel := range files {
		src := filepath.Join(sourceDir, filepath.FromSlash(rel))
		dst := filepath.Join(dstDir, filepath.FromSlash(rel))
		if err := copyFile(src, dst); err != nil {
			return fmt.Errorf("failed to copy %s: %w", rel, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
