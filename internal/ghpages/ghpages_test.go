package ghpages

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/stylepub/internal/publisher"
)

func newBareRemote(t *testing.T) string {
	t.Helper()
	barePath := filepath.Join(t.TempDir(), "remote.git")
	if _, err := git.PlainInit(barePath, true); err != nil {
		t.Fatalf("init bare: %v", err)
	}
	return barePath
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return root
}

func newTestClient(t *testing.T, remoteURL string) *Client {
	t.Helper()
	client, err := NewClient(Options{
		RemoteURL:   remoteURL,
		AuthorName:  "tester",
		AuthorEmail: "t@example.com",
		StagingDir:  t.TempDir(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

// branchTip returns the commit at the tip of the hosting branch of the bare remote.
func branchTip(t *testing.T, barePath, branch string) *object.Commit {
	t.Helper()
	repo, err := git.PlainOpen(barePath)
	if err != nil {
		t.Fatalf("open bare: %v", err)
	}
	ref, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		t.Fatalf("resolve branch %s: %v", branch, err)
	}
	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		t.Fatalf("commit object: %v", err)
	}
	return commit
}

func treeHasFile(t *testing.T, commit *object.Commit, path string) bool {
	t.Helper()
	tree, err := commit.Tree()
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	_, err = tree.File(path)
	return err == nil
}

func TestPublish_CreatesHostingBranch(t *testing.T) {
	bare := newBareRemote(t)
	docs := writeTree(t, map[string]string{
		"index.html":               "<html></html>",
		"css/styles.css":           "body{}",
		"css/vendor/normalize.css": "*{}",
		"img/logo.png":             "png",
		"notes.txt":                "not published",
	})
	client := newTestClient(t, bare)

	err := client.Publish(context.Background(), publisher.Request{
		SourceDir: docs,
		Patterns:  []string{"index.html", "css/**/*.css", "img/*"},
		Message:   "Publish styleguide documentation",
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	commit := branchTip(t, bare, "gh-pages")
	if commit.Message != "Publish styleguide documentation" {
		t.Errorf("unexpected commit message: %q", commit.Message)
	}
	if commit.NumParents() != 0 {
		t.Errorf("expected root commit, got %d parents", commit.NumParents())
	}
	for _, f := range []string{"index.html", "css/styles.css", "css/vendor/normalize.css", "img/logo.png"} {
		if !treeHasFile(t, commit, f) {
			t.Errorf("file %s missing from published tree", f)
		}
	}
	if treeHasFile(t, commit, "notes.txt") {
		t.Error("unmatched file notes.txt was published")
	}
}

func TestPublish_AppendMergesWithExistingContent(t *testing.T) {
	bare := newBareRemote(t)
	docs := writeTree(t, map[string]string{"index.html": "<html></html>"})
	root := writeTree(t, map[string]string{"README.md": "# styleguide"})
	client := newTestClient(t, bare)
	ctx := context.Background()

	if err := client.Publish(ctx, publisher.Request{
		SourceDir: docs,
		Patterns:  []string{"index.html"},
		Message:   "docs",
	}); err != nil {
		t.Fatalf("docs publish: %v", err)
	}

	if err := client.Publish(ctx, publisher.Request{
		SourceDir: root,
		Patterns:  []string{"README.md"},
		Message:   "demo",
		Append:    true,
	}); err != nil {
		t.Fatalf("append publish: %v", err)
	}

	commit := branchTip(t, bare, "gh-pages")
	if !treeHasFile(t, commit, "README.md") {
		t.Error("README.md missing after append publish")
	}
	if !treeHasFile(t, commit, "index.html") {
		t.Error("append publish dropped previously published index.html")
	}
	if commit.NumParents() != 1 {
		t.Errorf("expected 1 parent, got %d", commit.NumParents())
	}
}

func TestPublish_ReplaceDropsStaleFiles(t *testing.T) {
	bare := newBareRemote(t)
	client := newTestClient(t, bare)
	ctx := context.Background()

	docsV1 := writeTree(t, map[string]string{
		"index.html":  "v1",
		"css/old.css": "old",
	})
	if err := client.Publish(ctx, publisher.Request{
		SourceDir: docsV1,
		Patterns:  []string{"index.html", "css/**/*.css"},
		Message:   "v1",
	}); err != nil {
		t.Fatalf("v1 publish: %v", err)
	}

	docsV2 := writeTree(t, map[string]string{
		"index.html":  "v2",
		"css/new.css": "new",
	})
	if err := client.Publish(ctx, publisher.Request{
		SourceDir: docsV2,
		Patterns:  []string{"index.html", "css/**/*.css"},
		Message:   "v2",
	}); err != nil {
		t.Fatalf("v2 publish: %v", err)
	}

	commit := branchTip(t, bare, "gh-pages")
	if treeHasFile(t, commit, "css/old.css") {
		t.Error("replace publish kept stale css/old.css")
	}
	if !treeHasFile(t, commit, "css/new.css") {
		t.Error("css/new.css missing after replace publish")
	}
	if commit.NumParents() != 1 {
		t.Errorf("replace publish must keep branch history, got %d parents", commit.NumParents())
	}
}

func TestPublish_NoMatchedFiles(t *testing.T) {
	bare := newBareRemote(t)
	docs := writeTree(t, map[string]string{"index.html": "x"})
	client := newTestClient(t, bare)

	err := client.Publish(context.Background(), publisher.Request{
		SourceDir: docs,
		Patterns:  []string{"img/*"},
		Message:   "nothing",
	})
	if err == nil {
		t.Fatal("expected error when no files match")
	}
}

func TestPublish_UnchangedContentIsNoop(t *testing.T) {
	bare := newBareRemote(t)
	docs := writeTree(t, map[string]string{"index.html": "same"})
	client := newTestClient(t, bare)
	ctx := context.Background()

	req := publisher.Request{SourceDir: docs, Patterns: []string{"index.html"}, Message: "docs"}
	if err := client.Publish(ctx, req); err != nil {
		t.Fatalf("first publish: %v", err)
	}
	first := branchTip(t, bare, "gh-pages").Hash

	if err := client.Publish(ctx, req); err != nil {
		t.Fatalf("second publish: %v", err)
	}
	second := branchTip(t, bare, "gh-pages").Hash

	if first != second {
		t.Errorf("unchanged content produced a new commit: %s -> %s", first, second)
	}
}

func TestNewClient_RequiresRemoteURL(t *testing.T) {
	if _, err := NewClient(Options{}); err == nil {
		t.Fatal("expected error for missing remote URL")
	}
}

func TestResolveRemoteURL(t *testing.T) {
	repoPath := t.TempDir()
	repo, err := git.PlainInit(repoPath, false)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := repo.CreateRemote(&gitcfg.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@example.com:team/styleguide.git"},
	}); err != nil {
		t.Fatalf("create remote: %v", err)
	}

	url, err := ResolveRemoteURL(repoPath, "origin")
	if err != nil {
		t.Fatalf("ResolveRemoteURL: %v", err)
	}
	if url != "git@example.com:team/styleguide.git" {
		t.Errorf("unexpected url: %s", url)
	}

	if _, err := ResolveRemoteURL(repoPath, "upstream"); err == nil {
		t.Error("expected error for unknown remote")
	}
}
