package verify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
	}
	return root
}

const entryHTML = `<!DOCTYPE html>
<html>
<head>
  <link rel="stylesheet" href="css/styles.css">
  <link rel="stylesheet" href="https://cdn.example.com/reset.css">
</head>
<body>
  <img src="img/logo.png">
  <img src="img/missing.png">
  <a href="#usage">Usage</a>
  <a href="mailto:team@example.com">Contact</a>
</body>
</html>`

func TestDocs_ReportsMissingTargets(t *testing.T) {
	docs := writeFiles(t, map[string]string{
		"index.html":     entryHTML,
		"css/styles.css": "body{}",
		"img/logo.png":   "png",
	})

	report, err := Docs(docs, "index.html")
	require.NoError(t, err)

	// Three internal refs are checked; the CDN stylesheet, fragment anchor,
	// and mailto link are external and skipped.
	assert.Equal(t, 3, report.Checked)
	require.Len(t, report.Problems, 1)
	assert.Equal(t, "img/missing.png", report.Problems[0].Ref)
	assert.False(t, report.OK())
}

func TestDocs_CleanEntry(t *testing.T) {
	docs := writeFiles(t, map[string]string{
		"index.html":     `<link href="css/styles.css"><img src="img/logo.png">`,
		"css/styles.css": "body{}",
		"img/logo.png":   "png",
	})

	report, err := Docs(docs, "index.html")
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, 2, report.Checked)
}

func TestDocs_MissingEntryFile(t *testing.T) {
	_, err := Docs(t.TempDir(), "index.html")
	require.Error(t, err)
}

func TestReadme_ChecksRelativeLinks(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"README.md": `# Styleguide

See the [demo](docs/index.html) and the [license](LICENSE).

![screenshot](docs/img/shot.png)

Upstream docs live at <https://example.com/docs>.
`,
		"docs/index.html":   "<html></html>",
		"docs/img/shot.png": "png",
	})

	report, err := Readme(root, "README.md")
	require.NoError(t, err)

	assert.Equal(t, 3, report.Checked)
	require.Len(t, report.Problems, 1)
	assert.Equal(t, "LICENSE", report.Problems[0].Ref)
}

func TestReadme_FragmentLinksIgnored(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"README.md":       "[usage](#usage) and [demo](docs/index.html#examples)",
		"docs/index.html": "x",
	})

	report, err := Readme(root, "README.md")
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, 1, report.Checked)
}

func TestRun_MergesReports(t *testing.T) {
	docs := writeFiles(t, map[string]string{
		"index.html": `<img src="img/gone.png">`,
	})
	root := writeFiles(t, map[string]string{
		"README.md": "[gone](missing.md)",
	})

	report, err := Run(docs, "index.html", root, "README.md")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Checked)
	assert.Len(t, report.Problems, 2)
}

func TestIsExternalRef(t *testing.T) {
	tests := []struct {
		ref      string
		external bool
	}{
		{"https://example.com/a.css", true},
		{"http://example.com", true},
		{"//cdn.example.com/a.js", true},
		{"mailto:x@example.com", true},
		{"#section", true},
		{"css/styles.css", false},
		{"img/logo.png", false},
		{"./index.html", false},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.external, isExternalRef(tt.ref))
		})
	}
}
