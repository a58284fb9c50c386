// Package verify checks that the styleguide's published files reference each
// other consistently before a publish: stylesheet and image references in the
// entry HTML file must resolve inside the docs directory, and relative links
// in the README must point at files that exist.
package verify

import (
	"fmt"
	"os"
	"path/filepath"
)

// Problem is one unresolved reference.
type Problem struct {
	File   string // file containing the reference
	Ref    string // the reference as written
	Reason string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s (%s)", p.File, p.Ref, p.Reason)
}

// Report summarizes a verification run.
type Report struct {
	Checked  int // references inspected
	Problems []Problem
}

// OK reports whether no problems were found.
func (r *Report) OK() bool { return len(r.Problems) == 0 }

// Docs verifies the entry HTML file of the docs directory.
func Docs(docsDir, entry string) (*Report, error) {
	entryPath := filepath.Join(docsDir, entry)
	refs, err := extractHTMLRefs(entryPath)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, ref := range refs {
		if ref.External {
			continue
		}
		report.Checked++
		target := filepath.Join(docsDir, filepath.FromSlash(ref.URL))
		if !fileExists(target) {
			report.Problems = append(report.Problems, Problem{
				File:   entry,
				Ref:    ref.URL,
				Reason: fmt.Sprintf("target missing (%s %s)", ref.Tag, ref.Attr),
			})
		}
	}
	return report, nil
}

// Readme verifies relative links in the README against the repository root.
func Readme(rootDir, readme string) (*Report, error) {
	readmePath := filepath.Join(rootDir, readme)
	body, err := os.ReadFile(readmePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", readmePath, err)
	}

	report := &Report{}
	for _, link := range extractMarkdownLinks(body) {
		if isExternalRef(link.Destination) {
			continue
		}
		report.Checked++
		target := filepath.Join(rootDir, filepath.FromSlash(trimFragment(link.Destination)))
		if !fileExists(target) {
			report.Problems = append(report.Problems, Problem{
				File:   readme,
				Ref:    link.Destination,
				Reason: "target missing",
			})
		}
	}
	return report, nil
}

// Run verifies both the docs entry file and the README, merging the reports.
func Run(docsDir, entry, rootDir, readme string) (*Report, error) {
	docsReport, err := Docs(docsDir, entry)
	if err != nil {
		return nil, err
	}
	readmeReport, err := Readme(rootDir, readme)
	if err != nil {
		return nil, err
	}

	return &Report{
		Checked:  docsReport.Checked + readmeReport.Checked,
		Problems: append(docsReport.Problems, readmeReport.Problems...),
	}, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
