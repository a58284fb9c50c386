// Package ghpages publishes a set of files onto a hosting branch (by default
// gh-pages) of a git remote.
//
// Each publish clones the hosting branch into an ephemeral staging checkout,
// rewrites its content from the matched fileset, commits, and pushes. Replace
// mode starts the tree from scratch (history is kept); append mode merges the
// fileset into the existing published content.
package ghpages
