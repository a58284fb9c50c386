package verify

import (
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// markdownLink is a link-like construct extracted from Markdown.
type markdownLink struct {
	Destination string
}

// extractMarkdownLinks parses a Markdown body and extracts inline links,
// images, autolinks, and reference definitions.
func extractMarkdownLinks(body []byte) []markdownLink {
	md := goldmark.New()
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]markdownLink, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, markdownLink{Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, markdownLink{Destination: string(node.Destination)})
		case *gmast.Link:
			// Goldmark resolves reference-style links to a Link node with a Destination.
			links = append(links, markdownLink{Destination: string(node.Destination)})
		}
		return gmast.WalkContinue, nil
	})

	// Reference definitions are stored in the parse context (not represented as AST nodes).
	for _, ref := range ctx.References() {
		links = append(links, markdownLink{Destination: string(ref.Destination())})
	}

	return links
}
