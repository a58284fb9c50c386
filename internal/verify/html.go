package verify

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// htmlRef is a reference extracted from HTML content.
type htmlRef struct {
	URL      string // the reference as written
	Tag      string // HTML tag (a, img, link, script)
	Attr     string // attribute containing the reference (href, src)
	External bool   // true if the reference leaves the site
}

// extractHTMLRefs extracts stylesheet, image, script, and anchor references
// from an HTML file.
func extractHTMLRefs(htmlPath string) ([]htmlRef, error) {
	file, err := os.Open(filepath.Clean(htmlPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open HTML file: %w", err)
	}
	defer func() {
		_ = file.Close() // Ignore close errors on read-only operation
	}()

	return extractHTMLRefsFromReader(file)
}

func extractHTMLRefsFromReader(r io.Reader) ([]htmlRef, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var refs []htmlRef
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			collectElementRefs(n, &refs)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return refs, nil
}

func collectElementRefs(n *html.Node, refs *[]htmlRef) {
	switch n.Data {
	case "a", "link":
		if href := getAttr(n, "href"); href != "" {
			*refs = append(*refs, htmlRef{URL: href, Tag: n.Data, Attr: "href", External: isExternalRef(href)})
		}
	case "img", "script":
		if src := getAttr(n, "src"); src != "" {
			*refs = append(*refs, htmlRef{URL: src, Tag: n.Data, Attr: "src", External: isExternalRef(src)})
		}
	}
}

func getAttr(n *html.Node, name string) string {
	for _, attr := range n.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

// isExternalRef reports whether a reference points outside the published site:
// absolute URLs, protocol-relative URLs, mailto links, and pure fragments.
func isExternalRef(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return true
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme != ""
}

func trimFragment(ref string) string {
	if idx := strings.IndexByte(ref, '#'); idx >= 0 {
		return ref[:idx]
	}
	return ref
}
