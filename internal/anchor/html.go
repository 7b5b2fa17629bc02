package anchor

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// HTMLDocument is a Resolvable over a parsed HTML snapshot of a page
type HTMLDocument struct {
	root *html.Node
}

// Verify interface compliance at compile time
var _ Resolvable = (*HTMLDocument)(nil)

// ParseHTML parses a page snapshot
func ParseHTML(r io.Reader) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return &HTMLDocument{root: root}, nil
}

// Resolve implements Resolvable
func (d *HTMLDocument) Resolve(selector string) (Element, bool) {
	matches, err := d.match(selector)
	if err != nil || len(matches) != 1 {
		return nil, false
	}
	return htmlElement{node: matches[0]}, true
}

// Count returns how many elements selector matches. An unparsable selector
// is reported as an error.
func (d *HTMLDocument) Count(selector string) (int, error) {
	matches, err := d.match(selector)
	if err != nil {
		return 0, err
	}
	return len(matches), nil
}

// Body returns the body element, or nil for a fragment without one
func (d *HTMLDocument) Body() Element {
	sel, err := cascadia.Compile("body")
	if err != nil {
		return nil
	}
	if node := sel.MatchFirst(d.root); node != nil {
		return htmlElement{node: node}
	}
	return nil
}

func (d *HTMLDocument) match(selector string) ([]*html.Node, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, fmt.Errorf("empty selector")
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	return sel.MatchAll(d.root), nil
}

// htmlElement is comparable so sibling lookups can use ==
type htmlElement struct {
	node *html.Node
}

func (e htmlElement) Tag() string { return e.node.Data }

func (e htmlElement) ID() string { return e.attr("id") }

func (e htmlElement) Classes() []string { return strings.Fields(e.attr("class")) }

func (e htmlElement) Parent() Element {
	for p := e.node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return htmlElement{node: p}
		}
	}
	return nil
}

func (e htmlElement) Children() []Element {
	var children []Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, htmlElement{node: c})
		}
	}
	return children
}

func (e htmlElement) attr(name string) string {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
