// Package anchor ties comments to elements of a rendered page.
//
// A comment is anchored by a CSS selector plus the click point in document
// coordinates. The selector is best-effort: when the page changes it may
// match nothing or several elements, and callers then show the marker at the
// stored point without highlighting anything.
package anchor

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Element is the part of a DOM node the resolver needs
type Element interface {
	Tag() string
	ID() string
	Classes() []string
	// Parent returns nil for the root element
	Parent() Element
	// Children returns element children only, in document order
	Children() []Element
}

// Resolvable is a page the resolver can query. Resolve reports ok only when
// selector matches exactly one element.
type Resolvable interface {
	Resolve(selector string) (Element, bool)
}

// Anchor is what gets stored with a comment
type Anchor struct {
	Selector string
	X        int
	Y        int
}

// Location is a resolved anchor. Element is nil and Highlight false when the
// selector could not be resolved to a single element.
type Location struct {
	Element   Element
	Highlight bool
	X         int
	Y         int
}

const separator = " > "

var (
	// CSS identifiers we can emit without escaping
	identPattern = regexp.MustCompile(`^-?[A-Za-z_][A-Za-z0-9_-]*$`)
	// Classes and ids owned by the comment widget itself
	widgetPrefixes = []string{"sn-", "agwp-sn-"}
)

// Capture builds the anchor for a click at document point (x, y) on el
func Capture(el Element, x, y int) Anchor {
	return Anchor{
		Selector: Selector(el),
		X:        max(x, 0),
		Y:        max(y, 0),
	}
}

// Selector computes the selector path for el. The path ends at the nearest
// ancestor carrying a usable id, or at body.
func Selector(el Element) string {
	var segments []string
	for current := el; current != nil; current = current.Parent() {
		tag := strings.ToLower(current.Tag())
		if id := current.ID(); usable(id) {
			segments = append(segments, tag+"#"+id)
			break
		}
		if tag == "body" || tag == "html" {
			segments = append(segments, tag)
			break
		}
		segments = append(segments, segment(current, tag))
	}

	// Built leaf first
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, separator)
}

func segment(el Element, tag string) string {
	var b strings.Builder
	b.WriteString(tag)
	for _, class := range el.Classes() {
		if usable(class) {
			b.WriteString(".")
			b.WriteString(class)
		}
	}
	if n := nthOfType(el, tag); n > 0 {
		b.WriteString(":nth-of-type(")
		b.WriteString(strconv.Itoa(n))
		b.WriteString(")")
	}
	return b.String()
}

// nthOfType returns the 1-based position of el among siblings with the same
// tag, or 0 when el has no parent.
func nthOfType(el Element, tag string) int {
	parent := el.Parent()
	if parent == nil {
		return 0
	}
	n := 0
	for _, sibling := range parent.Children() {
		if strings.ToLower(sibling.Tag()) == tag {
			n++
		}
		if sibling == el {
			return n
		}
	}
	return 0
}

func usable(name string) bool {
	if !identPattern.MatchString(name) {
		return false
	}
	for _, prefix := range widgetPrefixes {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	return true
}

// DocumentPoint converts a viewport point plus the scroll offset to document
// coordinates, rounded and clamped at zero.
func DocumentPoint(clientX, clientY, scrollX, scrollY float64) (int, int) {
	x := int(math.Round(clientX + scrollX))
	y := int(math.Round(clientY + scrollY))
	return max(x, 0), max(y, 0)
}

// Locate resolves a stored anchor against surface. It never fails: anything
// short of a single match yields a marker-only location.
func Locate(surface Resolvable, a Anchor) Location {
	loc := Location{X: max(a.X, 0), Y: max(a.Y, 0)}
	if surface == nil || strings.TrimSpace(a.Selector) == "" {
		return loc
	}
	if el, ok := surface.Resolve(a.Selector); ok && el != nil {
		loc.Element = el
		loc.Highlight = true
	}
	return loc
}
