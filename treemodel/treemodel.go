// Package treemodel parses one markup snapshot into an immutable, queryable
// tree. All queries are read-only projections over the parsed document; a
// Tree is built once per snapshot and discarded when the comparison is done.
//
// Parsing is browser-grade lenient (golang.org/x/net/html): any tokenizable
// input yields some tree. Selector queries go through cascadia; a query with
// an invalid selector returns no matches instead of failing the analysis.
package treemodel

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// ErrParse is wrapped by Parse when the input cannot be tokenized at all.
var ErrParse = errors.New("markup cannot be parsed")

// Tree is an immutable view over one parsed snapshot.
type Tree struct {
	root     *html.Node
	elements []*Element
	byNode   map[*html.Node]*Element
}

// Parse builds a Tree from raw markup text. A blank input produces an empty
// tree (zero elements) rather than the synthetic html/head/body skeleton the
// parser would otherwise invent.
func Parse(markup string) (*Tree, error) {
	if !utf8.ValidString(markup) {
		return nil, fmt.Errorf("treemodel: malformed encoding: %w", ErrParse)
	}
	if strings.TrimSpace(markup) == "" {
		return &Tree{byNode: map[*html.Node]*Element{}}, nil
	}

	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("treemodel: %v: %w", err, ErrParse)
	}

	t := &Tree{root: root, byNode: map[*html.Node]*Element{}}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			e := &Element{node: n, tree: t, index: len(t.elements)}
			t.elements = append(t.elements, e)
			t.byNode[n] = e
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return t, nil
}

// Len returns the number of element nodes in the tree.
func (t *Tree) Len() int { return len(t.elements) }

// Elements returns all element nodes in document order. The returned slice
// is shared; callers must not mutate it.
func (t *Tree) Elements() []*Element { return t.elements }

// FindAll returns all elements matching the CSS selector, in document order.
// An invalid selector yields no matches — a single bad query never aborts
// the surrounding analysis.
func (t *Tree) FindAll(selector string) []*Element {
	if t.root == nil {
		return nil
	}
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return nil
	}
	nodes := cascadia.QueryAll(t.root, sel)
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		if e, ok := t.byNode[n]; ok {
			out = append(out, e)
		}
	}
	return out
}

// FindFirst returns the first element matching the CSS selector, or nil.
func (t *Tree) FindFirst(selector string) *Element {
	if t.root == nil {
		return nil
	}
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return nil
	}
	n := cascadia.Query(t.root, sel)
	if n == nil {
		return nil
	}
	return t.byNode[n]
}

// ElementsWithAttrPrefix returns all elements carrying at least one
// attribute whose name starts with prefix (e.g. "data-"), in document order.
func (t *Tree) ElementsWithAttrPrefix(prefix string) []*Element {
	var out []*Element
	for _, e := range t.elements {
		for _, a := range e.node.Attr {
			if strings.HasPrefix(a.Key, prefix) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// ValidSelector reports whether s parses as a CSS selector. Analyzers use
// FindAll's soft failure; this exists so callers can distinguish "invalid
// selector" from "no match" when reporting.
func ValidSelector(s string) bool {
	_, err := cascadia.Parse(s)
	return err == nil
}
