package treemodel

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is one element node inside a Tree. It carries its zero-based
// position in document order so matching can break ties deterministically.
type Element struct {
	node  *html.Node
	tree  *Tree
	index int
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string { return e.node.Data }

// Index returns the element's zero-based position in document order.
func (e *Element) Index() int { return e.index }

// Attr returns the value of the named attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Attrs returns a copy of the element's attributes in a map.
func (e *Element) Attrs() map[string]string {
	m := make(map[string]string, len(e.node.Attr))
	for _, a := range e.node.Attr {
		m[a.Key] = a.Val
	}
	return m
}

// AttrNames returns attribute names in their original document order.
func (e *Element) AttrNames() []string {
	names := make([]string, 0, len(e.node.Attr))
	for _, a := range e.node.Attr {
		names = append(names, a.Key)
	}
	return names
}

// Text collects the visible text of the subtree, whitespace-normalised.
// Script and style contents are skipped.
func (e *Element) Text() string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return sb.String()
}

// SiblingIndex returns the zero-based position of the element among its
// element siblings. Text and comment siblings do not count.
func (e *Element) SiblingIndex() int {
	idx := 0
	for s := e.node.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			idx++
		}
	}
	return idx
}

// NthOfType returns the one-based position of the element among element
// siblings sharing its tag name, CSS :nth-of-type semantics.
func (e *Element) NthOfType() int {
	n := 1
	for s := e.node.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode && s.Data == e.node.Data {
			n++
		}
	}
	return n
}

// Depth returns the number of element ancestors above the element.
func (e *Element) Depth() int {
	d := 0
	for n := e.node.Parent; n != nil && n.Type == html.ElementNode; n = n.Parent {
		d++
	}
	return d
}

// ChildCount returns the number of element children.
func (e *Element) ChildCount() int {
	count := 0
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count++
		}
	}
	return count
}

// Path returns the structural path from the document root to the element.
// Each segment is the tag name qualified by #id when present, otherwise by
// :nth-of-type(n) when the element is not the first of its tag.
func (e *Element) Path() string {
	var segs []string
	for n := e.node; n != nil && n.Type == html.ElementNode; n = n.Parent {
		el, ok := e.tree.byNode[n]
		if !ok {
			break
		}
		segs = append([]string{el.pathSegment()}, segs...)
	}
	return strings.Join(segs, " > ")
}

func (e *Element) pathSegment() string {
	if id, ok := e.Attr("id"); ok && id != "" {
		return e.Tag() + "#" + id
	}
	if n := e.NthOfType(); n > 1 {
		return fmt.Sprintf("%s:nth-of-type(%d)", e.Tag(), n)
	}
	return e.Tag()
}
