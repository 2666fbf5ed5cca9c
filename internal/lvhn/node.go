package lvhn

import (
	"strings"

	"golang.org/x/net/html"
)

// Node-walking helpers shared by the summary and details parsers.
// The site's markup addresses everything by class name fragments, so the
// primary predicate is "element whose class attribute contains X".

// parseDocument parses an HTML string into a document node.
func parseDocument(htmlText string) (*html.Node, error) {
	return html.Parse(strings.NewReader(htmlText))
}

// attr returns the value of the named attribute, or "" when absent.
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// hasClass reports whether the node's class attribute contains the given
// fragment. Matching is substring-based to mirror the site's BEM-style
// class names ("field--name-node-title node__title" etc.).
func hasClass(n *html.Node, fragment string) bool {
	return n.Type == html.ElementNode && strings.Contains(attr(n, "class"), fragment)
}

// findNode returns the first descendant (including n itself) satisfying the
// predicate, in document order, or nil.
func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

// findNodes returns all descendants (including n itself) satisfying the
// predicate, in document order.
func findNodes(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if match(node) {
			found = append(found, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

// byClass builds a predicate for elements of the given tag (or any tag when
// tag is "") whose class contains the fragment.
func byClass(tag, fragment string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		if tag != "" && n.Data != tag {
			return false
		}
		return strings.Contains(attr(n, "class"), fragment)
	}
}

// byTag builds a predicate for elements with the given tag name.
func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

// innerText returns all descendant text of the node, entity-decoded by the
// parser, with whitespace runs collapsed and the result trimmed.
func innerText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteString(" ")
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// directText returns the text of the node's immediate text-node children
// only, skipping element children. Used for listing entries where a <strong>
// title and the plain value share one <p>.
func directText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
			sb.WriteString(" ")
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// nextElementSiblings returns the element siblings after n, in order.
func nextElementSiblings(n *html.Node) []*html.Node {
	var siblings []*html.Node
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			siblings = append(siblings, s)
		}
	}
	return siblings
}
