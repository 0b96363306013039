package transcript

import (
	"strings"

	"golang.org/x/net/html"
)

// nodeText concatenates the text content of a node and all of its
// descendants, in document order.
func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// findDescendant returns the first descendant element with the given
// tag, or nil.
func findDescendant(n *html.Node, tag string) *html.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
		if found := findDescendant(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// collectDescendants appends all descendant elements with the given
// tag, in document order.
func collectDescendants(n *html.Node, tag string, out []*html.Node) []*html.Node {
	if n == nil {
		return out
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			out = append(out, c)
		}
		out = collectDescendants(c, tag, out)
	}
	return out
}

// nextElementSibling returns the next sibling that is an element node.
func nextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// prevElementSibling returns the previous sibling that is an element node.
func prevElementSibling(n *html.Node) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// isTag reports whether the node is an element with the given tag.
func isTag(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == tag
}

// containsTable reports whether the node is, or contains, a table.
func containsTable(n *html.Node) bool {
	return isTag(n, "table") || findDescendant(n, "table") != nil
}

// tableOf returns the node itself when it is a table, or its first
// table descendant.
func tableOf(n *html.Node) *html.Node {
	if isTag(n, "table") {
		return n
	}
	return findDescendant(n, "table")
}

// rowText joins the cell texts of a table row with single spaces.
func rowText(row *html.Node) string {
	var cells []string
	for _, cell := range childElements(row) {
		if text := strings.TrimSpace(nodeText(cell)); text != "" {
			cells = append(cells, text)
		}
	}
	return strings.Join(cells, " ")
}

// italicText returns the text of the first distinctly styled inline
// child (italic) with non-empty content.
func italicText(n *html.Node) string {
	for _, tag := range []string{"i", "em"} {
		if child := findDescendant(n, tag); child != nil {
			if text := strings.TrimSpace(nodeText(child)); text != "" {
				return text
			}
		}
	}
	return ""
}
