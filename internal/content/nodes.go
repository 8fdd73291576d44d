package content

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// findClass returns the first descendant of n carrying class
func findClass(n *html.Node, class string) *html.Node {
	return find(n, func(c *html.Node) bool { return c.Type == html.ElementNode && hasClass(c, class) })
}

func findAtom(n *html.Node, a atom.Atom) *html.Node {
	return find(n, func(c *html.Node) bool { return c.Type == html.ElementNode && c.DataAtom == a })
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			return c
		}
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

// rawText concatenates every text node under n without normalising space
func rawText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(rawText(c))
	}
	return b.String()
}
