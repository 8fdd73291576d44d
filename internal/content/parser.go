// Package content turns a post's body markup into typed elements and a
// plain markdown message.
package content

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pranesh-j/handiwork/internal/models"
)

// Parser converts body fragments. It is safe for concurrent use.
type Parser struct {
	base *url.URL
	md   *converter.Converter
}

// NewParser creates a parser resolving relative links against baseURL
func NewParser(baseURL string) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	return &Parser{
		base: u,
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}, nil
}

// Elements parses fragment into a sequence of typed elements
func (p *Parser) Elements(fragment string) ([]models.Element, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse body fragment: %w", err)
	}
	var out []models.Element
	for _, n := range nodes {
		out = append(out, p.walk(n)...)
	}
	return mergeText(out), nil
}

// Message renders fragment as markdown. When conversion fails or yields
// nothing, the fragment's plain text is returned instead.
func (p *Parser) Message(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	md, err := p.md.ConvertString(fragment, converter.WithDomain(p.base.String()))
	if err != nil || strings.TrimSpace(md) == "" {
		return plainText(fragment)
	}
	return strings.TrimSpace(md)
}

func (p *Parser) walk(n *html.Node) []models.Element {
	switch n.Type {
	case html.TextNode:
		text := collapseSpace(n.Data)
		if text == "" {
			return nil
		}
		return []models.Element{{Type: models.ElementText, Text: text}}
	case html.ElementNode:
		return p.walkElement(n)
	case html.DocumentNode:
		return p.walkChildren(n)
	}
	return nil
}

func (p *Parser) walkElement(n *html.Node) []models.Element {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript:
		return nil
	case atom.Br:
		return []models.Element{{Type: models.ElementText, Text: "\n"}}
	case atom.A:
		children := mergeText(p.walkChildren(n))
		return []models.Element{{
			Type:     models.ElementLink,
			URL:      p.resolve(attr(n, "href")),
			Text:     textOf(children),
			Children: children,
		}}
	case atom.Img:
		src := attr(n, "data-src")
		if src == "" {
			src = attr(n, "src")
		}
		return []models.Element{{Type: models.ElementImage, URL: p.resolve(src), Title: attr(n, "alt")}}
	case atom.Blockquote:
		content := n
		if c := findClass(n, "bbCodeBlock-expandContent"); c != nil {
			content = c
		}
		return []models.Element{{
			Type:     models.ElementQuote,
			Title:    attr(n, "data-quote"),
			Children: mergeText(p.walkChildren(content)),
		}}
	case atom.Pre, atom.Code:
		return []models.Element{{Type: models.ElementCode, Text: rawText(n)}}
	}

	switch {
	case hasClass(n, "bbCodeSpoiler"):
		title := ""
		if t := findClass(n, "bbCodeSpoiler-button-title"); t != nil {
			title = strings.TrimSpace(rawText(t))
		}
		content := findClass(n, "bbCodeBlock-content")
		if content == nil {
			content = n
		}
		return []models.Element{{
			Type:     models.ElementSpoiler,
			Title:    title,
			Children: mergeText(p.walkChildren(content)),
		}}
	case hasClass(n, "bbCodeBlock--code"):
		code := n
		if c := findAtom(n, atom.Code); c != nil {
			code = c
		}
		return []models.Element{{Type: models.ElementCode, Text: rawText(code)}}
	}
	return p.walkChildren(n)
}

func (p *Parser) walkChildren(n *html.Node) []models.Element {
	var out []models.Element
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, p.walk(c)...)
	}
	return out
}

func (p *Parser) resolve(ref string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ref
	}
	return p.base.ResolveReference(u).String()
}

// mergeText joins adjacent text elements
func mergeText(in []models.Element) []models.Element {
	var out []models.Element
	for _, e := range in {
		if e.Type == models.ElementText && len(out) > 0 && out[len(out)-1].Type == models.ElementText {
			out[len(out)-1].Text += e.Text
			continue
		}
		out = append(out, e)
	}
	return out
}

func textOf(elems []models.Element) string {
	var b strings.Builder
	for _, e := range elems {
		if e.Type == models.ElementText {
			b.WriteString(e.Text)
		} else {
			b.WriteString(textOf(e.Children))
		}
	}
	return strings.TrimSpace(b.String())
}

func collapseSpace(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	lead := len(s) > 0 && isSpace(s[0])
	trail := len(s) > 0 && isSpace(s[len(s)-1])
	out := strings.Join(strings.Fields(s), " ")
	if lead {
		out = " " + out
	}
	if trail {
		out += " "
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}

func plainText(fragment string) string {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div})
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	var parts []string
	for _, n := range nodes {
		parts = append(parts, rawText(n))
	}
	return strings.TrimSpace(strings.Join(strings.Fields(strings.Join(parts, " ")), " "))
}
