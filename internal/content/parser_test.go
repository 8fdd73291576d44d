package content

import (
	"strings"
	"testing"

	"github.com/pranesh-j/handiwork/internal/models"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser("https://f95zone.to")
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	return p
}

func TestElementsTextAndLinks(t *testing.T) {
	p := newTestParser(t)
	elems, err := p.Elements(`Download <b>here</b>: <a href="/threads/1/">the <i>thread</i></a><br/>bye`)
	if err != nil {
		t.Fatalf("Elements: %v", err)
	}
	if len(elems) != 3 {
		t.Fatalf("Expected 3 elements, got %d: %+v", len(elems), elems)
	}
	if elems[0].Type != models.ElementText || elems[0].Text != "Download here: " {
		t.Errorf("first element = %+v", elems[0])
	}
	link := elems[1]
	if link.Type != models.ElementLink || link.URL != "https://f95zone.to/threads/1/" || link.Text != "the thread" {
		t.Errorf("link = %+v", link)
	}
	if elems[2].Text != "\nbye" {
		t.Errorf("trailing text = %q", elems[2].Text)
	}
}

func TestElementsSpoilerImageQuoteCode(t *testing.T) {
	p := newTestParser(t)
	body := `<div class="bbCodeSpoiler">
	<button class="bbCodeSpoiler-button"><span class="bbCodeSpoiler-button-title">Changelog</span></button>
	<div class="bbCodeSpoiler-content"><div class="bbCodeBlock bbCodeBlock--spoiler"><div class="bbCodeBlock-content">v0.2 <img data-src="/img/a.png" src="/lazy.gif" alt="shot"></div></div></div>
</div>
<blockquote class="bbCodeBlock bbCodeBlock--quote" data-quote="alice"><div class="bbCodeBlock-expandContent">quoted text</div></blockquote>
<div class="bbCodeBlock bbCodeBlock--code"><div class="bbCodeBlock-title">Code:</div><pre><code>x := 1</code></pre></div>`

	elems, err := p.Elements(body)
	if err != nil {
		t.Fatalf("Elements: %v", err)
	}

	var kinds []string
	for _, e := range elems {
		if e.Type == models.ElementText && strings.TrimSpace(e.Text) == "" {
			continue
		}
		kinds = append(kinds, string(e.Type))
	}
	if strings.Join(kinds, ",") != "spoiler,quote,code" {
		t.Fatalf("element kinds = %v", kinds)
	}

	var spoiler, quote, code models.Element
	for _, e := range elems {
		switch e.Type {
		case models.ElementSpoiler:
			spoiler = e
		case models.ElementQuote:
			quote = e
		case models.ElementCode:
			code = e
		}
	}
	if spoiler.Title != "Changelog" {
		t.Errorf("spoiler title = %q", spoiler.Title)
	}
	var img *models.Element
	for i := range spoiler.Children {
		if spoiler.Children[i].Type == models.ElementImage {
			img = &spoiler.Children[i]
		}
	}
	if img == nil || img.URL != "https://f95zone.to/img/a.png" || img.Title != "shot" {
		t.Errorf("spoiler image = %+v", img)
	}
	if quote.Title != "alice" || textOf(quote.Children) != "quoted text" {
		t.Errorf("quote = %+v", quote)
	}
	if code.Text != "x := 1" {
		t.Errorf("code = %q", code.Text)
	}
}

func TestElementsSkipsScripts(t *testing.T) {
	p := newTestParser(t)
	elems, _ := p.Elements(`<script>alert(1)</script>ok`)
	if len(elems) != 1 || elems[0].Text != "ok" {
		t.Errorf("elements = %+v", elems)
	}
}

func TestMessage(t *testing.T) {
	p := newTestParser(t)
	msg := p.Message(`<b>Overview</b><br>A <a href="/threads/2/">game</a>.`)
	if !strings.Contains(msg, "**Overview**") {
		t.Errorf("message should keep emphasis as markdown, got %q", msg)
	}
	if !strings.Contains(msg, "https://f95zone.to/threads/2/") {
		t.Errorf("message should resolve links against the base, got %q", msg)
	}
	if p.Message("   ") != "" {
		t.Error("blank fragment should produce an empty message")
	}
}

func TestCollapseSpace(t *testing.T) {
	testCases := map[string]string{
		"  a   b ": " a b ",
		"a\n\tb":   "a b",
		"   ":      "",
		"x":        "x",
	}
	for in, want := range testCases {
		if got := collapseSpace(in); got != want {
			t.Errorf("collapseSpace(%q) = %q, want %q", in, got, want)
		}
	}
}
