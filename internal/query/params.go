package query

import (
	"net/url"
	"strings"
)

// params is an insertion-ordered query string builder.
// url.Values sorts its keys on Encode, which would reorder repeated
// collection parameters relative to the scalars around them.
type params struct {
	pairs [][2]string
}

func (p *params) Add(key, value string) {
	p.pairs = append(p.pairs, [2]string{key, value})
}

func (p *params) Encode() string {
	var b strings.Builder
	for i, kv := range p.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv[0]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv[1]))
	}
	return b.String()
}
