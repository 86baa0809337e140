package client

import (
	"fmt"
	"net/url"
	"strings"
)

// Params is an ordered list of query parameters. Order of Add calls is
// preserved in the encoded query string.
type Params struct {
	pairs [][2]string
}

func NewParams() *Params { return &Params{} }

// Add appends key=value. Values are formatted with fmt.Sprint.
func (p *Params) Add(key string, value any) *Params {
	p.pairs = append(p.pairs, [2]string{key, fmt.Sprint(value)})
	return p
}

// Len is safe on a nil receiver.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.pairs)
}

// Encode returns "k1=v1&k2=v2" with keys and values query-escaped.
func (p *Params) Encode() string {
	if p.Len() == 0 {
		return ""
	}
	parts := make([]string, len(p.pairs))
	for i, kv := range p.pairs {
		parts[i] = url.QueryEscape(kv[0]) + "=" + url.QueryEscape(kv[1])
	}
	return strings.Join(parts, "&")
}

// withQuery appends p to path, respecting a query string already in path.
func withQuery(path string, p *Params) string {
	q := p.Encode()
	if q == "" {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&" + q
	}
	return path + "?" + q
}
