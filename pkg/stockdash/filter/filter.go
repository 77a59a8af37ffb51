package filter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Filter matches a ticker symbol.
type Filter interface {
	Match(symbol string) bool
}

// Parse builds a filter from an expression:
// - Comma-separated symbols: "AAPL,MSFT"
// - Glob: "A*", "?OOG"
// - Regex: "/^BRK-/"
// - Anything else: case-insensitive substring
//
// Symbols are compared upper-cased except for regexes, which match as written.
func Parse(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Always(true), nil
	}
	if strings.HasPrefix(expr, "/") && strings.HasSuffix(expr, "/") && len(expr) > 2 {
		re, err := regexp.Compile(expr[1 : len(expr)-1])
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", expr, err)
		}
		return Regex{re: re}, nil
	}
	if strings.Contains(expr, ",") {
		set := map[string]struct{}{}
		for _, p := range strings.Split(expr, ",") {
			p = strings.ToUpper(strings.TrimSpace(p))
			if p == "" {
				continue
			}
			set[p] = struct{}{}
		}
		return ExactSet{set: set}, nil
	}
	if strings.ContainsAny(expr, "*?[") {
		pattern := strings.ToUpper(expr)
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("filter %q: %w", expr, err)
		}
		return Glob{pattern: pattern}, nil
	}
	return SubstrCI{needle: strings.ToUpper(expr)}, nil
}

// Apply returns the symbols matched by f, preserving order.
func Apply(f Filter, symbols []string) []string {
	if f == nil {
		return append([]string(nil), symbols...)
	}
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

type Always bool

func (a Always) Match(string) bool { return bool(a) }

type ExactSet struct{ set map[string]struct{} }

func (e ExactSet) Match(symbol string) bool {
	_, ok := e.set[strings.ToUpper(symbol)]
	return ok
}

type Glob struct{ pattern string }

func (g Glob) Match(symbol string) bool {
	ok, _ := filepath.Match(g.pattern, strings.ToUpper(symbol))
	return ok
}

type Regex struct{ re *regexp.Regexp }

func (r Regex) Match(symbol string) bool { return r.re.MatchString(symbol) }

// SubstrCI matches if the symbol contains needle, case-insensitively.
type SubstrCI struct{ needle string }

func (s SubstrCI) Match(symbol string) bool {
	return strings.Contains(strings.ToUpper(symbol), s.needle)
}

func (g Glob) String() string     { return fmt.Sprintf("glob:%s", g.pattern) }
func (r Regex) String() string    { return fmt.Sprintf("regex:%s", r.re) }
func (s SubstrCI) String() string { return fmt.Sprintf("substr-ci:%s", s.needle) }
