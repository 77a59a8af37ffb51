package format

import (
	"sort"
	"strings"
)

// Sets defines named metric groups that expand into lists of metric keys.
var Sets = map[string][]string{
	"valuation": {"market_cap", "pe", "book_value"},
	"price":     {"price", "day_range"},
	"trading":   {"volume", "beta", "dividend_yield"},
	"all":       {"market_cap", "pe", "price", "dividend_yield", "day_range", "book_value", "volume", "beta"},
}

// ExpandSets returns the union of metric keys for the given names. A name may
// be a set or a single metric key. Order of first occurrence is preserved.
func ExpandSets(names []string) ([]string, error) {
	out := make([]string, 0, 8)
	seen := map[string]struct{}{}
	add := func(k string) {
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if keys, ok := Sets[name]; ok {
			for _, k := range keys {
				add(k)
			}
			continue
		}
		if _, ok := Registry[name]; ok {
			add(name)
			continue
		}
		return nil, &UnknownSetError{Name: name, Available: availableSets()}
	}
	return out, nil
}

// Columns splits keys into a layout of columns holding at most per keys each.
func Columns(keys []string, per int) [][]string {
	if per <= 0 {
		per = 2
	}
	var out [][]string
	for i := 0; i < len(keys); i += per {
		end := i + per
		if end > len(keys) {
			end = len(keys)
		}
		out = append(out, append([]string(nil), keys[i:end]...))
	}
	return out
}

// UnknownSetError reports an unknown metric set name.
type UnknownSetError struct {
	Name      string
	Available []string
}

func (e *UnknownSetError) Error() string {
	return "unknown metric set: " + e.Name + "; available: " + strings.Join(e.Available, ", ")
}

func availableSets() []string {
	keys := make([]string, 0, len(Sets)+len(Registry))
	for k := range Sets {
		keys = append(keys, k)
	}
	for k := range Registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
