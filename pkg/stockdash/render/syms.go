package render

import (
	"fmt"
	"io"
	"strings"
)

// Syms prints symbols on a single comma-separated line.
func Syms(w io.Writer, symbols []string) error {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	_, err := fmt.Fprintln(w, strings.Join(out, ","))
	return err
}
