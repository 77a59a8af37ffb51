package render

import (
	"fmt"
	"io"

	"github.com/komsit37/stockdash/pkg/stockdash/view"
)

// Renderer writes one dashboard to an output writer.
type Renderer interface {
	Render(w io.Writer, d *view.Dashboard, opts Options) error
}

type Options struct {
	// Width caps table rows and wraps the business summary; 0 means unbounded.
	Width      int
	Color      bool
	PrettyJSON bool
}

// New returns the renderer for an output format name.
func New(format string) (Renderer, error) {
	switch format {
	case "", "table":
		return NewTerminalRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want table or json)", format)
	}
}
