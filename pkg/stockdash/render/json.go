package render

import (
	"encoding/json"
	"io"

	"github.com/komsit37/stockdash/pkg/stockdash/view"
)

type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (r *JSONRenderer) Render(w io.Writer, d *view.Dashboard, opts Options) error {
	enc := json.NewEncoder(w)
	if opts.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(d)
}
