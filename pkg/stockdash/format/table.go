package format

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/komsit37/stockdash/pkg/stockdash/types"
)

// TableView is a statement prepared for display. When Available is false
// only Title, Warning and Error are meaningful.
type TableView struct {
	Title     string     `json:"title"`
	Name      string     `json:"name,omitempty"`
	Available bool       `json:"available"`
	Warning   string     `json:"warning,omitempty"`
	Error     string     `json:"error,omitempty"`
	Header    []string   `json:"header,omitempty"`
	Rows      [][]string `json:"rows,omitempty"`
}

// Placeholder is the view shown in place of a missing table.
func Placeholder(title, warning string) TableView {
	return TableView{Title: title, Warning: warning}
}

// Failed is the placeholder shown when tv could not be formatted or
// rendered. Name, or Title when unset, is used in the messages.
func (tv TableView) Failed(err error) TableView {
	name := tv.Name
	if name == "" {
		name = tv.Title
	}
	out := Placeholder(tv.Title, fmt.Sprintf("Unable to display %s data.", name))
	out.Name = tv.Name
	out.Error = fmt.Sprintf("Error displaying %s: %v", name, err)
	return out
}

// Guard runs render and reports a panic inside it as an error.
func Guard(render func() string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("%v", r)
		}
	}()
	return render(), nil
}

// NewTableView formats t. A table without at least one row and one column
// becomes a placeholder carrying warning.
func NewTableView(title, warning string, t types.Table) TableView {
	if t.Empty() {
		return Placeholder(title, warning)
	}
	header := make([]string, 0, len(t.Columns)+1)
	header = append(header, "")
	header = append(header, t.Columns...)

	rows := make([][]string, 0, len(t.Rows))
	for i, label := range t.Rows {
		row := make([]string, 0, len(t.Columns)+1)
		row = append(row, label)
		var cells []*float64
		if i < len(t.Cells) {
			cells = t.Cells[i]
		}
		for j := range t.Columns {
			var c *float64
			if j < len(cells) {
				c = cells[j]
			}
			row = append(row, Cell(c))
		}
		rows = append(rows, row)
	}
	return TableView{Title: title, Available: true, Header: header, Rows: rows}
}

// Cell renders a statement value: whole numbers without decimals, others with
// two, blank when missing.
func Cell(c *float64) string {
	if c == nil || math.IsNaN(*c) || math.IsInf(*c, 0) {
		return ""
	}
	v := *c
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return humanize.Comma(int64(v))
	}
	return humanize.FormatFloat("#,###.##", v)
}

// Writer builds a go-pretty table writer for an available view.
func (tv TableView) Writer() table.Writer {
	tw := table.NewWriter()
	hdr := make(table.Row, len(tv.Header))
	for i, h := range tv.Header {
		hdr[i] = h
	}
	tw.AppendHeader(hdr)
	for _, r := range tv.Rows {
		row := make(table.Row, len(r))
		for i, c := range r {
			row[i] = c
		}
		tw.AppendRow(row)
	}
	cfgs := make([]table.ColumnConfig, 0, len(tv.Header))
	for i := 1; i < len(tv.Header); i++ {
		cfgs = append(cfgs, table.ColumnConfig{Number: i + 1, Align: text.AlignRight, AlignHeader: text.AlignRight})
	}
	tw.SetColumnConfigs(cfgs)
	return tw
}

// HTML renders an available view as an HTML table.
func (tv TableView) HTML() string {
	tw := tv.Writer()
	tw.Style().HTML = table.HTMLOptions{
		CSSClass:    "statement",
		EmptyColumn: "&nbsp;",
		EscapeText:  true,
		Newline:     "<br/>",
	}
	return tw.RenderHTML()
}
