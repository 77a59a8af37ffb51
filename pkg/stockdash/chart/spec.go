// Package chart builds declarative chart specs and renders them as
// embeddable HTML.
package chart

// Kind is the trace type.
type Kind string

const (
	Candlestick Kind = "candlestick"
	Bar         Kind = "bar"
	Line        Kind = "line"
)

// Spec describes a grid of panels. Panels are addressed by zero-based row and
// column; RowHeights are relative weights, one per row.
type Spec struct {
	Title       string    `json:"title"`
	Height      int       `json:"height"`
	Rows        int       `json:"rows"`
	Cols        int       `json:"cols"`
	RowHeights  []float64 `json:"row_heights,omitempty"`
	SharedX     bool      `json:"shared_x"`
	RangeSlider bool      `json:"range_slider"`
	Panels      []Panel   `json:"panels"`
}

// Panel is one cell of the grid.
type Panel struct {
	Row    int     `json:"row"`
	Col    int     `json:"col"`
	Title  string  `json:"title"`
	Traces []Trace `json:"traces,omitempty"`
}

// Trace is one data series. Candlesticks use Open/High/Low/Close, other kinds use Y.
type Trace struct {
	Kind  Kind      `json:"kind"`
	Name  string    `json:"name"`
	X     []string  `json:"x"`
	Open  []float64 `json:"open,omitempty"`
	High  []float64 `json:"high,omitempty"`
	Low   []float64 `json:"low,omitempty"`
	Close []float64 `json:"close,omitempty"`
	Y     []float64 `json:"y,omitempty"`
	Color string    `json:"color,omitempty"`
}

// Panel returns the panel at row, col.
func (s *Spec) Panel(row, col int) (*Panel, bool) {
	if s == nil {
		return nil, false
	}
	for i := range s.Panels {
		if s.Panels[i].Row == row && s.Panels[i].Col == col {
			return &s.Panels[i], true
		}
	}
	return nil, false
}
