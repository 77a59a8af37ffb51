package format

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/stockdash/pkg/stockdash/types"
)

func f(v float64) *float64 { return &v }

func TestNewTableViewPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		in   types.Table
	}{
		{name: "zero", in: types.Table{}},
		{name: "rows only", in: types.Table{Rows: []string{"Total Revenue"}}},
		{name: "columns only", in: types.Table{Columns: []string{"2023-09-30"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tv := NewTableView("Annual Income Statement", "No Annual Income Statement data available.", tt.in)
			assert.False(t, tv.Available)
			assert.Equal(t, "No Annual Income Statement data available.", tv.Warning)
			assert.Empty(t, tv.Rows)
		})
	}
}

func TestNewTableViewFormatsCells(t *testing.T) {
	tv := NewTableView("Annual Income Statement", "", types.Table{
		Rows:    []string{"Total Revenue", "EPS", "Ragged"},
		Columns: []string{"2023-09-30", "2022-09-30"},
		Cells: [][]*float64{
			{f(383285000000), f(394328000000)},
			{f(6.13), nil},
			{f(math.NaN())},
		},
	})
	require.True(t, tv.Available)
	assert.Equal(t, []string{"", "2023-09-30", "2022-09-30"}, tv.Header)
	assert.Equal(t, [][]string{
		{"Total Revenue", "383,285,000,000", "394,328,000,000"},
		{"EPS", "6.13", ""},
		{"Ragged", "", ""},
	}, tv.Rows)
}

func TestCell(t *testing.T) {
	assert.Equal(t, "", Cell(nil))
	assert.Equal(t, "", Cell(f(math.Inf(-1))))
	assert.Equal(t, "-1,500", Cell(f(-1500)))
	assert.Equal(t, "0", Cell(f(0)))
	assert.Equal(t, "1,234.50", Cell(f(1234.5)))
}

func TestTableViewHTML(t *testing.T) {
	tv := NewTableView("Quarterly Cash Flow", "", types.Table{
		Rows:    []string{"Free Cash Flow <adj>"},
		Columns: []string{"2024-03-31"},
		Cells:   [][]*float64{{f(20694000000)}},
	})
	html := tv.HTML()
	assert.True(t, strings.HasPrefix(html, `<table class="statement">`), html)
	assert.Contains(t, html, "20,694,000,000")
	assert.Contains(t, html, "2024-03-31")
	assert.Contains(t, html, "Free Cash Flow &lt;adj&gt;")
}

func TestTableViewFailed(t *testing.T) {
	tv := NewTableView("Annual Financial Statements", "No annual financial data available.", types.Table{
		Rows:    []string{"Total Revenue"},
		Columns: []string{"2023-09-30"},
		Cells:   [][]*float64{{f(1)}},
	})
	tv.Name = "Annual Financials"

	failed := tv.Failed(errors.New("bad shape"))
	assert.False(t, failed.Available)
	assert.Empty(t, failed.Rows)
	assert.Equal(t, "Annual Financial Statements", failed.Title)
	assert.Equal(t, "Unable to display Annual Financials data.", failed.Warning)
	assert.Equal(t, "Error displaying Annual Financials: bad shape", failed.Error)

	untitled := Placeholder("Annual Cash Flow", "").Failed(errors.New("x"))
	assert.Equal(t, "Unable to display Annual Cash Flow data.", untitled.Warning)
}

func TestGuard(t *testing.T) {
	out, err := Guard(func() string { return "<table/>" })
	require.NoError(t, err)
	assert.Equal(t, "<table/>", out)

	out, err = Guard(func() string { panic("render boom") })
	require.EqualError(t, err, "render boom")
	assert.Empty(t, out)
}
