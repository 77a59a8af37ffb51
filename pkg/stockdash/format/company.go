package format

import (
	"strings"

	"github.com/komsit37/stockdash/pkg/stockdash/types"
)

// Field is a labelled company information line.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Company is the company information section. Summary is empty when the
// provider has no business description.
type Company struct {
	Left    []Field `json:"left"`
	Right   []Field `json:"right"`
	Summary string  `json:"summary,omitempty"`
}

// CompanyInfo builds the company section; each field degrades independently.
func CompanyInfo(info types.Info) Company {
	return Company{
		Left: []Field{
			{Label: "Company Name", Value: Text(info["longName"])},
			{Label: "Sector", Value: Text(info["sector"])},
			{Label: "Industry", Value: Text(info["industry"])},
			{Label: "Country", Value: Text(info["country"])},
		},
		Right: []Field{
			{Label: "Employees", Value: employees(info["fullTimeEmployees"])},
			{Label: "Website", Value: Text(info["website"])},
			{Label: "Founded", Value: Text(info["foundingYear"])},
		},
		Summary: info.String("longBusinessSummary"),
	}
}

// employees renders a head count; zero is treated as unknown.
func employees(in any) string {
	v := ValueOf(in)
	if n, ok := v.Get(); !ok || n == 0 {
		return NotAvailable
	}
	return Format(v, Count, "")
}

// LiteralMarkdown escapes every ASCII punctuation character in s so a
// markdown renderer shows the plain text as written.
func LiteralMarkdown(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	for _, r := range s {
		if strings.ContainsRune("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
