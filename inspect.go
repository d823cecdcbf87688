package readdoc

import "unicode/utf8"

// PreviewLength is the number of runes of paragraph text shown in reports.
const PreviewLength = 80

// NoValue stands in for an attribute that is present without a value.
const NoValue = "NO_VAL"

// ParagraphReport describes how the filter classifies one paragraph.
type ParagraphReport struct {
	Index      int
	Preview    string
	StyleName  string
	Structural bool
	BoldRuns   int
	TextRuns   int
	Marked     []RunReport
}

// RunReport shows the marking attributes of a non-blank run.
// Highlight and Underline are empty when the attribute is absent.
type RunReport struct {
	Index     int
	Preview   string
	Highlight string
	Underline string
}

// Inspect reports the structural classification and marked runs of every
// non-empty paragraph in doc. Index is the paragraph's position in doc,
// counting empty paragraphs.
func Inspect(doc *Document) []ParagraphReport {
	var reports []ParagraphReport
	for i, p := range doc.Paragraphs {
		if p.IsEmpty() {
			continue
		}

		rep := ParagraphReport{
			Index:      i,
			Preview:    truncate(p.Text(), PreviewLength),
			StyleName:  p.StyleName,
			Structural: IsStructural(p),
		}
		for j, r := range p.Runs {
			if r.IsBlank() {
				continue
			}
			rep.TextRuns++
			if IsBold(r) {
				rep.BoldRuns++
			}
			h, u := attrValue(r.Style.Highlight), attrValue(r.Style.Underline)
			if h != "" || u != "" {
				rep.Marked = append(rep.Marked, RunReport{
					Index:     j,
					Preview:   truncate(r.Text, 50),
					Highlight: h,
					Underline: u,
				})
			}
		}
		reports = append(reports, rep)
	}
	return reports
}

func attrValue(a Attr) string {
	if !a.Set {
		return ""
	}
	if a.Value == "" {
		return NoValue
	}
	return a.Value
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
