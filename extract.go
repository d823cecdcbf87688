package readdoc

// ExtractResult summarizes one extraction pass over a document.
type ExtractResult struct {
	Mode Mode `json:"mode"`

	// Before and After are body paragraph counts around the whole pass.
	Before int `json:"before"`
	After  int `json:"after"`

	// Removed counts paragraphs dropped by pruning.
	Removed int `json:"removed"`

	// Collapsed counts empty paragraphs dropped by cleanup.
	// It is not included in Removed.
	Collapsed int `json:"collapsed"`
}

// Empty reports whether pruning removed every paragraph. This is a warning
// condition for callers, never an error.
func (r ExtractResult) Empty() bool {
	return r.Before > 0 && r.Removed == r.Before
}

// Extract reduces doc in place to its marked content and structure under
// mode, then collapses runs of empty paragraphs. Applying it twice is not
// guaranteed to be a no-op.
func Extract(doc *Document, mode Mode) ExtractResult {
	res := ExtractResult{Mode: mode, Before: len(doc.Paragraphs)}
	res.Removed = Prune(doc, mode)
	res.Collapsed = CollapseEmptyParagraphs(doc)
	res.After = len(doc.Paragraphs)
	return res
}

// Prune walks the paragraphs once and drops those with no marked content.
// Structural paragraphs and the paragraph immediately after one are kept
// verbatim. Returns the number of paragraphs removed.
func Prune(doc *Document, mode Mode) int {
	drop := make([]bool, len(doc.Paragraphs))
	var removed int
	prevWasStructural := false

	for i, p := range doc.Paragraphs {
		isStruct := IsStructural(p)

		// The line after a tag or heading is its citation.
		if isStruct || prevWasStructural {
			prevWasStructural = isStruct
			continue
		}
		prevWasStructural = false

		if !HasMarkedRun(p, mode) || !FilterRuns(p, mode) {
			drop[i] = true
			removed++
		}
	}

	if removed == 0 {
		return 0
	}
	kept := doc.Paragraphs[:0]
	for i, p := range doc.Paragraphs {
		if !drop[i] {
			kept = append(kept, p)
		}
	}
	clear(doc.Paragraphs[len(kept):])
	doc.Paragraphs = kept
	return removed
}

// HasMarkedRun reports whether any non-blank run in p is kept under mode.
// It does not modify p.
func HasMarkedRun(p *Paragraph, mode Mode) bool {
	for _, r := range p.Runs {
		if !r.IsBlank() && mode.Keep(r) {
			return true
		}
	}
	return false
}

// FilterRuns removes the unmarked runs from p and restores the word
// spacing lost with them. Structural paragraphs are left untouched.
// Returns whether p still has any non-blank text.
func FilterRuns(p *Paragraph, mode Mode) bool {
	if IsStructural(p) {
		return true
	}

	drop := make([]bool, len(p.Runs))
	prevKept := false
	for i, r := range p.Runs {
		if r.IsBlank() {
			continue
		}
		if !mode.Keep(r) {
			drop[i] = true
			continue
		}
		if prevKept && (len(r.Text) == 0 || r.Text[0] != ' ') {
			r.Text = " " + r.Text
		}
		prevKept = true
	}

	runs := p.Runs[:0]
	for i, r := range p.Runs {
		if !drop[i] {
			runs = append(runs, r)
		}
	}
	clear(p.Runs[len(runs):])
	p.Runs = runs

	for _, r := range p.Runs {
		if !r.IsBlank() {
			return true
		}
	}
	return false
}

// CollapseEmptyParagraphs removes every empty paragraph that directly
// follows another empty paragraph, so no two empty paragraphs remain
// adjacent. Returns the number of paragraphs removed.
func CollapseEmptyParagraphs(doc *Document) int {
	kept := doc.Paragraphs[:0]
	var removed int
	prevEmpty := false

	for _, p := range doc.Paragraphs {
		isEmpty := p.IsEmpty()
		if isEmpty && prevEmpty {
			removed++
		} else {
			kept = append(kept, p)
		}
		prevEmpty = isEmpty
	}

	clear(doc.Paragraphs[len(kept):])
	doc.Paragraphs = kept
	return removed
}
