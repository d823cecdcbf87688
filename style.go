package readdoc

import "strings"

// structuralStyleKeywords mark paragraph styles used for verbatim
// scaffolding: pockets, hats, blocks, tags and cites.
var structuralStyleKeywords = []string{"heading", "block", "tag", "cite", "title"}

// IsHighlighted reports whether the run carries a highlight color or a
// non-white background shading. Text pasted from the web is often shaded
// rather than highlighted, so both count.
func IsHighlighted(r *Run) bool {
	if h := r.Style.Highlight; h.Set {
		switch strings.ToLower(h.Value) {
		case "", "none":
		default:
			return true
		}
	}
	if s := r.Style.ShadingFill; s.Set {
		switch strings.ToLower(s.Value) {
		case "", "auto", "ffffff", "none":
		default:
			return true
		}
	}
	return false
}

// IsUnderlined reports whether the run has an underline attribute other
// than "none". An attribute without a value counts as a single underline.
func IsUnderlined(r *Run) bool {
	u := r.Style.Underline
	return u.Set && strings.ToLower(u.Value) != "none"
}

// isUnderlinedStrict is the BothRequired variant of IsUnderlined: an
// underline attribute without a value is not an underline.
func isUnderlinedStrict(r *Run) bool {
	u := r.Style.Underline
	if !u.Set {
		return false
	}
	switch strings.ToLower(u.Value) {
	case "", "none":
		return false
	}
	return true
}

// IsBold reports whether the run has a bold attribute. The attribute's
// value is not inspected, so an explicit "bold off" still counts.
func IsBold(r *Run) bool {
	return r.Style.Bold
}

// IsStructural reports whether the paragraph is document scaffolding that
// must survive filtering: either its style name looks like a heading, tag,
// block or cite, or every non-blank run in it is bold.
func IsStructural(p *Paragraph) bool {
	style := strings.ToLower(p.StyleName)
	for _, kw := range structuralStyleKeywords {
		if strings.Contains(style, kw) {
			return true
		}
	}

	var seen bool
	for _, r := range p.Runs {
		if r.IsBlank() {
			continue
		}
		if !IsBold(r) {
			return false
		}
		seen = true
	}
	return seen
}
