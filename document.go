package readdoc

import "strings"

// Document is an ordered sequence of body paragraphs.
// Filtering only ever removes paragraphs; it never inserts or reorders them.
type Document struct {
	Paragraphs []*Paragraph

	// Source is the codec-specific backing tree the document was decoded
	// from. Extraction never reads or modifies it.
	Source any
}

// Paragraph is an ordered sequence of runs with paragraph-level metadata.
type Paragraph struct {
	// StyleName is the display name of the paragraph style, e.g. "Heading 1".
	// Empty when the paragraph has no explicit style.
	StyleName string

	Runs []*Run

	// InlineText is text carried by inline content that is not modelled as
	// runs (hyperlinks, fields, tracked insertions). It only counts toward
	// deciding whether the paragraph is empty.
	InlineText string
}

// Text returns the concatenated text of all runs followed by inline text.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	sb.WriteString(p.InlineText)
	return sb.String()
}

// IsEmpty reports whether the paragraph has no visible text.
func (p *Paragraph) IsEmpty() bool {
	return strings.TrimSpace(p.Text()) == ""
}

// Run is a contiguous span of text sharing one style record.
type Run struct {
	Text  string
	Style RunStyle
}

// IsBlank reports whether the run contains only whitespace.
func (r *Run) IsBlank() bool {
	return strings.TrimSpace(r.Text) == ""
}

// RunStyle holds the character-level attributes the filter looks at.
type RunStyle struct {
	// Bold is true when a bold attribute is present, whatever its value.
	Bold bool

	Underline   Attr
	Highlight   Attr
	ShadingFill Attr
}

// Attr is an optional attribute value. Set distinguishes an attribute that
// is present with an empty value from one that is absent.
type Attr struct {
	Set   bool
	Value string
}

// On returns a present attribute with the given value.
func On(value string) Attr {
	return Attr{Set: true, Value: value}
}

// DocumentCodec converts between serialized documents and the paragraph model.
type DocumentCodec interface {
	// Decode parses a serialized document.
	// Returns EMALFORMED if the input is not a readable document.
	Decode(data []byte) (*Document, error)

	// Encode serializes a document previously returned by Decode,
	// reflecting any paragraphs and runs removed or rewritten since.
	// Returns EMALFORMED if doc was not produced by this codec.
	Encode(doc *Document) ([]byte, error)
}
