package docx

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/readdoc"
)

// nsW is the WordprocessingML main namespace.
const nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// styleNames maps paragraph style IDs to display names.
type styleNames struct {
	names map[string]string
	def   string // name of the default paragraph style
}

// name returns the display name for a paragraph style ID. Empty IDs and IDs
// that are not paragraph styles in styles.xml resolve to the default
// paragraph style.
func (s *styleNames) name(id string) string {
	if n, ok := s.names[id]; ok && id != "" {
		return n
	}
	return s.def
}

func decodeParagraph(el *etree.Element, styles *styleNames) *paraBinding {
	var styleID string
	if pPr := childW(el, "pPr"); pPr != nil {
		if ps := childW(pPr, "pStyle"); ps != nil {
			styleID, _ = attrW(ps, "val")
		}
	}

	b := &paraBinding{
		para: &readdoc.Paragraph{StyleName: styles.name(styleID)},
		el:   el,
	}

	var inline strings.Builder
	for _, c := range el.ChildElements() {
		switch {
		case isW(c, "r"):
			r := &readdoc.Run{Text: runText(c), Style: runStyle(c)}
			b.para.Runs = append(b.para.Runs, r)
			b.runs = append(b.runs, &runBinding{run: r, el: c, text: r.Text})
		case isW(c, "pPr"):
		default:
			collectText(c, &inline)
		}
	}
	b.para.InlineText = inline.String()

	return b
}

// runText returns the text of a w:r element the way Word presents it:
// tabs and breaks become \t and \n.
func runText(r *etree.Element) string {
	var sb strings.Builder
	for _, c := range r.ChildElements() {
		if c.NamespaceURI() != nsW {
			continue
		}
		switch c.Tag {
		case "t":
			sb.WriteString(c.Text())
		case "tab", "ptab":
			sb.WriteByte('\t')
		case "br", "cr":
			sb.WriteByte('\n')
		case "noBreakHyphen":
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

// runStyle reads the marking attributes from a run's w:rPr.
func runStyle(r *etree.Element) readdoc.RunStyle {
	var s readdoc.RunStyle
	rPr := childW(r, "rPr")
	if rPr == nil {
		return s
	}
	for _, c := range rPr.ChildElements() {
		if c.NamespaceURI() != nsW {
			continue
		}
		switch c.Tag {
		case "b":
			s.Bold = true
		case "u":
			v, _ := attrW(c, "val")
			s.Underline = readdoc.On(v)
		case "highlight":
			v, _ := attrW(c, "val")
			s.Highlight = readdoc.On(v)
		case "shd":
			v, _ := attrW(c, "fill")
			s.ShadingFill = readdoc.On(v)
		}
	}
	return s
}

// collectText appends the text of every w:t below el.
func collectText(el *etree.Element, sb *strings.Builder) {
	for _, c := range el.ChildElements() {
		if isW(c, "t") {
			sb.WriteString(c.Text())
			continue
		}
		collectText(c, sb)
	}
}

// setRunText replaces the visible text of a w:r element. A text change that
// only prepends a space inserts one w:t instead of rewriting the run, so
// fields and other run content stay as they were.
func setRunText(r *etree.Element, old, text string) {
	if strings.HasPrefix(text, " ") && text[1:] == old {
		t := etree.NewElement(prefixed(r, "t"))
		t.CreateAttr("xml:space", "preserve")
		t.SetText(" ")
		r.InsertChildAt(firstContentIndex(r), t)
		return
	}

	for i := len(r.Child) - 1; i >= 0; i-- {
		if c, ok := r.Child[i].(*etree.Element); ok && isW(c, "rPr") {
			continue
		}
		r.RemoveChildAt(i)
	}

	var chunk strings.Builder
	flush := func() {
		if chunk.Len() == 0 {
			return
		}
		t := r.CreateElement(prefixed(r, "t"))
		t.CreateAttr("xml:space", "preserve")
		t.SetText(chunk.String())
		chunk.Reset()
	}
	for _, ch := range text {
		switch ch {
		case '\t':
			flush()
			r.CreateElement(prefixed(r, "tab"))
		case '\n':
			flush()
			r.CreateElement(prefixed(r, "br"))
		default:
			chunk.WriteRune(ch)
		}
	}
	flush()
}

// firstContentIndex returns the child index just after the run properties.
func firstContentIndex(r *etree.Element) int {
	for i, tok := range r.Child {
		if c, ok := tok.(*etree.Element); ok && !isW(c, "rPr") {
			return i
		}
	}
	return len(r.Child)
}

func prefixed(el *etree.Element, tag string) string {
	if el.Space == "" {
		return tag
	}
	return el.Space + ":" + tag
}

// isW reports whether el is the WordprocessingML element named tag.
func isW(el *etree.Element, tag string) bool {
	return el.Tag == tag && el.NamespaceURI() == nsW
}

// childW returns the first WordprocessingML child of el named tag.
func childW(el *etree.Element, tag string) *etree.Element {
	for _, c := range el.ChildElements() {
		if isW(c, tag) {
			return c
		}
	}
	return nil
}

// attrW returns the value of the WordprocessingML attribute named key.
func attrW(el *etree.Element, key string) (string, bool) {
	for i := range el.Attr {
		a := &el.Attr[i]
		if a.Key == key && a.NamespaceURI() == nsW {
			return a.Value, true
		}
	}
	return "", false
}
