// Package docx reads and writes WordprocessingML (.docx) documents for the
// readdoc filter. Only the body paragraphs of word/document.xml are exposed;
// every other part of the package is copied through untouched.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/fwojciec/readdoc"
)

// Package part names.
const (
	DocumentPart = "word/document.xml"
	StylesPart   = "word/styles.xml"
)

// Ensure Codec implements readdoc.DocumentCodec at compile time.
var _ readdoc.DocumentCodec = (*Codec)(nil)

// Codec decodes .docx packages into readdoc documents and encodes them back.
// A Codec is stateless and safe for concurrent use.
type Codec struct{}

// NewCodec creates a new Codec.
func NewCodec() *Codec {
	return &Codec{}
}

// pkg is the backing tree stored in readdoc.Document.Source.
type pkg struct {
	zr    *zip.Reader
	tree  *etree.Document
	paras []*paraBinding
}

type paraBinding struct {
	para *readdoc.Paragraph
	el   *etree.Element
	runs []*runBinding
}

type runBinding struct {
	run  *readdoc.Run
	el   *etree.Element
	text string // text as last written to el
}

// Decode parses a .docx package.
func (c *Codec) Decode(data []byte) (*readdoc.Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, readdoc.Errorf(readdoc.EMALFORMED, "not a docx package: %v", err)
	}

	docXML, err := readPart(zr, DocumentPart)
	if err != nil {
		return nil, err
	}
	if docXML == nil {
		return nil, readdoc.Errorf(readdoc.EMALFORMED, "%s not found in package", DocumentPart)
	}

	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(docXML); err != nil {
		return nil, readdoc.Errorf(readdoc.EMALFORMED, "parsing %s: %v", DocumentPart, err)
	}

	root := tree.Root()
	if root == nil || !isW(root, "document") {
		return nil, readdoc.Errorf(readdoc.EMALFORMED, "%s has no w:document root", DocumentPart)
	}
	body := childW(root, "body")
	if body == nil {
		return nil, readdoc.Errorf(readdoc.EMALFORMED, "%s has no w:body", DocumentPart)
	}

	styles, err := loadStyles(zr)
	if err != nil {
		return nil, err
	}

	p := &pkg{zr: zr, tree: tree}
	doc := &readdoc.Document{Source: p}

	for _, el := range body.ChildElements() {
		if !isW(el, "p") {
			continue
		}
		b := decodeParagraph(el, styles)
		p.paras = append(p.paras, b)
		doc.Paragraphs = append(doc.Paragraphs, b.para)
	}

	return doc, nil
}

// Encode writes doc back into its original package, dropping the paragraphs
// and runs that were removed from it and rewriting changed run text.
func (c *Codec) Encode(doc *readdoc.Document) ([]byte, error) {
	p, ok := doc.Source.(*pkg)
	if !ok || p == nil {
		return nil, readdoc.Errorf(readdoc.EMALFORMED, "document was not decoded from a docx package")
	}

	if err := p.sync(doc); err != nil {
		return nil, err
	}

	docXML, err := p.tree.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing %s: %w", DocumentPart, err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range p.zr.File {
		if f.Name != DocumentPart {
			if err := zw.Copy(f); err != nil {
				return nil, fmt.Errorf("copying %s: %w", f.Name, err)
			}
			continue
		}

		fh := f.FileHeader
		w, err := zw.CreateHeader(&fh)
		if err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.Name, err)
		}
		if _, err := w.Write(docXML); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing package: %w", err)
	}

	return buf.Bytes(), nil
}

// sync applies the state of doc to the XML tree.
func (p *pkg) sync(doc *readdoc.Document) error {
	keepParas := make(map[*readdoc.Paragraph]bool, len(doc.Paragraphs))
	for _, para := range doc.Paragraphs {
		keepParas[para] = true
	}

	known := 0
	for _, b := range p.paras {
		if !keepParas[b.para] {
			detach(b.el)
			continue
		}
		known++

		keepRuns := make(map[*readdoc.Run]bool, len(b.para.Runs))
		for _, r := range b.para.Runs {
			keepRuns[r] = true
		}
		for _, rb := range b.runs {
			if !keepRuns[rb.run] {
				detach(rb.el)
				continue
			}
			if rb.run.Text != rb.text {
				setRunText(rb.el, rb.text, rb.run.Text)
				rb.text = rb.run.Text
			}
		}
	}

	if known != len(doc.Paragraphs) {
		return readdoc.Errorf(readdoc.EMALFORMED, "document contains paragraphs not decoded from its package")
	}
	return nil
}

// readPart returns the contents of the named part, or nil if it is absent.
func readPart(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, readdoc.Errorf(readdoc.EMALFORMED, "opening %s: %v", name, err)
		}
		defer rc.Close()

		b, err := io.ReadAll(rc)
		if err != nil {
			return nil, readdoc.Errorf(readdoc.EMALFORMED, "reading %s: %v", name, err)
		}
		return b, nil
	}
	return nil, nil
}

func detach(el *etree.Element) {
	if parent := el.Parent(); parent != nil {
		parent.RemoveChild(el)
	}
}
