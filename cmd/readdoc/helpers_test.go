package main_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/readdoc/docx"
	"github.com/stretchr/testify/require"
)

// cardBody is a tag, its cite, unmarked filler and a partly marked paragraph.
const cardBody = `<w:p><w:pPr><w:pStyle w:val="Heading4"/></w:pPr><w:r><w:rPr><w:b/></w:rPr><w:t>TAG ONE</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Smith 2020</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>unmarked filler</w:t></w:r></w:p>` +
	`<w:p>` +
	`<w:r><w:rPr><w:highlight w:val="yellow"/></w:rPr><w:t>A</w:t></w:r>` +
	`<w:r><w:t xml:space="preserve"> B </w:t></w:r>` +
	`<w:r><w:rPr><w:highlight w:val="cyan"/><w:u w:val="single"/></w:rPr><w:t>C</w:t></w:r>` +
	`</w:p>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading4"><w:name w:val="heading 4"/></w:style>
</w:styles>`

// writeDocx writes a .docx package with the given body XML into dir.
func writeDocx(t *testing.T, dir, name, body string) string {
	t.Helper()

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range []struct{ name, content string }{
		{"[Content_Types].xml", `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`},
		{docx.DocumentPart, document},
		{docx.StylesPart, stylesXML},
	} {
		w, err := zw.Create(part.name)
		require.NoError(t, err)
		_, err = io.WriteString(w, part.content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0644))
	return p
}

// paragraphTexts decodes the file at path and returns its paragraph texts.
func paragraphTexts(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := docx.NewCodec().Decode(data)
	require.NoError(t, err)

	var out []string
	for _, p := range doc.Paragraphs {
		out = append(out, p.Text())
	}
	return out
}

func testContext() context.Context {
	return context.Background()
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
