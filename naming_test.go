package readdoc_test

import (
	"path/filepath"
	"testing"

	"github.com/fwojciec/readdoc"
	"github.com/stretchr/testify/assert"
)

func TestOutputPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("cards", "aff_read-doc.docx"), readdoc.OutputPath(filepath.Join("cards", "aff.docx")))
	assert.Equal(t, "neg_read-doc.DOCX", readdoc.OutputPath("neg.DOCX"))
	assert.Equal(t, "file.v2_read-doc.docx", readdoc.OutputPath("file.v2.docx"))
	assert.Equal(t, "noext_read-doc", readdoc.OutputPath("noext"))
}

func TestOutputFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "aff_read-doc.docx", readdoc.OutputFilename("aff.docx"))
	assert.Equal(t, "aff_read-doc.docx", readdoc.OutputFilename("uploads/u1/aff.docx"))
	assert.Equal(t, "aff_read-doc.docx", readdoc.OutputFilename(`C:\cards\aff.docx`))
	assert.Equal(t, "notes_read-doc.docx", readdoc.OutputFilename("notes"))
}
