package readdoc

import (
	"path"
	"path/filepath"
	"strings"
)

// OutputSuffix is appended to the stem of an extracted document's name.
const OutputSuffix = "_read-doc"

// OutputPath returns the path an extracted copy of p is written to:
// the same directory and extension with OutputSuffix after the stem.
// Example: cards/aff.docx → cards/aff_read-doc.docx
func OutputPath(p string) string {
	ext := filepath.Ext(p)
	stem := strings.TrimSuffix(filepath.Base(p), ext)
	return filepath.Join(filepath.Dir(p), stem+OutputSuffix+ext)
}

// OutputFilename returns the logical output name for an uploaded file.
// The extension is always .docx and directory components are dropped.
// Example: uploads/aff.docx → aff_read-doc.docx
func OutputFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	stem := strings.TrimSuffix(base, path.Ext(base))
	return stem + OutputSuffix + ".docx"
}
