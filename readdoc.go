// Package readdoc extracts marked content from word-processing documents.
// It keeps highlighted and/or underlined text along with the structural
// scaffolding around it (headings, tag lines, citations) and drops the
// rest, producing a reduced document that still reads in order.
//
// This package contains domain types, interfaces, and the filtering core
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., docx/,
// sqlite/, http/).
package readdoc
