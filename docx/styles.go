package docx

import (
	"archive/zip"

	"github.com/beevik/etree"
	"github.com/fwojciec/readdoc"
)

// loadStyles reads paragraph style names from word/styles.xml. A style
// without a w:name has an empty name. A package without a styles part yields
// an empty mapping.
func loadStyles(zr *zip.Reader) (*styleNames, error) {
	s := &styleNames{names: make(map[string]string)}

	data, err := readPart(zr, StylesPart)
	if err != nil || data == nil {
		return s, err
	}

	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, readdoc.Errorf(readdoc.EMALFORMED, "parsing %s: %v", StylesPart, err)
	}
	root := tree.Root()
	if root == nil {
		return s, nil
	}

	for _, st := range root.ChildElements() {
		if !isW(st, "style") {
			continue
		}
		if typ, _ := attrW(st, "type"); typ != "paragraph" {
			continue
		}
		id, _ := attrW(st, "styleId")
		var name string
		if n := childW(st, "name"); n != nil {
			if v, ok := attrW(n, "val"); ok {
				name = displayName(v)
			}
		}
		s.names[id] = name
		if def, _ := attrW(st, "default"); def == "1" || def == "true" {
			s.def = name
		}
	}

	return s, nil
}

// displayName maps the lower-case names Word stores for built-in styles
// ("heading 1") to the names it shows ("Heading 1").
func displayName(name string) string {
	if name == "" {
		return name
	}
	switch name {
	case "heading 1", "heading 2", "heading 3", "heading 4", "heading 5",
		"heading 6", "heading 7", "heading 8", "heading 9",
		"caption", "title", "subtitle", "normal":
		return string(name[0]-'a'+'A') + name[1:]
	}
	return name
}
