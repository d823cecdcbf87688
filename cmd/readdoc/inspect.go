package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/readdoc"
)

// Run executes the inspect command.
func (c *InspectCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if errors.Is(err, os.ErrNotExist) {
		err = readdoc.Errorf(readdoc.ENOTFOUND, "File not found: %s", c.File)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readdoc.ErrorMessage(err))
		return err
	}

	doc, err := deps.Codec.Decode(data)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readdoc.ErrorMessage(err))
		return err
	}

	reports := readdoc.Inspect(doc)
	if c.Limit > 0 && len(reports) > c.Limit {
		reports = reports[:c.Limit]
	}

	for _, rep := range reports {
		marker := "[BODY]"
		if rep.Structural {
			marker = "[STRUCTURAL]"
		}
		fmt.Fprintf(deps.Stdout, "%s Para %d: %s\n", marker, rep.Index, rep.Preview)
		if rep.StyleName != "" {
			fmt.Fprintf(deps.Stdout, "  style: %s\n", rep.StyleName)
		}
		if !rep.Structural && rep.TextRuns > 0 {
			fmt.Fprintf(deps.Stdout, "  -> %d/%d runs are bold\n", rep.BoldRuns, rep.TextRuns)
		}
		if c.Runs {
			for _, r := range rep.Marked {
				fmt.Fprintf(deps.Stdout, "  Run %d: '%s'\n", r.Index, r.Preview)
				fmt.Fprintf(deps.Stdout, "    Highlight: %s\n", orNone(r.Highlight))
				fmt.Fprintf(deps.Stdout, "    Underline: %s\n", orNone(r.Underline))
			}
		}
	}

	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
