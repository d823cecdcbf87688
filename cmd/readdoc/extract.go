package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/readdoc"
	"github.com/fwojciec/readdoc/extract"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	return runBatch(deps, c.Files, c.mode(), c.Concurrency)
}

// mode resolves the flags; -H wins over -U and neither keeps both.
func (c *ExtractCmd) mode() readdoc.Mode {
	switch {
	case c.Highlighted:
		return readdoc.Highlighted
	case c.Underlined:
		return readdoc.Underlined
	default:
		return readdoc.Both
	}
}

// Run executes the and command.
func (c *AndCmd) Run(deps *Dependencies) error {
	return runBatch(deps, c.Files, readdoc.BothRequired, c.Concurrency)
}

func runBatch(deps *Dependencies, files []string, mode readdoc.Mode, concurrency int) error {
	// Check every input before doing any work
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			err := readdoc.Errorf(readdoc.ENOTFOUND, "File not found: %s", f)
			fmt.Fprintf(deps.Stderr, "error: %s\n", readdoc.ErrorMessage(err))
			return err
		}
	}

	batch := &extract.Batch{
		Extractor:   deps.Extractor,
		Jobs:        deps.Jobs,
		Concurrency: concurrency,
	}

	progress := func(event extract.ProgressEvent) {
		switch event.Type {
		case extract.ProgressStarted:
			if event.Total > 1 {
				fmt.Fprintf(deps.Stdout, "Extracting %d files (%s)\n", event.Total, mode)
			}
		case extract.ProgressCompleted:
			f := event.File
			fmt.Fprintf(deps.Stdout, "%s\n", f.Path)
			fmt.Fprintf(deps.Stdout, "  Removed %d body paragraphs with no marked content\n", f.Result.Removed)
			if f.Result.Empty() {
				fmt.Fprintf(deps.Stderr, "  warning: no marked content found in %s\n", f.Path)
			}
			fmt.Fprintf(deps.Stdout, "  Saved to: %s (%s)\n", f.OutputPath, extract.FormatBytes(f.Bytes))
		case extract.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.File.Path, readdoc.ErrorMessage(event.File.Err))
		}
	}

	result, err := batch.Run(deps.Ctx, files, mode, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	if len(files) > 1 {
		fmt.Fprintf(deps.Stdout, "Extracted %d of %d files\n", result.Succeeded, len(files))
	}
	return nil
}
