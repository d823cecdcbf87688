package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/readdoc"
)

// Run executes the jobs command.
func (c *JobsCmd) Run(deps *Dependencies) error {
	filter := readdoc.JobFilter{Limit: c.Limit}
	if c.User != "" {
		filter.UserID = &c.User
	}

	jobs, err := deps.Jobs.FindJobs(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readdoc.ErrorMessage(err))
		return err
	}

	if len(jobs) == 0 {
		fmt.Fprintln(deps.Stdout, "No jobs found. Use 'readdoc extract' to create one.")
		return nil
	}

	for _, j := range jobs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-12s  %d/%d paragraphs  %s\n",
			j.ID, j.CreatedAt.UTC().Format(time.DateTime), j.Mode, j.After, j.Before, j.InputName)
	}

	return nil
}
