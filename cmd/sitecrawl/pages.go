package main

import (
	"fmt"

	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/crawl"
)

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.RunID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitecrawl.ErrorMessage(err))
		return err
	}

	pages, err := deps.Pages.FindPages(deps.Ctx, sitecrawl.PageFilter{RunID: &run.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitecrawl.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintf(deps.Stdout, "No pages stored for run %s.\n", run.ID)
		return nil
	}

	for _, p := range pages {
		fmt.Fprintf(deps.Stdout, "%8s  %s\n", crawl.FormatBytes(len(p.Content)), p.URL)
	}

	return nil
}
