package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/crawl"
)

// skipURLWidth bounds the URL shown in per-page failure lines.
const skipURLWidth = 100

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	run := &sitecrawl.Run{Seed: c.URL}
	if deps.Runs != nil {
		if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sitecrawl.ErrorMessage(err))
			return err
		}
	}

	store := deps.NewStore(run)
	deps.Crawler.Store = store
	deps.Crawler.Progress = func(e crawl.ProgressEvent) {
		if e.Type == crawl.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "skip %s: %v\n", crawl.TruncateURL(e.URL, skipURLWidth), e.Error)
		}
	}

	report, err := deps.Crawler.Run(deps.Ctx, c.URL)
	if err != nil {
		_ = store.Abort()
		c.finish(deps, run, sitecrawl.RunAborted, nil)
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitecrawl.ErrorMessage(err))
		return err
	}

	if err := store.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error committing: %v\n", err)
		c.finish(deps, run, sitecrawl.RunAborted, report)
		return err
	}
	c.finish(deps, run, sitecrawl.RunCommitted, report)

	if _, err := report.WriteTo(deps.Stdout); err != nil {
		return err
	}
	if run.ID != "" {
		fmt.Fprintf(deps.Stdout, "%-22s %s\n", "Run ID:", run.ID)
	}
	return nil
}

// finish records the outcome of run when run history is enabled.
// Failures are reported but do not fail the crawl. The record is written
// even after the crawl context was canceled.
func (c *CrawlCmd) finish(deps *Dependencies, run *sitecrawl.Run, status sitecrawl.RunStatus, report *crawl.Report) {
	if deps.Runs == nil {
		return
	}
	run.Status = status
	if report != nil {
		run.Metrics = report.Metrics
		run.Seed = report.Seed
		run.Seen = report.Seen
		run.Queued = report.Queued
		run.Elapsed = report.Elapsed
		run.Reason = string(report.Reason)
	}
	if err := deps.Runs.FinishRun(context.WithoutCancel(deps.Ctx), run); err != nil {
		fmt.Fprintf(deps.Stderr, "warning: failed to record run %s: %s\n", run.ID, sitecrawl.ErrorMessage(err))
	}
}
