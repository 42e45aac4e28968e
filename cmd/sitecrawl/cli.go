package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Crawler *crawl.Crawler

	// NewStore creates the page store for a run. Runs is nil unless run
	// history is recorded, in which case the run has an ID.
	NewStore func(run *sitecrawl.Run) sitecrawl.PageStore
	Runs     sitecrawl.RunService
	Pages    sitecrawl.PageService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" env:"SITECRAWL_VERBOSE" help:"Log every fetch and save to stderr"`
	DB      string `env:"SITECRAWL_DB" help:"SQLite database path for run history"`

	Crawl CrawlCmd `cmd:"" help:"Crawl a host starting from a seed URL"`
	Runs  RunsCmd  `cmd:"" help:"List recorded crawl runs"`
	Pages PagesCmd `cmd:"" help:"List pages stored for a run"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL       string        `arg:"" help:"Seed URL (absolute http or https)"`
	MaxPages  int           `short:"n" default:"100" env:"SITECRAWL_MAX_PAGES" help:"Stop after saving this many pages"`
	Out       string        `short:"o" default:"Pages" env:"SITECRAWL_OUT" help:"Output directory for the fs store"`
	Store     string        `enum:"fs,sqlite" default:"fs" env:"SITECRAWL_STORE" help:"Page store: fs or sqlite"`
	Parser    string        `enum:"regexp,goquery" default:"regexp" env:"SITECRAWL_PARSER" help:"Link extraction: regexp or goquery"`
	Delay     time.Duration `default:"50ms" env:"SITECRAWL_DELAY" help:"Pause between requests to the host"`
	Timeout   time.Duration `short:"t" default:"30s" env:"SITECRAWL_TIMEOUT" help:"Fetch timeout per page"`
	Retries   int           `default:"0" env:"SITECRAWL_RETRIES" help:"Retries for transport errors, with exponential backoff"`
	UserAgent string        `default:"sitecrawl/1.0" env:"SITECRAWL_USER_AGENT" help:"User-Agent header sent with every request"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Limit int `short:"l" default:"20" help:"Maximum number of runs to show"`
}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	RunID string `arg:"" help:"Run ID"`
}
