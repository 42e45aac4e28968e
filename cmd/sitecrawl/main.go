package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/crawl"
	"github.com/fwojciec/sitecrawl/fs"
	"github.com/fwojciec/sitecrawl/goquery"
	schttp "github.com/fwojciec/sitecrawl/http"
	scslog "github.com/fwojciec/sitecrawl/slog"
	"github.com/fwojciec/sitecrawl/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); --db overrides it.
	DBPath string

	// SQLite database, opened only by commands that need it.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitecrawl"),
		kong.Description("Crawl a single host into a local corpus of raw HTML pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitecrawl --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	deps.Logger = newLogger(stderr, cli.Verbose)
	defer m.Close()

	switch command := strings.Fields(kongCtx.Command())[0]; command {
	case "crawl":
		if err := m.wireCrawl(deps, &cli.Crawl, cli.Verbose); err != nil {
			return err
		}
	case "runs", "pages":
		if err := m.openDB(stderr); err != nil {
			return err
		}
		deps.Runs = sqlite.NewRunService(m.DB)
		deps.Pages = sqlite.NewPageService(m.DB)
	}
	if deps.Crawler != nil {
		defer deps.Crawler.Fetcher.Close()
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(stderr io.Writer) error {
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SITECRAWL_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	return nil
}

// wireCrawl builds the crawler and the page store for the crawl command.
// Logging decorators are added only in verbose mode.
func (m *Main) wireCrawl(deps *Dependencies, cmd *CrawlCmd, verbose bool) error {
	var fetcher sitecrawl.Fetcher = schttp.NewFetcher(
		schttp.WithTimeout(cmd.Timeout),
		schttp.WithUserAgent(cmd.UserAgent),
	)

	var extractor sitecrawl.LinkExtractor = crawl.NewRegexpExtractor()
	if cmd.Parser == "goquery" {
		extractor = goquery.NewLinkExtractor()
	}

	if verbose {
		fetcher = scslog.NewLoggingFetcher(fetcher, deps.Logger)
		extractor = scslog.NewLoggingLinkExtractor(extractor, deps.Logger)
	}

	deps.Crawler = &crawl.Crawler{
		Fetcher:     fetcher,
		Extractor:   extractor,
		Pacer:       crawl.NewHostPacer(cmd.Delay),
		Logger:      deps.Logger,
		MaxPages:    cmd.MaxPages,
		Timeout:     cmd.Timeout,
		RetryDelays: crawl.BackoffDelays(cmd.Retries),
	}

	wrap := func(store sitecrawl.PageStore) sitecrawl.PageStore {
		if verbose {
			return scslog.NewLoggingPageStore(store, deps.Logger)
		}
		return store
	}

	switch cmd.Store {
	case "sqlite":
		if err := m.openDB(deps.Stderr); err != nil {
			return err
		}
		var runs sitecrawl.RunService = sqlite.NewRunService(m.DB)
		if verbose {
			runs = scslog.NewLoggingRunService(runs, deps.Logger)
		}
		deps.Runs = runs
		deps.NewStore = func(run *sitecrawl.Run) sitecrawl.PageStore {
			return wrap(sqlite.NewPageStore(m.DB, run.ID))
		}
	default:
		out := filepath.Clean(cmd.Out)
		deps.NewStore = func(*sitecrawl.Run) sitecrawl.PageStore {
			return wrap(fs.NewFileStore(filepath.Dir(out), filepath.Base(out)))
		}
	}
	return nil
}

// newLogger writes text logs to w. Verbose mode enables debug output;
// otherwise only warnings and errors are shown.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("SITECRAWL_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sitecrawl.db"
	}
	dir := filepath.Join(home, ".sitecrawl")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "sitecrawl.db")
}
