package fs

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/sitecrawl"
)

const (
	// PagesDir holds one HTML file per saved page.
	PagesDir = "pages"
	// URLListFile lists saved URLs, one per line, in save order.
	URLListFile = "urls.txt"
)

// Ensure FileStore implements sitecrawl.PageStore at compile time.
var _ sitecrawl.PageStore = (*FileStore)(nil)

// FileStore implements sitecrawl.PageStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on Commit.
//
// Layout of the committed directory:
//
//	pages/<path>.html
//	urls.txt
type FileStore struct {
	baseDir string
	name    string

	mu      sync.Mutex
	started bool
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Dir returns the directory the corpus is committed to.
func (s *FileStore) Dir() string {
	return s.finalDir()
}

// Save writes the raw HTML of page and appends its URL to the URL list.
func (s *FileStore) Save(ctx context.Context, page *sitecrawl.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(page.URL)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.start(); err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), PagesDir, filepath.FromSlash(relPath))

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(fullPath, []byte(page.Content), 0644); err != nil {
		return err
	}

	return s.appendURL(page.URL)
}

// start clears a temp directory left behind by an earlier run that never
// committed or aborted. It runs once per store; callers hold s.mu.
func (s *FileStore) start() error {
	if s.started {
		return nil
	}
	if err := os.RemoveAll(s.tempDir()); err != nil {
		return err
	}
	s.started = true
	return nil
}

func (s *FileStore) appendURL(url string) error {
	f, err := os.OpenFile(filepath.Join(s.tempDir(), URLListFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(url + "\n"); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Commit replaces the output directory with everything saved so far.
// Committing without any saved page produces an empty corpus.
func (s *FileStore) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.start(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	// Atomically rename temp to final
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything saved since the store was created.
func (s *FileStore) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return os.RemoveAll(s.tempDir())
}
