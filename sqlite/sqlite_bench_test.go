package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkPageStore_Save simulates a crawl workload: one run with many
// pages saved in sequence to a file-backed database.
func BenchmarkPageStore_Save(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	ctx := context.Background()
	run := &sitecrawl.Run{Seed: "https://example.com/docs"}
	require.NoError(b, sqlite.NewRunService(db).CreateRun(ctx, run))

	store := sqlite.NewPageStore(db, run.ID)

	// Reset timer to exclude setup time
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		page := &sitecrawl.Page{
			URL:     fmt.Sprintf("https://example.com/docs/page%d", i),
			Content: fmt.Sprintf("<html><body><h1>Page %d</h1><p>Lorem ipsum dolor sit amet, consectetur adipiscing elit.</p></body></html>", i),
		}
		if err := store.Save(ctx, page); err != nil {
			b.Fatal(err)
		}
	}
}
