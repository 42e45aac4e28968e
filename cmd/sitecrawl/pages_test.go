package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/sitecrawl"
	main "github.com/fwojciec/sitecrawl/cmd/sitecrawl"
	"github.com/fwojciec/sitecrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagesCmd_Run(t *testing.T) {
	t.Parallel()

	runs := &mock.RunService{
		FindRunByIDFn: func(_ context.Context, id string) (*sitecrawl.Run, error) {
			if id != "run-1" {
				return nil, sitecrawl.Errorf(sitecrawl.ENOTFOUND, "run not found")
			}
			return &sitecrawl.Run{ID: id}, nil
		},
	}

	t.Run("lists page URLs with sizes", func(t *testing.T) {
		t.Parallel()

		var gotFilter sitecrawl.PageFilter
		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, filter sitecrawl.PageFilter) ([]*sitecrawl.Page, error) {
				gotFilter = filter
				return []*sitecrawl.Page{
					{URL: "https://example.com", Content: "<html></html>"},
					{URL: "https://example.com/docs", Content: string(make([]byte, 2048))},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs:   runs,
			Pages:  pages,
		}

		err := (&main.PagesCmd{RunID: "run-1"}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, gotFilter.RunID)
		assert.Equal(t, "run-1", *gotFilter.RunID)
		output := stdout.String()
		assert.Contains(t, output, "13 B  https://example.com\n")
		assert.Contains(t, output, "2.0 KB  https://example.com/docs\n")
	})

	t.Run("returns not found for unknown run", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Runs:   runs,
		}

		err := (&main.PagesCmd{RunID: "nope"}).Run(deps)

		assert.Equal(t, sitecrawl.ENOTFOUND, sitecrawl.ErrorCode(err))
		assert.Contains(t, stderr.String(), "run not found")
	})
}
