package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/alnah/go-mdview"
	"github.com/alnah/go-mdview/internal/fileutil"
	"github.com/alnah/go-mdview/internal/hints"
	"github.com/alnah/go-mdview/internal/pipeline"
)

// Sentinel errors for batch operations.
var (
	ErrNoInput     = errors.New("no input specified")
	ErrReadInput   = errors.New("failed to read input")
	ErrReadCSS     = errors.New("failed to read CSS file")
	ErrWriteOutput = errors.New("failed to write output")
)

// Renderer is the interface for the rendering service.
type Renderer interface {
	Render(ctx context.Context, req mdview.Request) (*mdview.Result, error)
}

// Compile-time interface implementation check.
var _ Renderer = (*mdview.Renderer)(nil)

// outputParams groups parameters shared across batch/file rendering.
type outputParams struct {
	maxSize int
	page    bool
	css     string
	baseURL *url.URL
}

// RenderResult holds the outcome of a single render.
type RenderResult struct {
	InputPath  string
	OutputPath string // empty when HTML goes to stdout
	HTML       string // rendered output for stdout results
	Err        error
	Duration   time.Duration
}

// renderBatch renders files concurrently. A Renderer is safe for concurrent
// use, so all workers share it. Results keep the order of files.
func renderBatch(ctx context.Context, r Renderer, files []FileToRender, workers int, params *outputParams, now func() time.Time) []RenderResult {
	if len(files) == 0 {
		return nil
	}
	if workers > len(files) {
		workers = len(files)
	}

	results := make([]RenderResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = renderFile(ctx, r, files[idx], params, now)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile processes a single file and returns the result.
// Content errors still produce output: the error fragment is written where
// the rendered HTML would have gone.
func renderFile(ctx context.Context, r Renderer, f FileToRender, params *outputParams, now func() time.Time) (result RenderResult) {
	start := now()
	result = RenderResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	defer func() { result.Duration = now().Sub(start) }()

	content, err := fileutil.ReadFileLimited(f.InputPath, int64(params.maxSize))
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrReadInput, err)
		return result
	}

	req := mdview.Request{Content: content, Type: f.Type, Name: f.InputPath}
	html, renderErr := renderContent(ctx, r, req, pageTitle(f.InputPath), params)

	if f.OutputPath == "" {
		result.HTML = html
	} else if err := fileutil.WriteFile(f.OutputPath, []byte(html)); err != nil {
		result.Err = fmt.Errorf("%w: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
		return result
	}

	result.Err = renderErr
	return result
}

// renderContent renders one request and applies the page post-processing.
func renderContent(ctx context.Context, r Renderer, req mdview.Request, title string, params *outputParams) (string, error) {
	res, err := r.Render(ctx, req)
	if res == nil {
		return "", err
	}

	html := res.HTML
	if err == nil && params.baseURL != nil {
		resolved, rerr := pipeline.ResolveRelativeURLs(html, params.baseURL)
		if rerr != nil {
			return html, fmt.Errorf("resolving relative URLs: %w", rerr)
		}
		html = resolved
	}
	if params.page {
		html = pipeline.WrapPage(title, html, params.css)
	}
	return html, withHint(err, renderHint(err))
}

// renderHint returns the hint matching a render error, if any.
func renderHint(err error) string {
	var rerr *mdview.RenderError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, mdview.ErrContentTooLarge):
		return hints.ForContentTooLarge()
	case errors.Is(err, mdview.ErrDecodeFailed):
		return hints.ForDecodeFailed()
	case errors.As(err, &rerr) && errors.Is(err, mdview.ErrSecurityRejected):
		return hints.ForSecurityRejected(rerr.Rule)
	default:
		return ""
	}
}

// ResultSummary holds the count of succeeded and failed renders.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed renders.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults writes stdout fragments in input order and reports each
// result. Status lines go to stderr whenever stdout carries HTML.
// Returns the first error and the summary.
func printResults(results []RenderResult, quiet, verbose bool, env *Environment) (ResultSummary, error) {
	summary := countResults(results)

	status := env.Stdout
	for _, r := range results {
		if r.OutputPath == "" {
			status = env.Stderr
			break
		}
	}

	var first error
	for _, r := range results {
		if r.OutputPath == "" && r.HTML != "" {
			writeFragment(env.Stdout, r.HTML)
		}

		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			if first == nil {
				first = r.Err
			}
			continue
		}

		if quiet || r.OutputPath == "" {
			continue
		}

		if verbose {
			fmt.Fprintf(status, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(status, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(status, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary, first
}

// writeFragment writes html followed by a newline.
func writeFragment(w io.Writer, html string) {
	fmt.Fprintln(w, html)
}
