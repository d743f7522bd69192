package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// rendererFlags holds flags that configure the renderer itself.
type rendererFlags struct {
	typ       string
	engine    string
	highlight bool
	sanitize  bool
	maxSize   int
}

// pageFlags holds flags for standalone page output.
type pageFlags struct {
	page           bool
	css            string
	style          string
	styleDir       string
	highlightTheme string
	baseURL        string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common   commonFlags
	output   string
	workers  int
	renderer rendererFlags
	page     pageFlags

	// changed records flags set explicitly on the command line, so
	// false and zero values can still override the config file.
	changed map[string]bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addRendererFlags adds renderer flags to a FlagSet.
func addRendererFlags(fs *flag.FlagSet, f *rendererFlags) {
	fs.StringVarP(&f.typ, "type", "t", "", "content type: markdown, json, text, remote (default: by extension)")
	fs.StringVarP(&f.engine, "engine", "e", "", "markdown engine: builtin, goldmark")
	fs.BoolVar(&f.highlight, "highlight", false, "syntax-highlight fenced code")
	fs.BoolVar(&f.sanitize, "sanitize", false, "sanitize rendered HTML")
	fs.IntVar(&f.maxSize, "max-size", 0, "maximum input size in bytes (0 = unlimited)")
}

// addPageFlags adds page output flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.BoolVarP(&f.page, "page", "p", false, "wrap output in a standalone HTML document")
	fs.StringVar(&f.css, "css", "", "stylesheet file inlined into --page output")
	fs.StringVarP(&f.style, "style", "s", "", "page style name: built-in or NAME.css in --style-dir")
	fs.StringVar(&f.styleDir, "style-dir", "", "directory searched for --style before built-ins")
	fs.StringVar(&f.highlightTheme, "highlight-theme", "", "chroma theme for highlighted code in pages (default: github)")
	fs.StringVar(&f.baseURL, "base-url", "", "resolve relative links and images against this URL")
}

// buildRenderFlagSet registers the render command flags on a new FlagSet.
func buildRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output .html file or directory (default: stdout)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addRendererFlags(fs, &f.renderer)
	addPageFlags(fs, &f.page)

	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	f := &renderFlags{changed: make(map[string]bool)}
	fs := buildRenderFlagSet(f)
	fs.Usage = func() { printRenderUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.changed[fl.Name] = true })

	return f, fs.Args(), nil
}
