// Package pipeline implements the content-to-HTML rendering stages.
//
// The Markdown path runs these stages in order, each reading only the
// output of the previous one:
//   - code-block extraction (fenced spans replaced by placeholders)
//   - block pre-pass (rules, tables, headings) and the nesting state machine
//     for lists and blockquotes
//   - inline processing (images, links, code, strikethrough, bold, italic)
//   - paragraph wrapping
//   - placeholder restoration
//
// JSON and plain-text formatters live alongside the Markdown stages, as do
// the optional post-render helpers: the bluemonday sanitizer, relative URL
// resolution and the standalone page wrapper. The
// security filter is a separate package (internal/security) and always runs
// before any stage in this package. Nothing here performs I/O.
package pipeline
