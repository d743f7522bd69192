// Package mdview renders user-supplied Markdown, JSON and plain text into
// safe HTML fragments.
//
// # Quick Start
//
//	r := mdview.New()
//	res, err := r.Render(ctx, mdview.Request{
//	    Content: []byte("# Hello\n\nWorld"),
//	    Type:    mdview.TypeMarkdown,
//	})
//	if err != nil {
//	    // res.HTML still holds a displayable error fragment.
//	    log.Println(err)
//	}
//	fmt.Println(res.HTML)
//
// For one-off calls, the package-level Render uses a default Renderer:
//
//	res, err := mdview.Render(content, mdview.TypeText, 1<<20)
//
// # Rendering Pipeline
//
// Every request passes through these stages in order:
//
//  1. Security filter (size limit, server-side code signatures, active content)
//  2. Code-block extraction into placeholders
//  3. Block processing: rules, tables, headings, nested lists and blockquotes
//  4. Inline processing: images, links, code, strikethrough, bold, italic
//  5. Paragraph wrapping
//  6. Placeholder restoration
//
// Stages 2 to 6 apply to Markdown only. JSON is laid out as a document when
// it has title, description or sections fields and pretty-printed otherwise;
// plain text is escaped with line breaks kept. All literal text is escaped
// with &amp; &lt; &gt; &quot; and &#039;.
//
// # Errors
//
// Render never panics and always returns a Result. On failure Result.HTML
// is an escaped error fragment and the error is a *RenderError:
//
//	if errors.Is(err, mdview.ErrSecurityRejected) {
//	    // the content matched a security rule
//	}
//
// The security filter is a best-effort blocklist. Novel obfuscation may
// evade it; safety rests on the renderers never executing or interpreting
// their input, not on the filter catching every payload.
//
// # Configuration
//
// Use functional options to customize the renderer:
//
//	r := mdview.New(
//	    mdview.WithSizeLimit(512 << 10),
//	    mdview.WithEngine(mdview.EngineGoldmark),
//	    mdview.WithHighlighting(true),
//	    mdview.WithSanitizer(true),
//	    mdview.WithLogger(slog.Default()),
//	)
//
// A Renderer is immutable after New and safe for concurrent use.
package mdview
