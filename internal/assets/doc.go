// Package assets provides the stylesheets inlined into standalone pages.
//
// # Loader Architecture
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles compiled into the binary
//	    ├── FilesystemLoader  - {name}.css files from a directory on disk
//	    └── Resolver          - custom directory first, embedded fallback
//
// Built-in styles cover the fragment containers the renderer emits
// (markdown-content, json-content, text-content, error). HighlightCSS adds
// the chroma classes used by highlighted code blocks.
//
// # Security
//
// Style names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within its directory.
package assets
