// Package content classifies files into the content types that drive code
// fence labels and minifier dispatch.
package content

import (
	"path/filepath"
	"strings"
)

// Type is the semantic content type of a file.
type Type int

const (
	Text       Type = iota // Anything not listed below.
	Svelte                 // Component markup embedding script and style blocks.
	TypeScript             // Script.
	JavaScript             // Script.
	CSS                    // Stylesheet.
	SCSS                   // Style preprocessor.
	JSON                   // Structured data.
	Markdown               // Documentation.
	HTML                   // Document markup.
)

// Classify maps the lowercase extension of path to a Type.
func Classify(path string) Type {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svelte":
		return Svelte
	case ".ts":
		return TypeScript
	case ".js":
		return JavaScript
	case ".css":
		return CSS
	case ".scss":
		return SCSS
	case ".json":
		return JSON
	case ".md":
		return Markdown
	case ".html":
		return HTML
	default:
		return Text
	}
}

// String returns the label used in the type attribute and code fence.
func (t Type) String() string {
	switch t {
	case Svelte:
		return "svelte"
	case TypeScript:
		return "typescript"
	case JavaScript:
		return "javascript"
	case CSS:
		return "css"
	case SCSS:
		return "scss"
	case JSON:
		return "json"
	case Markdown:
		return "markdown"
	case HTML:
		return "html"
	default:
		return "text"
	}
}

// IsScript reports whether t is compacted by the script compressor.
func (t Type) IsScript() bool {
	return t == JavaScript || t == TypeScript
}

// IsStyle reports whether t is compacted by the stylesheet compressor.
func (t Type) IsStyle() bool {
	return t == CSS || t == SCSS
}
