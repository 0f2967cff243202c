// Package minify shrinks file content according to its content type.
//
// Script, stylesheet and markup compaction is delegated to tdewolff/minify,
// configured to keep identifiers, end tags and attribute quotes so the
// result still reads as the source. Typed scripts and preprocessor
// stylesheets are compacted token by token. Structured data is canonicalized by re-serializing it without insignificant
// whitespace. Every operation either returns the minified content or an
// error; callers decide whether to fall back to the original text.
package minify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	tdminify "github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"go.trai.ch/zerr"

	"ctxbundle/pkg/content"
)

const (
	mediaTypeJS   = "application/javascript"
	mediaTypeTS   = "application/typescript"
	mediaTypeCSS  = "text/css"
	mediaTypeSCSS = "text/x-scss"
	mediaTypeHTML = "text/html"
)

var (
	// ErrInvalidJSON is returned when structured data cannot be parsed.
	ErrInvalidJSON = zerr.New("invalid json")

	// ErrCompressor is returned when a script, style or markup compressor fails.
	ErrCompressor = zerr.New("compressor failed")
)

var (
	htmlComment = regexp.MustCompile(`<!--[\s\S]*?-->`)
	scriptBlock = regexp.MustCompile(`(<script[^>]*>)([\s\S]*?)(</script>)`)
	styleBlock  = regexp.MustCompile(`(<style[^>]*>)([\s\S]*?)(</style>)`)
	langAttr    = regexp.MustCompile(`\blang\s*=\s*["']?([A-Za-z]+)`)
	whitespace  = regexp.MustCompile(`\s+`)
	betweenTags = regexp.MustCompile(`>\s+<`)
)

// Minifier dispatches content to the compressor for its type.
type Minifier struct {
	m *tdminify.M
}

// New returns a Minifier with the script, stylesheet and markup compressors
// registered.
func New() *Minifier {
	m := tdminify.New()
	m.Add(mediaTypeCSS, &css.Minifier{})
	m.Add(mediaTypeJS, &js.Minifier{KeepVarNames: true})
	m.Add("text/javascript", &js.Minifier{KeepVarNames: true})
	m.Add(mediaTypeHTML, &html.Minifier{
		KeepDefaultAttrVals: true,
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          true,
	})
	return &Minifier{m: m}
}

// Minify returns src compacted according to t.
func (mn *Minifier) Minify(t content.Type, src string) (string, error) {
	switch t {
	case content.JSON:
		return compactJSON(src)
	case content.JavaScript:
		return mn.compress(mediaTypeJS, src)
	case content.TypeScript:
		return mn.compress(mediaTypeTS, src)
	case content.CSS:
		return mn.compress(mediaTypeCSS, src)
	case content.SCSS:
		return mn.compress(mediaTypeSCSS, src)
	case content.HTML:
		return mn.compress(mediaTypeHTML, src)
	case content.Svelte:
		return mn.component(src)
	case content.Markdown, content.Text:
	}
	return collapseWhitespace(src), nil
}

func (mn *Minifier) compress(mediaType, src string) (string, error) {
	var (
		out string
		err error
	)
	switch mediaType {
	case mediaTypeTS:
		out, err = compactScript(src)
	case mediaTypeSCSS:
		out, err = compactStylesheet(src)
	default:
		out, err = mn.m.String(mediaType, src)
	}
	if err != nil {
		return "", zerr.With(fmt.Errorf("%w: %w", ErrCompressor, err), "media_type", mediaType)
	}
	return out, nil
}

// component minifies a single-file component: comments are dropped, script
// and style bodies are compressed in place according to their lang attribute
// and the remaining markup is collapsed onto one line.
func (mn *Minifier) component(src string) (string, error) {
	out := htmlComment.ReplaceAllString(src, "")

	out, err := mn.replaceBlocks(out, scriptBlock, scriptMediaType)
	if err != nil {
		return "", err
	}
	out, err = mn.replaceBlocks(out, styleBlock, styleMediaType)
	if err != nil {
		return "", err
	}

	out = whitespace.ReplaceAllString(out, " ")
	out = betweenTags.ReplaceAllString(out, "><")
	return strings.TrimSpace(out), nil
}

// replaceBlocks compresses the body of every match of re with the media type
// its opening tag selects, keeping the surrounding tags.
func (mn *Minifier) replaceBlocks(src string, re *regexp.Regexp, mediaTypeOf func(tag string) string) (string, error) {
	matches := re.FindAllStringSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src, nil
	}

	var b strings.Builder
	last := 0
	for _, loc := range matches {
		body, err := mn.compress(mediaTypeOf(src[loc[2]:loc[3]]), src[loc[4]:loc[5]])
		if err != nil {
			return "", err
		}
		b.WriteString(src[last:loc[0]])
		b.WriteString(src[loc[2]:loc[3]])
		b.WriteString(body)
		b.WriteString(src[loc[6]:loc[7]])
		last = loc[1]
	}
	b.WriteString(src[last:])
	return b.String(), nil
}

func scriptMediaType(tag string) string {
	switch blockLang(tag) {
	case "ts", "typescript":
		return mediaTypeTS
	}
	return mediaTypeJS
}

func styleMediaType(tag string) string {
	switch blockLang(tag) {
	case "scss", "postcss":
		return mediaTypeSCSS
	}
	return mediaTypeCSS
}

func blockLang(tag string) string {
	m := langAttr.FindStringSubmatch(tag)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// compactJSON parses src and writes it back without insignificant
// whitespace. Member order and number spelling are kept.
func compactJSON(src string) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(src)); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return buf.String(), nil
}

func collapseWhitespace(src string) string {
	return strings.Join(strings.Fields(src), " ")
}
