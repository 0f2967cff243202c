package bundle

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// BinaryExtensions lists the extensions skipped regardless of any other rule.
var BinaryExtensions = map[string]bool{
	".png":   true,
	".jpg":   true,
	".jpeg":  true,
	".gif":   true,
	".ico":   true,
	".woff":  true,
	".woff2": true,
	".ttf":   true,
	".eot":   true,
}

// isCommonBinaryExtension checks if the file has a known binary extension.
func isCommonBinaryExtension(path string) bool {
	return BinaryExtensions[strings.ToLower(filepath.Ext(path))]
}

// decodeText interprets data as UTF-8 text with universal newlines.
// Invalid UTF-8 yields ErrNotText.
func decodeText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrNotText
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n"), nil
}
