package bundle

import (
	"fmt"
	"strings"
)

// FormatFile renders e as a tagged, fenced block. When withSizes is set the
// opening tag carries the original and minified byte counts and the
// reduction percentage.
func FormatFile(e *FileEntry, withSizes bool) string {
	label := e.Type.String()

	var b strings.Builder
	fmt.Fprintf(&b, `<file path="%s" type="%s"`, e.Label, label)
	if withSizes {
		fmt.Fprintf(&b, " original_size=\"%d\" minified_size=\"%d\" reduction=\"%.1f%%\"",
			e.OriginalSize, e.MinifiedSize, reduction(int64(e.OriginalSize), int64(e.MinifiedSize)))
	}
	b.WriteString(">\n")
	b.WriteString("```" + label + "\n")
	b.WriteString(e.Content)
	if !strings.HasSuffix(e.Content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	b.WriteString("</file>\n\n")
	return b.String()
}
