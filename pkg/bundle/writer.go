package bundle

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// writeBundle writes the bundle document for tree to w. stats is nil when
// minification is disabled, which also omits the size attributes and the
// statistics section.
func writeBundle(w io.Writer, tree *dirNode, stats *SizeStats) error {
	writer := bufio.NewWriter(w)

	var structure strings.Builder
	renderTree(&structure, tree, true)

	if _, err := writer.WriteString("<project>\n\n<structure>\n" + structure.String() + "</structure>\n\n"); err != nil {
		return fmt.Errorf("failed to write structure section: %w", err)
	}

	if _, err := writer.WriteString("<files>\n"); err != nil {
		return fmt.Errorf("failed to write files section: %w", err)
	}
	err := forEachFile(tree, func(e *FileEntry) error {
		if _, err := writer.WriteString(FormatFile(e, stats != nil)); err != nil {
			return fmt.Errorf("failed to write content for %s: %w", e.RelPath, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if _, err := writer.WriteString("</files>\n"); err != nil {
		return fmt.Errorf("failed to write files section: %w", err)
	}

	if stats != nil {
		if _, err := writer.WriteString(formatStatistics(*stats)); err != nil {
			return fmt.Errorf("failed to write statistics: %w", err)
		}
	}

	if _, err := writer.WriteString("</project>"); err != nil {
		return fmt.Errorf("failed to write document end: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func formatStatistics(s SizeStats) string {
	var b strings.Builder
	b.WriteString("\n<statistics>\n")
	fmt.Fprintf(&b, "Total original size: %s bytes\n", humanize.Comma(s.Original))
	fmt.Fprintf(&b, "Total minified size: %s bytes\n", humanize.Comma(s.Minified))
	fmt.Fprintf(&b, "Overall reduction: %.1f%%\n", s.Reduction())
	b.WriteString("</statistics>\n")
	return b.String()
}
