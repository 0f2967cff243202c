package bundle

import "ctxbundle/pkg/content"

// FileEntry is one included file, from the moment it is read until its
// block has been written.
type FileEntry struct {
	RelPath      string       // Slash-separated path relative to the project root.
	Label        string       // Value of the path attribute.
	Name         string       // Base name shown in the structure listing.
	Type         content.Type // Detected content type.
	Content      string       // Text emitted in the block; minified when minification succeeded.
	OriginalSize int          // UTF-8 byte length of the raw content.
	MinifiedSize int          // UTF-8 byte length of Content.
	Fallback     bool         // Minification failed and Content is the raw text.
}

// dirNode is a directory visited by the walker. Files come before
// subdirectories, each sorted by name.
type dirNode struct {
	Name  string
	Depth int
	Files []*FileEntry
	Dirs  []*dirNode
}

// SizeStats accumulates byte totals across all files of a minified bundle.
type SizeStats struct {
	Original int64
	Minified int64
}

// Add folds the sizes of e into s.
func (s *SizeStats) Add(e *FileEntry) {
	s.Original += int64(e.OriginalSize)
	s.Minified += int64(e.MinifiedSize)
}

// Reduction returns the overall size reduction in percent.
func (s SizeStats) Reduction() float64 {
	return reduction(s.Original, s.Minified)
}

// Result summarizes a completed run.
type Result struct {
	Output      string    // Path of the written bundle.
	Files       int       // Files emitted in the bundle.
	Directories int       // Directories listed in the structure section.
	Skipped     []string  // Root-relative paths dropped because they could not be read or minified.
	Stats       SizeStats // Byte totals; zero unless minification was enabled.
}

func reduction(original, minified int64) float64 {
	if original == 0 {
		return 0
	}
	return float64(original-minified) / float64(original) * 100
}
