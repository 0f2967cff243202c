package bundle

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// walker performs the single depth-first traversal that produces the
// directory tree and the processed file entries.
type walker struct {
	root       string
	filter     *Filter
	processor  *fileProcessor
	outputPath string // Absolute path of the bundle itself; never included.
	maxBytes   int64
	logger     *zap.Logger

	stats   SizeStats
	files   int
	dirs    int
	skipped []string
}

// walk builds the tree rooted at the project root. Only a failure to read
// the root itself is returned; everything below it is skipped with a warning.
func (w *walker) walk() (*dirNode, error) {
	rootNode := &dirNode{Name: filepath.Base(w.root)}
	if err := w.walkDir(rootNode, ""); err != nil {
		return nil, err
	}
	return rootNode, nil
}

func (w *walker) walkDir(node *dirNode, relDir string) error {
	absDir := filepath.Join(w.root, relDir)
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return err
	}

	var subdirs []string
	for _, entry := range entries {
		relPath := filepath.Join(relDir, entry.Name())
		isDir, ok := w.resolve(entry, relPath)
		if !ok {
			continue
		}
		if isDir {
			if w.filter.ShouldDescend(relPath) {
				subdirs = append(subdirs, entry.Name())
			} else {
				w.logger.Debug("Skipping excluded directory", zap.String("directory", filepath.ToSlash(relPath)))
			}
			continue
		}
		if !w.admit(relPath) {
			continue
		}

		fe, err := w.processor.ProcessSingleFile(relPath)
		if err != nil {
			w.warnSkipped(relPath, err)
			continue
		}
		if w.processor.minifyEnabled {
			w.stats.Add(fe)
		}
		node.Files = append(node.Files, fe)
		w.files++
	}

	for _, name := range subdirs {
		relPath := filepath.Join(relDir, name)
		child := &dirNode{Name: name, Depth: node.Depth + 1}
		if err := w.walkDir(child, relPath); err != nil {
			w.logger.Warn("Failed to read directory, skipping it",
				zap.String("directory", filepath.ToSlash(relPath)), zap.Error(err))
			continue
		}
		node.Dirs = append(node.Dirs, child)
		w.dirs++
	}
	return nil
}

// resolve reports whether entry is a directory and whether it is a regular
// file or directory at all. Symlinked files are followed; symlinked
// directories are not descended into.
func (w *walker) resolve(entry fs.DirEntry, relPath string) (isDir bool, ok bool) {
	mode := entry.Type()
	switch {
	case mode.IsDir():
		return true, true
	case mode.IsRegular():
		return false, true
	case mode&fs.ModeSymlink != 0:
		info, err := os.Stat(filepath.Join(w.root, relPath))
		if err != nil {
			w.logger.Debug("Skipping dangling symlink", zap.String("filePath", filepath.ToSlash(relPath)), zap.Error(err))
			return false, false
		}
		return false, info.Mode().IsRegular()
	default:
		return false, false
	}
}

// admit applies the inclusion filter plus the output-file and size checks.
func (w *walker) admit(relPath string) bool {
	if !w.filter.ShouldInclude(relPath) {
		return false
	}

	absPath := filepath.Join(w.root, relPath)
	if w.outputPath != "" && absPath == w.outputPath {
		w.logger.Debug("Skipping bundle output file", zap.String("filePath", absPath))
		return false
	}

	if w.maxBytes > 0 {
		info, err := os.Stat(absPath)
		if err != nil {
			w.warnSkipped(relPath, err)
			return false
		}
		if info.Size() > w.maxBytes {
			w.logger.Debug("File exceeds size limit",
				zap.String("filePath", filepath.ToSlash(relPath)),
				zap.Int64("sizeBytes", info.Size()),
				zap.Int64("maxBytes", w.maxBytes))
			return false
		}
	}
	return true
}

func (w *walker) warnSkipped(relPath string, err error) {
	p := filepath.ToSlash(relPath)
	w.skipped = append(w.skipped, p)
	if errors.Is(err, ErrNotText) {
		w.logger.Warn("Skipping binary file", zap.String("filePath", p))
		return
	}
	w.logger.Warn("Error processing file, skipping it", zap.String("filePath", p), zap.Error(err))
}

// renderTree writes the structure listing for node and its descendants.
// The root itself is not listed.
func renderTree(b *strings.Builder, node *dirNode, isRoot bool) {
	indent := strings.Repeat("  ", node.Depth)
	if !isRoot {
		b.WriteString(indent + "- " + node.Name + "/\n")
	}
	for _, f := range node.Files {
		b.WriteString(indent + "  - " + f.Name + "\n")
	}
	for _, d := range node.Dirs {
		renderTree(b, d, false)
	}
}

// forEachFile visits the files of node and its descendants in listing order.
func forEachFile(node *dirNode, fn func(*FileEntry) error) error {
	for _, f := range node.Files {
		if err := fn(f); err != nil {
			return err
		}
	}
	for _, d := range node.Dirs {
		if err := forEachFile(d, fn); err != nil {
			return err
		}
	}
	return nil
}
