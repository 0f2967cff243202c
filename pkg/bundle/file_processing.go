package bundle

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"ctxbundle/pkg/content"
	"ctxbundle/pkg/minify"
)

// fileProcessor reads, classifies and optionally minifies single files.
type fileProcessor struct {
	root          string
	labelBase     string
	minifyEnabled bool
	strict        bool
	minifier      *minify.Minifier
	logger        *zap.Logger
}

// ProcessSingleFile reads the file at relPath below the project root and
// returns its entry. Read and decode failures are returned as errors; a
// minification failure falls back to the raw content unless the processor
// is strict.
func (p *fileProcessor) ProcessSingleFile(relPath string) (*FileEntry, error) {
	absPath := filepath.Join(p.root, relPath)
	p.logger.Debug("Processing file", zap.String("filePath", absPath))

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", relPath, err)
	}
	text, err := decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("error decoding file %s: %w", relPath, err)
	}

	entry := &FileEntry{
		RelPath:      filepath.ToSlash(relPath),
		Label:        p.label(absPath, relPath),
		Name:         filepath.Base(relPath),
		Type:         content.Classify(relPath),
		Content:      text,
		OriginalSize: len(text),
		MinifiedSize: len(text),
	}
	if !p.minifyEnabled {
		return entry, nil
	}

	minified, err := p.minifier.Minify(entry.Type, text)
	if err != nil {
		if p.strict {
			return nil, fmt.Errorf("error minifying file %s: %w", relPath, err)
		}
		p.logger.Warn("Minification failed, using original content",
			zap.String("filePath", entry.RelPath),
			zap.String("type", entry.Type.String()),
			zap.Error(err))
		entry.Fallback = true
		return entry, nil
	}

	entry.Content = minified
	entry.MinifiedSize = len(minified)
	return entry, nil
}

// label returns the path attribute for absPath: relative to the label base
// when one is set, relative to the project root otherwise.
func (p *fileProcessor) label(absPath, relPath string) string {
	if p.labelBase == "" {
		return filepath.ToSlash(relPath)
	}
	rel, err := filepath.Rel(p.labelBase, absPath)
	if err != nil {
		p.logger.Debug("Unable to determine label path, using absolute path",
			zap.String("filePath", absPath), zap.Error(err))
		return filepath.ToSlash(absPath)
	}
	return filepath.ToSlash(rel)
}
