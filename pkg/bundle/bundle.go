// Package bundle walks a project tree and writes the annotated context
// bundle: a structure listing, one fenced block per included file and,
// when minification is enabled, aggregate size statistics.
package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/zerr"
	"go.uber.org/zap"

	"ctxbundle/pkg/ignore"
	"ctxbundle/pkg/minify"
)

// Run builds the bundle described by args. Invalid root directories and
// output failures abort the run; problems with individual input files are
// logged and the file is skipped.
func Run(args *Arguments, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()

	root, err := resolveRoot(args.Directory)
	if err != nil {
		return nil, err
	}
	output := args.Output
	if output == "" {
		output = DefaultOutput
	}
	outputAbs, err := filepath.Abs(output)
	if err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", ErrOutputCreate, err), "output", output)
	}
	logger.Info("Starting bundle", zap.String("directory", root), zap.String("output", output), zap.Bool("minify", args.Minify))

	matcher := ignore.Load(root, args.GlobalIgnore, logger)
	w := &walker{
		root:       root,
		filter:     NewFilter(matcher, args.ExcludePatterns),
		outputPath: outputAbs,
		maxBytes:   int64(args.MaxFileSizeKB) * 1024,
		logger:     logger,
		processor: &fileProcessor{
			root:          root,
			labelBase:     absOrEmpty(args.LabelBase),
			minifyEnabled: args.Minify,
			strict:        args.Strict,
			minifier:      minify.New(),
			logger:        logger,
		},
	}

	if err := ensureDirectory(filepath.Dir(outputAbs), logger); err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", ErrOutputCreate, err), "output", output)
	}
	outFile, err := os.Create(outputAbs)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", output), zap.Error(err))
		return nil, zerr.With(fmt.Errorf("%w: %w", ErrOutputCreate, err), "output", output)
	}
	defer func() {
		if err := outFile.Close(); err != nil {
			logger.Error("Failed to close output file", zap.String("file", output), zap.Error(err))
		}
	}()

	tree, err := w.walk()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read project directory"), "directory", root)
	}

	var stats *SizeStats
	if args.Minify {
		stats = &w.stats
	}
	if err := writeBundle(outFile, tree, stats); err != nil {
		logger.Error("Failed to write bundle", zap.String("file", output), zap.Error(err))
		return nil, zerr.With(fmt.Errorf("%w: %w", ErrOutputWrite, err), "output", output)
	}

	logger.Info("Bundle completed",
		zap.String("output", output),
		zap.Int("files", w.files),
		zap.Int("directories", w.dirs),
		zap.Int("skipped", len(w.skipped)),
		zap.Duration("elapsed", time.Since(startTime)))

	return &Result{
		Output:      output,
		Files:       w.files,
		Directories: w.dirs,
		Skipped:     w.skipped,
		Stats:       w.stats,
	}, nil
}

// resolveRoot returns the absolute path of dir if it is an existing directory.
func resolveRoot(dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", zerr.With(zerr.Wrap(ErrInvalidDirectory, dir), "directory", dir)
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.With(fmt.Errorf("%w: %w", ErrInvalidDirectory, err), "directory", dir)
	}
	return root, nil
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}

func absOrEmpty(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
