// Package ignore evaluates gitignore rules for paths inside a project root.
package ignore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// FileName is the ignore file looked up at the project root.
const FileName = ".gitignore"

// Matcher holds the compiled ignore patterns for one run.
// A Matcher with no patterns ignores nothing.
type Matcher struct {
	lines  []string             // Pattern lines in evaluation order, global first.
	gi     *gitignore.GitIgnore // Compiled form of lines.
	logger *zap.Logger
}

// NewMatcher initializes an empty Matcher with an optional logger.
func NewMatcher(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{gi: gitignore.CompileIgnoreLines(), logger: logger}
}

// Load compiles the project-root ignore file and, when globalPath is set,
// a global ignore file in front of it. Unreadable files are reported as
// warnings and contribute no patterns; a missing project file is silent.
func Load(root, globalPath string, logger *zap.Logger) *Matcher {
	m := NewMatcher(logger)

	if globalPath != "" {
		if err := m.CompileIgnoreFile(globalPath); err != nil {
			m.logger.Warn("Error reading global ignore file, continuing without it",
				zap.String("filePath", globalPath), zap.Error(err))
		}
	}

	localPath := filepath.Join(root, FileName)
	if err := m.CompileIgnoreFile(localPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.logger.Debug("No ignore file found", zap.String("filePath", localPath))
		} else {
			m.logger.Warn("Error reading ignore file, nothing will be ignored by it",
				zap.String("filePath", localPath), zap.Error(err))
		}
	}

	return m
}

// CompileIgnoreLines appends pattern lines to the Matcher. Later lines take
// precedence, so a negation can re-include a path excluded earlier.
func (m *Matcher) CompileIgnoreLines(lines ...string) {
	m.lines = append(m.lines, lines...)
	m.gi = gitignore.CompileIgnoreLines(m.lines...)
	m.logger.Debug("Compiled ignore lines", zap.Int("lineCount", len(lines)), zap.Int("totalLines", len(m.lines)))
}

// CompileIgnoreFile reads an ignore file and appends its patterns.
func (m *Matcher) CompileIgnoreFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	m.CompileIgnoreLines(strings.Split(string(content), "\n")...)
	m.logger.Debug("Loaded ignore file", zap.String("filePath", path))
	return nil
}

// IsIgnored reports whether relPath, relative to the project root, is ignored.
// Directories are also tested with a trailing slash so that "dir/" patterns
// apply to the directory itself.
func (m *Matcher) IsIgnored(relPath string, isDir bool) bool {
	p := filepath.ToSlash(relPath)
	if p == "" || p == "." {
		return false
	}

	if m.gi.MatchesPath(p) {
		return true
	}
	return isDir && m.gi.MatchesPath(strings.TrimSuffix(p, "/")+"/")
}
