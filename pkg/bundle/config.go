package bundle

// DefaultOutput is the output path used when none is configured.
const DefaultOutput = "project_context.txt"

// Arguments holds the configuration options for one bundle run.
type Arguments struct {
	Directory       string   // Project root to walk.
	Output          string   // Destination path for the bundle document.
	LabelBase       string   // Directory the path attribute is relative to; empty means Directory.
	ExcludePatterns []string // Extra substring patterns; a path containing any of them is skipped.
	Minify          bool     // Minify file contents and report size statistics.
	Strict          bool     // Skip files whose minification fails instead of emitting them raw.
	GlobalIgnore    string   // Optional gitignore-syntax file applied before the project's .gitignore.
	MaxFileSizeKB   int      // Files larger than this are skipped; 0 disables the limit.
}
