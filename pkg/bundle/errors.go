package bundle

import "go.trai.ch/zerr"

var (
	// ErrInvalidDirectory is returned when the root argument is not an existing directory.
	ErrInvalidDirectory = zerr.New("not a valid directory")

	// ErrOutputCreate is returned when the output file cannot be created.
	ErrOutputCreate = zerr.New("failed to create output file")

	// ErrOutputWrite is returned when writing or flushing the output file fails.
	ErrOutputWrite = zerr.New("failed to write output file")

	// ErrNotText is returned when a file's content is not valid UTF-8 text.
	ErrNotText = zerr.New("file is not valid utf-8 text")
)
