package core

import "errors"

// Error taxonomy shared by every room-raider package. Packages wrap these
// with context; callers match them with errors.Is.
var (
	// ErrOutOfMemory reports that working memory could not be obtained.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrInvalidValue reports bad configuration or a malformed argument.
	ErrInvalidValue = errors.New("invalid value")
	// ErrProcessingFailed reports an engine initialization failure or a
	// violated buffer-size contract.
	ErrProcessingFailed = errors.New("processing failed")
	// ErrIO reports a file read or write failure.
	ErrIO = errors.New("i/o error")
)
