package tagfile

import (
	"runtime"

	"go.uber.org/zap"
)

// Option configures parsing.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	list, err := tagfile.ParseFile("tags.txt",
//	    tagfile.WithMemoryLimit(1<<20),
//	    tagfile.WithLogger(logger),
//	)
type Option func(*parseOptions)

// parseOptions holds configuration for a parse call.
type parseOptions struct {
	logger      *zap.Logger
	memoryLimit int // Maximum bytes claimed per file (0 = no limit)
	concurrency int // Parallel files for ParseMany/CheckMany (0 = NumCPU)
}

// defaultOptions returns the default configuration.
func defaultOptions() *parseOptions {
	return &parseOptions{
		logger:      Logger(),
		memoryLimit: 0, // No limit
		concurrency: 0,
	}
}

func applyOptions(opts []Option) *parseOptions {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func (o *parseOptions) workers() int {
	if o.concurrency > 0 {
		return o.concurrency
	}
	return runtime.NumCPU()
}

// WithLogger sets the logger for this call, overriding the package logger
// set with SetLogger.
func WithLogger(l *zap.Logger) Option {
	return func(o *parseOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMemoryLimit caps the memory a single file's parse may claim, counting
// the loaded file content and every accumulated tag and value.
//
// A parse that would exceed the limit fails with ErrOutOfMemory. Default is
// 0 (no limit).
//
// Example:
//
//	// Refuse metadata files that would need more than 1MB
//	list, err := tagfile.ParseFile("tags.txt", tagfile.WithMemoryLimit(1<<20))
func WithMemoryLimit(bytes int) Option {
	return func(o *parseOptions) {
		o.memoryLimit = bytes
	}
}

// WithConcurrency sets how many files ParseMany and CheckMany parse at once.
//
// Default is runtime.NumCPU().
func WithConcurrency(n int) Option {
	return func(o *parseOptions) {
		o.concurrency = n
	}
}
