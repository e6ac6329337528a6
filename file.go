package tagfile

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/simonhull/tagfile/internal/growbuf"
	"github.com/simonhull/tagfile/internal/metafile"
	"github.com/simonhull/tagfile/internal/source"
	"github.com/simonhull/tagfile/internal/types"
	"github.com/simonhull/tagfile/internal/utf8check"
)

// Parse parses metadata from an in-memory buffer.
//
// data is not retained; the returned List owns copies of every tag and value.
//
// Example:
//
//	list, err := tagfile.Parse([]byte("TITLE=Hello\nARTIST=World\n"))
//	if err != nil {
//		return err
//	}
//	for _, e := range list.All() {
//		fmt.Printf("%s=%s\n", e.Tag, e.Value)
//	}
func Parse(data []byte, opts ...Option) (List, error) {
	options := applyOptions(opts)
	return parse(data, "", options, growbuf.NewBudget(options.memoryLimit))
}

// ParseReader reads size bytes from r and parses them.
//
// path is used in error messages only and may be empty.
func ParseReader(r io.ReaderAt, size int64, path string, opts ...Option) (List, error) {
	options := applyOptions(opts)
	budget := growbuf.NewBudget(options.memoryLimit)

	data, err := source.Load(r, size, path, budget)
	if err != nil {
		return nil, err
	}
	return parse(data, path, options, budget)
}

// ParseFile reads the metadata file at path and parses it.
//
// The whole file is loaded into memory first. Any failure, from opening the
// file to the first malformed line, is reported as a single *ParseError and
// no list is returned:
//
//	list, err := tagfile.ParseFile("tags.txt")
//	if errors.Is(err, tagfile.ErrEmptyTag) {
//		// handle
//	}
func ParseFile(path string, opts ...Option) (List, error) {
	options := applyOptions(opts)
	budget := growbuf.NewBudget(options.memoryLimit)

	data, err := source.LoadFile(path, budget)
	if err != nil {
		options.logger.Debug("load metadata file failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	return parse(data, path, options, budget)
}

// ParseFileContext is ParseFile with a context check before starting.
//
// Parsing itself is bounded by file size and does not block, so the context
// is only consulted up front.
func ParseFileContext(ctx context.Context, path string, opts ...Option) (List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ParseFile(path, opts...)
}

func parse(data []byte, path string, options *parseOptions, budget *growbuf.Budget) (List, error) {
	return metafile.Parse(data, metafile.Config{
		Path:   path,
		Budget: budget,
		Logger: options.logger,
	})
}

// ParseMany parses multiple metadata files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines
// (see WithConcurrency). Results are returned in the same order as paths.
//
// If any file fails, no lists are returned and the first error is reported.
// Use CheckMany to collect every failure instead.
func ParseMany(ctx context.Context, paths []string, opts ...Option) ([]List, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	options := applyOptions(opts)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(options.workers())

	results := make([]List, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			list, err := ParseFile(path, opts...)
			if err != nil {
				return err
			}
			results[i] = list
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CheckMany parses every file in paths and reports all failures.
//
// It returns nil when every file is valid. Otherwise the returned error
// combines one *ParseError per failing file; use multierr.Errors to split it:
//
//	for _, e := range multierr.Errors(tagfile.CheckMany(ctx, paths)) {
//		log.Println(e)
//	}
func CheckMany(ctx context.Context, paths []string, opts ...Option) error {
	options := applyOptions(opts)
	errs := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(options.workers())

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = fmt.Errorf("%s: %w", path, err)
				return nil
			}
			_, errs[i] = ParseFile(path, opts...)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // Workers never return errors; failures are collected in errs

	err := multierr.Combine(errs...)
	if err != nil {
		options.logger.Info("metadata check failed",
			zap.Int("files", len(paths)),
			zap.Int("failed", len(multierr.Errors(err))))
	}
	return err
}

// ValidateUTF8 reports whether b is valid UTF-8.
//
// It returns nil for valid input, otherwise a *ParseError of kind
// ErrInvalidUTF8 locating and describing the first bad sequence.
func ValidateUTF8(b []byte) error {
	res := utf8check.Validate(b)
	if res.Valid() {
		return nil
	}
	pe := &types.ParseError{
		Kind:   types.ErrInvalidUTF8,
		Detail: res.String(),
		Offset: int64(res.Offset),
	}
	pe.Locate(b)
	return pe
}
