package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is matched by errors.Is when no source has notes for a version.
var ErrNotFound = errors.New("release notes not found")

// Source is one place release notes can come from.
//
// Lookup returns ok=false when the source has no notes for version. A
// non-nil error means the source itself failed; the Extractor logs it and
// moves on as if the source had returned nothing.
type Source interface {
	Name() string
	Lookup(ctx context.Context, version string) (notes string, ok bool, err error)
}

// Result is the outcome of a successful lookup.
type Result struct {
	Version string
	Notes   string
	// Source is the Name of the source that produced Notes.
	Source string
	// Path is set by Extract once the notes have been written.
	Path string
}

// SourceFailure records a source that returned an error.
type SourceFailure struct {
	Source string
	Err    error
}

// NotFoundError reports that every source came back empty.
type NotFoundError struct {
	Version string
	// Tried lists the source names in the order they were consulted.
	Tried []string
	// Failures lists sources that errored rather than simply finding nothing.
	Failures []SourceFailure
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no release notes found for version %s (tried: %s)",
		e.Version, strings.Join(e.Tried, ", "))
}

// Is makes errors.Is(err, ErrNotFound) true for a NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Extractor consults sources in order until one has notes.
type Extractor struct {
	sources []Source
	logf    func(format string, args ...any)
}

// New creates an Extractor that consults sources in the given order.
func New(sources ...Source) *Extractor {
	return &Extractor{sources: sources}
}

// WithLogger sets a debug logger. A nil logger disables logging.
func (e *Extractor) WithLogger(logf func(format string, args ...any)) *Extractor {
	e.logf = logf
	return e
}

func (e *Extractor) logDebug(format string, args ...any) {
	if e.logf != nil {
		e.logf(format, args...)
	}
}

// Find returns the notes from the first source that has any.
// When none does it returns a *NotFoundError. A source stopped by ctx ends
// the search with the context error rather than counting as absent.
func (e *Extractor) Find(ctx context.Context, version string) (*Result, error) {
	notFound := &NotFoundError{Version: version}

	for _, src := range e.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := src.Name()
		notFound.Tried = append(notFound.Tried, name)

		text, ok, err := src.Lookup(ctx, version)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			e.logDebug("[notes] %s lookup for %s stopped: %v", name, version, err)
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if err != nil {
			e.logDebug("[notes] %s lookup for %s failed: %v", name, version, err)
			notFound.Failures = append(notFound.Failures, SourceFailure{Source: name, Err: err})
			continue
		}

		text = strings.TrimSpace(text)
		if !ok || text == "" {
			e.logDebug("[notes] %s has no notes for %s", name, version)
			continue
		}

		e.logDebug("[notes] found %d bytes of notes for %s in %s", len(text), version, name)
		return &Result{Version: version, Notes: text, Source: name}, nil
	}

	return nil, notFound
}

// Extract finds the notes for version and writes them to outputPath,
// replacing any existing content. Nothing is written when no source has
// notes.
func (e *Extractor) Extract(ctx context.Context, version, outputPath string) (*Result, error) {
	res, err := e.Find(ctx, version)
	if err != nil {
		return nil, err
	}

	if err := WriteNotes(outputPath, res.Notes); err != nil {
		return nil, err
	}

	res.Path = outputPath
	return res, nil
}
