package changelog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// HeadingPrefix starts every version heading in the changelog.
const HeadingPrefix = "## ["

// maxLineSize bounds a single changelog line.
const maxLineSize = 1024 * 1024

// DefaultPath is the changelog location used when none is configured.
const DefaultPath = "CHANGELOG.md"

// Section is one version heading together with the text below it.
type Section struct {
	// Version is the text between the heading brackets, e.g. "1.2.0".
	Version string
	// Heading is the full heading line, e.g. "## [1.2.0] - 2024-01-01".
	Heading string
	// Body is the trimmed content up to the next heading.
	Body string
	// Line is the 1-based line number of the heading.
	Line int
}

// ExtractFile returns the release notes for version from the changelog at path.
// A missing file is reported as not found rather than as an error.
func ExtractFile(path, version string) (string, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("opening changelog file: %w", err)
	}
	defer f.Close()

	return ExtractSection(f, version)
}

// ExtractSection scans r for the first heading matching version and returns
// the trimmed text up to the next heading. ok is false when no heading
// matches or the matching section is empty.
func ExtractSection(r io.Reader, version string) (notes string, ok bool, err error) {
	candidates := CandidateVersions(version)
	if len(candidates) == 0 {
		return "", false, nil
	}

	scanner := newLineScanner(r)
	capturing := false
	var body []string

	for scanner.Scan() {
		line := scanner.Text()

		if capturing {
			if strings.HasPrefix(line, HeadingPrefix) {
				break
			}
			body = append(body, line)
			continue
		}

		if matchesHeading(line, candidates) {
			capturing = true
		}
	}
	if err := scanner.Err(); err != nil {
		return "", false, fmt.Errorf("reading changelog: %w", err)
	}

	notes = strings.TrimSpace(strings.Join(body, "\n"))
	return notes, notes != "", nil
}

// ListSections returns every version section in document order.
func ListSections(r io.Reader) ([]Section, error) {
	scanner := newLineScanner(r)

	var sections []Section
	var current *Section
	var body []string
	lineNo := 0

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.TrimSpace(strings.Join(body, "\n"))
		sections = append(sections, *current)
		body = body[:0]
	}

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if version, ok := headingVersion(line); ok {
			flush()
			current = &Section{Version: version, Heading: line, Line: lineNo}
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading changelog: %w", err)
	}
	flush()

	return sections, nil
}

// ListVersions returns the version of every section in the changelog at path.
// A missing file yields an empty list.
func ListVersions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}
	defer f.Close()

	sections, err := ListSections(f)
	if err != nil {
		return nil, err
	}

	versions := make([]string, len(sections))
	for i, s := range sections {
		versions[i] = s.Version
	}
	return versions, nil
}

// matchesHeading reports whether line is a heading for one of candidates.
// The match is anchored at the start of the line and must end at "]".
func matchesHeading(line string, candidates []string) bool {
	if !strings.HasPrefix(line, HeadingPrefix) {
		return false
	}
	rest := line[len(HeadingPrefix):]
	for _, c := range candidates {
		if strings.HasPrefix(rest, c+"]") {
			return true
		}
	}
	return false
}

// headingVersion returns the bracketed version of a heading line.
func headingVersion(line string) (string, bool) {
	if !strings.HasPrefix(line, HeadingPrefix) {
		return "", false
	}
	rest := line[len(HeadingPrefix):]
	end := strings.Index(rest, "]")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return scanner
}
