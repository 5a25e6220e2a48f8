// Package changelog reads release notes out of a Markdown changelog.
//
// A changelog is split into sections, each introduced by a heading line of
// the form "## [<version>]" with optional trailing text (usually a date):
//
//	## [1.2.0] - 2024-01-01
//
//	### Added
//	- Something new
//
//	## [1.1.0] - 2023-11-30
//
// Only the heading prefix matters; everything between two headings is the
// body of the first one. Versions are matched with and without a leading
// "v", so "v1.2.0" and "1.2.0" select the same section.
package changelog
