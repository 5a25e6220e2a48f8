// Package notes finds release notes for a version and writes them to a file.
//
// An Extractor asks its sources in order and keeps the first non-empty
// answer. A source that has nothing to say, or that fails, does not stop
// the search; only when every source comes back empty does extraction fail,
// with a NotFoundError carrying remediation steps for the user.
//
// The standard source order is the changelog first, then the annotated tag:
//
//	ex := notes.New(
//	    notes.NewChangelogSource("CHANGELOG.md"),
//	    git.NewRepoTagReader("."),
//	)
//	res, err := ex.Extract(ctx, "v1.2.0", "RELEASE_NOTES.md")
package notes
