// Package naming repairs the path and version fields of catalog records.
//
//   - NormalizeVersion replaces malformed versions with the version
//     directory embedded in local_file (harmonize.go).
//   - Resolver rewrites local_file references that no longer exist using an
//     ordered rule table; the first rule whose marker matches supplies the
//     candidates, and the first existing candidate wins (rules.go,
//     resolve.go).
//   - MirrorPath re-roots a resolved path into the secondary access path
//     (outputpath.go).
//   - AssertResolved enforces that every resolved path exists.
package naming
