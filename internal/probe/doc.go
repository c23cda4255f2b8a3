// Package probe answers the filesystem questions asked while cleaning a
// catalog: whether a path is an existing regular file, its modification time
// as a UTC ISO-8601 string, and how many entries share its directory.
//
// All queries go through an [afero.Fs] so the same code runs against the OS
// filesystem in production and an in-memory filesystem in tests. Directory
// entry counts may be memoized with a bounded LRU cache; within one batch
// run directory contents are assumed stable.
package probe
