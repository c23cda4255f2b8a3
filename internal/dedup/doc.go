// Package dedup reduces records sharing a filename to a single winner.
//
// Partition splits a catalog into unique records and duplicate groups.
// Reduce runs the tie-break stages on one group:
//
//  1. version: keep the records with the greatest version
//  2. recency: keep the records with the latest modification time
//  3. siblings: keep the first record whose directory has the most entries
//
// Each stage only runs while more than one candidate remains, so a group
// settled by version never touches the filesystem. The stages themselves
// are pure functions over []Candidate; filesystem metadata comes from a
// Metadata implementation fetched just before the stage that needs it.
//
// ResolveAll reduces every group and reports all unresolved groups in one
// combined error.
package dedup
