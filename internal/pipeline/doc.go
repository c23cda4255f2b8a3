// Package pipeline runs the cleaning stages over one catalog and reports
// the outcome.
//
// Stage order:
//
//	load → normalize versions → resolve paths → assert resolved →
//	partition → tie-break → merge → year filter → join → sort → write
//
// Run stops at the first fatal error; unresolved duplicate groups are
// collected over the whole tie-break pass before failing. The output file
// is only written once every stage has succeeded.
package pipeline
