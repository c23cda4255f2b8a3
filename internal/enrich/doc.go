// Package enrich turns the unique records and the duplicate winners into
// the final catalog: merge, year filter, metadata join and sort.
package enrich
