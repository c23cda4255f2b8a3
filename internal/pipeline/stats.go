package pipeline

import (
	"strconv"
	"time"

	"github.com/sccasc/cmipclean/internal/catalog"
	"github.com/sccasc/cmipclean/internal/probe"
)

// RunStats tracks counters across the stages of one run.
type RunStats struct {
	RunID   string
	Started time.Time
	Elapsed time.Duration

	Loaded         int
	VersionsFixed  int
	PathsRewritten map[string]int // Rewrite step → records.

	Unique          int
	Groups          int
	GroupRecords    int
	Resolved        int
	Unresolved      int
	SettledBy       map[string]int // Deciding stage → groups.
	OutOfRange      int
	UnmatchedDrops  int
	Written         int
	TotalBytes      int64
	Probe           probe.Stats
	DuplicateLookup int
}

// Eliminated returns how many duplicate records lost their tie-break.
func (s *RunStats) Eliminated() int {
	return s.GroupRecords - s.Resolved
}

// sumSizes adds up the size column; unparsable values count as zero.
func sumSizes(records []*catalog.Record) int64 {
	var total int64
	for _, r := range records {
		if n, err := strconv.ParseInt(r.Size, 10, 64); err == nil {
			total += n
		}
	}
	return total
}
