package enrich

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sccasc/cmipclean/internal/catalog"
)

// ErrInvalidTime is returned when a record's time field has no leading
// four-digit year.
var ErrInvalidTime = errors.New("invalid time range")

// Merge returns unique followed by winners in a new slice.
func Merge(unique, winners []*catalog.Record) []*catalog.Record {
	out := make([]*catalog.Record, 0, len(unique)+len(winners))
	out = append(out, unique...)
	return append(out, winners...)
}

// ParseBegYear returns the year at the start of a time range such as
// "185001-200512" or "2006-01-01".
func ParseBegYear(t string) (int, error) {
	beg, _, _ := strings.Cut(t, "-")
	if len(beg) < 4 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, t)
	}
	y, err := strconv.Atoi(beg[:4])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, t)
	}
	return y, nil
}

// FilterYears sets BegYear on every record and keeps those starting before
// maxYear. It fails on the first unparsable time.
func FilterYears(records []*catalog.Record, maxYear int) ([]*catalog.Record, error) {
	out := records[:0:0]
	for _, r := range records {
		y, err := ParseBegYear(r.Time)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", r.Line, err)
		}
		r.BegYear = y
		if y < maxYear {
			out = append(out, r)
		}
	}
	return out, nil
}

// Sort orders records by variable, model, experiment, time frequency and
// filename. Equal keys keep their relative order.
func Sort(records []*catalog.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Variable != b.Variable {
			return a.Variable < b.Variable
		}
		if a.Model != b.Model {
			return a.Model < b.Model
		}
		if a.Experiment != b.Experiment {
			return a.Experiment < b.Experiment
		}
		if a.TimeFrequency != b.TimeFrequency {
			return a.TimeFrequency < b.TimeFrequency
		}
		return a.Filename < b.Filename
	})
}
