package enrich

import (
	"sort"

	"github.com/sccasc/cmipclean/internal/catalog"
	"github.com/sccasc/cmipclean/internal/config"
)

// Unmatched counts records per variable that had no entry in a lookup
// table.
type Unmatched struct {
	Variable string
	Table    string // Name of the first table that lacked the variable.
	Records  int
}

// JoinResult is the output of Join.
type JoinResult struct {
	Records   []*catalog.Record
	Unmatched []Unmatched // Sorted by variable.
	Dropped   int         // Records removed under config.JoinInner.
}

// Join attaches variable names and dimensions to records. Under
// config.JoinInner a record whose variable is missing from either table is
// dropped; under config.JoinLeft it is kept with the missing fields empty.
// Unmatched variables are reported either way. Record order is preserved.
func Join(records []*catalog.Record, names, dims *catalog.Table, policy config.JoinPolicy) JoinResult {
	var res JoinResult
	missing := make(map[string]*Unmatched)

	for _, r := range records {
		n, okN := names.Lookup(r.Variable)
		d, okD := dims.Lookup(r.Variable)
		if okN {
			r.VariableStandardName, r.VariableLongName = n[0], n[1]
		}
		if okD {
			r.Dimensions = d[0]
		}
		if okN && okD {
			res.Records = append(res.Records, r)
			continue
		}

		u, seen := missing[r.Variable]
		if !seen {
			table := names.Name
			if okN {
				table = dims.Name
			}
			u = &Unmatched{Variable: r.Variable, Table: table}
			missing[r.Variable] = u
		}
		u.Records++

		if policy == config.JoinLeft {
			res.Records = append(res.Records, r)
		} else {
			res.Dropped++
		}
	}

	for _, u := range missing {
		res.Unmatched = append(res.Unmatched, *u)
	}
	sort.Slice(res.Unmatched, func(i, j int) bool {
		return res.Unmatched[i].Variable < res.Unmatched[j].Variable
	})
	return res
}
