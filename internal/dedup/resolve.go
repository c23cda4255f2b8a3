package dedup

import (
	"context"

	"go.uber.org/multierr"

	"github.com/sccasc/cmipclean/internal/catalog"
)

// Result collects the outcomes of ResolveAll.
type Result struct {
	Winners    []*catalog.Record // One per resolved group, in group order.
	Outcomes   []Outcome
	Unresolved []*UnresolvedGroupError
}

// SettledBy counts resolved groups per deciding stage.
func (r Result) SettledBy() map[Stage]int {
	m := make(map[Stage]int)
	for _, o := range r.Outcomes {
		if o.Resolved() {
			m[o.Stage]++
		}
	}
	return m
}

// ResolveAll reduces every group independently. Unresolved groups do not
// stop the pass; they are all returned together as one combined error
// whose parts can be listed with multierr.Errors. A cancelled ctx stops the
// pass between groups.
func ResolveAll(ctx context.Context, groups []Group, cmp Comparator, meta Metadata) (Result, error) {
	var (
		res  Result
		errs error
	)
	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		o := Reduce(g, cmp, meta)
		res.Outcomes = append(res.Outcomes, o)
		if o.Resolved() {
			res.Winners = append(res.Winners, o.Winner.Record)
			continue
		}
		res.Unresolved = append(res.Unresolved, o.Err)
		errs = multierr.Append(errs, o.Err)
	}
	return res, errs
}
