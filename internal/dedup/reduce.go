package dedup

import (
	"github.com/sccasc/cmipclean/internal/catalog"
)

// Metadata fetches the filesystem facts the later stages compare. It is
// implemented by probe.Prober.
type Metadata interface {
	ModTime(path string) (string, error)
	SiblingCount(path string) (int, error)
}

// Candidate is a group member with the metadata fetched for it so far.
// ModTime and Siblings stay zero until their stage runs.
type Candidate struct {
	Record   *catalog.Record
	ModTime  string
	Siblings int
}

// Outcome is the result of reducing one group: either Winner or Err is set.
type Outcome struct {
	Filename string
	Winner   *Candidate
	Stage    Stage // Stage that settled the group, or gave up on it.
	Err      *UnresolvedGroupError
}

// Resolved reports whether the group produced a winner.
func (o Outcome) Resolved() bool { return o.Winner != nil }

// Reduce runs the tie-break stages on g. Stages after the one that leaves a
// single candidate are skipped and fetch nothing.
func Reduce(g Group, cmp Comparator, meta Metadata) Outcome {
	cands := make([]Candidate, len(g.Members))
	for i, r := range g.Members {
		cands[i] = Candidate{Record: r}
	}

	cands = keepMaxVersion(cands, cmp)
	if len(cands) == 1 {
		return win(g, cands[0], StageVersion)
	}

	for i := range cands {
		mt, err := meta.ModTime(cands[i].Record.LocalFile)
		if err != nil {
			return fail(g, cands, StageRecency, err)
		}
		cands[i].ModTime = mt
	}
	cands = keepLatest(cands)
	if len(cands) == 1 {
		return win(g, cands[0], StageRecency)
	}

	for i := range cands {
		n, err := meta.SiblingCount(cands[i].Record.LocalFile)
		if err != nil {
			return fail(g, cands, StageSiblings, err)
		}
		cands[i].Siblings = n
	}
	best, ok := keepMostSiblings(cands)
	if !ok {
		return fail(g, cands, StageSiblings, nil)
	}
	return win(g, best, StageSiblings)
}

func win(g Group, c Candidate, s Stage) Outcome {
	return Outcome{Filename: g.Filename, Winner: &c, Stage: s}
}

func fail(g Group, cands []Candidate, s Stage, cause error) Outcome {
	paths := make([]string, len(cands))
	for i, c := range cands {
		paths[i] = c.Record.LocalFile
	}
	return Outcome{
		Filename: g.Filename,
		Stage:    s,
		Err:      &UnresolvedGroupError{Filename: g.Filename, Stage: s, Paths: paths, Cause: cause},
	}
}

// keepMaxVersion keeps the candidates whose version equals the greatest
// version under cmp, in their original order.
func keepMaxVersion(cands []Candidate, cmp Comparator) []Candidate {
	if len(cands) == 0 {
		return nil
	}
	top := cands[0].Record.Version
	for _, c := range cands[1:] {
		if cmp.Compare(c.Record.Version, top) > 0 {
			top = c.Record.Version
		}
	}
	var out []Candidate
	for _, c := range cands {
		if cmp.Compare(c.Record.Version, top) == 0 {
			out = append(out, c)
		}
	}
	return out
}

// keepLatest keeps the candidates with the greatest ModTime. ModTime is
// fixed-width ISO-8601, so string order is chronological order.
func keepLatest(cands []Candidate) []Candidate {
	if len(cands) == 0 {
		return nil
	}
	top := cands[0].ModTime
	for _, c := range cands[1:] {
		if c.ModTime > top {
			top = c.ModTime
		}
	}
	var out []Candidate
	for _, c := range cands {
		if c.ModTime == top {
			out = append(out, c)
		}
	}
	return out
}

// keepMostSiblings scans in order and keeps the first candidate with a
// strictly greater Siblings count than the best so far, starting from 0.
// It reports false when the counts cannot tell the candidates apart: every
// count is equal, or none is above zero.
func keepMostSiblings(cands []Candidate) (Candidate, bool) {
	if len(cands) == 0 {
		return Candidate{}, false
	}
	if len(cands) > 1 {
		allEqual := true
		for _, c := range cands[1:] {
			if c.Siblings != cands[0].Siblings {
				allEqual = false
				break
			}
		}
		if allEqual {
			return Candidate{}, false
		}
	}

	var best Candidate
	found := false
	for _, c := range cands {
		if c.Siblings > best.Siblings {
			best = c
			found = true
		}
	}
	return best, found
}
