package dedup

import (
	"sort"

	"github.com/sccasc/cmipclean/internal/catalog"
)

// Group is the set of records sharing one filename, in input order.
type Group struct {
	Filename string
	Members  []*catalog.Record
}

// Partitioned is the result of Partition. Unique keeps input order; Groups
// are sorted by filename.
type Partitioned struct {
	Unique []*catalog.Record
	Groups []Group
}

// Duplicates returns the total number of records held in Groups.
func (p Partitioned) Duplicates() int {
	n := 0
	for _, g := range p.Groups {
		n += len(g.Members)
	}
	return n
}

// Partition splits records by filename into those that appear once and
// groups of those that appear two or more times. Every input record lands
// in exactly one of the two.
func Partition(records []*catalog.Record) Partitioned {
	byName := make(map[string][]*catalog.Record, len(records))
	for _, r := range records {
		byName[r.Filename] = append(byName[r.Filename], r)
	}

	var p Partitioned
	for _, r := range records {
		if len(byName[r.Filename]) == 1 {
			p.Unique = append(p.Unique, r)
		}
	}
	for name, members := range byName {
		if len(members) > 1 {
			p.Groups = append(p.Groups, Group{Filename: name, Members: members})
		}
	}
	sort.Slice(p.Groups, func(i, j int) bool {
		return p.Groups[i].Filename < p.Groups[j].Filename
	})
	return p
}
