package naming

import (
	"strings"

	"github.com/sccasc/cmipclean/internal/config"
)

// rewriteRule is one entry of the ordered rewrite table. The first rule
// whose match reports true supplies every candidate; later rules are not
// consulted for that path.
type rewriteRule struct {
	name       string
	match      func(path string) bool
	candidates func(path string) []candidate
}

// candidate is a rewritten path together with the rule step that made it.
type candidate struct {
	path string
	step string
}

// buildRules turns config rules into the ordered rewrite table:
// strip the legacy staging segment, else substitute the alternate root and
// then try the nested output directory variants.
func buildRules(r config.Rules) []rewriteRule {
	var table []rewriteRule

	if s := r.Strip; s.Marker != "" {
		table = append(table, rewriteRule{
			name:  "strip",
			match: func(p string) bool { return strings.Contains(p, s.Marker) },
			candidates: func(p string) []candidate {
				return []candidate{{strings.ReplaceAll(p, s.Segment, ""), "strip"}}
			},
		})
	}

	if s := r.Substitute; s.Marker != "" {
		table = append(table, rewriteRule{
			name:  "substitute",
			match: func(p string) bool { return strings.Contains(p, s.Marker) },
			candidates: func(p string) []candidate {
				sub := strings.ReplaceAll(p, s.From, s.To)
				out := []candidate{{sub, "substitute"}}
				for _, d := range s.NestedDirs {
					seg := "/" + d + "/"
					nested := strings.ReplaceAll(sub, seg, seg+d+"/")
					if nested != sub {
						out = append(out, candidate{nested, "substitute+" + d})
					}
				}
				return out
			},
		})
	}

	return table
}
