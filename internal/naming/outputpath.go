package naming

import (
	"fmt"
	"strings"

	"github.com/sccasc/cmipclean/internal/config"
)

// MirrorPath re-roots resolved into the secondary access path. The first
// segment after the leading "/" is the root: the sentinel root maps to
// m.SentinelPath, any other root to m.RootTemplate with the root name
// substituted. The result is not checked against the filesystem.
//
//	/data/cmip5/x.nc   → /condo/climatedata3/cmip5/x.nc
//	/data4/synda/x.nc  → /condo/climatedata4/synda/x.nc
func MirrorPath(resolved string, m config.MirrorRules) (string, error) {
	parts := strings.Split(resolved, "/")
	if len(parts) < 2 {
		return "", fmt.Errorf("%w: cannot mirror %q", ErrShortPath, resolved)
	}
	root := parts[1]
	rest := strings.Join(parts[2:], "/")

	base := strings.ReplaceAll(m.RootTemplate, config.RootPlaceholder, root)
	if root == m.SentinelRoot {
		base = m.SentinelPath
	}
	return base + "/" + rest, nil
}
