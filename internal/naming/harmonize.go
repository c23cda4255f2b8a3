package naming

import (
	"fmt"
	"strings"

	"github.com/sccasc/cmipclean/internal/catalog"
)

// NormalizeVersion keeps rec.Version when it starts with marker and
// otherwise replaces it with the second-to-last segment of rec.LocalFile,
// where the catalog layout stores the version directory. It reports whether
// the version changed. A local_file with fewer than two segments is an
// input-format error.
func NormalizeVersion(rec *catalog.Record, marker string) (bool, error) {
	if strings.HasPrefix(rec.Version, marker) {
		return false, nil
	}
	parts := strings.Split(rec.LocalFile, "/")
	if len(parts) < 2 {
		return false, fmt.Errorf("%w: local_file %q (line %d)", ErrShortPath, rec.LocalFile, rec.Line)
	}
	v := parts[len(parts)-2]
	changed := v != rec.Version
	rec.Version = v
	return changed, nil
}
