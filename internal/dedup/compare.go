package dedup

import (
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/sccasc/cmipclean/internal/config"
)

// Comparator orders version strings. Compare returns a negative number when
// a sorts before b, zero when they are equal and a positive number
// otherwise.
type Comparator interface {
	Compare(a, b string) int
	Name() string
}

// Lexical compares versions byte-wise. It assumes versions are fixed width
// and zero padded, which holds for the vYYYYMMDD directories of the
// archive.
type Lexical struct{}

func (Lexical) Compare(a, b string) int { return strings.Compare(a, b) }
func (Lexical) Name() string            { return string(config.OrderLexical) }

// Semantic compares versions by numeric segments, so "v9" sorts before
// "v10". Versions that do not parse sort before every parsed version and
// among themselves byte-wise, which keeps the order total.
type Semantic struct{}

func (Semantic) Compare(a, b string) int {
	va, errA := goversion.NewVersion(a)
	vb, errB := goversion.NewVersion(b)
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return va.Compare(vb)
}

func (Semantic) Name() string { return string(config.OrderSemantic) }

// ComparatorFor returns the Comparator for order.
func ComparatorFor(order config.VersionOrder) (Comparator, error) {
	switch order {
	case config.OrderLexical, "":
		return Lexical{}, nil
	case config.OrderSemantic:
		return Semantic{}, nil
	}
	return nil, fmt.Errorf("unknown version order %q", order)
}
