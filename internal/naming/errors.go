package naming

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. All of them are fatal for a run.
var (
	ErrUnresolvablePath = errors.New("path not resolvable")
	ErrPathMissing      = errors.New("resolved path does not exist")
	ErrShortPath        = errors.New("path has too few segments")
)

// UnresolvablePathError reports a local_file that no rewrite rule could
// turn into an existing file.
type UnresolvablePathError struct {
	Path  string   // Original local_file.
	Line  int      // Catalog line, 0 when unknown.
	Tried []string // Candidates checked, in order.
}

func (e *UnresolvablePathError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: %s", ErrUnresolvablePath, e.Path)
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	if len(e.Tried) > 0 {
		fmt.Fprintf(&b, "; tried %s", strings.Join(e.Tried, ", "))
	}
	return b.String()
}

func (e *UnresolvablePathError) Unwrap() error { return ErrUnresolvablePath }
