package naming

import (
	"fmt"
	"strings"

	"github.com/sccasc/cmipclean/internal/catalog"
	"github.com/sccasc/cmipclean/internal/config"
)

// FileChecker reports whether a path is an existing regular file.
type FileChecker interface {
	Exists(path string) bool
}

// Resolution describes how a path was resolved. Step is empty when the
// original path already existed.
type Resolution struct {
	Path string
	Step string
}

// Rewritten reports whether the path needed a rewrite.
func (r Resolution) Rewritten() bool { return r.Step != "" }

// Resolver repairs local_file references that no longer exist.
type Resolver struct {
	fs     FileChecker
	rules  []rewriteRule
	mirror config.MirrorRules
}

// NewResolver returns a Resolver checking candidates against fs.
func NewResolver(fs FileChecker, rules config.Rules) *Resolver {
	return &Resolver{fs: fs, rules: buildRules(rules), mirror: rules.Mirror}
}

// Resolve returns path unchanged when it exists; otherwise the first
// existing candidate of the first matching rule. When nothing exists the
// error is an *UnresolvablePathError.
func (r *Resolver) Resolve(path string) (Resolution, error) {
	if r.fs.Exists(path) {
		return Resolution{Path: path}, nil
	}
	var tried []string
	for _, rule := range r.rules {
		if !rule.match(path) {
			continue
		}
		for _, c := range rule.candidates(path) {
			tried = append(tried, c.path)
			if r.fs.Exists(c.path) {
				return Resolution{Path: c.path, Step: c.step}, nil
			}
		}
		break
	}
	return Resolution{}, &UnresolvablePathError{Path: path, Tried: tried}
}

// Apply resolves rec.LocalFile and fills rec.ClimatedataPath and
// rec.SchoonerPath. LocalFile itself is left untouched until
// [AssertResolved] has passed.
func (r *Resolver) Apply(rec *catalog.Record) (Resolution, error) {
	res, err := r.Resolve(rec.LocalFile)
	if err != nil {
		if upe, ok := err.(*UnresolvablePathError); ok {
			upe.Line = rec.Line
		}
		return Resolution{}, err
	}
	mirror, err := MirrorPath(res.Path, r.mirror)
	if err != nil {
		return Resolution{}, fmt.Errorf("line %d: %w", rec.Line, err)
	}
	rec.ClimatedataPath = res.Path
	rec.SchoonerPath = mirror
	return res, nil
}

// AssertResolved checks that every record's ClimatedataPath exists and sets
// FileExists accordingly. Only when all of them exist is LocalFile replaced
// by ClimatedataPath; otherwise the error wraps ErrPathMissing and names
// the missing paths.
func AssertResolved(records []*catalog.Record, fs FileChecker) error {
	var missing []string
	for _, rec := range records {
		rec.FileExists = fs.Exists(rec.ClimatedataPath)
		if !rec.FileExists {
			missing = append(missing, fmt.Sprintf("%q (line %d)", rec.ClimatedataPath, rec.Line))
		}
	}
	if len(missing) > 0 {
		const show = 5
		more := ""
		if len(missing) > show {
			more = fmt.Sprintf(" and %d more", len(missing)-show)
			missing = missing[:show]
		}
		return fmt.Errorf("%w: %s%s", ErrPathMissing, strings.Join(missing, ", "), more)
	}
	for _, rec := range records {
		rec.LocalFile = rec.ClimatedataPath
	}
	return nil
}
