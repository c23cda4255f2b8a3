package dedup

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnresolvedGroup is matched by every *UnresolvedGroupError.
var ErrUnresolvedGroup = errors.New("duplicate group not resolved")

// Stage identifies a tie-break stage.
type Stage int

const (
	StageVersion  Stage = iota + 1 // Greatest version.
	StageRecency                   // Latest modification time.
	StageSiblings                  // Most entries in the containing directory.
)

func (s Stage) String() string {
	switch s {
	case StageVersion:
		return "version"
	case StageRecency:
		return "recency"
	case StageSiblings:
		return "siblings"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// UnresolvedGroupError reports a duplicate group that the tie-break stages
// could not reduce to one record. Paths lists the candidates still standing
// when Stage gave up.
type UnresolvedGroupError struct {
	Filename string
	Stage    Stage
	Paths    []string
	Cause    error // Metadata fetch failure, nil when the stages simply tied.
}

func (e *UnresolvedGroupError) Error() string {
	msg := fmt.Sprintf("%v: %s after %s stage (%d candidates: %s)",
		ErrUnresolvedGroup, e.Filename, e.Stage, len(e.Paths), strings.Join(e.Paths, ", "))
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *UnresolvedGroupError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrUnresolvedGroup, e.Cause}
	}
	return []error{ErrUnresolvedGroup}
}
