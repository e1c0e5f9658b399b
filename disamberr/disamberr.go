// Package disamberr defines the error types produced while compiling a
// style into automata and while building one reference's token set. It
// distinguishes three severities the rest of the module treats very
// differently: a style bug that should fail the whole compile, a single
// reference field that should be skipped and logged, and an internal
// invariant violation that should abort only the build in progress.
package disamberr

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// StyleKind identifies the specific way a style failed to compile.
type StyleKind int

const (
	// MacroRecursion means a macro call graph contains a cycle.
	MacroRecursion StyleKind = iota
	// UnknownMacro means a <text macro="..."/> reference has no definition.
	UnknownMacro
	// InvalidChoose means a <choose> block violates the if/else-if/else shape.
	InvalidChoose
)

func (k StyleKind) String() string {
	switch k {
	case MacroRecursion:
		return "macro recursion"
	case UnknownMacro:
		return "unknown macro"
	case InvalidChoose:
		return "invalid choose block"
	default:
		return "unknown style error"
	}
}

// StyleCompileError reports one defect found while compiling a style's
// rendering tree. A full compile run collects every StyleCompileError it
// finds via a *multierror.Error rather than aborting on the first one, so a
// style author sees all the problems at once.
type StyleCompileError struct {
	Kind StyleKind
	Path string // dotted path to the offending node, e.g. "citation/layout/choose[2]"
}

func (e *StyleCompileError) Error() string {
	return fmt.Sprintf("style compile error at %s: %s", e.Path, e.Kind)
}

// NewStyleErrors collects per-node StyleCompileErrors into a single error,
// or nil if errs is empty. Callers append with append(errs, ...) and call
// this once at the end of a compile pass.
func NewStyleErrors(errs []*StyleCompileError) error {
	if len(errs) == 0 {
		return nil
	}
	var merr *multierror.Error
	for _, e := range errs {
		merr = multierror.Append(merr, e)
	}
	return merr.ErrorOrNil()
}

// ReferenceFieldError reports that one field of one reference could not be
// tokenized or rendered. It is never fatal to the reference's build as a
// whole: the caller logs it (see internal/obs) and continues with the
// field's contribution to the token set or RefIR simply omitted.
type ReferenceFieldError struct {
	ReferenceID string
	Field       string
	Err         error
}

func (e *ReferenceFieldError) Error() string {
	return fmt.Sprintf("reference %s field %q: %v", e.ReferenceID, e.Field, e.Err)
}

func (e *ReferenceFieldError) Unwrap() error { return e.Err }

// InternalInvariantError reports a programming-error-class failure: an
// invariant the rest of this module assumes always held did not (e.g. an
// Edge with no corresponding interner entry, or a Dfa state set that
// doesn't canonicalize to a previously seen key). It is a regular error
// value, never a panic, and aborts only the reference build currently in
// progress.
type InternalInvariantError struct {
	Component string
	Detail    string
}

func (e *InternalInvariantError) Error() string {
	return fmt.Sprintf("internal invariant violated in %s: %s", e.Component, e.Detail)
}

// ErrReentrantBuild is returned by disambcache when a build for a given key
// is re-entered from the same key's own in-flight build (a cyclic macro
// reference reaching the cache layer rather than being caught earlier by
// StyleCompileError{Kind: MacroRecursion}).
type ErrReentrantBuild struct {
	Key string
}

func (e *ErrReentrantBuild) Error() string {
	return fmt.Sprintf("reentrant build detected for cache key %s", e.Key)
}
