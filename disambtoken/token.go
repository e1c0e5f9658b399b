// Package disambtoken defines the tokens extracted from a reference's field
// values for the disambiguation index, and the functions that extract them.
//
// Two extraction modes exist for the same reference: AddTokens captures
// exactly the values a particular cite actually used, while AddTokensIndex
// captures a superset suitable for a global inverted index — most visibly
// for dates, which are indexed at year, year-month, and full granularity so
// that a cite which only renders a year can still be narrowed against a
// reference's full date.
package disambtoken

import (
	"errors"
	"strings"

	"github.com/coregx/csldisamb/disamberr"
)

var (
	errMalformedNumber = errors.New("number field has no digits")
	errMalformedDate   = errors.New("date month out of CSL's 0-16 range (1-12 calendar, 13-16 season)")
)

// Kind identifies which variant of Token a value holds.
type Kind uint8

const (
	Str Kind = iota
	Date
	Num
	YearSuffix
)

// DateValue mirrors a CSL date with its granularity encoded by zeroed
// trailing fields: Day == 0 means day-less, Month == 0 means month-less.
// Season codes 13-16 (spring, summer, autumn, winter) are carried in Month
// alongside ordinary 1-12 month values, matching how CSL itself overloads
// the field.
type DateValue struct {
	Year  int
	Month int
	Day   int
}

// Token is a single disambiguation token. Exactly one of the fields named
// after Kind's values is meaningful for a given Kind; the rest are zero.
// It is a plain comparable struct so it can be stored directly in a Go map
// or set.
type Token struct {
	Kind       Kind
	Str        string
	Date       DateValue
	Num        string
	YearSuffix string
}

func NewStr(s string) Token       { return Token{Kind: Str, Str: s} }
func NewDate(d DateValue) Token    { return Token{Kind: Date, Date: d} }
func NewNum(n string) Token        { return Token{Kind: Num, Num: n} }
func NewYearSuffix(s string) Token { return Token{Kind: YearSuffix, YearSuffix: s} }

// Name is the minimal shape of a CSL name needed to extract tokens from it,
// without depending on the (out-of-scope) XML parser's full name model.
type Name struct {
	Family              string
	Given               string
	NonDroppingParticle string
	DroppingParticle    string
	Suffix              string
	Literal             string // set instead of the above for a corporate/literal name
}

// DateOrRange is the minimal shape of a CSL date field.
type DateOrRange struct {
	Single  *DateValue
	Range   [2]*DateValue // both non-nil for a genuine range
	Literal string        // set instead of Single/Range for a free-text date
}

// Reference is the minimal shape of a bibliographic reference needed to
// extract disambiguation tokens from it. Ordinary/Number/Name/DateFields
// hold every CSL variable of the corresponding kind present on the
// reference, keyed by CSL variable name (e.g. "title", "volume", "author").
type Reference struct {
	ID       string
	Ordinary map[string]string
	Number   map[string]string
	Name     map[string][]Name
	Date     map[string]DateOrRange
}

// Set is an unordered collection of tokens, built up by the Add* functions.
// A plain map keeps insertion idempotent the way the original HashSet did.
type Set map[Token]struct{}

func NewSet() Set { return make(Set) }

func (s Set) Add(t Token) { s[t] = struct{}{} }

func (s Set) Contains(t Token) bool {
	_, ok := s[t]
	return ok
}

// AddTokens extracts exactly the tokens r's fields carry, at cite-rendering
// granularity (dates are inserted once, at full precision). Any field that
// fails to parse is skipped and reported as a *disamberr.ReferenceFieldError
// rather than failing the whole reference; callers log these (see
// internal/obs) and proceed with the token set as extracted so far.
func AddTokens(r *Reference, set Set) []*disamberr.ReferenceFieldError {
	return addTokensCtx(r, set, false)
}

// AddTokensIndex extracts the superset of tokens suitable for the global
// inverted index: dates additionally contribute year-month and year-only
// variants so a coarser cite-side date token can still match. Field errors
// are reported the same way as AddTokens.
func AddTokensIndex(r *Reference, set Set) []*disamberr.ReferenceFieldError {
	return addTokensCtx(r, set, true)
}

func addTokensCtx(r *Reference, set Set, indexing bool) []*disamberr.ReferenceFieldError {
	var errs []*disamberr.ReferenceFieldError
	for _, v := range r.Ordinary {
		set.Add(NewStr(v))
	}
	for k, v := range r.Number {
		if !looksNumeric(v) {
			errs = append(errs, &disamberr.ReferenceFieldError{
				ReferenceID: r.ID, Field: k, Err: errMalformedNumber,
			})
			continue
		}
		set.Add(NewNum(v))
	}
	for _, names := range r.Name {
		for _, n := range names {
			addNameTokens(n, set)
		}
	}
	for k, d := range r.Date {
		if derr := addDateOrRangeTokens(d, set, indexing); derr != nil {
			errs = append(errs, &disamberr.ReferenceFieldError{
				ReferenceID: r.ID, Field: k, Err: derr,
			})
		}
	}
	return errs
}

// looksNumeric is a minimal sanity check for a CSL "number" variable's raw
// string form (e.g. "5", "5-7", "5, 7"): it must contain at least one digit.
// An empty or purely non-digit value (an author typo, a stray placeholder)
// is reported rather than silently indexed as a meaningless token.
func looksNumeric(v string) bool {
	return strings.ContainsAny(v, "0123456789")
}

func addNameTokens(n Name, set Set) {
	if n.Literal != "" {
		set.Add(NewStr(n.Literal))
		return
	}
	addOptionalStr(n.Family, set)
	addOptionalStr(n.Given, set)
	addOptionalStr(n.NonDroppingParticle, set)
	addOptionalStr(n.DroppingParticle, set)
	addOptionalStr(n.Suffix, set)
}

func addOptionalStr(s string, set Set) {
	if s != "" {
		set.Add(NewStr(s))
	}
}

func addDateOrRangeTokens(d DateOrRange, set Set, indexing bool) error {
	switch {
	case d.Literal != "":
		set.Add(NewStr(d.Literal))
		return nil
	case d.Range[0] != nil && d.Range[1] != nil:
		if err := addDateTokens(*d.Range[0], set, indexing); err != nil {
			return err
		}
		return addDateTokens(*d.Range[1], set, indexing)
	case d.Single != nil:
		return addDateTokens(*d.Single, set, indexing)
	}
	return nil
}

// addDateTokens validates d's granularity-overloaded Month field before
// indexing it: CSL overloads 1-12 as calendar months and 13-16 as seasons,
// so anything else is a malformed date rather than a coarser one.
func addDateTokens(d DateValue, set Set, indexing bool) error {
	if d.Month < 0 || d.Month > 16 {
		return errMalformedDate
	}
	set.Add(NewDate(d))
	if !indexing {
		return nil
	}
	set.Add(NewDate(DateValue{Year: d.Year, Month: d.Month}))
	set.Add(NewDate(DateValue{Year: d.Year}))
	return nil
}
