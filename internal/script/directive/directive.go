// Package directive extracts embedded directives from script source text.
//
// A directive is a bracketed marker of the form
//
//	%%%{TOKEN=VALUE}%%%
//
// where TOKEN is fixed per directive family and VALUE is one of a finite
// set. Scripts use directives to declare how they consume and produce
// document text.
package directive

import "regexp"

// Family is one directive family: a fixed token literal plus the finite
// set of recognized values mapped to typed results.
type Family[T any] struct {
	token  string
	values map[string]T
	re     *regexp.Regexp
}

// NewFamily creates a family for the given token literal and value set.
func NewFamily[T any](token string, values map[string]T) *Family[T] {
	// Single-line greedy capture: with two markers on one line the value
	// spans past the first closing delimiter and fails the value lookup.
	// That quirk is part of the grammar.
	re := regexp.MustCompile(`%%%\{` + regexp.QuoteMeta(token) + `=(.+)\}%%%`)
	return &Family[T]{token: token, values: values, re: re}
}

// Token returns the family's token literal.
func (f *Family[T]) Token() string {
	return f.token
}

// Scan searches source for the family's marker and returns the first
// match's value mapped into the family's value set. The second result is
// false when no marker is present or the captured value is unrecognized.
func (f *Family[T]) Scan(source string) (T, bool) {
	var zero T
	m := f.re.FindStringSubmatch(source)
	if m == nil {
		return zero, false
	}
	v, ok := f.values[m[1]]
	if !ok {
		return zero, false
	}
	return v, true
}
