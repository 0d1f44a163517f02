// Package validation implements the request validation pipeline: ordered
// per-field rule chains evaluated against a request payload, producing either
// a pass or field-level violations.
package validation

import (
	"context"
	"regexp"
	"strconv"

	apperrors "github.com/zzincafe/zzincafe-server/internal/errors"
)

// Location names where a field is read from.
type Location string

const (
	LocationBody  Location = "body"
	LocationQuery Location = "query"
	LocationParam Location = "param"
)

// Value is a field value as extracted from a request. Present is false when
// the field does not appear in the payload at all.
type Value struct {
	Raw     string
	Present bool
}

// Source provides field values per location.
type Source interface {
	Get(loc Location, field string) Value
}

// MapSource is a Source backed by plain maps. The body map holds stringified
// JSON scalars ("0", "false", "null" for their JSON counterparts).
type MapSource struct {
	Body   map[string]string
	Query  map[string]string
	Params map[string]string
}

func (s MapSource) Get(loc Location, field string) Value {
	var m map[string]string
	switch loc {
	case LocationBody:
		m = s.Body
	case LocationQuery:
		m = s.Query
	case LocationParam:
		m = s.Params
	}
	if m == nil {
		return Value{}
	}
	raw, ok := m[field]
	return Value{Raw: raw, Present: ok}
}

// CheckFunc is one predicate in a chain. Returning an error aborts the whole
// run; it means the check itself could not be performed (e.g. a store probe
// failed), not that the field is invalid.
type CheckFunc func(ctx context.Context, v Value, src Source) (bool, error)

type rule struct {
	check   CheckFunc
	message string
}

// Chain is an ordered list of rules for one field at one location. Rules run
// left to right; the first failure determines the field's message and stops
// evaluation for that field.
type Chain struct {
	location Location
	field    string
	rules    []rule
}

// Body starts a chain for a body field.
func Body(field string) *Chain {
	return &Chain{location: LocationBody, field: field}
}

// Query starts a chain for a query field.
func Query(field string) *Chain {
	return &Chain{location: LocationQuery, field: field}
}

// Param starts a chain for a path parameter.
func Param(field string) *Chain {
	return &Chain{location: LocationParam, field: field}
}

func (c *Chain) add(check CheckFunc, message string) *Chain {
	c.rules = append(c.rules, rule{check: check, message: message})
	return c
}

// falsy mirrors checkFalsy semantics: empty string, 0, null, undefined and
// false all count as missing.
func falsy(v Value) bool {
	if !v.Present {
		return true
	}
	switch v.Raw {
	case "", "0", "null", "undefined", "false":
		return true
	}
	return false
}

// Required fails on absent or falsy values.
func (c *Chain) Required(message string) *Chain {
	return c.add(func(_ context.Context, v Value, _ Source) (bool, error) {
		return !falsy(v), nil
	}, message)
}

// Pattern fails unless the value matches the expression. The expression is
// compiled once at chain construction.
func (c *Chain) Pattern(expr, message string) *Chain {
	re := regexp.MustCompile(expr)
	return c.add(func(_ context.Context, v Value, _ Source) (bool, error) {
		return re.MatchString(v.Raw), nil
	}, message)
}

// Length fails unless min <= len(value) <= max (inclusive, in runes). A max
// of 0 means unbounded above.
func (c *Chain) Length(min, max int, message string) *Chain {
	return c.add(func(_ context.Context, v Value, _ Source) (bool, error) {
		n := len([]rune(v.Raw))
		if n < min {
			return false, nil
		}
		if max > 0 && n > max {
			return false, nil
		}
		return true, nil
	}, message)
}

// OneOf fails unless the value is one of the allowed members.
func (c *Chain) OneOf(allowed []string, message string) *Chain {
	return c.add(func(_ context.Context, v Value, _ Source) (bool, error) {
		for _, a := range allowed {
			if v.Raw == a {
				return true, nil
			}
		}
		return false, nil
	}, message)
}

// EqualsField fails unless the value equals a sibling field at the same
// location exactly.
func (c *Chain) EqualsField(other, message string) *Chain {
	loc := c.location
	return c.add(func(_ context.Context, v Value, src Source) (bool, error) {
		sibling := src.Get(loc, other)
		return v.Raw == sibling.Raw, nil
	}, message)
}

// Int fails unless the value parses as an integer.
func (c *Chain) Int(message string) *Chain {
	return c.add(func(_ context.Context, v Value, _ Source) (bool, error) {
		_, err := strconv.ParseInt(v.Raw, 10, 64)
		return err == nil, nil
	}, message)
}

// Range fails unless the value parses as a number within [min, max].
func (c *Chain) Range(min, max float64, message string) *Chain {
	return c.add(func(_ context.Context, v Value, _ Source) (bool, error) {
		f, err := strconv.ParseFloat(v.Raw, 64)
		if err != nil {
			return false, nil
		}
		return f >= min && f <= max, nil
	}, message)
}

// Check appends an arbitrary predicate; used for store-backed existence and
// uniqueness probes. The check is awaited like any other rule, so a verdict
// is never produced while a probe is still pending.
func (c *Chain) Check(fn CheckFunc, message string) *Chain {
	return c.add(fn, message)
}

// Run evaluates all chains against the source. Rules for one field stop at
// that field's first failure, but every chain is still evaluated, so the
// resulting ValidationError carries all per-field violations in order. The
// response envelope reports only the first one; the full list rides along in
// validationErrors.
func Run(ctx context.Context, src Source, chains ...*Chain) error {
	var violations []apperrors.FieldViolation

	for _, ch := range chains {
		v := src.Get(ch.location, ch.field)
		for _, r := range ch.rules {
			ok, err := r.check(ctx, v, src)
			if err != nil {
				return apperrors.WrapError(apperrors.ErrInternal, err)
			}
			if !ok {
				violations = append(violations, apperrors.FieldViolation{
					Location: string(ch.location),
					Field:    ch.field,
					Message:  r.message,
				})
				break
			}
		}
	}

	if len(violations) > 0 {
		return apperrors.NewValidationError(violations...)
	}
	return nil
}
