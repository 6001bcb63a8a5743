package constraint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/flotilla-solver/flotilla/pkg/flotilla"
)

var _ flotilla.Constraint = &TableConstraint{}
var _ flotilla.Constraint = &CardinalityConstraint{}

// TableConstraint explicitly stores the set of value tuples that
// satisfy it. Each tuple is positionally aligned with the
// constraint's ordered scope.
type TableConstraint struct {
	id     flotilla.Identifier
	scope  []*flotilla.Variable
	tuples [][]flotilla.Value
}

// Table returns a constraint over the ordered scope satisfied
// exactly by the given tuples. Tuples are copied; a tuple whose
// length differs from the scope's arity is rejected.
func Table(id flotilla.Identifier, scope []*flotilla.Variable, tuples [][]flotilla.Value) (*TableConstraint, error) {
	c := &TableConstraint{
		id:     id,
		scope:  make([]*flotilla.Variable, len(scope)),
		tuples: make([][]flotilla.Value, len(tuples)),
	}
	copy(c.scope, scope)
	for i, tuple := range tuples {
		if len(tuple) != len(scope) {
			return nil, fmt.Errorf("constraint %q: tuple %v has %d values, scope has arity %d", id, tuple, len(tuple), len(scope))
		}
		c.tuples[i] = make([]flotilla.Value, len(tuple))
		copy(c.tuples[i], tuple)
	}
	return c, nil
}

func (c *TableConstraint) Identifier() flotilla.Identifier {
	return c.id
}

func (c *TableConstraint) Scope() []*flotilla.Variable {
	scope := make([]*flotilla.Variable, len(c.scope))
	copy(scope, c.scope)
	return scope
}

func (c *TableConstraint) String() string {
	return fmt.Sprintf("table constraint %q over %s", c.id, scopeNames(c.scope))
}

// Check reports whether the fully assigned scope matches one of the
// satisfying tuples. It returns true while any scope variable is
// unassigned, since the constraint is not yet falsifiable.
func (c *TableConstraint) Check() bool {
	assigned := make([]flotilla.Value, len(c.scope))
	for i, v := range c.scope {
		value, ok := v.Value()
		if !ok {
			return true
		}
		assigned[i] = value
	}
	for _, tuple := range c.tuples {
		if tupleEqual(tuple, assigned) {
			return true
		}
	}
	return false
}

// HasSupport reports whether some satisfying tuple assigns val to v
// and draws every other position from that variable's current
// domain. A variable outside the scope is vacuously supported. The
// scan short-circuits at the first fully supported tuple; tuple
// order does not affect the result.
func (c *TableConstraint) HasSupport(v *flotilla.Variable, val flotilla.Value) bool {
	index := -1
	for i, sv := range c.scope {
		if sv == v {
			index = i
			break
		}
	}
	if index < 0 {
		return true
	}
	for _, tuple := range c.tuples {
		if tuple[index] != val {
			continue
		}
		supported := true
		for i, sv := range c.scope {
			if i == index {
				continue
			}
			if !sv.InCurrentDomain(tuple[i]) {
				supported = false
				break
			}
		}
		if supported {
			return true
		}
	}
	return false
}

// CardinalityConstraint is satisfied when the number of scope
// variables assigned a value from the required set lies within
// [lower, upper].
type CardinalityConstraint struct {
	id       flotilla.Identifier
	scope    []*flotilla.Variable
	required map[flotilla.Value]struct{}
	lower    int
	upper    int
}

// Cardinality returns a constraint requiring that between lower and
// upper of the scope variables take a value from required.
func Cardinality(id flotilla.Identifier, scope []*flotilla.Variable, required []flotilla.Value, lower, upper int) *CardinalityConstraint {
	c := &CardinalityConstraint{
		id:       id,
		scope:    make([]*flotilla.Variable, len(scope)),
		required: make(map[flotilla.Value]struct{}, len(required)),
		lower:    lower,
		upper:    upper,
	}
	copy(c.scope, scope)
	for _, value := range required {
		c.required[value] = struct{}{}
	}
	return c
}

func (c *CardinalityConstraint) Identifier() flotilla.Identifier {
	return c.id
}

func (c *CardinalityConstraint) Scope() []*flotilla.Variable {
	scope := make([]*flotilla.Variable, len(c.scope))
	copy(scope, c.scope)
	return scope
}

func (c *CardinalityConstraint) String() string {
	return fmt.Sprintf("cardinality constraint %q over %s: between %d and %d required values", c.id, scopeNames(c.scope), c.lower, c.upper)
}

// Check reports whether the count of required values over the fully
// assigned scope lies within the bounds. It returns true while any
// scope variable is unassigned.
func (c *CardinalityConstraint) Check() bool {
	hits := 0
	for _, v := range c.scope {
		value, ok := v.Value()
		if !ok {
			return true
		}
		if _, required := c.required[value]; required {
			hits++
		}
	}
	return c.lower <= hits && hits <= c.upper
}

// HasSupport performs a bounded feasibility search: starting from
// v=val it tries to extend an assignment over the rest of the scope,
// drawn from current domains, whose final required-value count falls
// within the bounds. A variable outside the scope is vacuously
// supported. Only the boolean result is contractual.
func (c *CardinalityConstraint) HasSupport(v *flotilla.Variable, val flotilla.Value) bool {
	inScope := false
	for _, sv := range c.scope {
		if sv == v {
			inScope = true
			break
		}
	}
	if !inScope {
		return true
	}

	// Work on a local copy of the remaining scope; the shared
	// scope list must not be reordered.
	remaining := make([]*flotilla.Variable, 0, len(c.scope)-1)
	skipped := false
	for _, sv := range c.scope {
		if sv == v && !skipped {
			skipped = true
			continue
		}
		remaining = append(remaining, sv)
	}
	// Smallest current domain first keeps branching low.
	sort.SliceStable(remaining, func(i, j int) bool {
		return remaining[i].CurrentDomainSize() < remaining[j].CurrentDomainSize()
	})

	hits := 0
	if _, required := c.required[val]; required {
		hits = 1
	}
	return c.extend(remaining, hits)
}

// extend grows the feasibility assignment one variable at a time. A
// partial assignment with hits required values and len(remaining)
// undecided variables is pruned when hits already exceeds the upper
// bound or when even all-required completions fall short of the
// lower bound.
func (c *CardinalityConstraint) extend(remaining []*flotilla.Variable, hits int) bool {
	if hits > c.upper || hits+len(remaining) < c.lower {
		return false
	}
	if len(remaining) == 0 {
		return c.lower <= hits
	}
	v := remaining[0]
	for _, value := range v.CurrentDomain() {
		next := hits
		if _, required := c.required[value]; required {
			next++
		}
		if c.extend(remaining[1:], next) {
			return true
		}
	}
	return false
}

func scopeNames(scope []*flotilla.Variable) string {
	names := make([]string, len(scope))
	for i, v := range scope {
		names[i] = string(v.Identifier())
	}
	return strings.Join(names, ", ")
}

func tupleEqual(a, b []flotilla.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
