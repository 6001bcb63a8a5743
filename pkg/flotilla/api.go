package flotilla

import (
	"fmt"
	"sort"
	"strings"
)

// Identifier values uniquely identify particular Variables,
// Constraints and ConstraintGraphs within a single problem.
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// IdentifierFromString returns an Identifier based on a provided
// string.
func IdentifierFromString(s string) Identifier {
	return Identifier(s)
}

// Value is a single element of a variable's finite domain.
type Value string

func (v Value) String() string {
	return string(v)
}

// Assignment maps every variable of a graph to the value it holds in
// one complete, consistent solution.
type Assignment map[Identifier]Value

// String implements fmt.Stringer and renders the assignment in
// lexical identifier order.
func (a Assignment) String() string {
	ids := make([]string, 0, len(a))
	for id := range a {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = fmt.Sprintf("%s=%s", id, a[Identifier(id)])
	}
	return strings.Join(s, ", ")
}

// SolutionHandler is invoked once per complete consistent assignment
// enumerated by the solver. The engine places no constraint on what
// the handler does with the assignment.
type SolutionHandler func(Assignment)

// Constraint implementations restrict the combinations of values the
// variables in their scope may take.
type Constraint interface {
	// Identifier returns the name of this constraint.
	Identifier() Identifier
	// Scope returns the ordered sequence of variables the
	// constraint is defined over. Order is semantically
	// significant: tuple position i corresponds to Scope()[i].
	Scope() []*Variable
	// Check reports whether the constraint holds under the
	// current assignments. It returns true while any scope
	// variable is still unassigned.
	Check() bool
	// HasSupport reports whether v=val can be extended to a full
	// assignment of the scope, drawn from current domains, that
	// satisfies the constraint. It returns true if v is not in
	// the scope.
	HasSupport(v *Variable, val Value) bool
	String() string
}

// InvalidAssignmentError is returned when a value outside a
// variable's original domain is assigned to it.
type InvalidAssignmentError struct {
	Variable Identifier
	Value    Value
}

func (e InvalidAssignmentError) Error() string {
	return fmt.Sprintf("cannot assign value %q to variable %q: not in its domain", e.Value, e.Variable)
}

// PruneInconsistencyError is returned when a value absent from a
// variable's current domain is pruned. It indicates a propagation
// bug, not a property of the problem instance.
type PruneInconsistencyError struct {
	Variable Identifier
	Value    Value
}

func (e PruneInconsistencyError) Error() string {
	return fmt.Sprintf("cannot prune value %q from variable %q: not in its current domain", e.Value, e.Variable)
}

// RestoreInconsistencyError is returned when a value already present
// in a variable's current domain is restored to it.
type RestoreInconsistencyError struct {
	Variable Identifier
	Value    Value
}

func (e RestoreInconsistencyError) Error() string {
	return fmt.Sprintf("cannot restore value %q to variable %q: already in its current domain", e.Value, e.Variable)
}

// DomainWipeoutError reports that propagation emptied a variable's
// current domain. It is recoverable: the search treats it as proof
// that the current branch has no solutions and backtracks.
type DomainWipeoutError struct {
	Variable Identifier
}

func (e DomainWipeoutError) Error() string {
	return fmt.Sprintf("domain of variable %q wiped out", e.Variable)
}

// ScopeMismatchError reports that a constraint references a variable
// that is not part of the owning graph.
type ScopeMismatchError struct {
	Graph      Identifier
	Constraint Identifier
	Variable   Identifier
}

func (e ScopeMismatchError) Error() string {
	return fmt.Sprintf("constraint %q of graph %q references variable %q which is not a member of the graph", e.Constraint, e.Graph, e.Variable)
}

// DuplicateIdentifierError reports two graph variables sharing an
// identifier.
type DuplicateIdentifierError Identifier

func (e DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("duplicate variable identifier %q in input", Identifier(e))
}
