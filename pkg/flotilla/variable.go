package flotilla

import "fmt"

// Variable is a named finite-domain slot. Its original domain is
// fixed at construction; propagation shrinks a separate current
// domain, and assignment is an overlay that never touches either
// domain. Variables are shared by reference between a graph and the
// constraints scoped over them: identity, not name equality, is what
// relates them.
type Variable struct {
	id       Identifier
	domain   []Value
	current  []Value
	value    Value
	assigned bool
}

// NewVariable creates a variable with the given identifier and
// domain. The domain is copied; the variable starts unassigned with
// its current domain equal to its original domain.
func NewVariable(id Identifier, domain ...Value) *Variable {
	v := &Variable{
		id:      id,
		domain:  make([]Value, len(domain)),
		current: make([]Value, len(domain)),
	}
	copy(v.domain, domain)
	copy(v.current, domain)
	return v
}

func (v *Variable) Identifier() Identifier {
	return v.id
}

func (v *Variable) String() string {
	return fmt.Sprintf("variable %q", v.id)
}

// Domain returns a copy of the variable's original domain.
func (v *Variable) Domain() []Value {
	dom := make([]Value, len(v.domain))
	copy(dom, v.domain)
	return dom
}

func (v *Variable) DomainSize() int {
	return len(v.domain)
}

// Value returns the assigned value, if any.
func (v *Variable) Value() (Value, bool) {
	return v.value, v.assigned
}

func (v *Variable) IsAssigned() bool {
	return v.assigned
}

// Assign overlays value on the variable. It fails if value is not in
// the original domain; the current domain is never affected.
func (v *Variable) Assign(value Value) error {
	if !contains(v.domain, value) {
		return InvalidAssignmentError{Variable: v.id, Value: value}
	}
	v.value = value
	v.assigned = true
	return nil
}

// Unassign clears the assignment overlay.
func (v *Variable) Unassign() {
	v.value = ""
	v.assigned = false
}

// CurrentDomain returns a copy of the variable's current domain. An
// assigned variable reports the single-element sequence holding its
// assigned value, so support checks treat assigned and unassigned
// variables uniformly.
func (v *Variable) CurrentDomain() []Value {
	if v.assigned {
		return []Value{v.value}
	}
	cur := make([]Value, len(v.current))
	copy(cur, v.current)
	return cur
}

func (v *Variable) CurrentDomainSize() int {
	if v.assigned {
		return 1
	}
	return len(v.current)
}

// InCurrentDomain reports whether value is still possible for the
// variable under the assigned-variable overlay semantics of
// CurrentDomain.
func (v *Variable) InCurrentDomain(value Value) bool {
	if v.assigned {
		return value == v.value
	}
	return contains(v.current, value)
}

// Prune removes value from the current domain. Pruning a value that
// is not present indicates a propagation bug and fails with
// PruneInconsistencyError.
func (v *Variable) Prune(value Value) error {
	for i, cur := range v.current {
		if cur == value {
			v.current = append(v.current[:i], v.current[i+1:]...)
			return nil
		}
	}
	return PruneInconsistencyError{Variable: v.id, Value: value}
}

// Restore returns a previously pruned value to the current domain.
// Restoring a value that is already present indicates an undo-log
// bug and fails with RestoreInconsistencyError.
func (v *Variable) Restore(value Value) error {
	if contains(v.current, value) {
		return RestoreInconsistencyError{Variable: v.id, Value: value}
	}
	v.current = append(v.current, value)
	return nil
}

// Reset restores the current domain to the original domain and
// clears any assignment.
func (v *Variable) Reset() {
	v.current = v.current[:0]
	v.current = append(v.current, v.domain...)
	v.Unassign()
}

func contains(values []Value, value Value) bool {
	for _, cur := range values {
		if cur == value {
			return true
		}
	}
	return false
}
