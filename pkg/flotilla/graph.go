package flotilla

import "fmt"

// ConstraintGraph groups the variables and constraints of one CSP.
// It owns both lists and maintains an index from each variable to
// the constraints scoped over it. The index is built once at
// construction and never mutated afterwards.
type ConstraintGraph struct {
	id            Identifier
	variables     []*Variable
	constraints   []Constraint
	constraintsOf map[*Variable][]Constraint
	free          []*Variable
}

// NewConstraintGraph validates that every constraint's scope
// variables are members of the graph and that variable identifiers
// are unique. Variables that appear in no constraint are accepted
// but recorded as advisories, retrievable through FreeVariables:
// such a variable can never be pruned or checked and is effectively
// free.
func NewConstraintGraph(id Identifier, variables []*Variable, constraints []Constraint) (*ConstraintGraph, error) {
	g := &ConstraintGraph{
		id:            id,
		variables:     variables,
		constraints:   constraints,
		constraintsOf: make(map[*Variable][]Constraint, len(variables)),
	}

	members := make(map[*Variable]struct{}, len(variables))
	ids := make(map[Identifier]struct{}, len(variables))
	for _, v := range variables {
		if _, ok := ids[v.Identifier()]; ok {
			return nil, DuplicateIdentifierError(v.Identifier())
		}
		ids[v.Identifier()] = struct{}{}
		members[v] = struct{}{}
	}

	for _, c := range constraints {
		for _, v := range c.Scope() {
			if _, ok := members[v]; !ok {
				return nil, ScopeMismatchError{Graph: id, Constraint: c.Identifier(), Variable: v.Identifier()}
			}
			g.constraintsOf[v] = append(g.constraintsOf[v], c)
		}
	}

	for _, v := range variables {
		if len(g.constraintsOf[v]) == 0 {
			g.free = append(g.free, v)
		}
	}

	return g, nil
}

func (g *ConstraintGraph) Identifier() Identifier {
	return g.id
}

func (g *ConstraintGraph) String() string {
	return fmt.Sprintf("constraint graph %q", g.id)
}

// Variables returns the graph's variables in their fixed iteration
// order.
func (g *ConstraintGraph) Variables() []*Variable {
	vars := make([]*Variable, len(g.variables))
	copy(vars, g.variables)
	return vars
}

func (g *ConstraintGraph) Constraints() []Constraint {
	constraints := make([]Constraint, len(g.constraints))
	copy(constraints, g.constraints)
	return constraints
}

// ConstraintsOf returns the constraints with v in their scope. The
// lookup is proportional to the number of constraints referencing v,
// not the total constraint count.
func (g *ConstraintGraph) ConstraintsOf(v *Variable) []Constraint {
	indexed := g.constraintsOf[v]
	constraints := make([]Constraint, len(indexed))
	copy(constraints, indexed)
	return constraints
}

// FreeVariables returns the variables that participate in no
// constraint.
func (g *ConstraintGraph) FreeVariables() []*Variable {
	free := make([]*Variable, len(g.free))
	copy(free, g.free)
	return free
}

// UnassignAll clears the assignment overlay of every variable.
func (g *ConstraintGraph) UnassignAll() {
	for _, v := range g.variables {
		v.Unassign()
	}
}

// Validate checks a candidate solution against the graph without
// disturbing live search state: every graph variable must be
// covered, no unknown identifiers may appear, and every constraint
// must hold. Prior assignments are reinstated before returning.
func (g *ConstraintGraph) Validate(assignment Assignment) error {
	if len(assignment) != len(g.variables) {
		return fmt.Errorf("assignment covers %d variables, graph %q has %d", len(assignment), g.id, len(g.variables))
	}
	byID := make(map[Identifier]*Variable, len(g.variables))
	for _, v := range g.variables {
		byID[v.Identifier()] = v
	}
	for id := range assignment {
		if _, ok := byID[id]; !ok {
			return fmt.Errorf("assignment references variable %q which is not a member of graph %q", id, g.id)
		}
	}

	type saved struct {
		value    Value
		assigned bool
	}
	prior := make(map[*Variable]saved, len(g.variables))
	for _, v := range g.variables {
		value, assigned := v.Value()
		prior[v] = saved{value: value, assigned: assigned}
	}
	defer func() {
		for v, s := range prior {
			if s.assigned {
				_ = v.Assign(s.value)
			} else {
				v.Unassign()
			}
		}
	}()

	for id, value := range assignment {
		if err := byID[id].Assign(value); err != nil {
			return err
		}
	}
	for _, c := range g.constraints {
		if !c.Check() {
			return fmt.Errorf("assignment does not satisfy constraint %q", c.Identifier())
		}
	}
	return nil
}
