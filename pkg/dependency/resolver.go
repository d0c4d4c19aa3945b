package dependency

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-intake/pkg/model"
)

var (
	// ErrCycle is returned when declaring an edge would make a field depend on
	// itself through the dependency graph.
	ErrCycle = errors.New("dependency: edge introduces a cycle")
	// ErrSelfEdge is returned for edges whose source and dependent match.
	ErrSelfEdge = errors.New("dependency: field cannot depend on itself")
)

// Condition gates an edge on the current form snapshot. A nil Condition
// always holds.
type Condition func(snapshot model.Snapshot) bool

// WhenPopulated holds when id has content in the snapshot.
func WhenPopulated(id model.FieldID) Condition {
	return func(snapshot model.Snapshot) bool {
		return !snapshot.Get(id).IsEmpty()
	}
}

// Edge declares that Dependent must be re-validated whenever Source changes.
type Edge struct {
	Source    model.FieldID
	Dependent model.FieldID
	When      Condition
}

func (e Edge) String() string {
	return fmt.Sprintf("%s -> %s", e.Source, e.Dependent)
}

// Outcome is the validation result for one field triggered by a change.
type Outcome struct {
	Field  model.FieldID
	Result model.Result
}

// Resolver holds the static edge set. Edges are declared during
// initialisation and read-only afterwards.
type Resolver struct {
	edges map[model.FieldID][]Edge
	order []Edge
}

// NewResolver creates a resolver and declares edges in order.
func NewResolver(edges ...Edge) (*Resolver, error) {
	r := &Resolver{edges: make(map[model.FieldID][]Edge)}
	for _, edge := range edges {
		if err := r.Declare(edge); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustResolver panics when the edge set is invalid.
func MustResolver(edges ...Edge) *Resolver {
	r, err := NewResolver(edges...)
	if err != nil {
		panic(err)
	}
	return r
}

// ForVariant returns a resolver preloaded with DefaultEdges(variant).
func ForVariant(variant model.Variant) *Resolver {
	return MustResolver(DefaultEdges(variant)...)
}

// Declare adds an edge. Unknown fields, self edges, duplicates and edges that
// would close a cycle are rejected without modifying the resolver.
func (r *Resolver) Declare(edge Edge) error {
	if r == nil {
		return fmt.Errorf("dependency: resolver is nil")
	}
	if !edge.Source.Valid() {
		return fmt.Errorf("dependency: unknown source field %q", edge.Source)
	}
	if !edge.Dependent.Valid() {
		return fmt.Errorf("dependency: unknown dependent field %q", edge.Dependent)
	}
	if edge.Source == edge.Dependent {
		return fmt.Errorf("%w: %s", ErrSelfEdge, edge.Source)
	}
	for _, existing := range r.edges[edge.Source] {
		if existing.Dependent == edge.Dependent {
			return fmt.Errorf("dependency: edge %s already declared", edge)
		}
	}
	if path, ok := r.path(edge.Dependent, edge.Source); ok {
		return fmt.Errorf("%w: %s closes %v", ErrCycle, edge, path)
	}

	if r.edges == nil {
		r.edges = make(map[model.FieldID][]Edge)
	}
	r.edges[edge.Source] = append(r.edges[edge.Source], edge)
	r.order = append(r.order, edge)
	return nil
}

// Edges returns every declared edge in declaration order.
func (r *Resolver) Edges() []Edge {
	if r == nil {
		return nil
	}
	return append([]Edge(nil), r.order...)
}

// Dependents returns the direct dependents of id whose condition holds for
// snapshot, in declaration order.
func (r *Resolver) Dependents(id model.FieldID, snapshot model.Snapshot) []model.FieldID {
	if r == nil {
		return nil
	}
	var out []model.FieldID
	for _, edge := range r.edges[id] {
		if edge.When != nil && !edge.When(snapshot) {
			continue
		}
		out = append(out, edge.Dependent)
	}
	return out
}

// OnFieldChanged validates id and then each triggered dependent,
// sequentially. The changed field always comes first in the returned slice.
func (r *Resolver) OnFieldChanged(id model.FieldID, snapshot model.Snapshot, validate func(model.FieldID) model.Result) []Outcome {
	if validate == nil {
		return nil
	}
	outcomes := []Outcome{{Field: id, Result: validate(id)}}
	for _, dependent := range r.Dependents(id, snapshot) {
		outcomes = append(outcomes, Outcome{Field: dependent, Result: validate(dependent)})
	}
	return outcomes
}

// path reports whether to is reachable from from, returning the visited
// chain.
func (r *Resolver) path(from, to model.FieldID) ([]model.FieldID, bool) {
	visited := make(map[model.FieldID]bool)
	var walk func(model.FieldID, []model.FieldID) ([]model.FieldID, bool)
	walk = func(current model.FieldID, trail []model.FieldID) ([]model.FieldID, bool) {
		trail = append(trail, current)
		if current == to {
			return trail, true
		}
		if visited[current] {
			return nil, false
		}
		visited[current] = true
		for _, edge := range r.edges[current] {
			if found, ok := walk(edge.Dependent, trail); ok {
				return found, true
			}
		}
		return nil, false
	}
	return walk(from, nil)
}
