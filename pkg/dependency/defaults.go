package dependency

import "github.com/goliatone/go-intake/pkg/model"

// DefaultEdges returns the cross-field edges for a rule set variant. Every
// edge is gated on its dependent having content, so an untouched password or
// confirmation never shows a premature error.
func DefaultEdges(variant model.Variant) []Edge {
	passwordTyped := WhenPopulated(model.FieldPassword)
	edges := []Edge{
		{Source: model.FieldUserID, Dependent: model.FieldPassword, When: passwordTyped},
	}
	if variant == model.VariantV1 {
		edges = append(edges,
			Edge{Source: model.FieldFirstName, Dependent: model.FieldPassword, When: passwordTyped},
			Edge{Source: model.FieldLastName, Dependent: model.FieldPassword, When: passwordTyped},
		)
	}
	edges = append(edges, Edge{
		Source:    model.FieldPassword,
		Dependent: model.FieldReenterPassword,
		When:      WhenPopulated(model.FieldReenterPassword),
	})
	return edges
}
