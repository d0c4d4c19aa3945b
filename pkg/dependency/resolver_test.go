package dependency_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-intake/pkg/dependency"
	"github.com/goliatone/go-intake/pkg/model"
)

func TestDefaultEdges(t *testing.T) {
	typed := model.Snapshot{model.FieldPassword: model.Text("Str0ng!Pass")}

	v1 := dependency.ForVariant(model.VariantV1)
	got := v1.Dependents(model.FieldLastName, typed)
	if diff := cmp.Diff([]model.FieldID{model.FieldPassword}, got); diff != "" {
		t.Fatalf("v1 last-name dependents mismatch (-want +got):\n%s", diff)
	}

	v2 := dependency.ForVariant(model.VariantV2)
	if got := v2.Dependents(model.FieldFirstName, typed); len(got) != 0 {
		t.Fatalf("v2 should not re-check password on first-name change, got %v", got)
	}
	if diff := cmp.Diff([]model.FieldID{model.FieldPassword}, v2.Dependents(model.FieldUserID, typed)); diff != "" {
		t.Fatalf("v2 user-id dependents mismatch (-want +got):\n%s", diff)
	}
}

func TestPasswordOnlyWhenPopulated(t *testing.T) {
	resolver := dependency.ForVariant(model.VariantV1)
	for _, source := range []model.FieldID{model.FieldUserID, model.FieldFirstName, model.FieldLastName} {
		if got := resolver.Dependents(source, model.Snapshot{source: model.Text("ada")}); len(got) != 0 {
			t.Fatalf("%s: untouched password should not be re-checked, got %v", source, got)
		}
	}
}

func TestReenterOnlyWhenPopulated(t *testing.T) {
	resolver := dependency.ForVariant(model.VariantV1)

	empty := model.Snapshot{model.FieldPassword: model.Text("Str0ng!Pass")}
	if got := resolver.Dependents(model.FieldPassword, empty); len(got) != 0 {
		t.Fatalf("untouched re-enter field should not be re-checked, got %v", got)
	}

	filled := empty.With(model.FieldReenterPassword, model.Text("Str0ng!"))
	want := []model.FieldID{model.FieldReenterPassword}
	if diff := cmp.Diff(want, resolver.Dependents(model.FieldPassword, filled)); diff != "" {
		t.Fatalf("dependents mismatch (-want +got):\n%s", diff)
	}
}

func TestOnFieldChanged_SourceFirstThenDependents(t *testing.T) {
	resolver := dependency.MustResolver(
		dependency.Edge{Source: model.FieldUserID, Dependent: model.FieldPassword},
		dependency.Edge{Source: model.FieldUserID, Dependent: model.FieldEmail},
		dependency.Edge{Source: model.FieldPassword, Dependent: model.FieldReenterPassword},
	)

	var calls []model.FieldID
	outcomes := resolver.OnFieldChanged(model.FieldUserID, nil, func(id model.FieldID) model.Result {
		calls = append(calls, id)
		return model.Pass()
	})

	want := []model.FieldID{model.FieldUserID, model.FieldPassword, model.FieldEmail}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Fatalf("validation order mismatch (-want +got):\n%s", diff)
	}
	if len(outcomes) != len(want) || outcomes[0].Field != model.FieldUserID {
		t.Fatalf("unexpected outcomes %+v", outcomes)
	}
}

func TestDeclare_RejectsCycles(t *testing.T) {
	resolver := dependency.MustResolver(
		dependency.Edge{Source: model.FieldUserID, Dependent: model.FieldPassword},
		dependency.Edge{Source: model.FieldPassword, Dependent: model.FieldReenterPassword},
	)

	err := resolver.Declare(dependency.Edge{Source: model.FieldReenterPassword, Dependent: model.FieldUserID})
	if !errors.Is(err, dependency.ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
	if len(resolver.Edges()) != 2 {
		t.Fatalf("rejected edge must not be stored, got %v", resolver.Edges())
	}

	err = resolver.Declare(dependency.Edge{Source: model.FieldCity, Dependent: model.FieldCity})
	if !errors.Is(err, dependency.ErrSelfEdge) {
		t.Fatalf("expected ErrSelfEdge, got %v", err)
	}
}

func TestDeclare_RejectsUnknownAndDuplicates(t *testing.T) {
	resolver := dependency.MustResolver()
	if err := resolver.Declare(dependency.Edge{Source: "nickname", Dependent: model.FieldPassword}); err == nil {
		t.Fatalf("expected unknown source error")
	}
	edge := dependency.Edge{Source: model.FieldZipCode, Dependent: model.FieldState}
	if err := resolver.Declare(edge); err != nil {
		t.Fatalf("declare: %v", err)
	}
	if err := resolver.Declare(edge); err == nil {
		t.Fatalf("expected duplicate edge error")
	}
}

func TestNewResolver_FailsFast(t *testing.T) {
	_, err := dependency.NewResolver(
		dependency.Edge{Source: model.FieldCity, Dependent: model.FieldState},
		dependency.Edge{Source: model.FieldState, Dependent: model.FieldZipCode},
		dependency.Edge{Source: model.FieldZipCode, Dependent: model.FieldCity},
	)
	if !errors.Is(err, dependency.ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
}
