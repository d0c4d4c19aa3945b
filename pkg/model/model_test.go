package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-intake/pkg/model"
)

func TestParseFieldID(t *testing.T) {
	id, err := model.ParseFieldID("  Email-Address ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != model.FieldEmail {
		t.Fatalf("expected %s, got %s", model.FieldEmail, id)
	}
	if _, err := model.ParseFieldID("favourite-color"); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestAllFields_FormOrder(t *testing.T) {
	fields := model.AllFields()
	if len(fields) != 22 {
		t.Fatalf("expected 22 fields, got %d", len(fields))
	}
	for idx, id := range fields {
		if id.Position() != idx {
			t.Fatalf("%s: expected position %d, got %d", id, idx, id.Position())
		}
	}
	if model.FieldID("nope").Position() != -1 {
		t.Fatalf("unknown field should have position -1")
	}

	fields[0] = "mutated"
	if model.AllFields()[0] != model.FieldFirstName {
		t.Fatalf("AllFields must return a copy")
	}
}

func TestParseVariant(t *testing.T) {
	cases := map[string]model.Variant{
		"":          model.DefaultVariant,
		"v1":        model.VariantV1,
		"1":         model.VariantV1,
		"Variant-2": model.VariantV2,
		" V2 ":      model.VariantV2,
	}
	for raw, want := range cases {
		got, err := model.ParseVariant(raw)
		if err != nil {
			t.Fatalf("%q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("%q: expected %s, got %s", raw, want, got)
		}
	}
	if _, err := model.ParseVariant("v3"); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
}

func TestValue_IsEmpty(t *testing.T) {
	cases := []struct {
		name  string
		value model.Value
		want  bool
	}{
		{name: "zero", value: model.Value{}, want: true},
		{name: "blank text", value: model.Text("   "), want: true},
		{name: "blank selection", value: model.Choice(" "), want: true},
		{name: "text", value: model.Text("a"), want: false},
		{name: "selection", value: model.Choice("yes"), want: false},
	}
	for _, tc := range cases {
		if got := tc.value.IsEmpty(); got != tc.want {
			t.Fatalf("%s: expected %t, got %t", tc.name, tc.want, got)
		}
	}
}

func TestSnapshot_WithLeavesReceiver(t *testing.T) {
	original := model.Snapshot{
		model.FieldCity:           model.Text("Springfield"),
		model.FieldMedicalHistory: model.Choice("measles"),
	}
	updated := original.With(model.FieldCity, model.Text("Shelbyville"))

	if original.Text(model.FieldCity) != "Springfield" {
		t.Fatalf("With must not mutate the receiver")
	}
	if updated.Text(model.FieldCity) != "Shelbyville" {
		t.Fatalf("expected updated city, got %q", updated.Text(model.FieldCity))
	}

	clone := original.Clone()
	clone[model.FieldMedicalHistory].Selected[0] = "tetanus"
	if diff := cmp.Diff([]string{"measles"}, original.Get(model.FieldMedicalHistory).Selected); diff != "" {
		t.Fatalf("Clone must deep copy selections (-want +got):\n%s", diff)
	}

	var empty model.Snapshot
	if !empty.Get(model.FieldCity).IsEmpty() {
		t.Fatalf("nil snapshot should read as empty")
	}
}

func TestResult_Err(t *testing.T) {
	if err := model.Pass().Err(model.FieldCity); err != nil {
		t.Fatalf("valid result should not produce an error, got %v", err)
	}

	err := model.Fail(model.KindFormatMismatch, "Phone must be in format: 000-000-0000").Err(model.FieldPhone)
	var fieldErr *model.FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected *FieldError, got %T", err)
	}
	want := &model.FieldError{
		Field:   model.FieldPhone,
		Kind:    model.KindFormatMismatch,
		Message: "Phone must be in format: 000-000-0000",
	}
	if diff := cmp.Diff(want, fieldErr); diff != "" {
		t.Fatalf("field error mismatch (-want +got):\n%s", diff)
	}
	if err.Error() != want.Message {
		t.Fatalf("unexpected error text %q", err.Error())
	}
}

func TestCatalog(t *testing.T) {
	for _, variant := range []model.Variant{model.VariantV1, model.VariantV2} {
		catalog := model.Catalog(variant)
		if len(catalog) != len(model.AllFields()) {
			t.Fatalf("%s: catalog should list every field", variant)
		}
		for idx, field := range catalog {
			if field.ID.Position() != idx {
				t.Fatalf("%s: %s out of form order", variant, field.ID)
			}
		}
	}

	ssnRequired := func(variant model.Variant) bool {
		for _, field := range model.Catalog(variant) {
			if field.ID == model.FieldSocialSecurity {
				return field.Required
			}
		}
		return false
	}
	if ssnRequired(model.VariantV1) || !ssnRequired(model.VariantV2) {
		t.Fatalf("social security should be required in v2 only")
	}

	if got := model.OptionLabel(model.FieldMedicalHistory, "covid-19"); got != "Covid-19" {
		t.Fatalf("unexpected option label %q", got)
	}
	if got := model.OptionLabel(model.FieldGender, "unlisted"); got != "unlisted" {
		t.Fatalf("unknown option should fall back to value, got %q", got)
	}
	if got := model.Label(model.FieldReenterPassword); got != "Re-enter Password" {
		t.Fatalf("unexpected label %q", got)
	}
}
