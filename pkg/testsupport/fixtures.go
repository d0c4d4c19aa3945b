package testsupport

import (
	"time"

	"github.com/goliatone/go-intake/pkg/model"
)

// Today is the reference date used by fixtures and fixed clocks.
var Today = time.Date(2025, time.October, 20, 9, 30, 0, 0, time.UTC)

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Clock returns a clock pinned to Today.
func Clock() func() time.Time {
	return FixedClock(Today)
}

// ValidSnapshot returns a fully populated snapshot that passes every rule of
// the given variant when validated against Clock.
func ValidSnapshot(variant model.Variant) model.Snapshot {
	snapshot := model.Snapshot{
		model.FieldFirstName:       model.Text("Ada"),
		model.FieldMiddleInitial:   model.Text("K"),
		model.FieldLastName:        model.Text("O'Neil-Smith"),
		model.FieldDateOfBirth:     model.Text("1985-04-12"),
		model.FieldAddressLine1:    model.Text("12 Main Street"),
		model.FieldAddressLine2:    model.Text("Apt 4"),
		model.FieldCity:            model.Text("Springfield"),
		model.FieldState:           model.Text("IL"),
		model.FieldZipCode:         model.Text("62704"),
		model.FieldEmail:           model.Text("ada@example.com"),
		model.FieldPhone:           model.Text("217-555-0142"),
		model.FieldGender:          model.Choice("female"),
		model.FieldSick:            model.Choice("no"),
		model.FieldInsurance:       model.Choice("yes"),
		model.FieldVaccinated:      model.Choice("yes"),
		model.FieldMedicalHistory:  model.Choice("measles", "tetanus"),
		model.FieldPainLevel:       model.Text("3"),
		model.FieldSymptoms:        model.Text("Mild headache"),
		model.FieldUserID:          model.Text("adaneil"),
		model.FieldPassword:        model.Text("Str0ng!Pass"),
		model.FieldReenterPassword: model.Text("Str0ng!Pass"),
	}
	if variant == model.VariantV2 {
		snapshot[model.FieldSocialSecurity] = model.Text("123-45-6789")
	}
	return snapshot
}
