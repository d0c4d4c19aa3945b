package model

import (
	"fmt"
	"strings"
)

// FieldID identifies a single control on the intake form.
type FieldID string

const (
	FieldFirstName       FieldID = "first-name"
	FieldMiddleInitial   FieldID = "middle-initial"
	FieldLastName        FieldID = "last-name"
	FieldDateOfBirth     FieldID = "date-of-birth"
	FieldSocialSecurity  FieldID = "social-security"
	FieldAddressLine1    FieldID = "address-line-1"
	FieldAddressLine2    FieldID = "address-line-2"
	FieldCity            FieldID = "city"
	FieldState           FieldID = "state"
	FieldZipCode         FieldID = "zip-code"
	FieldEmail           FieldID = "email-address"
	FieldPhone           FieldID = "phone-number"
	FieldGender          FieldID = "gender"
	FieldSick            FieldID = "sick"
	FieldInsurance       FieldID = "insurance"
	FieldVaccinated      FieldID = "vaccinated"
	FieldMedicalHistory  FieldID = "medical-history"
	FieldPainLevel       FieldID = "pain-level"
	FieldSymptoms        FieldID = "symptoms"
	FieldUserID          FieldID = "user-id"
	FieldPassword        FieldID = "password"
	FieldReenterPassword FieldID = "re-enter-password"
)

var fieldOrder = []FieldID{
	FieldFirstName,
	FieldMiddleInitial,
	FieldLastName,
	FieldDateOfBirth,
	FieldSocialSecurity,
	FieldAddressLine1,
	FieldAddressLine2,
	FieldCity,
	FieldState,
	FieldZipCode,
	FieldEmail,
	FieldPhone,
	FieldGender,
	FieldSick,
	FieldInsurance,
	FieldVaccinated,
	FieldMedicalHistory,
	FieldPainLevel,
	FieldSymptoms,
	FieldUserID,
	FieldPassword,
	FieldReenterPassword,
}

var fieldIndex = func() map[FieldID]int {
	out := make(map[FieldID]int, len(fieldOrder))
	for idx, id := range fieldOrder {
		out[id] = idx
	}
	return out
}()

// AllFields returns every known field in form order.
func AllFields() []FieldID {
	return append([]FieldID(nil), fieldOrder...)
}

// Valid reports whether id is one of the declared form fields.
func (id FieldID) Valid() bool {
	_, ok := fieldIndex[id]
	return ok
}

// Position returns the zero-based form order of id, or -1 when unknown.
func (id FieldID) Position() int {
	if idx, ok := fieldIndex[id]; ok {
		return idx
	}
	return -1
}

func (id FieldID) String() string {
	return string(id)
}

// ParseFieldID converts a raw identifier into a FieldID, rejecting unknown
// names.
func ParseFieldID(raw string) (FieldID, error) {
	id := FieldID(strings.ToLower(strings.TrimSpace(raw)))
	if !id.Valid() {
		return "", fmt.Errorf("model: unknown field %q", raw)
	}
	return id, nil
}

// Variant selects one of the two canonical rule sets. The sets disagree on
// zip/SSN formats and password requirements, so a deployment picks exactly
// one.
type Variant string

const (
	// VariantV1 accepts ZIP+4, caps user ids at 30 characters and enforces the
	// aggregate password rule (special characters, no quotes, no names).
	VariantV1 Variant = "v1"
	// VariantV2 requires a social security number, accepts five digit zips
	// only and caps user ids at 20 characters.
	VariantV2 Variant = "v2"
)

// DefaultVariant is used when a profile does not name one.
const DefaultVariant = VariantV1

// ParseVariant normalises raw into a known Variant.
func ParseVariant(raw string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return DefaultVariant, nil
	case "v1", "1", "variant-1":
		return VariantV1, nil
	case "v2", "2", "variant-2":
		return VariantV2, nil
	default:
		return "", fmt.Errorf("model: unknown rule set variant %q", raw)
	}
}
