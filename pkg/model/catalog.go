package model

// Control describes how a field is presented to the user.
type Control string

const (
	ControlText     Control = "text"
	ControlPassword Control = "password"
	ControlDate     Control = "date"
	ControlSelect   Control = "select"
	ControlRadio    Control = "radio"
	ControlCheckbox Control = "checkbox"
	ControlRange    Control = "range"
	ControlTextArea Control = "textarea"
)

// Option is one selectable entry of a radio group, checkbox set or select.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Field describes one control of the intake form for adapters that render
// or prompt for it. Validation lives in the rules package; Required here
// mirrors the rule catalog so adapters can mark controls up front.
type Field struct {
	ID       FieldID  `json:"id"`
	Label    string   `json:"label"`
	Control  Control  `json:"control"`
	Required bool     `json:"required"`
	Help     string   `json:"help,omitempty"`
	Options  []Option `json:"options,omitempty"`
}

var (
	genderOptions = []Option{
		{Value: "female", Label: "Female"},
		{Value: "male", Label: "Male"},
		{Value: "other", Label: "Other"},
	}
	yesNoOptions = []Option{
		{Value: "yes", Label: "Yes"},
		{Value: "no", Label: "No"},
	}
	medicalHistoryOptions = []Option{
		{Value: "chicken-pox", Label: "Chicken Pox"},
		{Value: "measles", Label: "Measles"},
		{Value: "covid-19", Label: "Covid-19"},
		{Value: "small-pox", Label: "Small Pox"},
		{Value: "tetanus", Label: "Tetanus"},
	}
)

// OptionsFor returns the fixed option set for radio groups and checkbox sets.
// Fields without a fixed set return nil; the state list is configurable and
// handled by the rules package.
func OptionsFor(id FieldID) []Option {
	switch id {
	case FieldGender:
		return append([]Option(nil), genderOptions...)
	case FieldSick, FieldInsurance, FieldVaccinated:
		return append([]Option(nil), yesNoOptions...)
	case FieldMedicalHistory:
		return append([]Option(nil), medicalHistoryOptions...)
	default:
		return nil
	}
}

// OptionLabel resolves the display label for an option value, falling back to
// the value itself.
func OptionLabel(id FieldID, value string) string {
	for _, option := range OptionsFor(id) {
		if option.Value == value {
			return option.Label
		}
	}
	return value
}

// Catalog returns the form layout for the given rule set variant in form
// order.
func Catalog(variant Variant) []Field {
	ssnRequired := variant == VariantV2
	fields := []Field{
		{ID: FieldFirstName, Label: "First Name", Control: ControlText, Required: true},
		{ID: FieldMiddleInitial, Label: "Middle Initial", Control: ControlText},
		{ID: FieldLastName, Label: "Last Name", Control: ControlText, Required: true},
		{ID: FieldDateOfBirth, Label: "Date of Birth", Control: ControlDate, Required: true, Help: "YYYY-MM-DD"},
		{ID: FieldSocialSecurity, Label: "Social Security", Control: ControlPassword, Required: ssnRequired, Help: "XXX-XX-XXXX"},
		{ID: FieldAddressLine1, Label: "Address Line 1", Control: ControlText, Required: true},
		{ID: FieldAddressLine2, Label: "Address Line 2", Control: ControlText},
		{ID: FieldCity, Label: "City", Control: ControlText, Required: true},
		{ID: FieldState, Label: "State", Control: ControlSelect, Required: true},
		{ID: FieldZipCode, Label: "Zip Code", Control: ControlText, Required: true},
		{ID: FieldEmail, Label: "Email Address", Control: ControlText, Required: true, Help: "name@domain.tld"},
		{ID: FieldPhone, Label: "Phone Number", Control: ControlText, Required: true, Help: "000-000-0000"},
		{ID: FieldGender, Label: "Gender", Control: ControlRadio, Required: true, Options: OptionsFor(FieldGender)},
		{ID: FieldSick, Label: "Currently Sick", Control: ControlRadio, Required: true, Options: OptionsFor(FieldSick)},
		{ID: FieldInsurance, Label: "Has Insurance", Control: ControlRadio, Required: true, Options: OptionsFor(FieldInsurance)},
		{ID: FieldVaccinated, Label: "Vaccinated", Control: ControlRadio, Required: true, Options: OptionsFor(FieldVaccinated)},
		{ID: FieldMedicalHistory, Label: "Medical History", Control: ControlCheckbox, Options: OptionsFor(FieldMedicalHistory)},
		{ID: FieldPainLevel, Label: "Pain Level", Control: ControlRange, Help: "1-10"},
		{ID: FieldSymptoms, Label: "Symptoms", Control: ControlTextArea},
		{ID: FieldUserID, Label: "User ID", Control: ControlText, Required: true},
		{ID: FieldPassword, Label: "Password", Control: ControlPassword, Required: true},
		{ID: FieldReenterPassword, Label: "Re-enter Password", Control: ControlPassword, Required: true},
	}
	return fields
}

// Label returns the catalog label for id, or the raw identifier.
func Label(id FieldID) string {
	for _, field := range Catalog(DefaultVariant) {
		if field.ID == id {
			return field.Label
		}
	}
	return string(id)
}
