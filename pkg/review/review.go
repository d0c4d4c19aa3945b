package review

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/rules"
)

// StatusPass marks an identity row whose fields all validate.
const StatusPass = "pass"

const (
	notProvided = "Not provided"
	notSelected = "Not selected"
	noneChosen  = "None selected"
	noSymptoms  = "None provided"
	maskSuffix  = "(hidden for security)"
)

var painLabels = [...]string{
	"No Pain",
	"Minimal",
	"Mild",
	"Moderate",
	"Moderate",
	"Moderate-Severe",
	"Severe",
	"Very Severe",
	"Extremely Severe",
	"Unbearable",
}

// Row is one line of the review panel. Identity rows carry a Status; the
// requested-info rows leave it empty.
type Row struct {
	Label  string
	Lines  []string
	Status string
}

// Text joins the row lines with ", ".
func (r Row) Text() string {
	return strings.Join(r.Lines, ", ")
}

// Passed reports whether the row validated.
func (r Row) Passed() bool {
	return r.Status == "" || r.Status == StatusPass
}

// Review is the read-only summary shown before submitting.
type Review struct {
	Identity  []Row
	Requested []Row
}

// Valid reports whether every identity row passed.
func (r Review) Valid() bool {
	for _, row := range r.Identity {
		if !row.Passed() {
			return false
		}
	}
	return true
}

// Build assembles the review panel from snapshot. Identity rows are checked
// against registry; a nil registry uses the default rule set.
func Build(snapshot model.Snapshot, registry *rules.Registry) Review {
	if registry == nil {
		registry = rules.MustRuleSet(model.DefaultVariant)
	}
	b := builder{snapshot: snapshot, registry: registry}

	city := cityLine(
		b.display(model.FieldCity),
		b.display(model.FieldState),
		b.display(model.FieldZipCode),
	)

	identity := []Row{
		b.checked("Name",
			[]string{strings.Join(nonEmpty(
				b.display(model.FieldFirstName),
				b.display(model.FieldMiddleInitial),
				b.display(model.FieldLastName),
			), " ")},
			model.FieldFirstName, model.FieldMiddleInitial, model.FieldLastName),
		b.checked("Date of Birth",
			[]string{FormatDate(snapshot.Text(model.FieldDateOfBirth))},
			model.FieldDateOfBirth),
		b.checked("Email",
			[]string{b.display(model.FieldEmail)},
			model.FieldEmail),
		b.checked("Phone",
			[]string{b.display(model.FieldPhone)},
			model.FieldPhone),
		b.checked("Address",
			nonEmpty(b.display(model.FieldAddressLine1), b.display(model.FieldAddressLine2), city),
			model.FieldAddressLine1, model.FieldAddressLine2, model.FieldCity, model.FieldState, model.FieldZipCode),
	}

	requested := []Row{
		{Label: "Medical History", Lines: []string{b.checkboxes(model.FieldMedicalHistory)}},
		{Label: "Gender", Lines: []string{b.radio(model.FieldGender)}},
		{Label: "Currently Sick", Lines: []string{b.radio(model.FieldSick)}},
		{Label: "Has Insurance", Lines: []string{b.radio(model.FieldInsurance)}},
		{Label: "Vaccinated", Lines: []string{b.radio(model.FieldVaccinated)}},
		{Label: "Pain Level", Lines: []string{painLevel(snapshot.Get(model.FieldPainLevel))}},
		{Label: "Symptoms", Lines: []string{orDefault(PlainText(snapshot.Text(model.FieldSymptoms)), noSymptoms)}},
		{Label: "User ID", Lines: []string{b.display(model.FieldUserID)}},
		{Label: "Password", Lines: []string{MaskPassword(snapshot.Text(model.FieldPassword))}},
	}

	return Review{Identity: identity, Requested: requested}
}

// PainLabel describes a pain level from 1 to 10. Out of range levels return
// an empty string.
func PainLabel(level int) string {
	if level < 1 || level > len(painLabels) {
		return ""
	}
	return strconv.Itoa(level) + " (" + painLabels[level-1] + ")"
}

// FormatDate renders a date of birth as MM/DD/YYYY. Blank input reads "Not
// provided"; unparseable input is returned trimmed.
func FormatDate(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return notProvided
	}
	parsed, ok := rules.ParseDate(trimmed, time.UTC)
	if !ok {
		return PlainText(trimmed)
	}
	return parsed.Format("01/02/2006")
}

// MaskPassword replaces every character with an asterisk.
func MaskPassword(password string) string {
	if password == "" {
		return notProvided
	}
	return strings.Repeat("*", utf8.RuneCountInString(password)) + " " + maskSuffix
}

type builder struct {
	snapshot model.Snapshot
	registry *rules.Registry
}

func (b builder) checked(label string, lines []string, fields ...model.FieldID) Row {
	row := Row{Label: label, Lines: lines, Status: StatusPass}
	if len(nonEmpty(lines...)) == 0 {
		row.Lines = []string{notProvided}
	}
	for _, id := range fields {
		res := b.registry.Validate(id, b.snapshot.Get(id), b.snapshot)
		if !res.Valid {
			row.Status = "ERROR: " + res.Message
			break
		}
	}
	return row
}

// display returns the sanitised text of id, preferring the normalised form
// when the rule produces one.
func (b builder) display(id model.FieldID) string {
	value := b.snapshot.Get(id)
	if res := b.registry.Validate(id, value, b.snapshot); res.Valid && res.Normalized != "" {
		return PlainText(res.Normalized)
	}
	return PlainText(value.Trimmed())
}

func (b builder) radio(id model.FieldID) string {
	chosen := selected(b.snapshot.Get(id))
	if len(chosen) == 0 {
		return notSelected
	}
	return PlainText(model.OptionLabel(id, chosen[0]))
}

func (b builder) checkboxes(id model.FieldID) string {
	chosen := selected(b.snapshot.Get(id))
	if len(chosen) == 0 {
		return noneChosen
	}
	labels := make([]string, 0, len(chosen))
	for _, option := range chosen {
		labels = append(labels, PlainText(model.OptionLabel(id, option)))
	}
	return strings.Join(labels, ", ")
}

func painLevel(value model.Value) string {
	level, err := strconv.Atoi(value.Trimmed())
	if err != nil {
		return notProvided
	}
	return orDefault(PainLabel(level), notProvided)
}

func selected(value model.Value) []string {
	var out []string
	for _, option := range value.Selected {
		if trimmed := strings.TrimSpace(option); trimmed != "" {
			out = append(out, strings.ToLower(trimmed))
		}
	}
	if len(out) == 0 {
		if trimmed := value.Trimmed(); trimmed != "" {
			out = append(out, strings.ToLower(trimmed))
		}
	}
	return out
}

func cityLine(city, state, zip string) string {
	tail := strings.Join(nonEmpty(state, zip), " ")
	switch {
	case city == "":
		return tail
	case tail == "":
		return city
	default:
		return city + ", " + tail
	}
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			out = append(out, value)
		}
	}
	return out
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
