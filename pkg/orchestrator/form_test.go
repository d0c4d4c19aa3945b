package orchestrator_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/orchestrator"
	"github.com/goliatone/go-intake/pkg/testsupport"
)

type recorder struct {
	fields  []model.FieldID
	results map[model.FieldID]model.Result
	summary []int
	proceed []model.Snapshot
	focused []model.FieldID
}

func newRecorder() *recorder {
	return &recorder{results: make(map[model.FieldID]model.Result)}
}

func (r *recorder) FieldValidated(id model.FieldID, res model.Result) {
	r.fields = append(r.fields, id)
	r.results[id] = res
}
func (r *recorder) Summary(_ bool, errorCount int) { r.summary = append(r.summary, errorCount) }
func (r *recorder) Proceed(values model.Snapshot)  { r.proceed = append(r.proceed, values) }
func (r *recorder) Focus(id model.FieldID)         { r.focused = append(r.focused, id) }

func newForm(t *testing.T, variant model.Variant, opts ...orchestrator.Option) (*orchestrator.Form, *recorder) {
	t.Helper()

	rec := newRecorder()
	opts = append([]orchestrator.Option{
		orchestrator.WithVariant(variant),
		orchestrator.WithClock(testsupport.Clock()),
		orchestrator.WithListener(rec),
	}, opts...)
	form, err := orchestrator.New(opts...)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return form, rec
}

func TestNew_RejectsUnknownVariant(t *testing.T) {
	if _, err := orchestrator.New(orchestrator.WithVariant("v7")); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
}

func TestValidateAll_ValidSnapshot(t *testing.T) {
	for _, variant := range []model.Variant{model.VariantV1, model.VariantV2} {
		form, rec := newForm(t, variant)
		overall := form.ValidateAll(testsupport.ValidSnapshot(variant))
		if !overall.Valid || overall.ErrorCount != 0 || overall.FirstInvalid != "" {
			t.Fatalf("%s: expected valid form, got %+v", variant, overall.Messages())
		}
		if diff := cmp.Diff([]int{0}, rec.summary); diff != "" {
			t.Fatalf("summary mismatch (-want +got):\n%s", diff)
		}
		if len(rec.fields) != len(form.Registry().Fields()) {
			t.Fatalf("expected every registered field reported, got %d", len(rec.fields))
		}
	}
}

func TestValidateAll_NoShortCircuit(t *testing.T) {
	form, _ := newForm(t, model.VariantV1)
	snapshot := testsupport.ValidSnapshot(model.VariantV1)
	delete(snapshot, model.FieldFirstName)
	snapshot[model.FieldPhone] = model.Text("2175550142")
	snapshot[model.FieldReenterPassword] = model.Text("different")

	overall := form.ValidateAll(snapshot)
	if overall.Valid || overall.ErrorCount != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", overall.ErrorCount, overall.Messages())
	}
	if overall.FirstInvalid != model.FieldFirstName {
		t.Fatalf("expected first-name focused, got %s", overall.FirstInvalid)
	}
	if overall.ErrorCount != form.Tracker().Count() {
		t.Fatalf("overall count %d differs from tracker %d", overall.ErrorCount, form.Tracker().Count())
	}

	want := map[string][]string{
		"first-name":        {"First name is required"},
		"phone-number":      {"Phone must be in format: 000-000-0000"},
		"re-enter-password": {"Passwords do not match"},
	}
	if diff := cmp.Diff(want, overall.FieldErrors()); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	wantMessages := []string{"First name is required", "Phone must be in format: 000-000-0000", "Passwords do not match"}
	if diff := cmp.Diff(wantMessages, overall.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldChanged_PasswordRechecksPopulatedReenter(t *testing.T) {
	form, rec := newForm(t, model.VariantV1)
	snapshot := testsupport.ValidSnapshot(model.VariantV1)

	form.FieldChanged(model.FieldReenterPassword, snapshot)
	if form.Tracker().Count() != 0 {
		t.Fatalf("expected matching passwords valid")
	}

	snapshot = snapshot.With(model.FieldPassword, model.Text("N3w!Secret"))
	outcomes := form.FieldChanged(model.FieldPassword, snapshot)

	var got []model.FieldID
	for _, outcome := range outcomes {
		got = append(got, outcome.Field)
	}
	want := []model.FieldID{model.FieldPassword, model.FieldReenterPassword}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("outcome order mismatch (-want +got):\n%s", diff)
	}
	if rec.results[model.FieldReenterPassword].Message != "Passwords do not match" {
		t.Fatalf("expected automatic mismatch, got %+v", rec.results[model.FieldReenterPassword])
	}
	if form.Tracker().Count() != 1 {
		t.Fatalf("expected one error, got %d", form.Tracker().Count())
	}
}

func TestFieldChanged_UntouchedReenterNotChecked(t *testing.T) {
	form, _ := newForm(t, model.VariantV1)
	snapshot := testsupport.ValidSnapshot(model.VariantV1)
	delete(snapshot, model.FieldReenterPassword)

	outcomes := form.FieldChanged(model.FieldPassword, snapshot)
	if len(outcomes) != 1 {
		t.Fatalf("expected only the password validated, got %+v", outcomes)
	}
	if form.Tracker().Tracked(model.FieldReenterPassword) {
		t.Fatalf("re-enter field should remain untracked")
	}
}

func TestFieldChanged_NameLeavesUntouchedPasswordAlone(t *testing.T) {
	form, rec := newForm(t, model.VariantV1)
	snapshot := model.Snapshot{model.FieldFirstName: model.Text("Ada")}

	outcomes := form.FieldChanged(model.FieldFirstName, snapshot)
	if len(outcomes) != 1 || outcomes[0].Field != model.FieldFirstName {
		t.Fatalf("expected only the first name validated, got %+v", outcomes)
	}
	if form.Tracker().Tracked(model.FieldPassword) {
		t.Fatalf("password should remain untracked until it has content")
	}
	if _, ok := rec.results[model.FieldPassword]; ok {
		t.Fatalf("listener should not hear about the untouched password")
	}
}

func TestFieldChanged_UserIDRechecksPassword(t *testing.T) {
	form, _ := newForm(t, model.VariantV2)
	snapshot := testsupport.ValidSnapshot(model.VariantV2)
	snapshot[model.FieldPassword] = model.Text("Passw0rd!")

	form.FieldChanged(model.FieldPassword, snapshot)
	if form.Tracker().Count() != 0 {
		t.Fatalf("password should be valid before the user id changes")
	}

	snapshot = snapshot.With(model.FieldUserID, model.Text("PASSW0RD"))
	form.FieldChanged(model.FieldUserID, snapshot)

	msg, ok := form.Tracker().Message(model.FieldPassword)
	if !ok || msg != "Password cannot contain the user ID" {
		t.Fatalf("expected password invalidated by user id change, got %q", msg)
	}
}

func TestAttemptSubmit_ProceedsWithNormalizedValues(t *testing.T) {
	form, rec := newForm(t, model.VariantV2)
	snapshot := testsupport.ValidSnapshot(model.VariantV2)
	snapshot[model.FieldEmail] = model.Text("ADA@Example.COM")
	snapshot[model.FieldSocialSecurity] = model.Text("123456789")
	snapshot[model.FieldState] = model.Text("il")

	submission := form.AttemptSubmit(snapshot)
	if !submission.Eligible {
		t.Fatalf("expected eligible submission, got %v", submission.Messages())
	}
	if len(rec.proceed) != 1 || len(rec.focused) != 0 {
		t.Fatalf("expected a single proceed signal, got proceed=%d focus=%v", len(rec.proceed), rec.focused)
	}

	values := rec.proceed[0]
	checks := map[model.FieldID]string{
		model.FieldEmail:          "ada@example.com",
		model.FieldSocialSecurity: "123-45-6789",
		model.FieldState:          "IL",
		model.FieldUserID:         "adaneil",
	}
	for id, want := range checks {
		if got := values.Text(id); got != want {
			t.Fatalf("%s: expected %q, got %q", id, want, got)
		}
	}
	if snapshot.Text(model.FieldEmail) != "ADA@Example.COM" {
		t.Fatalf("caller snapshot must not be modified")
	}
}

func TestAttemptSubmit_BlockedFocusesFirstInvalid(t *testing.T) {
	form, rec := newForm(t, model.VariantV1)
	snapshot := testsupport.ValidSnapshot(model.VariantV1)
	snapshot[model.FieldZipCode] = model.Text("1234")
	snapshot[model.FieldUserID] = model.Text("5bob")

	submission := form.AttemptSubmit(snapshot)
	if submission.Eligible || submission.Values != nil {
		t.Fatalf("expected blocked submission")
	}
	if submission.ErrorCount != 2 {
		t.Fatalf("expected 2 errors, got %d (%v)", submission.ErrorCount, submission.Messages())
	}
	if diff := cmp.Diff([]model.FieldID{model.FieldZipCode}, rec.focused); diff != "" {
		t.Fatalf("focus mismatch (-want +got):\n%s", diff)
	}
	if len(rec.proceed) != 0 {
		t.Fatalf("proceed must not fire for a blocked submission")
	}
}

func TestReset_ClearsTracker(t *testing.T) {
	form, _ := newForm(t, model.VariantV1)
	form.ValidateAll(model.Snapshot{})
	if form.Tracker().Count() == 0 {
		t.Fatalf("expected errors for an empty form")
	}

	form.Reset()
	if form.Tracker().Count() != 0 || len(form.Tracker().Snapshot()) != 0 {
		t.Fatalf("expected empty tracker after reset")
	}
}

func TestForms_AreIndependent(t *testing.T) {
	first, _ := newForm(t, model.VariantV1)
	second, _ := newForm(t, model.VariantV1)

	first.ValidateAll(model.Snapshot{})
	if second.Tracker().Count() != 0 {
		t.Fatalf("forms must not share error state")
	}
}

func TestLogging_NeverIncludesSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	form, _ := newForm(t, model.VariantV2, orchestrator.WithLogger(logger))

	snapshot := testsupport.ValidSnapshot(model.VariantV2)
	form.AttemptSubmit(snapshot)

	out := buf.String()
	if !strings.Contains(out, "form validated") {
		t.Fatalf("expected summary log, got %q", out)
	}
	for _, secret := range []string{"Str0ng!Pass", "123-45-6789"} {
		if strings.Contains(out, secret) {
			t.Fatalf("log output leaked %q", secret)
		}
	}
}

func TestHooksAndListenersFanOut(t *testing.T) {
	var summaries []int
	hooks := orchestrator.Hooks{OnSummary: func(_ bool, n int) { summaries = append(summaries, n) }}
	rec := newRecorder()

	form := orchestrator.MustNew(
		orchestrator.WithClock(testsupport.Clock()),
		orchestrator.WithListener(orchestrator.Listeners{hooks, rec}),
	)
	form.ValidateAll(testsupport.ValidSnapshot(model.VariantV1))

	if diff := cmp.Diff([]int{0}, summaries); diff != "" {
		t.Fatalf("hook summary mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0}, rec.summary); diff != "" {
		t.Fatalf("recorder summary mismatch (-want +got):\n%s", diff)
	}
}
