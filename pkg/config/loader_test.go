package config_test

import (
	"errors"
	"os"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-intake/pkg/config"
	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/testsupport"
)

func TestDefaults(t *testing.T) {
	store, err := config.Defaults()
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if diff := cmp.Diff([]string{"enrollment", "standard"}, store.Names()); diff != "" {
		t.Fatalf("profile names mismatch (-want +got):\n%s", diff)
	}

	profile, err := store.Profile("")
	if err != nil {
		t.Fatalf("default profile: %v", err)
	}
	if profile.Name != "standard" || profile.Variant != model.VariantV1 {
		t.Fatalf("unexpected default profile %+v", profile)
	}

	enrollment, err := store.Profile("enrollment")
	if err != nil {
		t.Fatalf("enrollment profile: %v", err)
	}
	if enrollment.Variant != model.VariantV2 || enrollment.Location.String() != "America/New_York" {
		t.Fatalf("unexpected enrollment profile %+v", enrollment)
	}
}

func TestLoadFS_MixedFormats(t *testing.T) {
	store, err := config.LoadFS(os.DirFS("testdata/clinic"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if store.Default() != "west" {
		t.Fatalf("expected default west, got %q", store.Default())
	}

	west, err := store.Profile("west")
	if err != nil {
		t.Fatalf("west: %v", err)
	}
	if diff := cmp.Diff([]string{"CA", "OR", "WA", "NV"}, west.States); diff != "" {
		t.Fatalf("states mismatch (-want +got):\n%s", diff)
	}
	if len(west.ExtraEdges) != 1 || west.ExtraEdges[0].Source != model.FieldZipCode || west.ExtraEdges[0].Dependent != model.FieldState {
		t.Fatalf("unexpected extra edges %+v", west.ExtraEdges)
	}

	east, err := store.Profile("east")
	if err != nil {
		t.Fatalf("east: %v", err)
	}
	if east.Variant != model.VariantV1 || east.Location != time.Local {
		t.Fatalf("unexpected east profile %+v", east)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	if _, err := config.LoadFS(os.DirFS("testdata/dup")); err == nil || !strings.Contains(err.Error(), "duplicate profile") {
		t.Fatalf("expected duplicate profile error, got %v", err)
	}
	if _, err := config.LoadFS(os.DirFS("testdata/badvariant")); err == nil || !strings.Contains(err.Error(), "unknown rule set variant") {
		t.Fatalf("expected unknown variant error, got %v", err)
	}

	missingDefault := fstest.MapFS{
		"p.yaml": {Data: []byte("default: ghost\nprofiles:\n  real:\n    variant: v1\n")},
	}
	if _, err := config.LoadFS(missingDefault); !errors.Is(err, config.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}

	badEdge := fstest.MapFS{
		"p.yaml": {Data: []byte("profiles:\n  p:\n    extraEdges:\n      - source: nickname\n        dependent: state\n")},
	}
	if _, err := config.LoadFS(badEdge); err == nil || !strings.Contains(err.Error(), "unknown field") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestStore_ProfileNotFound(t *testing.T) {
	store, err := config.LoadFS(nil)
	if err != nil {
		t.Fatalf("load nil fs: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
	if _, err := store.Profile("anything"); !errors.Is(err, config.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProfile_NewFormAppliesProfile(t *testing.T) {
	store, err := config.LoadFS(os.DirFS("testdata/clinic"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	west, err := store.Profile("west")
	if err != nil {
		t.Fatalf("west: %v", err)
	}

	form, err := west.NewForm(testsupport.Clock())
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	if form.Variant() != model.VariantV2 {
		t.Fatalf("expected v2 form, got %s", form.Variant())
	}

	snapshot := testsupport.ValidSnapshot(model.VariantV2)
	snapshot[model.FieldState] = model.Text("IL")

	outcomes := form.FieldChanged(model.FieldZipCode, snapshot)
	if len(outcomes) != 2 || outcomes[1].Field != model.FieldState {
		t.Fatalf("expected zip change to re-check state, got %+v", outcomes)
	}
	if outcomes[1].Result.Valid {
		t.Fatalf("IL should be rejected by the west state list")
	}
}

func TestProfile_ExtraEdgeCycleRejected(t *testing.T) {
	fsys := fstest.MapFS{
		"p.yaml": {Data: []byte("profiles:\n  loop:\n    variant: v1\n    extraEdges:\n      - source: password\n        dependent: user-id\n")},
	}
	store, err := config.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	profile, err := store.Profile("loop")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if _, err := profile.NewForm(nil); err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestProfile_ClockUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	profile := config.Profile{Location: loc}
	// 20:00 UTC on Oct 20 is already Oct 21 in Tokyo.
	now := profile.Clock(testsupport.FixedClock(time.Date(2025, time.October, 20, 20, 0, 0, 0, time.UTC)))
	if got := now().Day(); got != 21 {
		t.Fatalf("expected local day 21, got %d", got)
	}
}

func TestProfile_RendererConfig(t *testing.T) {
	store, err := config.Defaults()
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	profile, err := store.Profile("standard")
	if err != nil {
		t.Fatalf("standard: %v", err)
	}

	cfg := profile.RendererConfig()
	if cfg == nil {
		t.Fatalf("expected renderer config for themed profile")
	}
	if cfg.Theme != "default" || cfg.Variant != "light" {
		t.Fatalf("unexpected theme selection %q/%q", cfg.Theme, cfg.Variant)
	}
	want := map[string]string{
		"--intake-accent": "#1d4ed8",
		"--intake-error":  "#b91c1c",
	}
	if diff := cmp.Diff(want, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}

	if (config.Profile{Name: "plain"}).RendererConfig() != nil {
		t.Fatalf("expected nil renderer config without a theme")
	}
}

func TestLoadFS_StructValidation(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want string
	}{
		"timezone": {
			doc:  "profiles:\n  p:\n    timezone: Mars/Olympus\n",
			want: "unknown time zone",
		},
		"state length": {
			doc:  "profiles:\n  p:\n    states: [ILL]\n",
			want: "States[0]",
		},
		"edge dependent": {
			doc:  "profiles:\n  p:\n    extraEdges:\n      - source: zip-code\n",
			want: "ExtraEdges[0].Dependent: is required",
		},
		"theme token name": {
			doc:  "profiles:\n  p:\n    themeTokens:\n      \"a}</style><script>\": red\n",
			want: "may only contain letters, digits",
		},
	}
	for name, tc := range cases {
		fsys := fstest.MapFS{"p.yaml": {Data: []byte(tc.doc)}}
		_, err := config.LoadFS(fsys)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error containing %q, got %v", name, tc.want, err)
		}
	}
}
