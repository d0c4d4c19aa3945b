package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-intake/pkg/dependency"
	"github.com/goliatone/go-intake/pkg/model"
)

// ErrProfileNotFound is returned when a profile name is not defined.
var ErrProfileNotFound = errors.New("config: profile not found")

// Profile is one deployment configuration.
type Profile struct {
	Name         string
	Description  string
	Variant      model.Variant
	Location     *time.Location
	States       []string
	ExtraEdges   []dependency.Edge
	Theme        string
	ThemeVariant string
	ThemeTokens  map[string]string
	Source       string
}

// Store holds the profiles loaded from a filesystem.
type Store struct {
	profiles    map[string]Profile
	defaultName string
}

// LoadFS walks fsys and parses every JSON/YAML profile document. Profile
// names must be unique across files and at most one default may be named.
// When fsys is nil the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{profiles: make(map[string]Profile)}
	if fsys == nil {
		return store, nil
	}

	defaultSource := ""
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isProfileFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		if name := strings.TrimSpace(doc.Default); name != "" {
			if store.defaultName != "" && store.defaultName != name {
				return fmt.Errorf("config: default profile set to %q in %s and %q in %s", store.defaultName, defaultSource, name, path)
			}
			store.defaultName = name
			defaultSource = path
		}

		for rawName, raw := range doc.Profiles {
			name := strings.TrimSpace(rawName)
			if name == "" {
				return fmt.Errorf("config: file %s defines a profile with an empty name", path)
			}
			if existing, exists := store.profiles[name]; exists {
				return fmt.Errorf("config: duplicate profile %q (files %s and %s)", name, existing.Source, path)
			}
			profile, err := normaliseProfile(raw, name, path)
			if err != nil {
				return err
			}
			store.profiles[name] = profile
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if store.defaultName != "" {
		if _, ok := store.profiles[store.defaultName]; !ok {
			return nil, fmt.Errorf("config: default profile %q (file %s): %w", store.defaultName, defaultSource, ErrProfileNotFound)
		}
	}
	return store, nil
}

// Profile returns the named profile. An empty name resolves to the default
// profile.
func (s *Store) Profile(name string) (Profile, error) {
	if s == nil {
		return Profile{}, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultName
	}
	profile, ok := s.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	return profile.clone(), nil
}

// Default returns the name of the default profile, if any.
func (s *Store) Default() string {
	if s == nil {
		return ""
	}
	return s.defaultName
}

// Names lists the profile names alphabetically.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any profiles.
func (s *Store) Empty() bool {
	return s == nil || len(s.profiles) == 0
}

type documentFile struct {
	Default  string                 `json:"default" yaml:"default"`
	Profiles map[string]profileFile `json:"profiles" yaml:"profiles"`
}

type profileFile struct {
	Description  string            `json:"description" yaml:"description" validate:"max=200"`
	Variant      string            `json:"variant" yaml:"variant"`
	Timezone     string            `json:"timezone" yaml:"timezone" validate:"omitempty,timezone"`
	States       []string          `json:"states" yaml:"states" validate:"dive,len=2,alpha"`
	ExtraEdges   []edgeFile        `json:"extraEdges" yaml:"extraEdges" validate:"dive"`
	Theme        string            `json:"theme" yaml:"theme" validate:"omitempty,max=64"`
	ThemeVariant string            `json:"themeVariant" yaml:"themeVariant" validate:"omitempty,max=64"`
	ThemeTokens  map[string]string `json:"themeTokens" yaml:"themeTokens" validate:"dive,keys,required,token_name,endkeys,required"`
}

type edgeFile struct {
	Source        string `json:"source" yaml:"source" validate:"required"`
	Dependent     string `json:"dependent" yaml:"dependent" validate:"required"`
	WhenPopulated bool   `json:"whenPopulated" yaml:"whenPopulated"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("config: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
}

func normaliseProfile(raw profileFile, name, source string) (Profile, error) {
	if err := validateProfile(raw); err != nil {
		return Profile{}, fmt.Errorf("config: profile %q (file %s): %w", name, source, err)
	}

	variant, err := model.ParseVariant(raw.Variant)
	if err != nil {
		return Profile{}, fmt.Errorf("config: profile %q (file %s): %w", name, source, err)
	}

	loc := time.Local
	if tz := strings.TrimSpace(raw.Timezone); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return Profile{}, fmt.Errorf("config: profile %q (file %s) timezone: %w", name, source, err)
		}
	}

	profile := Profile{
		Name:         name,
		Description:  strings.TrimSpace(raw.Description),
		Variant:      variant,
		Location:     loc,
		Theme:        strings.TrimSpace(raw.Theme),
		ThemeVariant: strings.TrimSpace(raw.ThemeVariant),
		Source:       source,
	}
	for key, value := range raw.ThemeTokens {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if profile.ThemeTokens == nil {
			profile.ThemeTokens = make(map[string]string, len(raw.ThemeTokens))
		}
		profile.ThemeTokens[key] = strings.TrimSpace(value)
	}

	for idx, state := range raw.States {
		code := strings.ToUpper(strings.TrimSpace(state))
		if code == "" {
			return Profile{}, fmt.Errorf("config: profile %q (file %s) state %d is empty", name, source, idx)
		}
		profile.States = append(profile.States, code)
	}

	for idx, edge := range raw.ExtraEdges {
		src, err := model.ParseFieldID(edge.Source)
		if err != nil {
			return Profile{}, fmt.Errorf("config: profile %q (file %s) edge %d: %w", name, source, idx, err)
		}
		dep, err := model.ParseFieldID(edge.Dependent)
		if err != nil {
			return Profile{}, fmt.Errorf("config: profile %q (file %s) edge %d: %w", name, source, idx, err)
		}
		declared := dependency.Edge{Source: src, Dependent: dep}
		if edge.WhenPopulated {
			declared.When = dependency.WhenPopulated(dep)
		}
		profile.ExtraEdges = append(profile.ExtraEdges, declared)
	}

	return profile, nil
}

func (p Profile) clone() Profile {
	out := p
	out.States = append([]string(nil), p.States...)
	out.ExtraEdges = append([]dependency.Edge(nil), p.ExtraEdges...)
	if p.ThemeTokens != nil {
		out.ThemeTokens = make(map[string]string, len(p.ThemeTokens))
		for key, value := range p.ThemeTokens {
			out.ThemeTokens[key] = value
		}
	}
	return out
}

func isProfileFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
