package config

import (
	"embed"
	"fmt"
	"io/fs"
	"time"
	_ "time/tzdata"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-intake/pkg/dependency"
	"github.com/goliatone/go-intake/pkg/orchestrator"
	"github.com/goliatone/go-intake/pkg/rules"
)

//go:embed profiles/*.yaml
var embeddedProfiles embed.FS

// EmbeddedFS returns the bundled deployment profiles.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedProfiles, "profiles")
	if err != nil {
		panic(err)
	}
	return sub
}

// Defaults loads the bundled profiles.
func Defaults() (*Store, error) {
	return LoadFS(EmbeddedFS())
}

// Clock wraps now so dates are evaluated in the profile's time zone. A nil
// now uses time.Now.
func (p Profile) Clock(now func() time.Time) func() time.Time {
	if now == nil {
		now = time.Now
	}
	loc := p.Location
	if loc == nil {
		return now
	}
	return func() time.Time { return now().In(loc) }
}

// Resolver builds the variant's default edges plus the profile's extra edges.
func (p Profile) Resolver() (*dependency.Resolver, error) {
	edges := append(dependency.DefaultEdges(p.Variant), p.ExtraEdges...)
	resolver, err := dependency.NewResolver(edges...)
	if err != nil {
		return nil, fmt.Errorf("config: profile %q: %w", p.Name, err)
	}
	return resolver, nil
}

// Registry builds the rule set for the profile.
func (p Profile) Registry(now func() time.Time) (*rules.Registry, error) {
	registry, err := rules.NewRuleSet(p.Variant,
		rules.WithClock(p.Clock(now)),
		rules.WithStates(p.States),
	)
	if err != nil {
		return nil, fmt.Errorf("config: profile %q: %w", p.Name, err)
	}
	return registry, nil
}

// NewForm assembles an orchestrator form for the profile. Options are applied
// after the profile's components so callers can still override them.
func (p Profile) NewForm(now func() time.Time, opts ...orchestrator.Option) (*orchestrator.Form, error) {
	registry, err := p.Registry(now)
	if err != nil {
		return nil, err
	}
	resolver, err := p.Resolver()
	if err != nil {
		return nil, err
	}
	base := []orchestrator.Option{
		orchestrator.WithVariant(p.Variant),
		orchestrator.WithRegistry(registry),
		orchestrator.WithResolver(resolver),
	}
	return orchestrator.New(append(base, opts...)...)
}

// RendererConfig converts the profile's theme selection into the renderer
// configuration the review HTML renderer consumes. Tokens become CSS custom
// properties named after the token key. Profiles without a theme return nil.
func (p Profile) RendererConfig() *theme.RendererConfig {
	if p.Theme == "" && len(p.ThemeTokens) == 0 {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:   p.Theme,
		Variant: p.ThemeVariant,
		Tokens:  make(map[string]string, len(p.ThemeTokens)),
		CSSVars: make(map[string]string, len(p.ThemeTokens)),
	}
	for key, value := range p.ThemeTokens {
		cfg.Tokens[key] = value
		cfg.CSSVars["--intake-"+key] = value
	}
	return cfg
}
