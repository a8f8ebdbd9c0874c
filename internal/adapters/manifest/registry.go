// Package manifest implements the installed-component registry and locale
// provider on top of a YAML manifest describing the device's packages.
package manifest

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"

	"github.com/example/homeseed/internal/core/layout"
	"github.com/example/homeseed/internal/ports/secondary"
)

// Manifest is the on-disk description of installed packages.
//
//	global_search_activity: com.example.search/.SearchActivity
//	packages:
//	  - name: com.example.mail
//	    label: Mail
//	    former_names: [com.example.oldmail]
//	    activities:
//	      - class: .Inbox
//	        label: Inbox
//	    widget_providers:
//	      - class: .UnreadWidget
type Manifest struct {
	GlobalSearchActivity string        `yaml:"global_search_activity"`
	Packages             []PackageSpec `yaml:"packages"`
}

// PackageSpec describes one installed package.
type PackageSpec struct {
	Name            string          `yaml:"name"`
	Label           string          `yaml:"label"`
	FormerNames     []string        `yaml:"former_names"`
	Activities      []ComponentSpec `yaml:"activities"`
	WidgetProviders []ComponentSpec `yaml:"widget_providers"`
}

// ComponentSpec describes one activity or widget provider. Class may use the
// ".Short" form relative to the package.
type ComponentSpec struct {
	Class string `yaml:"class"`
	Label string `yaml:"label"`
}

// Registry answers component queries from a loaded Manifest.
type Registry struct {
	search    layout.Component
	hasSearch bool

	packages  map[string]*PackageSpec
	canonical map[string]string // former name -> current name
	labels    map[layout.Component]string
	installed map[secondary.ComponentKind]map[layout.Component]bool
	providers map[string][]layout.Component // package -> widget providers in manifest order
}

// Load reads and parses the manifest at path.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read component manifest: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse builds a Registry from manifest YAML.
func Parse(data []byte) (*Registry, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse component manifest: %w", err)
	}
	return New(m)
}

// New builds a Registry from an in-memory manifest.
func New(m Manifest) (*Registry, error) {
	r := &Registry{
		packages:  make(map[string]*PackageSpec),
		canonical: make(map[string]string),
		labels:    make(map[layout.Component]string),
		installed: map[secondary.ComponentKind]map[layout.Component]bool{
			secondary.ActivityComponent:       {},
			secondary.WidgetProviderComponent: {},
		},
		providers: make(map[string][]layout.Component),
	}

	for i := range m.Packages {
		p := &m.Packages[i]
		if p.Name == "" {
			return nil, fmt.Errorf("package %d has no name", i+1)
		}
		if _, dup := r.packages[p.Name]; dup {
			return nil, fmt.Errorf("package %s listed twice", p.Name)
		}
		r.packages[p.Name] = p
		for _, former := range p.FormerNames {
			r.canonical[former] = p.Name
		}
		for _, a := range p.Activities {
			c := layout.NewComponent(p.Name, a.Class)
			r.installed[secondary.ActivityComponent][c] = true
			if a.Label != "" {
				r.labels[c] = a.Label
			}
		}
		for _, w := range p.WidgetProviders {
			c := layout.NewComponent(p.Name, w.Class)
			r.installed[secondary.WidgetProviderComponent][c] = true
			r.providers[p.Name] = append(r.providers[p.Name], c)
			if w.Label != "" {
				r.labels[c] = w.Label
			}
		}
	}

	if m.GlobalSearchActivity != "" {
		c, err := layout.ParseComponent(m.GlobalSearchActivity)
		if err != nil {
			return nil, fmt.Errorf("global_search_activity: %w", err)
		}
		r.search, r.hasSearch = c, true
	}

	return r, nil
}

// Lookup reports whether c is installed as a component of the given kind.
func (r *Registry) Lookup(ctx context.Context, kind secondary.ComponentKind, c layout.Component) error {
	if r.installed[kind][c] {
		return nil
	}
	err := fmt.Errorf("%s %s: %w", kind, c.FlattenToShortString(), secondary.ErrComponentNotFound)
	if hint := r.suggest(kind, c); hint != "" {
		err = fmt.Errorf("%w (did you mean %s?)", err, hint)
	}
	return err
}

// CanonicalPackageName maps a former package name to the current one.
func (r *Registry) CanonicalPackageName(ctx context.Context, pkg string) string {
	if current, ok := r.canonical[pkg]; ok {
		return current
	}
	return pkg
}

// GlobalSearchActivity returns the configured search activity.
func (r *Registry) GlobalSearchActivity(ctx context.Context) (layout.Component, bool) {
	return r.search, r.hasSearch
}

// WidgetProviderInPackage returns the first widget provider declared by pkg.
func (r *Registry) WidgetProviderInPackage(ctx context.Context, pkg string) (layout.Component, bool) {
	providers := r.providers[pkg]
	if len(providers) == 0 {
		return layout.Component{}, false
	}
	return providers[0], true
}

// Packages returns the installed package names, sorted.
func (r *Registry) Packages() []string {
	names := make([]string, 0, len(r.packages))
	for name := range r.packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// suggest returns the closest installed component of kind, or "" when none
// is near enough to be a plausible typo.
func (r *Registry) suggest(kind secondary.ComponentKind, c layout.Component) string {
	want := c.FlattenToShortString()
	best, bestDist := "", -1
	for candidate := range r.installed[kind] {
		s := candidate.FlattenToShortString()
		d := levenshtein.ComputeDistance(want, s)
		if bestDist < 0 || d < bestDist || (d == bestDist && s < best) {
			best, bestDist = s, d
		}
	}
	if bestDist < 0 || bestDist > maxSuggestDistance(want) {
		return ""
	}
	return best
}

func maxSuggestDistance(s string) int {
	if n := len(s) / 4; n > 2 {
		return n
	}
	return 2
}

// Ensure Registry implements the interface
var _ secondary.ComponentRegistry = (*Registry)(nil)
