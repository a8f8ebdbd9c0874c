package secondary

import (
	"context"
	"errors"

	"github.com/example/homeseed/internal/core/layout"
)

// ErrComponentNotFound is returned by registry lookups for components that
// are not installed.
var ErrComponentNotFound = errors.New("component not installed")

// ErrNoSearchProvider is returned when no global search widget is available.
var ErrNoSearchProvider = errors.New("no global search provider configured")

// ComponentKind selects which class of installed components a lookup checks.
type ComponentKind int

const (
	// ActivityComponent is a launchable activity (shortcuts).
	ActivityComponent ComponentKind = iota + 1
	// WidgetProviderComponent is an app-widget provider (widgets).
	WidgetProviderComponent
)

func (k ComponentKind) String() string {
	switch k {
	case ActivityComponent:
		return "activity"
	case WidgetProviderComponent:
		return "widget provider"
	}
	return "component"
}

// ComponentRegistry defines the secondary port for the installed-component
// registry. Every call is a query against current state; results are not cached.
type ComponentRegistry interface {
	// Lookup returns nil when c is installed as a component of the given kind,
	// or an error wrapping ErrComponentNotFound.
	Lookup(ctx context.Context, kind ComponentKind, c layout.Component) error

	// CanonicalPackageName maps a possibly renamed package to its current
	// name. Unknown packages map to themselves.
	CanonicalPackageName(ctx context.Context, pkg string) string

	// GlobalSearchActivity returns the platform's configured search activity.
	GlobalSearchActivity(ctx context.Context) (layout.Component, bool)

	// WidgetProviderInPackage returns an installed widget provider from pkg.
	// When the package has several, an arbitrary one is returned.
	WidgetProviderInPackage(ctx context.Context, pkg string) (layout.Component, bool)
}

// LocaleProvider supplies the runtime language and display strings.
type LocaleProvider interface {
	// Language returns the current ISO 639 language code, e.g. "fr".
	Language() string

	// Label returns the human-readable label of a resolved component.
	Label(ctx context.Context, c layout.Component) string

	// DefaultFolderTitle returns the title used when a folder names none.
	DefaultFolderTitle() string
}
