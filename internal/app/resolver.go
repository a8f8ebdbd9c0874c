package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/homeseed/internal/core/layout"
	"github.com/example/homeseed/internal/ports/secondary"
)

// Resolver confirms that a (package, class) reference names an installed
// component. Every call queries the registry; nothing is cached.
type Resolver struct {
	registry secondary.ComponentRegistry
}

// NewResolver creates a Resolver over registry.
func NewResolver(registry secondary.ComponentRegistry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve looks up pkg/class directly and, failing that, under the
// registry's canonical name for pkg. The returned component carries the
// package name that was found installed.
func (r *Resolver) Resolve(ctx context.Context, kind secondary.ComponentKind, pkg, class string) (layout.Component, error) {
	direct := layout.NewComponent(pkg, class)
	err := r.registry.Lookup(ctx, kind, direct)
	if err == nil {
		return direct, nil
	}
	if !errors.Is(err, secondary.ErrComponentNotFound) {
		return layout.Component{}, fmt.Errorf("failed to look up %s: %w", direct.FlattenToShortString(), err)
	}

	canonical := r.registry.CanonicalPackageName(ctx, pkg)
	if canonical == "" || canonical == pkg {
		return layout.Component{}, err
	}

	// class stays as written; a ".Short" class expands against the new package
	renamed := layout.NewComponent(canonical, class)
	if retryErr := r.registry.Lookup(ctx, kind, renamed); retryErr != nil {
		return layout.Component{}, fmt.Errorf("%w (also tried canonical package %s)", err, canonical)
	}
	return renamed, nil
}
