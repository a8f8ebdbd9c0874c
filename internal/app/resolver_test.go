package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/homeseed/internal/core/layout"
	"github.com/example/homeseed/internal/ports/secondary"
)

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(r *mockRegistry)
		pkg, class  string
		want        layout.Component
		wantErr     bool
		wantLookups int
	}{
		{
			name: "direct hit",
			setup: func(r *mockRegistry) {
				r.install(secondary.ActivityComponent, "pkg.a", "pkg.a.Main")
			},
			pkg: "pkg.a", class: "pkg.a.Main",
			want:        layout.Component{Package: "pkg.a", Class: "pkg.a.Main"},
			wantLookups: 1,
		},
		{
			name: "canonical package fallback",
			setup: func(r *mockRegistry) {
				r.install(secondary.ActivityComponent, "pkg.b", "pkg.a.Main")
				r.canonical["pkg.a"] = "pkg.b"
			},
			pkg: "pkg.a", class: "pkg.a.Main",
			want:        layout.Component{Package: "pkg.b", Class: "pkg.a.Main"},
			wantLookups: 2,
		},
		{
			name: "short class expands against canonical package",
			setup: func(r *mockRegistry) {
				r.install(secondary.ActivityComponent, "pkg.b", ".Main")
				r.canonical["pkg.a"] = "pkg.b"
			},
			pkg: "pkg.a", class: ".Main",
			want:        layout.Component{Package: "pkg.b", Class: "pkg.b.Main"},
			wantLookups: 2,
		},
		{
			name: "canonical name also missing",
			setup: func(r *mockRegistry) {
				r.canonical["pkg.a"] = "pkg.b"
			},
			pkg: "pkg.a", class: "pkg.a.Main",
			wantErr:     true,
			wantLookups: 2,
		},
		{
			name:    "unknown package is not retried",
			setup:   func(r *mockRegistry) {},
			pkg:     "pkg.z", class: ".Main",
			wantErr: true,
			// canonical name equals the original
			wantLookups: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := newMockRegistry()
			tt.setup(registry)
			resolver := NewResolver(registry)

			got, err := resolver.Resolve(context.Background(), secondary.ActivityComponent, tt.pkg, tt.class)
			assert.Len(t, registry.lookups, tt.wantLookups)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, secondary.ErrComponentNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_KindIsRespected(t *testing.T) {
	registry := newMockRegistry()
	registry.install(secondary.ActivityComponent, "pkg.a", ".Main")
	resolver := NewResolver(registry)

	_, err := resolver.Resolve(context.Background(), secondary.WidgetProviderComponent, "pkg.a", ".Main")
	assert.ErrorIs(t, err, secondary.ErrComponentNotFound)
}

func TestResolver_RegistryFailureIsNotRetried(t *testing.T) {
	registry := newMockRegistry()
	registry.lookupErr = errBoom
	registry.canonical["pkg.a"] = "pkg.b"
	resolver := NewResolver(registry)

	_, err := resolver.Resolve(context.Background(), secondary.ActivityComponent, "pkg.a", ".Main")
	assert.ErrorIs(t, err, errBoom)
	assert.Len(t, registry.lookups, 1)
}

func TestResolver_NoCaching(t *testing.T) {
	registry := newMockRegistry()
	resolver := NewResolver(registry)
	ctx := context.Background()

	_, err := resolver.Resolve(ctx, secondary.ActivityComponent, "pkg.a", ".Main")
	require.Error(t, err)

	registry.install(secondary.ActivityComponent, "pkg.a", ".Main")
	got, err := resolver.Resolve(ctx, secondary.ActivityComponent, "pkg.a", ".Main")
	require.NoError(t, err)
	assert.Equal(t, "pkg.a.Main", got.Class)
}
