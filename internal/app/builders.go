package app

import (
	"context"
	"fmt"

	"github.com/example/homeseed/internal/core/attrs"
	"github.com/example/homeseed/internal/core/folder"
	"github.com/example/homeseed/internal/core/layout"
	"github.com/example/homeseed/internal/ports/secondary"
)

// ClockProvider is the analog clock widget every device ships.
var ClockProvider = layout.Component{
	Package: "com.android.alarmclock",
	Class:   "com.android.alarmclock.AnalogAppWidgetProvider",
}

var (
	shortcutSpan = layout.Span{X: 1, Y: 1}
	folderSpan   = layout.Span{X: 1, Y: 1}
	clockSpan    = layout.Span{X: 2, Y: 2}
	searchSpan   = layout.Span{X: 4, Y: 1}
)

// PendingItem is a placement ready to persist. AfterInsert, when set, must
// run once the record is stored; a failure there fails the item.
type PendingItem struct {
	Record      *layout.PlacementRecord
	AfterInsert func(ctx context.Context) error
	Detail      string
}

// ItemBuilder turns extracted attribute records into placement records.
type ItemBuilder struct {
	resolver *Resolver
	registry secondary.ComponentRegistry
	ids      secondary.IDAllocator
	widgets  secondary.WidgetHost
	locale   secondary.LocaleProvider
}

// NewItemBuilder creates an ItemBuilder with injected dependencies.
func NewItemBuilder(
	registry secondary.ComponentRegistry,
	ids secondary.IDAllocator,
	widgets secondary.WidgetHost,
	locale secondary.LocaleProvider,
) *ItemBuilder {
	return &ItemBuilder{
		resolver: NewResolver(registry),
		registry: registry,
		ids:      ids,
		widgets:  widgets,
		locale:   locale,
	}
}

// Shortcut builds an application shortcut launching packageName/className.
func (b *ItemBuilder) Shortcut(ctx context.Context, rec attrs.Record) (*PendingItem, error) {
	pkg, class, err := requireComponent(rec)
	if err != nil {
		return nil, err
	}
	pos, err := position(rec)
	if err != nil {
		return nil, err
	}

	c, err := b.resolver.Resolve(ctx, secondary.ActivityComponent, pkg, class)
	if err != nil {
		return nil, err
	}

	id, err := b.ids.NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate favorite id: %w", err)
	}

	return &PendingItem{
		Record: &layout.PlacementRecord{
			ID:          id,
			Container:   rec.Container,
			Kind:        layout.KindApplication,
			Position:    pos,
			Span:        shortcutSpan,
			Title:       b.locale.Label(ctx, c),
			Intent:      layout.NewLauncherIntent(c).URI(),
			AppWidgetID: layout.NoAppWidgetID,
		},
		Detail: "shortcut " + c.FlattenToShortString(),
	}, nil
}

// Widget builds an app widget for packageName/className. Spans default to 0.
func (b *ItemBuilder) Widget(ctx context.Context, rec attrs.Record) (*PendingItem, error) {
	pkg, class, err := requireComponent(rec)
	if err != nil {
		return nil, err
	}
	pos, err := position(rec)
	if err != nil {
		return nil, err
	}
	spanX, err := rec.IntOr(attrs.KeySpanX, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAttribute, err)
	}
	spanY, err := rec.IntOr(attrs.KeySpanY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAttribute, err)
	}

	c, err := b.resolver.Resolve(ctx, secondary.WidgetProviderComponent, pkg, class)
	if err != nil {
		return nil, err
	}

	return b.widget(ctx, rec.Container, pos, c, layout.Span{X: spanX, Y: spanY})
}

// Clock builds the analog clock widget. The provider is not resolved.
func (b *ItemBuilder) Clock(ctx context.Context, rec attrs.Record) (*PendingItem, error) {
	pos, err := position(rec)
	if err != nil {
		return nil, err
	}
	return b.widget(ctx, rec.Container, pos, ClockProvider, clockSpan)
}

// Search builds the search bar from the first widget provider shipped in the
// package of the global search activity.
func (b *ItemBuilder) Search(ctx context.Context, rec attrs.Record) (*PendingItem, error) {
	pos, err := position(rec)
	if err != nil {
		return nil, err
	}

	activity, ok := b.registry.GlobalSearchActivity(ctx)
	if !ok {
		return nil, secondary.ErrNoSearchProvider
	}
	provider, ok := b.registry.WidgetProviderInPackage(ctx, activity.Package)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no widget provider", secondary.ErrNoSearchProvider, activity.Package)
	}

	return b.widget(ctx, rec.Container, pos, provider, searchSpan)
}

// Folder builds the folder record itself. Children are built separately.
func (b *ItemBuilder) Folder(ctx context.Context, rec attrs.Record) (*PendingItem, error) {
	pos, err := position(rec)
	if err != nil {
		return nil, err
	}

	localized, hasLocalized := rec.LocalizedTitle(b.locale.Language())
	def, hasDefault := rec.Get(attrs.KeyTitle)
	title := folder.ChooseTitle(folder.TitleCandidates{
		Localized:    localized,
		HasLocalized: hasLocalized,
		Default:      def,
		HasDefault:   hasDefault,
		Fallback:     b.locale.DefaultFolderTitle(),
	})

	id, err := b.ids.NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate folder id: %w", err)
	}

	return &PendingItem{
		Record: &layout.PlacementRecord{
			ID:          id,
			Container:   rec.Container,
			Kind:        layout.KindFolder,
			Position:    pos,
			Span:        folderSpan,
			Title:       title,
			AppWidgetID: layout.NoAppWidgetID,
		},
		Detail: fmt.Sprintf("folder %q", title),
	}, nil
}

// widget allocates an instance for provider and defers binding until the
// record is stored.
func (b *ItemBuilder) widget(ctx context.Context, container layout.Container, pos layout.Position, provider layout.Component, span layout.Span) (*PendingItem, error) {
	id, err := b.ids.NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate favorite id: %w", err)
	}
	instance, err := b.widgets.AllocateInstance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate widget instance: %w", err)
	}

	return &PendingItem{
		Record: &layout.PlacementRecord{
			ID:          id,
			Container:   container,
			Kind:        layout.KindAppWidget,
			Position:    pos,
			Span:        span,
			Intent:      provider.String(),
			AppWidgetID: instance,
			Provider:    provider,
		},
		AfterInsert: func(ctx context.Context) error {
			if err := b.widgets.Bind(ctx, instance, provider); err != nil {
				return fmt.Errorf("failed to bind widget %d: %w", instance, err)
			}
			return nil
		},
		Detail: "widget " + provider.FlattenToShortString(),
	}, nil
}

func requireComponent(rec attrs.Record) (string, string, error) {
	pkg, ok := rec.Get(attrs.KeyPackageName)
	if !ok || pkg == "" {
		return "", "", fmt.Errorf("%w: %s", ErrMissingAttribute, attrs.KeyPackageName)
	}
	class, ok := rec.Get(attrs.KeyClassName)
	if !ok || class == "" {
		return "", "", fmt.Errorf("%w: %s", ErrMissingAttribute, attrs.KeyClassName)
	}
	return pkg, class, nil
}

func position(rec attrs.Record) (layout.Position, error) {
	pos, err := rec.Position()
	if err != nil {
		return layout.Position{}, fmt.Errorf("%w: %v", ErrInvalidAttribute, err)
	}
	return pos, nil
}
