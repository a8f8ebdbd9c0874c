package manifest

import (
	"context"

	"github.com/example/homeseed/internal/core/layout"
	"github.com/example/homeseed/internal/ports/secondary"
)

// Locale implements secondary.LocaleProvider using manifest labels.
type Locale struct {
	registry    *Registry
	language    string
	folderTitle string
}

// NewLocale creates a locale provider for language. folderTitle is used for
// folders that carry no title of their own.
func NewLocale(registry *Registry, language, folderTitle string) *Locale {
	return &Locale{registry: registry, language: language, folderTitle: folderTitle}
}

// Language returns the configured language code.
func (l *Locale) Language() string {
	return l.language
}

// Label returns the component's label, falling back to the package label and
// then the short class name.
func (l *Locale) Label(ctx context.Context, c layout.Component) string {
	if l.registry != nil {
		if label, ok := l.registry.labels[c]; ok {
			return label
		}
		if p, ok := l.registry.packages[c.Package]; ok && p.Label != "" {
			return p.Label
		}
	}
	short := c.ShortClassName()
	if len(short) > 1 && short[0] == '.' {
		return short[1:]
	}
	return short
}

// DefaultFolderTitle returns the fallback folder title.
func (l *Locale) DefaultFolderTitle() string {
	return l.folderTitle
}

// Ensure Locale implements the interface
var _ secondary.LocaleProvider = (*Locale)(nil)
