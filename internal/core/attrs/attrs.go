// Package attrs turns the raw attributes of one layout node into a normalized
// record keyed by semantic name.
package attrs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/homeseed/internal/core/layout"
)

// Key is a semantic attribute name.
type Key int

const (
	KeyScreen Key = iota + 1
	KeyCellX
	KeyCellY
	KeyPackageName
	KeyClassName
	KeySpanX
	KeySpanY
	KeyTitle
)

func (k Key) String() string {
	switch k {
	case KeyScreen:
		return "screen"
	case KeyCellX:
		return "x"
	case KeyCellY:
		return "y"
	case KeyPackageName:
		return "packageName"
	case KeyClassName:
		return "className"
	case KeySpanX:
		return "spanX"
	case KeySpanY:
		return "spanY"
	case KeyTitle:
		return "title"
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// aliases maps raw, namespaced attribute names to semantic keys.
// Matching is exact and case-sensitive.
var aliases = map[string]Key{
	"launcher:screen":      KeyScreen,
	"launcher:x":           KeyCellX,
	"launcher:y":           KeyCellY,
	"launcher:packageName": KeyPackageName,
	"launcher:className":   KeyClassName,
	"launcher:spanX":       KeySpanX,
	"launcher:spanY":       KeySpanY,
	"launcher:title":       KeyTitle,
}

// localizedTitlePrefix introduces per-language titles: launcher:title_fr.
const localizedTitlePrefix = "launcher:title_"

// Record is the normalized attribute set of a single node. It is built fresh
// for every node and never shared between siblings.
type Record struct {
	// Container defaults to the desktop; callers overwrite it when the node
	// lives in another container.
	Container layout.Container

	values          map[Key]string
	localizedTitles map[string]string
}

// Extract builds a Record from a node's attributes. Unrecognized names are
// ignored. When a name repeats, the last value wins.
func Extract(attributes []layout.Attribute) Record {
	r := Record{
		Container:       layout.ContainerDesktop,
		values:          make(map[Key]string, len(attributes)),
		localizedTitles: make(map[string]string),
	}
	for _, a := range attributes {
		if k, ok := aliases[a.Name]; ok {
			r.values[k] = a.Value
			continue
		}
		if lang, ok := strings.CutPrefix(a.Name, localizedTitlePrefix); ok && lang != "" {
			r.localizedTitles[lang] = a.Value
		}
	}
	return r
}

// Get returns the value for k and whether the node carried it.
func (r Record) Get(k Key) (string, bool) {
	v, ok := r.values[k]
	return v, ok
}

// Has reports whether the node carried k.
func (r Record) Has(k Key) bool {
	_, ok := r.values[k]
	return ok
}

// Int parses k as a base-10 integer. The boolean is false when k is absent.
func (r Record) Int(k Key) (int, bool, error) {
	v, ok := r.values[k]
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, true, fmt.Errorf("attribute %s=%q is not an integer", k, v)
	}
	return n, true, nil
}

// IntOr parses k, returning def when k is absent.
func (r Record) IntOr(k Key, def int) (int, error) {
	n, ok, err := r.Int(k)
	if err != nil {
		return 0, err
	}
	if !ok {
		return def, nil
	}
	return n, nil
}

// LocalizedTitle returns the title qualified with lang, if present.
func (r Record) LocalizedTitle(lang string) (string, bool) {
	if lang == "" {
		return "", false
	}
	v, ok := r.localizedTitles[lang]
	return v, ok
}

// Position collects the optional screen and cell coordinates.
func (r Record) Position() (layout.Position, error) {
	var p layout.Position
	for _, f := range []struct {
		key Key
		dst **int
	}{
		{KeyScreen, &p.Screen},
		{KeyCellX, &p.CellX},
		{KeyCellY, &p.CellY},
	} {
		n, ok, err := r.Int(f.key)
		if err != nil {
			return layout.Position{}, err
		}
		if ok {
			*f.dst = &n
		}
	}
	return p, nil
}
