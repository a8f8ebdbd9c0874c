// Package layout contains the pure domain types for home-screen placements.
// Nothing here performs I/O; adapters and services exchange these values.
package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Container identifies the parent grouping of a placement: one of the root
// containers (negative) or the identity of a folder (positive).
type Container int64

const (
	// ContainerDesktop is the root workspace surface.
	ContainerDesktop Container = -100
	// ContainerHotseat is the root dock surface.
	ContainerHotseat Container = -101
)

// IsRoot reports whether c is a root container rather than a folder.
func (c Container) IsRoot() bool {
	return c == ContainerDesktop || c == ContainerHotseat
}

// FolderContainer returns the container value for items nested in folder id.
func FolderContainer(id int64) Container {
	return Container(id)
}

func (c Container) String() string {
	switch c {
	case ContainerDesktop:
		return "desktop"
	case ContainerHotseat:
		return "hotseat"
	}
	return fmt.Sprintf("folder:%d", int64(c))
}

// ParseContainer accepts "desktop", "hotseat" or a numeric container value.
func ParseContainer(s string) (Container, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desktop":
		return ContainerDesktop, nil
	case "hotseat":
		return ContainerHotseat, nil
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(s, "folder:"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid container %q: want desktop, hotseat or a folder id", s)
	}
	return Container(n), nil
}

// ItemKind is the persisted item type. Values match the launcher favorites table.
type ItemKind int

const (
	KindApplication ItemKind = 0
	KindFolder      ItemKind = 2
	KindAppWidget   ItemKind = 4
)

func (k ItemKind) String() string {
	switch k {
	case KindApplication:
		return "application"
	case KindFolder:
		return "folder"
	case KindAppWidget:
		return "appwidget"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseItemKind accepts an item kind name as printed by String.
func ParseItemKind(s string) (ItemKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "application", "shortcut":
		return KindApplication, nil
	case "folder":
		return KindFolder, nil
	case "appwidget", "widget":
		return KindAppWidget, nil
	}
	return 0, fmt.Errorf("invalid item kind %q: want application, folder or appwidget", s)
}

// Attribute is one raw name/value pair of a document node. Names keep their
// namespace prefix, e.g. "launcher:screen".
type Attribute struct {
	Name  string
	Value string
}

// Position is the optional grid location of a placement. A nil field means
// the source node did not specify it.
type Position struct {
	Screen *int
	CellX  *int
	CellY  *int
}

// Span is the grid footprint of a placement.
type Span struct {
	X int
	Y int
}

// PlacementRecord is the unit persisted to the favorites store.
type PlacementRecord struct {
	ID        int64
	Container Container
	Kind      ItemKind
	Position  Position
	Span      Span
	Title     string

	// Intent holds the launch intent URI for shortcuts and the provider
	// descriptor for widgets.
	Intent string

	// AppWidgetID is the allocated widget instance, -1 for non-widgets.
	AppWidgetID int
	Provider    Component

	CreatedAt string
}

// NoAppWidgetID marks a record that does not host a widget instance.
const NoAppWidgetID = -1
