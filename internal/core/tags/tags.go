// Package tags maps layout document tag names to item kinds.
package tags

// Kind is the dispatch variant of a document tag.
type Kind int

const (
	Unknown Kind = iota
	Shortcut
	Folder
	Widget
	Clock
	Search
)

// Root is the required name of the document's root element.
const Root = "favorites"

var byName = map[string]Kind{
	"favorite":  Shortcut,
	"folder":    Folder,
	"appwidget": Widget,
	"clock":     Clock,
	"search":    Search,
}

// Parse resolves a tag name to its Kind. Unrecognized names yield Unknown.
func Parse(name string) Kind {
	return byName[name]
}

func (k Kind) String() string {
	switch k {
	case Shortcut:
		return "favorite"
	case Folder:
		return "folder"
	case Widget:
		return "appwidget"
	case Clock:
		return "clock"
	case Search:
		return "search"
	}
	return "unknown"
}
