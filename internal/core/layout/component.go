package layout

import (
	"fmt"
	"strings"
)

// Component is a (package, class) pair naming an activity or widget provider.
type Component struct {
	Package string
	Class   string
}

// NewComponent builds a component, expanding a leading "." in class relative
// to pkg.
func NewComponent(pkg, class string) Component {
	if strings.HasPrefix(class, ".") {
		class = pkg + class
	}
	return Component{Package: pkg, Class: class}
}

// ParseComponent parses the flattened "pkg/class" form, accepting the short
// "pkg/.Class" notation.
func ParseComponent(s string) (Component, error) {
	pkg, class, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || pkg == "" || class == "" {
		return Component{}, fmt.Errorf("invalid component %q: want package/class", s)
	}
	return NewComponent(pkg, class), nil
}

// IsZero reports whether the component is unset.
func (c Component) IsZero() bool {
	return c.Package == "" && c.Class == ""
}

// ShortClassName drops the package prefix from the class when present.
func (c Component) ShortClassName() string {
	if strings.HasPrefix(c.Class, c.Package+".") {
		return c.Class[len(c.Package):]
	}
	return c.Class
}

// FlattenToShortString renders "pkg/.Class" when the class lives in pkg.
func (c Component) FlattenToShortString() string {
	return c.Package + "/" + c.ShortClassName()
}

// String renders the provider descriptor stored for widgets.
func (c Component) String() string {
	return "ComponentInfo{" + c.Package + "/" + c.Class + "}"
}

const (
	ActionMain       = "android.intent.action.MAIN"
	CategoryLauncher = "android.intent.category.LAUNCHER"

	FlagActivityNewTask           = 0x10000000
	FlagActivityResetTaskIfNeeded = 0x00200000
)

// LaunchIntent describes how a shortcut starts its activity.
type LaunchIntent struct {
	Action    string
	Category  string
	Flags     int
	Component Component
}

// NewLauncherIntent targets c as a launcher entry point that starts in a new
// task and resets an existing one.
func NewLauncherIntent(c Component) LaunchIntent {
	return LaunchIntent{
		Action:    ActionMain,
		Category:  CategoryLauncher,
		Flags:     FlagActivityNewTask | FlagActivityResetTaskIfNeeded,
		Component: c,
	}
}

// URI serializes the intent in the "#Intent;...;end" form.
func (i LaunchIntent) URI() string {
	var b strings.Builder
	b.WriteString("#Intent;")
	if i.Action != "" {
		b.WriteString("action=" + i.Action + ";")
	}
	if i.Category != "" {
		b.WriteString("category=" + i.Category + ";")
	}
	if i.Flags != 0 {
		fmt.Fprintf(&b, "launchFlags=0x%x;", i.Flags)
	}
	if !i.Component.IsZero() {
		b.WriteString("component=" + i.Component.FlattenToShortString() + ";")
	}
	b.WriteString("end")
	return b.String()
}
