package secondary

import (
	"context"
	"io"

	"github.com/example/homeseed/internal/core/layout"
)

// TokenType is the kind of a structural document event.
type TokenType int

const (
	TokenStartTag TokenType = iota + 1
	TokenEndTag
	TokenEndDocument
)

func (t TokenType) String() string {
	switch t {
	case TokenStartTag:
		return "start-tag"
	case TokenEndTag:
		return "end-tag"
	case TokenEndDocument:
		return "end-document"
	}
	return "token"
}

// Token is one structural event of a layout document.
type Token struct {
	Type       TokenType
	Name       string
	Attributes []layout.Attribute

	// Depth is the element nesting level: 1 for the root element. An end tag
	// carries the same depth as its start tag; end of document is 0.
	Depth int

	// Line is the 1-based source line of the event when known.
	Line int
}

// TokenStream is a pull-style, non-restartable sequence of document events.
// Malformed input surfaces as an error from Next.
type TokenStream interface {
	Next() (Token, error)
}

// TokenStreamFactory opens a TokenStream over raw document bytes.
type TokenStreamFactory func(r io.Reader) TokenStream

// DocumentLocator defines the secondary port for finding and opening layout
// documents on disk.
type DocumentLocator interface {
	// Locate returns the path of the default layout document.
	Locate(ctx context.Context) (string, error)

	// Open opens the layout document at path for reading.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// SearchPaths returns the directories Locate considers, in order.
	SearchPaths() []string
}
