// Package xmldoc adapts an XML document into the structural token stream
// consumed by the import walker.
package xmldoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/example/homeseed/internal/core/layout"
	"github.com/example/homeseed/internal/ports/secondary"
)

// Stream implements secondary.TokenStream over an XML byte stream. Only
// elements are reported; text, comments, processing instructions and
// directives are skipped.
type Stream struct {
	dec   *xml.Decoder
	lines *lineCounter
	stack []string

	closedRoot bool
	done       bool
	err        error
}

// NewStream returns a token stream reading from r.
func NewStream(r io.Reader) *Stream {
	lc := &lineCounter{r: r}
	dec := xml.NewDecoder(lc)
	dec.Strict = true
	return &Stream{dec: dec, lines: lc}
}

// Factory is a secondary.TokenStreamFactory producing xmldoc streams.
func Factory(r io.Reader) secondary.TokenStream {
	return NewStream(r)
}

// Next returns the next structural token. After the root element closes it
// returns an EndDocument token on every call. A malformed document yields an
// error, and the same error on every later call.
func (s *Stream) Next() (secondary.Token, error) {
	if s.err != nil {
		return secondary.Token{}, s.err
	}
	if s.done {
		return secondary.Token{Type: secondary.TokenEndDocument}, nil
	}

	for {
		tok, err := s.dec.RawToken()
		if err == io.EOF {
			if len(s.stack) > 0 {
				return s.fail(fmt.Errorf("unexpected end of document: <%s> not closed", s.stack[len(s.stack)-1]))
			}
			s.done = true
			return secondary.Token{Type: secondary.TokenEndDocument}, nil
		}
		if err != nil {
			return s.fail(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if s.closedRoot {
				return s.fail(fmt.Errorf("line %d: content after root element", s.line()))
			}
			name := qualifiedName(t.Name)
			s.stack = append(s.stack, name)
			return secondary.Token{
				Type:       secondary.TokenStartTag,
				Name:       name,
				Attributes: attributes(t.Attr),
				Depth:      len(s.stack),
				Line:       s.line(),
			}, nil

		case xml.EndElement:
			name := qualifiedName(t.Name)
			if len(s.stack) == 0 {
				return s.fail(fmt.Errorf("line %d: unexpected end tag </%s>", s.line(), name))
			}
			open := s.stack[len(s.stack)-1]
			if open != name {
				return s.fail(fmt.Errorf("line %d: end tag </%s> does not match <%s>", s.line(), name, open))
			}
			depth := len(s.stack)
			s.stack = s.stack[:len(s.stack)-1]
			if len(s.stack) == 0 {
				s.closedRoot = true
			}
			return secondary.Token{
				Type:  secondary.TokenEndTag,
				Name:  name,
				Depth: depth,
				Line:  s.line(),
			}, nil

		case xml.CharData:
			if len(s.stack) == 0 && len(bytes.TrimSpace(t)) > 0 {
				return s.fail(fmt.Errorf("line %d: text outside root element", s.line()))
			}
		}
	}
}

func (s *Stream) fail(err error) (secondary.Token, error) {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		err = fmt.Errorf("line %d: %s", syntaxErr.Line, syntaxErr.Msg)
	}
	s.err = fmt.Errorf("malformed layout document: %w", err)
	return secondary.Token{}, s.err
}

func (s *Stream) line() int {
	return s.lines.lineAt(s.dec.InputOffset())
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func attributes(attrs []xml.Attr) []layout.Attribute {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]layout.Attribute, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, layout.Attribute{Name: qualifiedName(a.Name), Value: a.Value})
	}
	return out
}

// lineCounter records newline offsets as bytes flow to the decoder so token
// offsets can be mapped back to source lines.
type lineCounter struct {
	r        io.Reader
	read     int64
	newlines []int64
}

func (c *lineCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	for i := 0; i < n; i++ {
		if p[i] == '\n' {
			c.newlines = append(c.newlines, c.read+int64(i))
		}
	}
	c.read += int64(n)
	return n, err
}

// lineAt returns the 1-based line containing the byte just before offset.
func (c *lineCounter) lineAt(offset int64) int {
	return 1 + sort.Search(len(c.newlines), func(i int) bool {
		return c.newlines[i] >= offset-1
	})
}
