package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/example/homeseed/internal/core/layout"
	"github.com/example/homeseed/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// Ensure mocks implement the interfaces
var (
	_ secondary.ComponentRegistry = (*mockRegistry)(nil)
	_ secondary.FavoriteStore     = (*mockStore)(nil)
	_ secondary.IDAllocator       = (*mockIDs)(nil)
	_ secondary.WidgetHost        = (*mockWidgetHost)(nil)
	_ secondary.LocaleProvider    = (*mockLocale)(nil)
	_ secondary.LogWriter         = (*mockAudit)(nil)
	_ secondary.TokenStream       = (*mockStream)(nil)
	_ secondary.DocumentLocator   = (*mockLocator)(nil)
)

// mockRegistry implements secondary.ComponentRegistry for testing.
type mockRegistry struct {
	installed map[secondary.ComponentKind]map[layout.Component]bool
	canonical map[string]string
	search    *layout.Component
	providers map[string]layout.Component
	lookupErr error
	lookups   []layout.Component
}

func newMockRegistry() *mockRegistry {
	return &mockRegistry{
		installed: map[secondary.ComponentKind]map[layout.Component]bool{
			secondary.ActivityComponent:       {},
			secondary.WidgetProviderComponent: {},
		},
		canonical: make(map[string]string),
		providers: make(map[string]layout.Component),
	}
}

func (m *mockRegistry) install(kind secondary.ComponentKind, pkg, class string) layout.Component {
	c := layout.NewComponent(pkg, class)
	m.installed[kind][c] = true
	if kind == secondary.WidgetProviderComponent {
		if _, ok := m.providers[pkg]; !ok {
			m.providers[pkg] = c
		}
	}
	return c
}

func (m *mockRegistry) Lookup(ctx context.Context, kind secondary.ComponentKind, c layout.Component) error {
	m.lookups = append(m.lookups, c)
	if m.lookupErr != nil {
		return m.lookupErr
	}
	if m.installed[kind][c] {
		return nil
	}
	return fmt.Errorf("%s: %w", c.FlattenToShortString(), secondary.ErrComponentNotFound)
}

func (m *mockRegistry) CanonicalPackageName(ctx context.Context, pkg string) string {
	if c, ok := m.canonical[pkg]; ok {
		return c
	}
	return pkg
}

func (m *mockRegistry) GlobalSearchActivity(ctx context.Context) (layout.Component, bool) {
	if m.search == nil {
		return layout.Component{}, false
	}
	return *m.search, true
}

func (m *mockRegistry) WidgetProviderInPackage(ctx context.Context, pkg string) (layout.Component, bool) {
	c, ok := m.providers[pkg]
	return c, ok
}

// mockStore implements secondary.FavoriteStore, recording every call in order.
type mockStore struct {
	records    map[int64]*layout.PlacementRecord
	ops        []string
	insertErrs map[int64]error
	retractErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		records:    make(map[int64]*layout.PlacementRecord),
		insertErrs: make(map[int64]error),
	}
}

func (m *mockStore) Insert(ctx context.Context, record *layout.PlacementRecord) error {
	if err := m.insertErrs[record.ID]; err != nil {
		return err
	}
	if _, dup := m.records[record.ID]; dup {
		return fmt.Errorf("duplicate id %d", record.ID)
	}
	m.records[record.ID] = record
	m.ops = append(m.ops, fmt.Sprintf("insert %d", record.ID))
	return nil
}

func (m *mockStore) Retract(ctx context.Context, id int64) error {
	if m.retractErr != nil {
		return m.retractErr
	}
	if _, ok := m.records[id]; !ok {
		return fmt.Errorf("favorite %d not found", id)
	}
	delete(m.records, id)
	m.ops = append(m.ops, fmt.Sprintf("retract %d", id))
	return nil
}

func (m *mockStore) byKind(kind layout.ItemKind) []*layout.PlacementRecord {
	var out []*layout.PlacementRecord
	for _, r := range m.records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// mockIDs implements secondary.IDAllocator with a counter.
type mockIDs struct {
	next int64
	err  error
}

func (m *mockIDs) NextID(ctx context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.next++
	return m.next, nil
}

// mockWidgetHost implements secondary.WidgetHost for testing.
type mockWidgetHost struct {
	next     int
	bound    map[int]layout.Component
	allocErr error
	bindErr  error
}

func newMockWidgetHost() *mockWidgetHost {
	return &mockWidgetHost{next: 100, bound: make(map[int]layout.Component)}
}

func (m *mockWidgetHost) AllocateInstance(ctx context.Context) (int, error) {
	if m.allocErr != nil {
		return 0, m.allocErr
	}
	m.next++
	return m.next, nil
}

func (m *mockWidgetHost) Bind(ctx context.Context, instanceID int, provider layout.Component) error {
	if m.bindErr != nil {
		return m.bindErr
	}
	m.bound[instanceID] = provider
	return nil
}

// mockLocale implements secondary.LocaleProvider for testing.
type mockLocale struct {
	language    string
	folderTitle string
	labels      map[layout.Component]string
}

func newMockLocale() *mockLocale {
	return &mockLocale{language: "en", folderTitle: "Folder", labels: make(map[layout.Component]string)}
}

func (m *mockLocale) Language() string { return m.language }

func (m *mockLocale) Label(ctx context.Context, c layout.Component) string {
	if l, ok := m.labels[c]; ok {
		return l
	}
	return c.Class
}

func (m *mockLocale) DefaultFolderTitle() string { return m.folderTitle }

// mockAudit implements secondary.LogWriter for testing.
type mockAudit struct {
	entries []string
	runs    []*secondary.ImportRunRecord
	err     error
}

func (m *mockAudit) LogInsert(ctx context.Context, favoriteID int64, detail string) error {
	m.entries = append(m.entries, fmt.Sprintf("insert %d", favoriteID))
	return m.err
}

func (m *mockAudit) LogRetract(ctx context.Context, favoriteID int64, reason string) error {
	m.entries = append(m.entries, fmt.Sprintf("retract %d", favoriteID))
	return m.err
}

func (m *mockAudit) LogRun(ctx context.Context, run *secondary.ImportRunRecord) error {
	m.runs = append(m.runs, run)
	return m.err
}

func (m *mockAudit) ListRuns(ctx context.Context, limit int) ([]*secondary.ImportRunRecord, error) {
	out := make([]*secondary.ImportRunRecord, 0, len(m.runs))
	for i := len(m.runs) - 1; i >= 0; i-- {
		out = append(out, m.runs[i])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// mockLocator implements secondary.DocumentLocator over in-memory documents.
type mockLocator struct {
	docs      map[string]string
	located   string
	locateErr error
}

func (m *mockLocator) Locate(ctx context.Context) (string, error) {
	if m.locateErr != nil {
		return "", m.locateErr
	}
	return m.located, nil
}

func (m *mockLocator) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	doc, ok := m.docs[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file", path)
	}
	return io.NopCloser(strings.NewReader(doc)), nil
}

func (m *mockLocator) SearchPaths() []string { return []string{"/test"} }

// ============================================================================
// Token stream fixtures
// ============================================================================

// node is a document element used to build token fixtures.
type node struct {
	name     string
	attrs    []layout.Attribute
	children []node
}

func el(name string, attrs map[string]string, children ...node) node {
	n := node{name: name, children: children}
	for _, k := range sortedKeys(attrs) {
		n.attrs = append(n.attrs, layout.Attribute{Name: k, Value: attrs[k]})
	}
	return n
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// mockStream implements secondary.TokenStream over a fixed token list,
// failing with err once the list is exhausted when err is set.
type mockStream struct {
	tokens []secondary.Token
	pos    int
	err    error
}

func streamOf(root node) *mockStream {
	s := &mockStream{}
	line := 0
	var walk func(n node, depth int)
	walk = func(n node, depth int) {
		line++
		s.tokens = append(s.tokens, secondary.Token{
			Type: secondary.TokenStartTag, Name: n.name, Attributes: n.attrs, Depth: depth, Line: line,
		})
		for _, c := range n.children {
			walk(c, depth+1)
		}
		s.tokens = append(s.tokens, secondary.Token{
			Type: secondary.TokenEndTag, Name: n.name, Depth: depth, Line: line,
		})
	}
	walk(root, 1)
	return s
}

// truncated cuts the stream after n tokens and fails from there on.
func (m *mockStream) truncated(n int, err error) *mockStream {
	m.tokens = m.tokens[:n]
	m.err = err
	return m
}

func (m *mockStream) Next() (secondary.Token, error) {
	if m.pos >= len(m.tokens) {
		if m.err != nil {
			return secondary.Token{}, m.err
		}
		return secondary.Token{Type: secondary.TokenEndDocument}, nil
	}
	tok := m.tokens[m.pos]
	m.pos++
	return tok, nil
}

var errBoom = errors.New("boom")

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// ============================================================================
// Fixture helpers
// ============================================================================

type harness struct {
	registry *mockRegistry
	store    *mockStore
	ids      *mockIDs
	widgets  *mockWidgetHost
	locale   *mockLocale
	audit    *mockAudit
	builder  *ItemBuilder
	walker   *Walker
}

func newHarness() *harness {
	h := &harness{
		registry: newMockRegistry(),
		store:    newMockStore(),
		ids:      &mockIDs{},
		widgets:  newMockWidgetHost(),
		locale:   newMockLocale(),
		audit:    &mockAudit{},
	}
	h.builder = NewItemBuilder(h.registry, h.ids, h.widgets, h.locale)
	h.walker = NewWalker(h.builder, h.store, h.audit, testLogger())
	return h
}

func favorite(pkg, class string) node {
	return el("favorite", map[string]string{
		"launcher:packageName": pkg,
		"launcher:className":   class,
	})
}
