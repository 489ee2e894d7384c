package internal

import (
	"github.com/dmitrymomot/fluent/pkg/ast"
)

// Entry is a message or term as seen by the resolver.
type Entry struct {
	Value      *ast.Pattern
	attributes map[string]*ast.Pattern
	ID         string
	attrOrder  []string
	Term       bool
}

func newEntry(id string, term bool, value *ast.Pattern, attrs []*ast.Attribute) *Entry {
	e := &Entry{ID: id, Term: term, Value: value, attributes: make(map[string]*ast.Pattern, len(attrs))}
	for _, a := range attrs {
		if a == nil {
			continue
		}
		if _, seen := e.attributes[a.ID]; !seen {
			e.attrOrder = append(e.attrOrder, a.ID)
		}
		e.attributes[a.ID] = a.Value
	}
	return e
}

// Key is the lookup key: the id for messages, "-id" for terms.
func (e *Entry) Key() string {
	if e.Term {
		return "-" + e.ID
	}
	return e.ID
}

// Pattern returns the value pattern for an empty attr, or the named
// attribute.
func (e *Entry) Pattern(attr string) (*ast.Pattern, bool) {
	if attr == "" {
		return e.Value, e.Value != nil
	}
	p, ok := e.attributes[attr]
	return p, ok && p != nil
}

// Attributes returns the attribute names in declaration order.
func (e *Entry) Attributes() []string {
	return append([]string(nil), e.attrOrder...)
}

// Store indexes the entries of one resource. Within a resource the last
// definition of an id wins.
type Store struct {
	resource *ast.Resource
	entries  map[string]*Entry
	order    []string
}

// NewStore indexes res.
func NewStore(res *ast.Resource) *Store {
	s := &Store{resource: res, entries: make(map[string]*Entry, len(res.Entries))}
	for _, raw := range res.Entries {
		var e *Entry
		switch n := raw.(type) {
		case *ast.Message:
			e = newEntry(n.ID, false, n.Value, n.Attributes)
		case *ast.Term:
			e = newEntry(n.ID, true, n.Value, n.Attributes)
		default:
			continue
		}
		if _, seen := s.entries[e.Key()]; !seen {
			s.order = append(s.order, e.Key())
		}
		s.entries[e.Key()] = e
	}
	return s
}

// Lookup finds an entry by key ("id" or "-id").
func (s *Store) Lookup(key string) (*Entry, bool) {
	e, ok := s.entries[key]
	return e, ok
}

// Keys returns the entry keys in first-definition order.
func (s *Store) Keys() []string {
	return append([]string(nil), s.order...)
}

// Resource returns the indexed resource.
func (s *Store) Resource() *ast.Resource {
	return s.resource
}
