package internal

import (
	"github.com/dmitrymomot/fluent/pkg/ast"
)

// scope is the state of one format call. It is created per call and
// never shared between goroutines.
type scope struct {
	bundle *Bundle
	env    *Env
	args   Args

	// local holds term parameters while inside a term.
	local  Args
	inTerm bool

	// visited holds the references on the current branch: "id", "id.attr",
	// "-id", "-id.attr".
	visited map[string]struct{}

	// depth is the remaining number of nested references and variants.
	depth int

	placeables    int
	maxPlaceables int

	// dirty is set once the placeable limit is hit. Nothing more is
	// written after that.
	dirty bool

	errs []error
}

func (b *Bundle) newScope(args Args) *scope {
	return &scope{
		bundle:        b,
		env:           b.env,
		args:          args,
		visited:       make(map[string]struct{}),
		depth:         b.maxDepth,
		maxPlaceables: b.maxPlaceables,
	}
}

func (s *scope) record(kind ErrorKind, ref string, cause error) {
	s.errs = append(s.errs, newError(kind, ref, cause))
}

// enter marks key visited and takes one level of depth. It records the
// error and returns false when key is already on the branch or no depth
// is left.
func (s *scope) enter(key string) bool {
	if _, ok := s.visited[key]; ok {
		s.record(Cyclic, key, nil)
		return false
	}
	if s.depth <= 0 {
		s.record(TooDeep, key, nil)
		return false
	}
	s.visited[key] = struct{}{}
	s.depth--
	return true
}

func (s *scope) leave(key string) {
	s.depth++
	delete(s.visited, key)
}

// withTerm runs fn with local as the argument set of a term body.
func (s *scope) withTerm(local Args, fn func()) {
	prevLocal, prevInTerm := s.local, s.inTerm
	s.local, s.inTerm = local, true
	defer func() {
		s.local, s.inTerm = prevLocal, prevInTerm
	}()
	fn()
}

func (s *scope) text(t *ast.Text) string {
	if s.bundle.transform != nil {
		return s.bundle.transform(t.Value)
	}
	return t.Value
}
