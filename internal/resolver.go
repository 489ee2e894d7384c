package internal

import (
	"errors"
	"strings"

	"github.com/dmitrymomot/fluent/pkg/ast"
)

// Unicode first strong isolate and pop directional isolate.
const (
	fsi = '\u2068'
	pdi = '\u2069'
)

// format resolves a pattern to text.
func (s *scope) format(p *ast.Pattern) string {
	if p == nil {
		return ""
	}
	if len(p.Elements) == 1 {
		if t, ok := p.Elements[0].(*ast.Text); ok {
			return s.text(t)
		}
	}
	var b strings.Builder
	s.writePattern(&b, p)
	return b.String()
}

func (s *scope) writePattern(b *strings.Builder, p *ast.Pattern) {
	if p == nil {
		return
	}
	isolate := s.bundle.isolating && len(p.Elements) > 1

	for _, el := range p.Elements {
		if s.dirty {
			return
		}

		switch n := el.(type) {
		case *ast.Text:
			b.WriteString(s.text(n))
		case *ast.Placeable:
			s.placeables++
			if s.placeables > s.maxPlaceables {
				s.dirty = true
				s.record(TooManyPlaceables, "", nil)
				return
			}

			wrap := isolate && needsIsolation(n.Expression)
			if wrap {
				b.WriteRune(fsi)
			}
			s.writeExpression(b, n.Expression)
			if wrap {
				b.WriteRune(pdi)
			}
		}
	}
}

// needsIsolation reports whether interpolated output of expr may carry
// text of unknown direction. References and string literals are part of
// the translation itself.
func needsIsolation(expr ast.Expression) bool {
	switch expr.(type) {
	case *ast.MessageReference, *ast.TermReference, *ast.StringLiteral:
		return false
	default:
		return true
	}
}

func (s *scope) writeExpression(b *strings.Builder, expr ast.Expression) {
	switch n := expr.(type) {
	case *ast.SelectExpression:
		s.writeSelect(b, n)
	case *ast.MessageReference:
		s.writeMessageRef(b, n)
	case *ast.TermReference:
		s.writeTermRef(b, n)
	case ast.InlineExpression:
		b.WriteString(s.env.render(s.resolveInline(n)))
	default:
		s.record(NoValue, "", nil)
		b.WriteString(noValueMarker)
	}
}

// resolveInline evaluates an inline expression to a Value, e.g. for a
// selector or a function argument.
func (s *scope) resolveInline(expr ast.InlineExpression) Value {
	switch n := expr.(type) {
	case *ast.StringLiteral:
		return StringValue(n.Value)
	case *ast.NumberLiteral:
		v, err := ParseNumber(n.Value)
		if err != nil {
			return StringValue(n.Value)
		}
		return v
	case *ast.VariableReference:
		return s.resolveVariable(n)
	case *ast.MessageReference:
		var b strings.Builder
		s.writeMessageRef(&b, n)
		return StringValue(b.String())
	case *ast.TermReference:
		var b strings.Builder
		s.writeTermRef(&b, n)
		return StringValue(b.String())
	case *ast.FunctionReference:
		return s.resolveFunction(n)
	case *ast.Placeable:
		switch inner := n.Expression.(type) {
		case ast.InlineExpression:
			return s.resolveInline(inner)
		case *ast.SelectExpression:
			var b strings.Builder
			s.writeSelect(&b, inner)
			return StringValue(b.String())
		}
	}
	s.record(NoValue, "", nil)
	return NoneValue{}
}

func (s *scope) resolveVariable(ref *ast.VariableReference) Value {
	args := s.args
	if s.inTerm {
		args = s.local
	}
	if v, ok := args[ref.ID]; ok && v != nil {
		return v
	}

	// Term parameters are optional.
	if !s.inTerm {
		s.record(MissingArgument, "$"+ref.ID, nil)
	}
	return NoneValue{Fallback: "{$" + ref.ID + "}"}
}

func (s *scope) writeMessageRef(b *strings.Builder, ref *ast.MessageReference) {
	key := refKey(ref.ID, ref.Attribute)
	fallback := "{" + key + "}"

	entry, ok := s.bundle.entry(ref.ID)
	if !ok {
		s.record(NoValue, key, nil)
		b.WriteString(fallback)
		return
	}
	p, ok := entry.Pattern(ref.Attribute)
	if !ok {
		if ref.Attribute != "" {
			s.record(UnknownAttribute, key, nil)
		} else {
			s.record(NoValue, key, nil)
		}
		b.WriteString(fallback)
		return
	}

	if !s.enter(key) {
		b.WriteString(fallback)
		return
	}
	s.writePattern(b, p)
	s.leave(key)
}

func (s *scope) writeTermRef(b *strings.Builder, ref *ast.TermReference) {
	key := refKey("-"+ref.ID, ref.Attribute)
	fallback := "{" + key + "}"

	entry, ok := s.bundle.entry("-" + ref.ID)
	if !ok {
		s.record(NoValue, key, nil)
		b.WriteString(fallback)
		return
	}
	p, ok := entry.Pattern(ref.Attribute)
	if !ok {
		if ref.Attribute != "" {
			s.record(UnknownAttribute, key, nil)
		} else {
			s.record(NoValue, key, nil)
		}
		b.WriteString(fallback)
		return
	}

	// Named arguments are evaluated in the caller's scope. Positional
	// arguments have no meaning for terms.
	local := make(Args)
	if ref.Arguments != nil {
		for _, arg := range ref.Arguments.Named {
			if arg == nil || arg.Value == nil {
				continue
			}
			local[arg.Name] = s.resolveInline(arg.Value)
		}
	}

	if !s.enter(key) {
		b.WriteString(fallback)
		return
	}
	s.withTerm(local, func() {
		s.writePattern(b, p)
	})
	s.leave(key)
}

func (s *scope) resolveFunction(ref *ast.FunctionReference) Value {
	fallback := NoneValue{Fallback: "{" + ref.ID + "()}"}

	var positional []Value
	var named map[string]Value
	if ref.Arguments != nil {
		positional = make([]Value, 0, len(ref.Arguments.Positional))
		for _, arg := range ref.Arguments.Positional {
			if arg == nil {
				continue
			}
			positional = append(positional, s.resolveInline(arg))
		}
		named = make(map[string]Value, len(ref.Arguments.Named))
		for _, arg := range ref.Arguments.Named {
			if arg == nil || arg.Value == nil {
				continue
			}
			named[arg.Name] = s.resolveInline(arg.Value)
		}
	}

	v, err := s.bundle.functions.Call(ref.ID, positional, named)
	switch {
	case errors.Is(err, ErrUnknownFunction):
		s.record(UnknownFunction, ref.ID, nil)
		return fallback
	case err != nil:
		s.record(FunctionError, ref.ID, err)
		return fallback
	}

	if _, none := v.(NoneValue); v == nil || none {
		s.record(FunctionError, ref.ID, nil)
		return fallback
	}
	return v
}

func (s *scope) writeSelect(b *strings.Builder, sel *ast.SelectExpression) {
	selector := s.resolveInline(sel.Selector)

	var chosen *ast.Variant
	for _, v := range sel.Variants {
		if v != nil && matches(s.env, v.Key, selector) {
			chosen = v
			break
		}
	}
	if chosen == nil {
		chosen = sel.DefaultVariant()
	}
	if chosen == nil || chosen.Value == nil {
		s.record(NoValue, "", nil)
		b.WriteString(noValueMarker)
		return
	}

	if s.depth <= 0 {
		s.record(TooDeep, "", nil)
		b.WriteString(noValueMarker)
		return
	}
	s.depth--
	s.writePattern(b, chosen.Value)
	s.depth++
}

func refKey(id, attr string) string {
	if attr == "" {
		return id
	}
	return id + "." + attr
}
