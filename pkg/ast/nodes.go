package ast

// Resource is a parsed resource: an ordered list of messages and terms.
type Resource struct {
	Entries []Entry
}

// Entry is a top-level resource entry: *Message or *Term.
type Entry interface {
	entry()
}

// Message is a user-facing localization unit.
type Message struct {
	Value      *Pattern
	ID         string
	Attributes []*Attribute
}

// Term is a reusable unit referenced from messages. ID is stored without
// the leading dash.
type Term struct {
	Value      *Pattern
	ID         string
	Attributes []*Attribute
}

// Attribute is a named sub-pattern of a message or term.
type Attribute struct {
	Value *Pattern
	ID    string
}

func (*Message) entry() {}
func (*Term) entry()    {}

// Attribute returns the pattern of the named attribute, or nil.
func (m *Message) Attribute(id string) *Pattern {
	return findAttribute(m.Attributes, id)
}

// Attribute returns the pattern of the named attribute, or nil.
func (t *Term) Attribute(id string) *Pattern {
	return findAttribute(t.Attributes, id)
}

// Last definition wins, matching how duplicate ids are handled.
func findAttribute(attrs []*Attribute, id string) *Pattern {
	for i := len(attrs) - 1; i >= 0; i-- {
		if attrs[i] != nil && attrs[i].ID == id {
			return attrs[i].Value
		}
	}
	return nil
}

// Pattern is a sequence of text and placeables.
type Pattern struct {
	Elements []PatternElement
}

// PatternElement is *Text or *Placeable.
type PatternElement interface {
	patternElement()
}

// Text is literal text.
type Text struct {
	Value string
}

// Placeable is an interpolation point. A placeable nested directly in
// another placeable is also an inline expression.
type Placeable struct {
	Expression Expression
}

func (*Text) patternElement()      {}
func (*Placeable) patternElement() {}

// Expression is an InlineExpression or a *SelectExpression.
type Expression interface {
	expression()
}

// InlineExpression is one of *StringLiteral, *NumberLiteral,
// *VariableReference, *MessageReference, *TermReference,
// *FunctionReference or *Placeable.
type InlineExpression interface {
	Expression
	inlineExpression()
}

// StringLiteral is a quoted literal.
type StringLiteral struct {
	Value string
}

// NumberLiteral keeps the literal as written, e.g. "1.50".
type NumberLiteral struct {
	Value string
}

// VariableReference refers to a caller argument: $name.
type VariableReference struct {
	ID string
}

// MessageReference refers to a message or one of its attributes.
type MessageReference struct {
	ID        string
	Attribute string
}

// TermReference refers to a term, optionally parameterized.
type TermReference struct {
	Arguments *CallArguments
	ID        string
	Attribute string
}

// FunctionReference calls a registered function.
type FunctionReference struct {
	Arguments *CallArguments
	ID        string
}

// CallArguments are the arguments of a function or term call.
type CallArguments struct {
	Positional []InlineExpression
	Named      []*NamedArgument
}

// NamedArgument is a name: value call argument.
type NamedArgument struct {
	Value InlineExpression
	Name  string
}

// SelectExpression picks one of its variants by the selector value.
type SelectExpression struct {
	Selector InlineExpression
	Variants []*Variant
}

// Variant is one branch of a select expression.
type Variant struct {
	Value   *Pattern
	Key     VariantKey
	Default bool
}

// VariantKey is an identifier such as "one" or a numeric literal such as
// "1". Numeric keys keep their literal text.
type VariantKey struct {
	Name    string
	Numeric bool
}

// DefaultVariant returns the variant marked default, or nil.
func (s *SelectExpression) DefaultVariant() *Variant {
	for _, v := range s.Variants {
		if v != nil && v.Default {
			return v
		}
	}
	return nil
}

func (*Placeable) expression()         {}
func (*StringLiteral) expression()     {}
func (*NumberLiteral) expression()     {}
func (*VariableReference) expression() {}
func (*MessageReference) expression()  {}
func (*TermReference) expression()     {}
func (*FunctionReference) expression() {}
func (*SelectExpression) expression()  {}

func (*Placeable) inlineExpression()         {}
func (*StringLiteral) inlineExpression()     {}
func (*NumberLiteral) inlineExpression()     {}
func (*VariableReference) inlineExpression() {}
func (*MessageReference) inlineExpression()  {}
func (*TermReference) inlineExpression()     {}
func (*FunctionReference) inlineExpression() {}
