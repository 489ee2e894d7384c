package ast

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is returned when a resource document does not
// describe a valid syntax tree.
var ErrInvalidDocument = errors.New("ast: invalid resource document")

// Decode reads a serialized syntax tree. The document is YAML (JSON is
// accepted as well): a list of entries, each with an id, an optional value
// pattern and optional attributes. Ids starting with "-" are terms.
//
// A pattern is either a plain string (one text element) or a list whose
// items are strings (text) or expression maps (placeables):
//
//	- id: emails
//	  value:
//	    - "You have "
//	    - select: {var: count}
//	      variants:
//	        - key: one
//	          value: "one new email"
//	        - key: other
//	          default: true
//	          value:
//	            - {var: count}
//	            - " new emails"
//	    - "."
//	  attributes:
//	    title: Inbox
//
// Expression maps are keyed by their kind: str, num, var, msg (with attr),
// term (with attr, args, named), fn (with args, named), select (with
// variants) and placeable. In args and named, plain scalars are shorthand
// for string and number literals.
func Decode(data []byte) (*Resource, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}

	res := &Resource{}
	if root.Kind == 0 || len(root.Content) == 0 {
		return res, nil
	}

	doc := root.Content[0]
	if isNull(doc) {
		return res, nil
	}
	if doc.Kind != yaml.SequenceNode {
		return nil, invalid(doc, "expected a list of entries")
	}

	res.Entries = make([]Entry, 0, len(doc.Content))
	for _, n := range doc.Content {
		e, err := decodeEntry(n)
		if err != nil {
			return nil, err
		}
		res.Entries = append(res.Entries, e)
	}
	return res, nil
}

func invalid(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrInvalidDocument, n.Line, fmt.Sprintf(format, args...))
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

type field struct {
	key   *yaml.Node
	value *yaml.Node
}

// fields returns the pairs of a mapping in document order and rejects
// keys outside allowed.
func fields(n *yaml.Node, allowed ...string) ([]field, error) {
	if n.Kind != yaml.MappingNode {
		return nil, invalid(n, "expected a map")
	}
	out := make([]field, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if allowed != nil && !contains(allowed, k.Value) {
			return nil, invalid(k, "unexpected key %q", k.Value)
		}
		out = append(out, field{key: k, value: v})
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func lookup(fs []field, key string) *yaml.Node {
	for _, f := range fs {
		if f.key.Value == key {
			return f.value
		}
	}
	return nil
}

func scalar(n *yaml.Node, what string) (string, error) {
	if n.Kind != yaml.ScalarNode || isNull(n) {
		return "", invalid(n, "%s must be a scalar", what)
	}
	return n.Value, nil
}

func decodeEntry(n *yaml.Node) (Entry, error) {
	fs, err := fields(n, "id", "value", "attributes")
	if err != nil {
		return nil, err
	}

	idNode := lookup(fs, "id")
	if idNode == nil {
		return nil, invalid(n, "entry without id")
	}
	id, err := scalar(idNode, "id")
	if err != nil {
		return nil, err
	}

	var value *Pattern
	if v := lookup(fs, "value"); v != nil {
		if value, err = decodePattern(v); err != nil {
			return nil, err
		}
	}

	var attrs []*Attribute
	if v := lookup(fs, "attributes"); v != nil && !isNull(v) {
		afs, err := fields(v)
		if err != nil {
			return nil, err
		}
		attrs = make([]*Attribute, 0, len(afs))
		for _, f := range afs {
			p, err := decodePattern(f.value)
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, &Attribute{ID: f.key.Value, Value: p})
		}
	}

	if termID, ok := strings.CutPrefix(id, "-"); ok {
		if termID == "" {
			return nil, invalid(idNode, "empty term id")
		}
		if value == nil {
			return nil, invalid(n, "term %q has no value", id)
		}
		return &Term{ID: termID, Value: value, Attributes: attrs}, nil
	}

	if id == "" {
		return nil, invalid(idNode, "empty message id")
	}
	if value == nil && len(attrs) == 0 {
		return nil, invalid(n, "message %q has neither value nor attributes", id)
	}
	return &Message{ID: id, Value: value, Attributes: attrs}, nil
}

func decodePattern(n *yaml.Node) (*Pattern, error) {
	switch {
	case isNull(n):
		return nil, nil
	case n.Kind == yaml.ScalarNode:
		if n.Value == "" {
			return &Pattern{}, nil
		}
		return &Pattern{Elements: []PatternElement{&Text{Value: n.Value}}}, nil
	case n.Kind == yaml.SequenceNode:
		p := &Pattern{Elements: make([]PatternElement, 0, len(n.Content))}
		for _, item := range n.Content {
			if item.Kind == yaml.ScalarNode {
				p.Elements = append(p.Elements, &Text{Value: item.Value})
				continue
			}
			expr, err := decodeExpression(item)
			if err != nil {
				return nil, err
			}
			p.Elements = append(p.Elements, &Placeable{Expression: expr})
		}
		return p, nil
	default:
		return nil, invalid(n, "pattern must be a string or a list")
	}
}

var expressionKinds = []string{"str", "num", "var", "msg", "term", "fn", "select", "placeable"}

func decodeExpression(n *yaml.Node) (Expression, error) {
	fs, err := fields(n)
	if err != nil {
		return nil, err
	}
	if lookup(fs, "select") == nil {
		return decodeInline(n)
	}
	if err := singleKind(n, fs); err != nil {
		return nil, err
	}
	if _, err := fields(n, "select", "variants"); err != nil {
		return nil, err
	}

	selector, err := decodeInline(lookup(fs, "select"))
	if err != nil {
		return nil, err
	}

	vn := lookup(fs, "variants")
	if vn == nil || vn.Kind != yaml.SequenceNode || len(vn.Content) == 0 {
		return nil, invalid(n, "select needs a non-empty variants list")
	}

	sel := &SelectExpression{Selector: selector, Variants: make([]*Variant, 0, len(vn.Content))}
	defaults := 0
	for _, item := range vn.Content {
		v, err := decodeVariant(item)
		if err != nil {
			return nil, err
		}
		if v.Default {
			defaults++
		}
		sel.Variants = append(sel.Variants, v)
	}
	if defaults != 1 {
		return nil, invalid(vn, "select must have exactly one default variant, found %d", defaults)
	}
	return sel, nil
}

func decodeVariant(n *yaml.Node) (*Variant, error) {
	fs, err := fields(n, "key", "default", "value")
	if err != nil {
		return nil, err
	}

	kn := lookup(fs, "key")
	if kn == nil {
		return nil, invalid(n, "variant without key")
	}
	name, err := scalar(kn, "variant key")
	if err != nil {
		return nil, err
	}
	tag := kn.ShortTag()

	v := &Variant{Key: VariantKey{Name: name, Numeric: tag == "!!int" || tag == "!!float"}}
	if dn := lookup(fs, "default"); dn != nil {
		if err := dn.Decode(&v.Default); err != nil {
			return nil, invalid(dn, "default must be a boolean")
		}
	}

	pn := lookup(fs, "value")
	if pn == nil {
		return nil, invalid(n, "variant %q has no value", name)
	}
	if v.Value, err = decodePattern(pn); err != nil {
		return nil, err
	}
	if v.Value == nil {
		v.Value = &Pattern{}
	}
	return v, nil
}

func singleKind(n *yaml.Node, fs []field) error {
	found := 0
	for _, f := range fs {
		if contains(expressionKinds, f.key.Value) {
			found++
		}
	}
	if found != 1 {
		return invalid(n, "expression must have exactly one of %s", strings.Join(expressionKinds, ", "))
	}
	return nil
}

func decodeInline(n *yaml.Node) (InlineExpression, error) {
	fs, err := fields(n, "str", "num", "var", "msg", "term", "fn", "placeable", "attr", "args", "named")
	if err != nil {
		return nil, err
	}
	if err := singleKind(n, fs); err != nil {
		return nil, err
	}

	attr := ""
	if an := lookup(fs, "attr"); an != nil {
		if attr, err = scalar(an, "attr"); err != nil {
			return nil, err
		}
	}

	switch {
	case lookup(fs, "str") != nil:
		return &StringLiteral{Value: lookup(fs, "str").Value}, nil
	case lookup(fs, "num") != nil:
		v, err := scalar(lookup(fs, "num"), "num")
		if err != nil {
			return nil, err
		}
		return &NumberLiteral{Value: v}, nil
	case lookup(fs, "var") != nil:
		id, err := scalar(lookup(fs, "var"), "var")
		if err != nil {
			return nil, err
		}
		return &VariableReference{ID: id}, nil
	case lookup(fs, "msg") != nil:
		id, err := scalar(lookup(fs, "msg"), "msg")
		if err != nil {
			return nil, err
		}
		return &MessageReference{ID: id, Attribute: attr}, nil
	case lookup(fs, "term") != nil:
		id, err := scalar(lookup(fs, "term"), "term")
		if err != nil {
			return nil, err
		}
		args, err := decodeArguments(fs)
		if err != nil {
			return nil, err
		}
		return &TermReference{ID: strings.TrimPrefix(id, "-"), Attribute: attr, Arguments: args}, nil
	case lookup(fs, "fn") != nil:
		id, err := scalar(lookup(fs, "fn"), "fn")
		if err != nil {
			return nil, err
		}
		args, err := decodeArguments(fs)
		if err != nil {
			return nil, err
		}
		if args == nil {
			args = &CallArguments{}
		}
		return &FunctionReference{ID: id, Arguments: args}, nil
	default:
		expr, err := decodeExpression(lookup(fs, "placeable"))
		if err != nil {
			return nil, err
		}
		return &Placeable{Expression: expr}, nil
	}
}

func decodeArguments(fs []field) (*CallArguments, error) {
	pn, nn := lookup(fs, "args"), lookup(fs, "named")
	if pn == nil && nn == nil {
		return nil, nil
	}

	args := &CallArguments{}
	if pn != nil {
		if pn.Kind != yaml.SequenceNode {
			return nil, invalid(pn, "args must be a list")
		}
		for _, item := range pn.Content {
			expr, err := decodeArgument(item)
			if err != nil {
				return nil, err
			}
			args.Positional = append(args.Positional, expr)
		}
	}
	if nn != nil {
		nfs, err := fields(nn)
		if err != nil {
			return nil, err
		}
		for _, f := range nfs {
			expr, err := decodeArgument(f.value)
			if err != nil {
				return nil, err
			}
			args.Named = append(args.Named, &NamedArgument{Name: f.key.Value, Value: expr})
		}
	}
	return args, nil
}

func decodeArgument(n *yaml.Node) (InlineExpression, error) {
	if n.Kind != yaml.ScalarNode {
		return decodeInline(n)
	}
	switch n.ShortTag() {
	case "!!int", "!!float":
		return &NumberLiteral{Value: n.Value}, nil
	case "!!null":
		return nil, invalid(n, "argument must not be null")
	default:
		return &StringLiteral{Value: n.Value}, nil
	}
}
