// Package ast defines the syntax tree of localization resources.
//
// The tree is plain data: a [Resource] holds [Message] and [Term] entries
// whose patterns are sequences of [Text] and [Placeable] elements. All
// behavior lives in the resolver, which switches over the closed set of
// node types.
//
// Trees normally come from a parser. [Decode] reads a tree that was
// serialized as YAML or JSON, which is how resource files are shipped to
// the resource manager.
package ast
