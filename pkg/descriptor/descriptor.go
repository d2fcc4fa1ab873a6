// Package descriptor defines the description graph of a compiled program:
// namespaces, classes, functions, types and their parameters.
//
// All nodes of one graph live in a single Document. A node is addressed by its
// kind and its index (Ref) into the slice of that kind, so cyclic graphs
// (a function whose original is itself, a class whose default type points back
// at the class) need no pointers.
package descriptor

import (
	"strings"
)

type NodeKind int

const (
	NodeKindUnknown NodeKind = iota
	NodeKindNamespace
	NodeKindClassifier
	NodeKindClass
	NodeKindFunction
	NodeKindTypeParameter
	NodeKindValueParameter
	NodeKindType
	NodeKindTypeConstructor
	NodeKindTypeProjection
)

// InvalidRef marks an absent node.
const InvalidRef = -1

var nodeKindNames = [...]string{
	NodeKindUnknown:         "unknown",
	NodeKindNamespace:       "namespace",
	NodeKindClassifier:      "classifier",
	NodeKindClass:           "class",
	NodeKindFunction:        "function",
	NodeKindTypeParameter:   "typeParameter",
	NodeKindValueParameter:  "valueParameter",
	NodeKindType:            "type",
	NodeKindTypeConstructor: "typeConstructor",
	NodeKindTypeProjection:  "typeProjection",
}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return nodeKindNames[NodeKindUnknown]
	}
	return nodeKindNames[k]
}

// IsClassifier reports whether nodes of this kind can be looked up as classifiers in a member scope.
func (k NodeKind) IsClassifier() bool {
	return k == NodeKindClassifier || k == NodeKindClass
}

// IsContainer reports whether nodes of this kind own a member scope.
func (k NodeKind) IsContainer() bool {
	return k == NodeKindNamespace || k == NodeKindClass
}

// NodeKindByName resolves the name returned by NodeKind.String, case-insensitive.
func NodeKindByName(name string) (NodeKind, bool) {
	for i := range nodeKindNames {
		if strings.EqualFold(nodeKindNames[i], name) {
			return NodeKind(i), i != int(NodeKindUnknown)
		}
	}
	return NodeKindUnknown, false
}

type Node struct {
	Kind NodeKind
	Ref  int
}

// NullNode is the absent node. Both Kind and Ref are unset.
var NullNode = Node{Kind: NodeKindUnknown, Ref: InvalidRef}

func (n Node) IsNull() bool {
	return n.Ref == InvalidRef || n.Kind == NodeKindUnknown
}

// nodeOrNull lifts a typed ref into a Node, mapping InvalidRef to NullNode.
func nodeOrNull(kind NodeKind, ref int) Node {
	if ref == InvalidRef {
		return NullNode
	}
	return Node{Kind: kind, Ref: ref}
}

func nodesOf(kind NodeKind, refs []int) []Node {
	out := make([]Node, len(refs))
	for i := range refs {
		out[i] = nodeOrNull(kind, refs[i])
	}
	return out
}

type Document struct {
	Input            Input
	RootNodes        []Node
	Namespaces       []Namespace
	Classifiers      []Classifier
	Classes          []Class
	Functions        []Function
	TypeParameters   []TypeParameter
	ValueParameters  []ValueParameter
	Types            []Type
	TypeConstructors []TypeConstructor
	TypeProjections  []TypeProjection
	Index            Index
}

func NewDocument() *Document {
	return &Document{
		RootNodes:        make([]Node, 0, 4),
		Namespaces:       make([]Namespace, 0, 4),
		Classifiers:      make([]Classifier, 0, 16),
		Classes:          make([]Class, 0, 16),
		Functions:        make([]Function, 0, 32),
		TypeParameters:   make([]TypeParameter, 0, 16),
		ValueParameters:  make([]ValueParameter, 0, 48),
		Types:            make([]Type, 0, 64),
		TypeConstructors: make([]TypeConstructor, 0, 32),
		TypeProjections:  make([]TypeProjection, 0, 16),
		Index: Index{
			members: make(map[memberKey][]Node, 48),
		},
	}
}

func (d *Document) Reset() {
	d.Input.Reset()
	d.RootNodes = d.RootNodes[:0]
	d.Namespaces = d.Namespaces[:0]
	d.Classifiers = d.Classifiers[:0]
	d.Classes = d.Classes[:0]
	d.Functions = d.Functions[:0]
	d.TypeParameters = d.TypeParameters[:0]
	d.ValueParameters = d.ValueParameters[:0]
	d.Types = d.Types[:0]
	d.TypeConstructors = d.TypeConstructors[:0]
	d.TypeProjections = d.TypeProjections[:0]
	d.Index.Reset()
}

// NodeName returns the name of a named node and false for nodes without a name (types, projections, constructors).
func (d *Document) NodeName(node Node) (ByteSlice, bool) {
	if node.IsNull() {
		return nil, false
	}
	switch node.Kind {
	case NodeKindNamespace:
		return d.Input.ByteSlice(d.Namespaces[node.Ref].Name), true
	case NodeKindClassifier:
		return d.Input.ByteSlice(d.Classifiers[node.Ref].Name), true
	case NodeKindClass:
		return d.Input.ByteSlice(d.Classes[node.Ref].Name), true
	case NodeKindFunction:
		return d.Input.ByteSlice(d.Functions[node.Ref].Name), true
	case NodeKindTypeParameter:
		return d.Input.ByteSlice(d.TypeParameters[node.Ref].Name), true
	case NodeKindValueParameter:
		return d.Input.ByteSlice(d.ValueParameters[node.Ref].Name), true
	default:
		return nil, false
	}
}

func (d *Document) NodeNameString(node Node) string {
	name, _ := d.NodeName(node)
	return name.String()
}

// ContainingDeclaration returns the declaration owning node, NullNode for roots and unnamed nodes.
func (d *Document) ContainingDeclaration(node Node) Node {
	if node.IsNull() {
		return NullNode
	}
	switch node.Kind {
	case NodeKindNamespace:
		return d.Namespaces[node.Ref].ContainingDeclaration
	case NodeKindClassifier:
		return d.Classifiers[node.Ref].ContainingDeclaration
	case NodeKindClass:
		return d.Classes[node.Ref].ContainingDeclaration
	case NodeKindFunction:
		return d.Functions[node.Ref].ContainingDeclaration
	case NodeKindTypeParameter:
		return d.TypeParameters[node.Ref].ContainingDeclaration
	case NodeKindValueParameter:
		return d.ValueParameters[node.Ref].ContainingDeclaration
	default:
		return NullNode
	}
}

func (d *Document) AddRootNode(node Node) {
	d.RootNodes = append(d.RootNodes, node)
}

// RootNamespace returns the root namespace with the given name.
func (d *Document) RootNamespace(name string) (Node, bool) {
	for i := range d.RootNodes {
		if d.RootNodes[i].Kind != NodeKindNamespace {
			continue
		}
		if d.Input.ByteSliceString(d.Namespaces[d.RootNodes[i].Ref].Name) == name {
			return d.RootNodes[i], true
		}
	}
	return NullNode, false
}
