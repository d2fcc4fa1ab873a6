package descriptor

type PropertyTag int

const (
	PropertyTagUnknown PropertyTag = iota
	PropertyTagScalar
	PropertyTagNode
	PropertyTagNodes
	// PropertyTagOpaque marks values nobody can compare, e.g. member scopes. They have no accessor.
	PropertyTagOpaque
)

func (t PropertyTag) String() string {
	switch t {
	case PropertyTagScalar:
		return "scalar"
	case PropertyTagNode:
		return "node"
	case PropertyTagNodes:
		return "nodes"
	case PropertyTagOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

type ValueKind int

const (
	ValueKindUnknown ValueKind = iota
	ValueKindScalar
	ValueKindNode
	ValueKindNodes
)

// Value is the result of a property accessor.
type Value struct {
	Kind   ValueKind
	Scalar interface{}
	Node   Node
	Nodes  []Node
}

func ScalarValue(scalar interface{}) Value {
	return Value{Kind: ValueKindScalar, Scalar: scalar}
}

func NodeValue(node Node) Value {
	return Value{Kind: ValueKindNode, Node: node}
}

func NodesValue(nodes []Node) Value {
	return Value{Kind: ValueKindNodes, Nodes: nodes}
}

// Property is a named accessor of a node kind.
type Property struct {
	Name string
	Tag  PropertyTag
	Get  func(d *Document, ref int) Value
}

const (
	PropertyName                  = "name"
	PropertyContainingDeclaration = "containingDeclaration"
	PropertyOriginal              = "original"
	PropertyMemberScope           = "memberScope"
	PropertyMembers               = "members"
)

// Properties returns the property table of kind in a stable order. Callers must not modify it.
func Properties(kind NodeKind) []Property {
	switch kind {
	case NodeKindNamespace:
		return namespaceProperties
	case NodeKindClassifier:
		return classifierProperties
	case NodeKindClass:
		return classProperties
	case NodeKindFunction:
		return functionProperties
	case NodeKindTypeParameter:
		return typeParameterProperties
	case NodeKindValueParameter:
		return valueParameterProperties
	case NodeKindType:
		return typeProperties
	case NodeKindTypeConstructor:
		return typeConstructorProperties
	case NodeKindTypeProjection:
		return typeProjectionProperties
	default:
		return nil
	}
}

// PropertyByName finds a property of kind.
func PropertyByName(kind NodeKind, name string) (Property, bool) {
	for _, property := range Properties(kind) {
		if property.Name == name {
			return property, true
		}
	}
	return Property{}, false
}

var namespaceProperties = []Property{
	{Name: PropertyName, Tag: PropertyTagScalar, Get: func(d *Document, ref int) Value {
		return ScalarValue(d.Input.ByteSliceString(d.Namespaces[ref].Name))
	}},
	{Name: PropertyContainingDeclaration, Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(d.Namespaces[ref].ContainingDeclaration)
	}},
	{Name: PropertyOriginal, Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(Node{Kind: NodeKindNamespace, Ref: ref})
	}},
	{Name: PropertyMemberScope, Tag: PropertyTagOpaque},
}

var classifierProperties = []Property{
	{Name: PropertyName, Tag: PropertyTagScalar, Get: func(d *Document, ref int) Value {
		return ScalarValue(d.Input.ByteSliceString(d.Classifiers[ref].Name))
	}},
	{Name: PropertyContainingDeclaration, Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(d.Classifiers[ref].ContainingDeclaration)
	}},
	{Name: PropertyOriginal, Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(Node{Kind: NodeKindClassifier, Ref: ref})
	}},
}

var classProperties = []Property{
	{Name: PropertyName, Tag: PropertyTagScalar, Get: func(d *Document, ref int) Value {
		return ScalarValue(d.Input.ByteSliceString(d.Classes[ref].Name))
	}},
	{Name: "kind", Tag: PropertyTagScalar, Get: func(d *Document, ref int) Value {
		return ScalarValue(d.Classes[ref].ClassKind)
	}},
	{Name: "modality", Tag: PropertyTagScalar, Get: func(d *Document, ref int) Value {
		return ScalarValue(d.Classes[ref].Modality)
	}},
	{Name: "visibility", Tag: PropertyTagScalar, Get: func(d *Document, ref int) Value {
		return ScalarValue(d.Classes[ref].Visibility)
	}},
	{Name: "typeParameters", Tag: PropertyTagNodes, Get: func(d *Document, ref int) Value {
		return NodesValue(nodesOf(NodeKindTypeParameter, d.Classes[ref].TypeParameters))
	}},
	{Name: "supertypes", Tag: PropertyTagNodes, Get: func(d *Document, ref int) Value {
		return NodesValue(nodesOf(NodeKindType, d.Classes[ref].Supertypes))
	}},
	{Name: "defaultType", Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(nodeOrNull(NodeKindType, d.Classes[ref].DefaultType))
	}},
	{Name: "typeConstructor", Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(nodeOrNull(NodeKindTypeConstructor, d.Classes[ref].TypeConstructor))
	}},
	{Name: PropertyContainingDeclaration, Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(d.Classes[ref].ContainingDeclaration)
	}},
	{Name: PropertyOriginal, Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(d.Classes[ref].Original)
	}},
	{Name: PropertyMemberScope, Tag: PropertyTagOpaque},
}

var functionProperties = []Property{
	{Name: PropertyName, Tag: PropertyTagScalar, Get: func(d *Document, ref int) Value {
		return ScalarValue(d.Input.ByteSliceString(d.Functions[ref].Name))
	}},
	{Name: "visibility", Tag: PropertyTagScalar, Get: func(d *Document, ref int) Value {
		return ScalarValue(d.Functions[ref].Visibility)
	}},
	{Name: "modality", Tag: PropertyTagScalar, Get: func(d *Document, ref int) Value {
		return ScalarValue(d.Functions[ref].Modality)
	}},
	{Name: "typeParameters", Tag: PropertyTagNodes, Get: func(d *Document, ref int) Value {
		return NodesValue(nodesOf(NodeKindTypeParameter, d.Functions[ref].TypeParameters))
	}},
	{Name: "valueParameters", Tag: PropertyTagNodes, Get: func(d *Document, ref int) Value {
		return NodesValue(nodesOf(NodeKindValueParameter, d.Functions[ref].ValueParameters))
	}},
	{Name: "receiverType", Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(nodeOrNull(NodeKindType, d.Functions[ref].ReceiverType))
	}},
	{Name: "returnType", Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(nodeOrNull(NodeKindType, d.Functions[ref].ReturnType))
	}},
	{Name: PropertyContainingDeclaration, Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(d.Functions[ref].ContainingDeclaration)
	}},
	{Name: PropertyOriginal, Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(d.Functions[ref].Original)
	}},
}

var typeParameterProperties = []Property{
	{Name: PropertyName, Tag: PropertyTagScalar, Get: func(d *Document, ref int) Value {
		return ScalarValue(d.Input.ByteSliceString(d.TypeParameters[ref].Name))
	}},
	{Name: "index", Tag: PropertyTagScalar, Get: func(d *Document, ref int) Value {
		return ScalarValue(d.TypeParameters[ref].Index)
	}},
	{Name: "variance", Tag: PropertyTagScalar, Get: func(d *Document, ref int) Value {
		return ScalarValue(d.TypeParameters[ref].Variance)
	}},
	{Name: "reified", Tag: PropertyTagScalar, Get: func(d *Document, ref int) Value {
		return ScalarValue(d.TypeParameters[ref].Reified)
	}},
	{Name: "upperBounds", Tag: PropertyTagNodes, Get: func(d *Document, ref int) Value {
		return NodesValue(nodesOf(NodeKindType, d.TypeParameters[ref].UpperBounds))
	}},
	{Name: "defaultType", Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(nodeOrNull(NodeKindType, d.TypeParameters[ref].DefaultType))
	}},
	{Name: "typeConstructor", Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(nodeOrNull(NodeKindTypeConstructor, d.TypeParameters[ref].TypeConstructor))
	}},
	{Name: PropertyContainingDeclaration, Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(d.TypeParameters[ref].ContainingDeclaration)
	}},
	{Name: PropertyOriginal, Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(d.TypeParameters[ref].Original)
	}},
}

var valueParameterProperties = []Property{
	{Name: PropertyName, Tag: PropertyTagScalar, Get: func(d *Document, ref int) Value {
		return ScalarValue(d.Input.ByteSliceString(d.ValueParameters[ref].Name))
	}},
	{Name: "index", Tag: PropertyTagScalar, Get: func(d *Document, ref int) Value {
		return ScalarValue(d.ValueParameters[ref].Index)
	}},
	{Name: "type", Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(nodeOrNull(NodeKindType, d.ValueParameters[ref].Type))
	}},
	{Name: "hasDefaultValue", Tag: PropertyTagScalar, Get: func(d *Document, ref int) Value {
		return ScalarValue(d.ValueParameters[ref].HasDefaultValue)
	}},
	{Name: "vararg", Tag: PropertyTagScalar, Get: func(d *Document, ref int) Value {
		return ScalarValue(d.ValueParameters[ref].Vararg)
	}},
	{Name: "ref", Tag: PropertyTagScalar, Get: func(d *Document, ref int) Value {
		return ScalarValue(d.ValueParameters[ref].Ref)
	}},
	{Name: PropertyContainingDeclaration, Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(d.ValueParameters[ref].ContainingDeclaration)
	}},
	{Name: PropertyOriginal, Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(d.ValueParameters[ref].Original)
	}},
}

var typeProperties = []Property{
	{Name: "constructor", Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(nodeOrNull(NodeKindTypeConstructor, d.Types[ref].Constructor))
	}},
	{Name: "arguments", Tag: PropertyTagNodes, Get: func(d *Document, ref int) Value {
		return NodesValue(nodesOf(NodeKindTypeProjection, d.Types[ref].Arguments))
	}},
	{Name: "nullable", Tag: PropertyTagScalar, Get: func(d *Document, ref int) Value {
		return ScalarValue(d.Types[ref].Nullable)
	}},
	{Name: PropertyMemberScope, Tag: PropertyTagOpaque},
}

var typeConstructorProperties = []Property{
	{Name: "declaration", Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(d.TypeConstructors[ref].Declaration)
	}},
	{Name: "parameters", Tag: PropertyTagNodes, Get: func(d *Document, ref int) Value {
		return NodesValue(nodesOf(NodeKindTypeParameter, d.TypeConstructors[ref].Parameters))
	}},
	{Name: "supertypes", Tag: PropertyTagNodes, Get: func(d *Document, ref int) Value {
		return NodesValue(nodesOf(NodeKindType, d.TypeConstructors[ref].Supertypes))
	}},
}

var typeProjectionProperties = []Property{
	{Name: "projectionKind", Tag: PropertyTagScalar, Get: func(d *Document, ref int) Value {
		return ScalarValue(d.TypeProjections[ref].ProjectionKind)
	}},
	{Name: "type", Tag: PropertyTagNode, Get: func(d *Document, ref int) Value {
		return NodeValue(nodeOrNull(NodeKindType, d.TypeProjections[ref].Type))
	}},
}
