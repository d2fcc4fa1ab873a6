package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Build a small namespace by hand:
//
//	namespace test
//	class Box<T>
//	fun <T> wrap(value: T): test.Box<T>
func ExampleNewDocument() {
	doc := NewDocument()

	test := doc.AddRootNamespace("test")

	box := doc.AddClass("Box", ClassKindClass)
	doc.AddClassTypeParameter(box, doc.AddTypeParameter("T", VarianceInvariant, false))
	doc.AddMember(test, Node{Kind: NodeKindClass, Ref: box})

	wrap := doc.AddFunction("wrap")
	t := doc.AddTypeParameter("T", VarianceInvariant, false)
	doc.AddFunctionTypeParameter(wrap, t)
	doc.AddFunctionValueParameter(wrap, doc.AddValueParameter("value", doc.TypeParameters[t].DefaultType))

	argument := doc.AddTypeProjection(ProjectionKindInvariant, doc.TypeParameters[t].DefaultType)
	doc.SetFunctionReturnType(wrap, doc.AddType(doc.Classes[box].TypeConstructor, false, argument))
	doc.AddMember(test, Node{Kind: NodeKindFunction, Ref: wrap})
}

func TestNodeKind(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "valueParameter", NodeKindValueParameter.String())
		assert.Equal(t, "unknown", NodeKind(99).String())
	})
	t.Run("by name", func(t *testing.T) {
		kind, ok := NodeKindByName("TypeParameter")
		assert.True(t, ok)
		assert.Equal(t, NodeKindTypeParameter, kind)

		_, ok = NodeKindByName("unknown")
		assert.False(t, ok)
		_, ok = NodeKindByName("interface")
		assert.False(t, ok)
	})
}

func TestDocument_MemberScope(t *testing.T) {
	doc := NewDocument()
	test := doc.AddRootNamespace("test")
	a := Node{Kind: NodeKindClass, Ref: doc.AddClass("A", ClassKindClass)}
	alias := Node{Kind: NodeKindClassifier, Ref: doc.AddClassifier("Alias")}
	foo1 := Node{Kind: NodeKindFunction, Ref: doc.AddFunction("foo")}
	foo2 := Node{Kind: NodeKindFunction, Ref: doc.AddFunction("foo")}
	fooClass := Node{Kind: NodeKindClass, Ref: doc.AddClass("foo", ClassKindObject)}

	for _, member := range []Node{a, foo1, alias, foo2, fooClass} {
		doc.AddMember(test, member)
	}

	t.Run("members keep declaration order", func(t *testing.T) {
		assert.Equal(t, []Node{a, foo1, alias, foo2, fooClass}, doc.Members(test))
	})
	t.Run("classifier by name", func(t *testing.T) {
		node, ok := doc.ClassifierByName(test, []byte("A"))
		require.True(t, ok)
		assert.Equal(t, a, node)

		node, ok = doc.ClassifierByName(test, []byte("Alias"))
		require.True(t, ok)
		assert.Equal(t, alias, node)

		_, ok = doc.ClassifierByName(test, []byte("B"))
		assert.False(t, ok)
	})
	t.Run("functions and classifiers share names", func(t *testing.T) {
		assert.Equal(t, []Node{foo1, foo2}, doc.FunctionsByName(test, []byte("foo")))
		node, ok := doc.ClassifierByName(test, []byte("foo"))
		require.True(t, ok)
		assert.Equal(t, fooClass, node)
	})
	t.Run("containing declaration is set", func(t *testing.T) {
		assert.Equal(t, test, doc.ContainingDeclaration(foo2))
		assert.Equal(t, test, doc.Functions[foo2.Ref].ContainingDeclaration)
	})
	t.Run("root namespace", func(t *testing.T) {
		node, ok := doc.RootNamespace("test")
		require.True(t, ok)
		assert.Equal(t, test, node)
		_, ok = doc.RootNamespace("jet")
		assert.False(t, ok)
	})
	t.Run("reset", func(t *testing.T) {
		doc.Reset()
		assert.Empty(t, doc.Functions)
		assert.Empty(t, doc.Input.RawBytes)
		assert.Empty(t, doc.FunctionsByName(test, []byte("foo")))
	})
}

func TestDocument_TypeRendering(t *testing.T) {
	doc := NewDocument()
	jet := doc.AddRootNamespace("jet")
	list := doc.AddClass("List", ClassKindTrait)
	doc.AddMember(jet, Node{Kind: NodeKindClass, Ref: list})
	entry := doc.AddClass("Entry", ClassKindClass)
	doc.AddMember(Node{Kind: NodeKindClass, Ref: list}, Node{Kind: NodeKindClass, Ref: entry})

	external := doc.AddClassifier("java.lang.Object")
	objectType := doc.AddType(doc.AddTypeConstructor(Node{Kind: NodeKindClassifier, Ref: external}), true)

	tp := doc.AddTypeParameter("E", VarianceOut, false)

	t.Run("qualified class names", func(t *testing.T) {
		assert.Equal(t, "jet.List", doc.TypeConstructorString(doc.Classes[list].TypeConstructor))
		assert.Equal(t, "jet.List.Entry", doc.TypeConstructorString(doc.Classes[entry].TypeConstructor))
	})
	t.Run("external classifier", func(t *testing.T) {
		assert.Equal(t, "java.lang.Object?", doc.TypeString(objectType))
	})
	t.Run("type parameter", func(t *testing.T) {
		assert.Equal(t, "E", doc.TypeString(doc.TypeParameters[tp].DefaultType))
	})
	t.Run("arguments and projections", func(t *testing.T) {
		out := doc.AddTypeProjection(ProjectionKindOut, doc.TypeParameters[tp].DefaultType)
		star := doc.AddTypeProjection(ProjectionKindStar, InvalidRef)
		in := doc.AddTypeProjection(ProjectionKindIn, objectType)
		typeRef := doc.AddType(doc.Classes[list].TypeConstructor, true, out, star, in)
		assert.Equal(t, "jet.List<out E, *, in java.lang.Object?>?", doc.TypeString(typeRef))
	})
	t.Run("class default type", func(t *testing.T) {
		doc.AddClassTypeParameter(list, tp)
		assert.Equal(t, "jet.List<E>", doc.TypeString(doc.Classes[list].DefaultType))
		assert.Equal(t, Node{Kind: NodeKindClass, Ref: list}, doc.TypeParameters[tp].ContainingDeclaration)
		assert.Equal(t, []int{tp}, doc.TypeConstructors[doc.Classes[list].TypeConstructor].Parameters)
	})
}

func TestProperties(t *testing.T) {
	kinds := []NodeKind{
		NodeKindNamespace, NodeKindClassifier, NodeKindClass, NodeKindFunction, NodeKindTypeParameter,
		NodeKindValueParameter, NodeKindType, NodeKindTypeConstructor, NodeKindTypeProjection,
	}

	t.Run("every kind has a table with accessors", func(t *testing.T) {
		for _, kind := range kinds {
			properties := Properties(kind)
			require.NotEmpty(t, properties, kind.String())
			seen := map[string]bool{}
			for _, property := range properties {
				assert.False(t, seen[property.Name], "duplicate %s.%s", kind, property.Name)
				seen[property.Name] = true
				if property.Tag == PropertyTagOpaque {
					assert.Nil(t, property.Get, "%s.%s", kind, property.Name)
				} else {
					assert.NotNil(t, property.Get, "%s.%s", kind, property.Name)
				}
			}
		}
		assert.Nil(t, Properties(NodeKindUnknown))
	})
	t.Run("function accessors", func(t *testing.T) {
		doc := NewDocument()
		fn := doc.AddFunction("foo")
		vp := doc.AddValueParameter("x", InvalidRef)
		doc.AddFunctionValueParameter(fn, vp)

		name, ok := PropertyByName(NodeKindFunction, "name")
		require.True(t, ok)
		assert.Equal(t, ScalarValue("foo"), name.Get(doc, fn))

		receiver, ok := PropertyByName(NodeKindFunction, "receiverType")
		require.True(t, ok)
		assert.True(t, receiver.Get(doc, fn).Node.IsNull())

		parameters, ok := PropertyByName(NodeKindFunction, "valueParameters")
		require.True(t, ok)
		assert.Equal(t, NodesValue([]Node{{Kind: NodeKindValueParameter, Ref: vp}}), parameters.Get(doc, fn))

		original, ok := PropertyByName(NodeKindFunction, PropertyOriginal)
		require.True(t, ok)
		assert.Equal(t, NodeValue(Node{Kind: NodeKindFunction, Ref: fn}), original.Get(doc, fn))

		_, ok = PropertyByName(NodeKindFunction, "body")
		assert.False(t, ok)
	})
}
