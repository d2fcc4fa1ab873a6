package descriptorcompare

import (
	"github.com/wundergraph/descriptor-roundtrip/pkg/descriptor"
)

// graph builds a namespace graph the way a front-end or a metadata reader would.
type graph struct {
	doc       *descriptor.Document
	namespace descriptor.Node
	externals map[string]int
}

func newGraph(namespace string) *graph {
	doc := descriptor.NewDocument()
	return &graph{
		doc:       doc,
		namespace: doc.AddRootNamespace(namespace),
		externals: map[string]int{},
	}
}

// external returns a new type whose constructor is the external classifier name.
func (g *graph) external(name string, nullable bool, arguments ...int) int {
	constructor, ok := g.externals[name]
	if !ok {
		classifier := g.doc.AddClassifier(name)
		constructor = g.doc.AddTypeConstructor(descriptor.Node{Kind: descriptor.NodeKindClassifier, Ref: classifier})
		g.externals[name] = constructor
	}
	return g.doc.AddType(constructor, nullable, arguments...)
}

func (g *graph) typeParameterType(typeParameter int) int {
	return g.doc.AddType(g.doc.TypeParameters[typeParameter].TypeConstructor, false)
}

func (g *graph) class(container descriptor.Node, name string, typeParameters ...string) int {
	ref := g.doc.AddClass(name, descriptor.ClassKindClass)
	for _, typeParameter := range typeParameters {
		g.doc.AddClassTypeParameter(ref, g.doc.AddTypeParameter(typeParameter, descriptor.VarianceInvariant, false))
	}
	g.doc.AddMember(container, descriptor.Node{Kind: descriptor.NodeKindClass, Ref: ref})
	return ref
}

func (g *graph) classifier(container descriptor.Node, name string) int {
	ref := g.doc.AddClassifier(name)
	g.doc.AddMember(container, descriptor.Node{Kind: descriptor.NodeKindClassifier, Ref: ref})
	return ref
}

// function adds fun name(parameters...): returnType, each parameter typed with an external classifier.
func (g *graph) function(container descriptor.Node, name string, returnType string, parameters ...[2]string) int {
	ref := g.doc.AddFunction(name)
	for _, parameter := range parameters {
		g.doc.AddFunctionValueParameter(ref, g.doc.AddValueParameter(parameter[0], g.external(parameter[1], false)))
	}
	if returnType != "" {
		g.doc.SetFunctionReturnType(ref, g.external(returnType, false))
	}
	g.doc.AddMember(container, descriptor.Node{Kind: descriptor.NodeKindFunction, Ref: ref})
	return ref
}

func (g *graph) functionTypeParameter(function int, name string, bounds ...string) int {
	ref := g.doc.AddTypeParameter(name, descriptor.VarianceInvariant, false)
	for _, bound := range bounds {
		g.doc.AddTypeParameterUpperBound(ref, g.external(bound, true))
	}
	g.doc.AddFunctionTypeParameter(function, ref)
	return ref
}

func classNode(ref int) descriptor.Node {
	return descriptor.Node{Kind: descriptor.NodeKindClass, Ref: ref}
}

func functionNode(ref int) descriptor.Node {
	return descriptor.Node{Kind: descriptor.NodeKindFunction, Ref: ref}
}

// sample builds
//
//	namespace test {
//	    class Box<T> {
//	        fun get(): T
//	    }
//	    classifier Alias
//	    fun <T : jet.Comparable<T>?> max(a: T, b: T): T
//	    fun print(message: jet.String): jet.Unit
//	}
func sample() *graph {
	g := newGraph("test")

	box := g.class(g.namespace, "Box", "T")
	get := g.doc.AddFunction("get")
	g.doc.SetFunctionReturnType(get, g.typeParameterType(g.doc.Classes[box].TypeParameters[0]))
	g.doc.AddMember(classNode(box), functionNode(get))

	g.classifier(g.namespace, "Alias")

	maxRef := g.doc.AddFunction("max")
	t := g.doc.AddTypeParameter("T", descriptor.VarianceInvariant, false)
	g.doc.AddFunctionTypeParameter(maxRef, t)
	argument := g.doc.AddTypeProjection(descriptor.ProjectionKindInvariant, g.typeParameterType(t))
	g.doc.AddTypeParameterUpperBound(t, g.external("jet.Comparable", true, argument))
	g.doc.AddFunctionValueParameter(maxRef, g.doc.AddValueParameter("a", g.typeParameterType(t)))
	g.doc.AddFunctionValueParameter(maxRef, g.doc.AddValueParameter("b", g.typeParameterType(t)))
	g.doc.SetFunctionReturnType(maxRef, g.typeParameterType(t))
	g.doc.AddMember(g.namespace, functionNode(maxRef))

	g.function(g.namespace, "print", "jet.Unit", [2]string{"message", "jet.String"})

	return g
}
