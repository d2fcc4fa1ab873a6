package descriptorcompare

import (
	"os"
	"testing"

	"github.com/jensneuse/abstractlogger"
	"github.com/jensneuse/diffview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wundergraph/descriptor-roundtrip/pkg/descriptor"
	"github.com/wundergraph/descriptor-roundtrip/pkg/testing/goldie"
)

func functions(names ...string) *graph {
	g := newGraph("test")
	for _, name := range names {
		g.function(g.namespace, name, "")
	}
	return g
}

func genericFunction(typeParameters ...string) *graph {
	g := newGraph("test")
	f := g.function(g.namespace, "f", "")
	for _, name := range typeParameters {
		g.functionTypeParameter(f, name)
	}
	return g
}

func compareNamespaces(t *testing.T, left, right *graph, options ...Option) (Result, *Mismatch) {
	t.Helper()
	result, err := New(options...).CompareNamespaces(left.doc, right.doc, "test")
	if err == nil {
		return result, nil
	}
	mismatch, ok := AsMismatch(err)
	require.True(t, ok, "unexpected error: %v", err)
	return result, mismatch
}

func TestCompare(t *testing.T) {
	t.Run("graph equals itself", func(t *testing.T) {
		g := sample()
		result, err := Compare(g.doc, g.doc, g.namespace, g.namespace)
		require.NoError(t, err)
		assert.Equal(t, result.Visited, result.Trace.Count(TraceEventEnter))
		assert.NotZero(t, result.Trace.Count(TraceEventCycle))
	})
	t.Run("independently built graphs are equal", func(t *testing.T) {
		result, mismatch := compareNamespaces(t, sample(), sample())
		assert.Nil(t, mismatch)
		assert.NotZero(t, result.Visited)
	})
	t.Run("both null", func(t *testing.T) {
		g := sample()
		result, err := Compare(g.doc, g.doc, descriptor.NullNode, descriptor.NullNode)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Visited)
		assert.Empty(t, result.Trace)
	})
	t.Run("one null", func(t *testing.T) {
		g := sample()
		_, err := Compare(g.doc, g.doc, g.namespace, descriptor.NullNode)
		require.Error(t, err)
		mismatch, ok := AsMismatch(err)
		require.True(t, ok)
		assert.Equal(t, NullityMismatch, mismatch.Kind)
		assert.Equal(t, "namespace test", mismatch.Left)
		assert.Equal(t, Missing, mismatch.Right)
	})
	t.Run("root namespace missing on one side", func(t *testing.T) {
		_, err := CompareNamespaces(sample().doc, newGraph("other").doc, "test")
		assert.True(t, IsKind(err, NullityMismatch))
		mismatch, _ := AsMismatch(err)
		assert.Equal(t, "test", mismatch.Path.DotDelimitedString())
	})
	t.Run("different kinds", func(t *testing.T) {
		g := sample()
		printFunction := g.doc.FunctionsByName(g.namespace, []byte("print"))
		box, _ := g.doc.ClassifierByName(g.namespace, []byte("Box"))
		_, err := Compare(g.doc, g.doc, printFunction[0], box)
		mismatch, ok := AsMismatch(err)
		require.True(t, ok)
		assert.Equal(t, KindMismatch, mismatch.Kind)
		assert.Equal(t, descriptor.NodeKindFunction, mismatch.LeftKind)
		assert.Equal(t, descriptor.NodeKindClass, mismatch.RightKind)
		assert.Equal(t, "fun print(message: jet.String): jet.Unit", mismatch.Left)
		assert.Equal(t, "class Box<T>", mismatch.Right)
	})
}

func TestCompare_Mismatches(t *testing.T) {
	run := func(left, right func() *graph, expectedKind MismatchKind, expectedPath, expectedLeft, expectedRight string) func(t *testing.T) {
		return func(t *testing.T) {
			t.Helper()
			_, mismatch := compareNamespaces(t, left(), right())
			require.NotNil(t, mismatch)
			assert.Equal(t, expectedKind, mismatch.Kind)
			assert.Equal(t, expectedPath, mismatch.Path.DotDelimitedString())
			assert.Equal(t, expectedLeft, mismatch.Left)
			assert.Equal(t, expectedRight, mismatch.Right)

			_, swapped := compareNamespaces(t, right(), left())
			require.NotNil(t, swapped)
			assert.Equal(t, mismatch.Swapped(), swapped)
		}
	}

	t.Run("member count", run(
		func() *graph { return functions("f", "g") },
		func() *graph { return functions("f") },
		LengthMismatch, "test", "2", "1",
	))
	t.Run("member missing on one side", run(
		func() *graph { return functions("f", "g") },
		func() *graph { return functions("f", "h") },
		NullityMismatch, "test.g", "fun g()", Missing,
	))
	t.Run("members are matched by name", run(
		func() *graph { return functions("f", "g", "x") },
		func() *graph { return functions("g", "f", "y") },
		NullityMismatch, "test.x", "fun x()", Missing,
	))
	t.Run("type parameters are compared by position", run(
		func() *graph { return genericFunction("T", "U") },
		func() *graph { return genericFunction("U", "T") },
		NameMismatch, "test.f.typeParameters.0.name", `"T"`, `"U"`,
	))
	t.Run("type parameter count", run(
		func() *graph { return genericFunction("T", "U") },
		func() *graph { return genericFunction("T") },
		LengthMismatch, "test.f.typeParameters", "2", "1",
	))
	t.Run("overloads", run(
		func() *graph { return functions("foo") },
		func() *graph { return functions("foo", "foo") },
		OverloadAmbiguity, "test.foo", "functions: 1", "functions: 2",
	))
	t.Run("overloads on both sides", run(
		func() *graph { return functions("foo", "foo") },
		func() *graph { return functions("foo", "foo") },
		OverloadAmbiguity, "test.foo", "functions: 2", "functions: 2",
	))
	t.Run("classifiers sharing a name", run(
		func() *graph {
			g := newGraph("test")
			g.class(g.namespace, "A")
			return g
		},
		func() *graph {
			g := newGraph("test")
			g.class(g.namespace, "A")
			g.classifier(g.namespace, "A")
			return g
		},
		OverloadAmbiguity, "test.A", "classifiers: 1", "classifiers: 2",
	))
	t.Run("classifiers sharing a name on both sides", run(
		func() *graph {
			g := newGraph("test")
			g.class(g.namespace, "A")
			g.classifier(g.namespace, "A")
			return g
		},
		func() *graph {
			g := newGraph("test")
			g.class(g.namespace, "A")
			g.class(g.namespace, "A")
			return g
		},
		OverloadAmbiguity, "test.A", "classifiers: 2", "classifiers: 2",
	))
	t.Run("value parameter type", run(
		func() *graph {
			g := newGraph("test")
			g.function(g.namespace, "f", "", [2]string{"x", "jet.Int"})
			return g
		},
		func() *graph {
			g := newGraph("test")
			g.function(g.namespace, "f", "", [2]string{"x", "jet.Long"})
			return g
		},
		ScalarValueMismatch, "test.f.valueParameters.0.type.constructor", "jet.Int", "jet.Long",
	))
	t.Run("value parameter name", run(
		func() *graph {
			g := newGraph("test")
			g.function(g.namespace, "f", "", [2]string{"x", "jet.Int"})
			return g
		},
		func() *graph {
			g := newGraph("test")
			g.function(g.namespace, "f", "", [2]string{"y", "jet.Int"})
			return g
		},
		NameMismatch, "test.f.valueParameters.0.name", `"x"`, `"y"`,
	))
	t.Run("return type missing", run(
		func() *graph {
			g := newGraph("test")
			g.function(g.namespace, "f", "jet.Unit")
			return g
		},
		func() *graph { return functions("f") },
		NullityMismatch, "test.f.returnType", "jet.Unit", Missing,
	))
	t.Run("nullability of a type", run(
		func() *graph {
			g := newGraph("test")
			f := g.function(g.namespace, "f", "")
			g.doc.SetFunctionReturnType(f, g.external("jet.Int", false))
			return g
		},
		func() *graph {
			g := newGraph("test")
			f := g.function(g.namespace, "f", "")
			g.doc.SetFunctionReturnType(f, g.external("jet.Int", true))
			return g
		},
		ScalarValueMismatch, "test.f.returnType.nullable", "false", "true",
	))
	t.Run("class modality", run(
		func() *graph {
			g := newGraph("test")
			g.class(g.namespace, "A")
			return g
		},
		func() *graph {
			g := newGraph("test")
			a := g.class(g.namespace, "A")
			g.doc.Classes[a].Modality = descriptor.ModalityOpen
			return g
		},
		ScalarValueMismatch, "test.A.modality", `"final"`, `"open"`,
	))
	t.Run("class member", run(
		func() *graph {
			g := newGraph("test")
			g.function(classNode(g.class(g.namespace, "A")), "f", "")
			return g
		},
		func() *graph {
			g := newGraph("test")
			g.class(g.namespace, "A")
			return g
		},
		LengthMismatch, "test.A", "1", "0",
	))
	t.Run("class and plain classifier", run(
		func() *graph {
			g := newGraph("test")
			g.class(g.namespace, "A")
			return g
		},
		func() *graph {
			g := newGraph("test")
			g.classifier(g.namespace, "A")
			return g
		},
		KindMismatch, "test.A", "class A", "classifier test.A",
	))
	t.Run("nested namespace as member", run(
		func() *graph {
			g := functions("f")
			g.doc.AddMember(g.namespace, descriptor.Node{Kind: descriptor.NodeKindNamespace, Ref: g.doc.AddNamespace("inner")})
			return g
		},
		func() *graph { return functions("f", "g") },
		UnknownMemberKind, "test.inner", "namespace", Missing,
	))
}

func TestCompare_Cycles(t *testing.T) {
	t.Run("self referencing originals", func(t *testing.T) {
		result, mismatch := compareNamespaces(t, functions("f"), functions("f"))
		require.Nil(t, mismatch)
		require.Equal(t, 1, result.Trace.Count(TraceEventCycle))
		last := result.Trace[len(result.Trace)-1]
		assert.Equal(t, TraceEventCycle, last.Event)
		assert.Equal(t, "test.f.original", last.Path.DotDelimitedString())
	})
	t.Run("containing declarations point back up", func(t *testing.T) {
		options := []Option{
			WithComparedProperties(descriptor.NodeKindClass, descriptor.PropertyContainingDeclaration, descriptor.PropertyOriginal),
			WithComparedProperties(descriptor.NodeKindFunction, descriptor.PropertyContainingDeclaration),
			WithComparedProperties(descriptor.NodeKindTypeParameter, descriptor.PropertyContainingDeclaration),
			WithComparedProperties(descriptor.NodeKindValueParameter, descriptor.PropertyContainingDeclaration, descriptor.PropertyOriginal),
		}
		result, mismatch := compareNamespaces(t, sample(), sample(), options...)
		require.Nil(t, mismatch)
		_, defaultMismatch := compareNamespaces(t, sample(), sample())
		require.Nil(t, defaultMismatch)
		assert.Equal(t, result.Visited, result.Trace.Count(TraceEventEnter))
	})
	t.Run("upper bound refers to its own type parameter", func(t *testing.T) {
		result, mismatch := compareNamespaces(t, sample(), sample(), WithStructuralTypeConstructors())
		require.Nil(t, mismatch)
		assert.NotZero(t, result.Trace.Count(TraceEventCycle))
	})
	t.Run("number of visited pairs is bounded", func(t *testing.T) {
		left, right := sample(), sample()
		result, mismatch := compareNamespaces(t, left, right, WithStructuralTypeConstructors())
		require.Nil(t, mismatch)
		assert.LessOrEqual(t, result.Visited, nodeCount(left.doc)*nodeCount(right.doc))
	})
}

func nodeCount(doc *descriptor.Document) int {
	return len(doc.Namespaces) + len(doc.Classifiers) + len(doc.Classes) + len(doc.Functions) +
		len(doc.TypeParameters) + len(doc.ValueParameters) + len(doc.Types) + len(doc.TypeConstructors) +
		len(doc.TypeProjections)
}

func TestCompare_SkipList(t *testing.T) {
	left := func() *graph {
		g := newGraph("test")
		g.function(g.namespace, "f", "", [2]string{"x", "jet.Int"})
		return g
	}
	right := func() *graph {
		g := left()
		g.doc.ValueParameters[0].ContainingDeclaration = descriptor.NullNode
		return g
	}

	t.Run("skipped property is never compared", func(t *testing.T) {
		result, mismatch := compareNamespaces(t, left(), right())
		require.Nil(t, mismatch)
		for _, entry := range result.Trace {
			assert.NotEqual(t, descriptor.PropertyContainingDeclaration, entry.Path[len(entry.Path)-1].Name)
		}
	})
	t.Run("compared once removed from the skip list", func(t *testing.T) {
		_, mismatch := compareNamespaces(t, left(), right(),
			WithComparedProperties(descriptor.NodeKindValueParameter, descriptor.PropertyContainingDeclaration),
		)
		require.NotNil(t, mismatch)
		assert.Equal(t, NullityMismatch, mismatch.Kind)
		assert.Equal(t, "test.f.valueParameters.0.containingDeclaration", mismatch.Path.DotDelimitedString())
		assert.Equal(t, "fun f(x: jet.Int)", mismatch.Left)
		assert.Equal(t, Missing, mismatch.Right)
	})
	t.Run("additional skipped property", func(t *testing.T) {
		g := newGraph("test")
		g.function(g.namespace, "f", "", [2]string{"y", "jet.Int"})
		_, mismatch := compareNamespaces(t, left(), g)
		require.NotNil(t, mismatch)

		_, mismatch = compareNamespaces(t, left(), g, WithSkippedProperties(descriptor.NodeKindValueParameter, descriptor.PropertyName))
		assert.Nil(t, mismatch)
	})
	t.Run("replaced skip list", func(t *testing.T) {
		_, mismatch := compareNamespaces(t, left(), right(), WithSkipList(SkipList{}))
		require.NotNil(t, mismatch)
		assert.Equal(t, "test.f.valueParameters.0.containingDeclaration", mismatch.Path.DotDelimitedString())
	})
	t.Run("default skip list is not shared", func(t *testing.T) {
		New(WithComparedProperties(descriptor.NodeKindValueParameter, descriptor.PropertyContainingDeclaration))
		assert.True(t, DefaultSkipList().Skips(descriptor.NodeKindValueParameter, descriptor.PropertyContainingDeclaration))
		_, mismatch := compareNamespaces(t, left(), right())
		assert.Nil(t, mismatch)
	})
}

func TestCompare_TypeConstructors(t *testing.T) {
	withParameter := func() *graph {
		g := newGraph("test")
		g.function(g.namespace, "f", "", [2]string{"x", "jet.List"})
		constructor := g.externals["jet.List"]
		g.doc.TypeConstructors[constructor].Parameters = append(g.doc.TypeConstructors[constructor].Parameters,
			g.doc.AddTypeParameter("E", descriptor.VarianceOut, false))
		return g
	}
	withoutParameter := func() *graph {
		g := newGraph("test")
		g.function(g.namespace, "f", "", [2]string{"x", "jet.List"})
		return g
	}

	t.Run("compared by rendering", func(t *testing.T) {
		_, mismatch := compareNamespaces(t, withParameter(), withoutParameter())
		assert.Nil(t, mismatch)
	})
	t.Run("compared structurally", func(t *testing.T) {
		_, mismatch := compareNamespaces(t, withParameter(), withoutParameter(), WithStructuralTypeConstructors())
		require.NotNil(t, mismatch)
		assert.Equal(t, LengthMismatch, mismatch.Kind)
		assert.Equal(t, "test.f.valueParameters.0.type.constructor.parameters", mismatch.Path.DotDelimitedString())
	})
}

func TestCompare_Trace(t *testing.T) {
	build := func() *graph {
		g := newGraph("test")
		g.function(g.namespace, "f", "jet.Unit", [2]string{"x", "jet.Int"})
		return g
	}
	result, mismatch := compareNamespaces(t, build(), build())
	require.Nil(t, mismatch)

	actual := []byte(result.Trace.String())
	goldie.Assert(t, "trace", actual)
	if t.Failed() {
		fixture, err := os.ReadFile("./testdata/trace.golden")
		require.NoError(t, err)

		diffview.NewGoland().DiffViewBytes("trace", fixture, actual)
	}
}

func TestCompare_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := abstractlogger.NewZapLogger(zap.New(core), abstractlogger.DebugLevel)

	_, mismatch := compareNamespaces(t, functions("f", "g"), functions("f", "h"), WithLogger(logger))
	require.NotNil(t, mismatch)

	assert.NotZero(t, logs.FilterMessage("descriptorcompare.enter").Len())
	mismatches := logs.FilterMessage("descriptorcompare.mismatch").All()
	require.Len(t, mismatches, 1)
	assert.Equal(t, string(NullityMismatch), mismatches[0].ContextMap()["kind"])
	assert.Equal(t, "test.g", mismatches[0].ContextMap()["path"])
}

func TestMismatch_Error(t *testing.T) {
	_, mismatch := compareNamespaces(t, genericFunction("T"), genericFunction("U"))
	require.NotNil(t, mismatch)
	assert.Equal(t,
		`descriptorcompare: NAME_MISMATCH at test.f.typeParameters.0.name (typeParameter/typeParameter.name): left: "T", right: "U"`,
		mismatch.Error(),
	)
	var err error = mismatch
	assert.True(t, IsKind(err, NameMismatch))
	assert.False(t, IsKind(err, KindMismatch))
}
