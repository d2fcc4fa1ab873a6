package descriptor

import (
	"bytes"
	"io"
)

type ProjectionKind string

const (
	ProjectionKindInvariant ProjectionKind = "invariant"
	ProjectionKindIn        ProjectionKind = "in"
	ProjectionKindOut       ProjectionKind = "out"
	ProjectionKindStar      ProjectionKind = "star"
)

type Type struct {
	Constructor int   // ref to a TypeConstructor
	Arguments   []int // refs to TypeProjections
	Nullable    bool
}

type TypeConstructor struct {
	Declaration Node  // class, classifier or type parameter
	Parameters  []int // refs to TypeParameters
	Supertypes  []int // refs to Types
}

type TypeProjection struct {
	ProjectionKind ProjectionKind
	Type           int // InvalidRef for star projections without a bound
}

func (d *Document) AddType(constructor int, nullable bool, arguments ...int) (ref int) {
	d.Types = append(d.Types, Type{
		Constructor: constructor,
		Arguments:   arguments,
		Nullable:    nullable,
	})
	return len(d.Types) - 1
}

func (d *Document) AddTypeConstructor(declaration Node) (ref int) {
	d.TypeConstructors = append(d.TypeConstructors, TypeConstructor{
		Declaration: declaration,
	})
	return len(d.TypeConstructors) - 1
}

func (d *Document) AddTypeProjection(kind ProjectionKind, typeRef int) (ref int) {
	d.TypeProjections = append(d.TypeProjections, TypeProjection{
		ProjectionKind: kind,
		Type:           typeRef,
	})
	return len(d.TypeProjections) - 1
}

// QualifiedName joins the names of node and its containing namespaces and classes with dots.
// Type parameters render with their bare name.
func (d *Document) QualifiedName(node Node) string {
	if node.IsNull() {
		return ""
	}
	if node.Kind == NodeKindTypeParameter {
		return d.TypeParameterNameString(node.Ref)
	}
	var segments []string
	for current := node; !current.IsNull(); current = d.ContainingDeclaration(current) {
		if current.Kind != NodeKindNamespace && !current.Kind.IsClassifier() {
			break
		}
		name, _ := d.NodeName(current)
		if len(name) == 0 {
			continue
		}
		segments = append(segments, name.String())
	}
	buf := bytes.Buffer{}
	for i := len(segments) - 1; i >= 0; i-- {
		buf.WriteString(segments[i])
		if i != 0 {
			buf.WriteByte('.')
		}
	}
	return buf.String()
}

// PrintTypeConstructor writes the canonical rendering of a type constructor: the qualified name of its declaration.
func (d *Document) PrintTypeConstructor(ref int, w io.Writer) error {
	_, err := io.WriteString(w, d.QualifiedName(d.TypeConstructors[ref].Declaration))
	return err
}

func (d *Document) TypeConstructorString(ref int) string {
	buf := &bytes.Buffer{}
	_ = d.PrintTypeConstructor(ref, buf)
	return buf.String()
}

func (d *Document) PrintType(ref int, w io.Writer) error {
	err := d.PrintTypeConstructor(d.Types[ref].Constructor, w)
	if err != nil {
		return err
	}
	if len(d.Types[ref].Arguments) != 0 {
		if _, err = io.WriteString(w, "<"); err != nil {
			return err
		}
		for i, argument := range d.Types[ref].Arguments {
			if i != 0 {
				if _, err = io.WriteString(w, ", "); err != nil {
					return err
				}
			}
			if err = d.PrintTypeProjection(argument, w); err != nil {
				return err
			}
		}
		if _, err = io.WriteString(w, ">"); err != nil {
			return err
		}
	}
	if d.Types[ref].Nullable {
		_, err = io.WriteString(w, "?")
	}
	return err
}

func (d *Document) TypeString(ref int) string {
	buf := &bytes.Buffer{}
	_ = d.PrintType(ref, buf)
	return buf.String()
}

func (d *Document) PrintTypeProjection(ref int, w io.Writer) error {
	projection := d.TypeProjections[ref]
	switch projection.ProjectionKind {
	case ProjectionKindStar:
		_, err := io.WriteString(w, "*")
		return err
	case ProjectionKindIn, ProjectionKindOut:
		if _, err := io.WriteString(w, string(projection.ProjectionKind)+" "); err != nil {
			return err
		}
	}
	if projection.Type == InvalidRef {
		return nil
	}
	return d.PrintType(projection.Type, w)
}

func (d *Document) TypeProjectionString(ref int) string {
	buf := &bytes.Buffer{}
	_ = d.PrintTypeProjection(ref, buf)
	return buf.String()
}
