// Package descriptorprinter renders descriptor documents as declaration signatures.
package descriptorprinter

import (
	"bytes"
	"io"
	"strings"

	"github.com/wundergraph/descriptor-roundtrip/pkg/descriptor"
)

// Print writes every root node of document.
func Print(document *descriptor.Document, out io.Writer) error {
	printer := Printer{}
	return printer.Print(document, out)
}

func PrintString(document *descriptor.Document) (string, error) {
	buff := &bytes.Buffer{}
	err := Print(document, buff)
	out := buff.String()
	return out, err
}

// PrintNode writes a single line rendering of node: the header of containers, the signature of everything else.
func PrintNode(document *descriptor.Document, node descriptor.Node, out io.Writer) error {
	printer := Printer{}
	printer.document = document
	printer.out = out
	printer.printHeader(node)
	return printer.err
}

func PrintNodeString(document *descriptor.Document, node descriptor.Node) string {
	buff := &bytes.Buffer{}
	_ = PrintNode(document, node, buff)
	return buff.String()
}

type Printer struct {
	document *descriptor.Document
	out      io.Writer
	err      error
	depth    int
}

func (p *Printer) Print(document *descriptor.Document, out io.Writer) error {
	p.document = document
	p.out = out
	p.err = nil
	p.depth = 0
	for i := range document.RootNodes {
		if i != 0 {
			p.write("\n")
		}
		p.printDeclaration(document.RootNodes[i])
	}
	return p.err
}

func (p *Printer) write(data string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.out, data)
}

func (p *Printer) must(err error) {
	if p.err != nil {
		return
	}
	p.err = err
}

func (p *Printer) indent() {
	p.write(strings.Repeat("    ", p.depth))
}

func (p *Printer) printDeclaration(node descriptor.Node) {
	p.indent()
	p.printHeader(node)
	members := p.document.Members(node)
	if node.Kind == descriptor.NodeKindNamespace || len(members) != 0 {
		p.write(" {\n")
		p.depth++
		for _, member := range members {
			p.printDeclaration(member)
		}
		p.depth--
		p.indent()
		p.write("}")
	}
	p.write("\n")
}

func (p *Printer) printHeader(node descriptor.Node) {
	if node.IsNull() {
		p.write("null")
		return
	}
	switch node.Kind {
	case descriptor.NodeKindNamespace:
		p.write("namespace ")
		p.write(p.document.NamespaceNameString(node.Ref))
	case descriptor.NodeKindClassifier:
		p.write("classifier ")
		p.write(p.document.QualifiedName(node))
	case descriptor.NodeKindClass:
		p.printClassHeader(node.Ref)
	case descriptor.NodeKindFunction:
		p.printFunction(node.Ref)
	case descriptor.NodeKindTypeParameter:
		p.printTypeParameter(node.Ref)
	case descriptor.NodeKindValueParameter:
		p.printValueParameter(node.Ref)
	case descriptor.NodeKindType:
		p.must(p.document.PrintType(node.Ref, p.out))
	case descriptor.NodeKindTypeConstructor:
		p.must(p.document.PrintTypeConstructor(node.Ref, p.out))
	case descriptor.NodeKindTypeProjection:
		p.must(p.document.PrintTypeProjection(node.Ref, p.out))
	default:
		p.write(node.Kind.String())
	}
}

func (p *Printer) printClassHeader(ref int) {
	class := p.document.Classes[ref]
	if class.Visibility != descriptor.VisibilityPublic && class.Visibility != "" {
		p.write(string(class.Visibility))
		p.write(" ")
	}
	if class.Modality != descriptor.ModalityFinal && class.Modality != "" {
		p.write(string(class.Modality))
		p.write(" ")
	}
	switch class.ClassKind {
	case descriptor.ClassKindTrait:
		p.write("trait ")
	case descriptor.ClassKindEnumClass:
		p.write("enum class ")
	case descriptor.ClassKindEnumEntry:
		p.write("enum entry ")
	case descriptor.ClassKindObject:
		p.write("object ")
	case descriptor.ClassKindAnnotation:
		p.write("annotation class ")
	default:
		p.write("class ")
	}
	p.write(p.document.ClassNameString(ref))
	p.printTypeParameters(class.TypeParameters)
	for i, supertype := range class.Supertypes {
		if i == 0 {
			p.write(" : ")
		} else {
			p.write(", ")
		}
		p.must(p.document.PrintType(supertype, p.out))
	}
}

func (p *Printer) printFunction(ref int) {
	function := p.document.Functions[ref]
	if function.Visibility != descriptor.VisibilityPublic && function.Visibility != "" {
		p.write(string(function.Visibility))
		p.write(" ")
	}
	if function.Modality != descriptor.ModalityFinal && function.Modality != "" {
		p.write(string(function.Modality))
		p.write(" ")
	}
	p.write("fun ")
	if len(function.TypeParameters) != 0 {
		p.printTypeParameters(function.TypeParameters)
		p.write(" ")
	}
	if function.ReceiverType != descriptor.InvalidRef {
		p.must(p.document.PrintType(function.ReceiverType, p.out))
		p.write(".")
	}
	p.write(p.document.FunctionNameString(ref))
	p.write("(")
	for i, valueParameter := range function.ValueParameters {
		if i != 0 {
			p.write(", ")
		}
		p.printValueParameter(valueParameter)
	}
	p.write(")")
	if function.ReturnType != descriptor.InvalidRef {
		p.write(": ")
		p.must(p.document.PrintType(function.ReturnType, p.out))
	}
}

func (p *Printer) printTypeParameters(refs []int) {
	if len(refs) == 0 {
		return
	}
	p.write("<")
	for i, ref := range refs {
		if i != 0 {
			p.write(", ")
		}
		p.printTypeParameter(ref)
	}
	p.write(">")
}

func (p *Printer) printTypeParameter(ref int) {
	typeParameter := p.document.TypeParameters[ref]
	if typeParameter.Reified {
		p.write("reified ")
	}
	if typeParameter.Variance != descriptor.VarianceInvariant && typeParameter.Variance != "" {
		p.write(string(typeParameter.Variance))
		p.write(" ")
	}
	p.write(p.document.TypeParameterNameString(ref))
	for i, bound := range typeParameter.UpperBounds {
		if i == 0 {
			p.write(" : ")
		} else {
			p.write(" & ")
		}
		p.must(p.document.PrintType(bound, p.out))
	}
}

func (p *Printer) printValueParameter(ref int) {
	valueParameter := p.document.ValueParameters[ref]
	if valueParameter.Vararg {
		p.write("vararg ")
	}
	if valueParameter.Ref {
		p.write("ref ")
	}
	p.write(p.document.ValueParameterNameString(ref))
	if valueParameter.Type != descriptor.InvalidRef {
		p.write(": ")
		p.must(p.document.PrintType(valueParameter.Type, p.out))
	}
	if valueParameter.HasDefaultValue {
		p.write(" = ...")
	}
}
