package descriptor

type ClassKind string

const (
	ClassKindClass       ClassKind = "class"
	ClassKindTrait       ClassKind = "trait"
	ClassKindEnumClass   ClassKind = "enumClass"
	ClassKindEnumEntry   ClassKind = "enumEntry"
	ClassKindObject      ClassKind = "object"
	ClassKindAnnotation  ClassKind = "annotationClass"
	ClassKindUnspecified ClassKind = ""
)

type Modality string

const (
	ModalityFinal    Modality = "final"
	ModalityOpen     Modality = "open"
	ModalityAbstract Modality = "abstract"
)

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityInternal  Visibility = "internal"
	VisibilityPrivate   Visibility = "private"
)

type Namespace struct {
	Name                  ByteSliceReference
	ContainingDeclaration Node
	Members               []Node // classifiers and functions in declaration order
}

// Classifier is a classifier that is not a class, e.g. a type alias or a classifier
// referenced by a type but declared outside the Document.
type Classifier struct {
	Name                  ByteSliceReference
	ContainingDeclaration Node
}

type Class struct {
	Name                  ByteSliceReference
	ClassKind             ClassKind
	Modality              Modality
	Visibility            Visibility
	TypeParameters        []int
	Supertypes            []int // refs to Types
	DefaultType           int
	TypeConstructor       int
	Members               []Node
	ContainingDeclaration Node
	Original              Node
}

type Function struct {
	Name                  ByteSliceReference
	Visibility            Visibility
	Modality              Modality
	TypeParameters        []int
	ValueParameters       []int
	ReceiverType          int // InvalidRef for functions without receiver
	ReturnType            int
	ContainingDeclaration Node
	Original              Node
}

func (d *Document) AddNamespace(name string) (ref int) {
	d.Namespaces = append(d.Namespaces, Namespace{
		Name:                  d.Input.AppendInputString(name),
		ContainingDeclaration: NullNode,
	})
	return len(d.Namespaces) - 1
}

// AddRootNamespace adds a namespace and registers it as a root node.
func (d *Document) AddRootNamespace(name string) Node {
	node := Node{Kind: NodeKindNamespace, Ref: d.AddNamespace(name)}
	d.AddRootNode(node)
	return node
}

func (d *Document) NamespaceNameString(ref int) string {
	return d.Input.ByteSliceString(d.Namespaces[ref].Name)
}

func (d *Document) AddClassifier(name string) (ref int) {
	d.Classifiers = append(d.Classifiers, Classifier{
		Name:                  d.Input.AppendInputString(name),
		ContainingDeclaration: NullNode,
	})
	return len(d.Classifiers) - 1
}

// AddClass adds a final public class together with its type constructor and default type.
func (d *Document) AddClass(name string, kind ClassKind) (ref int) {
	ref = len(d.Classes)
	self := Node{Kind: NodeKindClass, Ref: ref}
	constructor := d.AddTypeConstructor(self)
	d.Classes = append(d.Classes, Class{
		Name:                  d.Input.AppendInputString(name),
		ClassKind:             kind,
		Modality:              ModalityFinal,
		Visibility:            VisibilityPublic,
		DefaultType:           d.AddType(constructor, false),
		TypeConstructor:       constructor,
		ContainingDeclaration: NullNode,
		Original:              self,
	})
	return ref
}

func (d *Document) ClassNameString(ref int) string {
	return d.Input.ByteSliceString(d.Classes[ref].Name)
}

// AddClassTypeParameter appends a type parameter to the class, its type constructor and its default type.
func (d *Document) AddClassTypeParameter(classRef, typeParameterRef int) {
	class := &d.Classes[classRef]
	d.TypeParameters[typeParameterRef].Index = len(class.TypeParameters)
	d.TypeParameters[typeParameterRef].ContainingDeclaration = Node{Kind: NodeKindClass, Ref: classRef}
	class.TypeParameters = append(class.TypeParameters, typeParameterRef)
	d.TypeConstructors[class.TypeConstructor].Parameters = append(d.TypeConstructors[class.TypeConstructor].Parameters, typeParameterRef)
	argument := d.AddTypeProjection(ProjectionKindInvariant, d.TypeParameters[typeParameterRef].DefaultType)
	d.Types[class.DefaultType].Arguments = append(d.Types[class.DefaultType].Arguments, argument)
}

func (d *Document) AddClassSupertype(classRef, typeRef int) {
	class := &d.Classes[classRef]
	class.Supertypes = append(class.Supertypes, typeRef)
	d.TypeConstructors[class.TypeConstructor].Supertypes = append(d.TypeConstructors[class.TypeConstructor].Supertypes, typeRef)
}

// AddFunction adds a public final function returning nothing yet. The function is its own original.
func (d *Document) AddFunction(name string) (ref int) {
	ref = len(d.Functions)
	d.Functions = append(d.Functions, Function{
		Name:                  d.Input.AppendInputString(name),
		Visibility:            VisibilityPublic,
		Modality:              ModalityFinal,
		ReceiverType:          InvalidRef,
		ReturnType:            InvalidRef,
		ContainingDeclaration: NullNode,
		Original:              Node{Kind: NodeKindFunction, Ref: ref},
	})
	return ref
}

func (d *Document) FunctionNameString(ref int) string {
	return d.Input.ByteSliceString(d.Functions[ref].Name)
}

func (d *Document) AddFunctionTypeParameter(functionRef, typeParameterRef int) {
	function := &d.Functions[functionRef]
	d.TypeParameters[typeParameterRef].Index = len(function.TypeParameters)
	d.TypeParameters[typeParameterRef].ContainingDeclaration = Node{Kind: NodeKindFunction, Ref: functionRef}
	function.TypeParameters = append(function.TypeParameters, typeParameterRef)
}

func (d *Document) AddFunctionValueParameter(functionRef, valueParameterRef int) {
	function := &d.Functions[functionRef]
	d.ValueParameters[valueParameterRef].Index = len(function.ValueParameters)
	d.ValueParameters[valueParameterRef].ContainingDeclaration = Node{Kind: NodeKindFunction, Ref: functionRef}
	function.ValueParameters = append(function.ValueParameters, valueParameterRef)
}

func (d *Document) SetFunctionReturnType(functionRef, typeRef int) {
	d.Functions[functionRef].ReturnType = typeRef
}

func (d *Document) SetFunctionReceiverType(functionRef, typeRef int) {
	d.Functions[functionRef].ReceiverType = typeRef
}
