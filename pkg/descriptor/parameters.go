package descriptor

type Variance string

const (
	VarianceInvariant Variance = "invariant"
	VarianceIn        Variance = "in"
	VarianceOut       Variance = "out"
)

type TypeParameter struct {
	Name                  ByteSliceReference
	Index                 int
	Variance              Variance
	Reified               bool
	UpperBounds           []int // refs to Types
	DefaultType           int
	TypeConstructor       int
	ContainingDeclaration Node
	Original              Node
}

type ValueParameter struct {
	Name                  ByteSliceReference
	Index                 int
	Type                  int
	HasDefaultValue       bool
	Vararg                bool
	Ref                   bool
	ContainingDeclaration Node
	Original              Node
}

// AddTypeParameter adds a type parameter together with its type constructor and default type.
// The type parameter is its own original.
func (d *Document) AddTypeParameter(name string, variance Variance, reified bool) (ref int) {
	ref = len(d.TypeParameters)
	self := Node{Kind: NodeKindTypeParameter, Ref: ref}
	constructor := d.AddTypeConstructor(self)
	d.TypeParameters = append(d.TypeParameters, TypeParameter{
		Name:                  d.Input.AppendInputString(name),
		Variance:              variance,
		Reified:               reified,
		DefaultType:           d.AddType(constructor, false),
		TypeConstructor:       constructor,
		ContainingDeclaration: NullNode,
		Original:              self,
	})
	return ref
}

func (d *Document) TypeParameterNameString(ref int) string {
	return d.Input.ByteSliceString(d.TypeParameters[ref].Name)
}

func (d *Document) AddTypeParameterUpperBound(typeParameterRef, typeRef int) {
	typeParameter := &d.TypeParameters[typeParameterRef]
	typeParameter.UpperBounds = append(typeParameter.UpperBounds, typeRef)
	d.TypeConstructors[typeParameter.TypeConstructor].Supertypes = append(d.TypeConstructors[typeParameter.TypeConstructor].Supertypes, typeRef)
}

// AddValueParameter adds a value parameter of the given type. The value parameter is its own original.
func (d *Document) AddValueParameter(name string, typeRef int) (ref int) {
	ref = len(d.ValueParameters)
	d.ValueParameters = append(d.ValueParameters, ValueParameter{
		Name:                  d.Input.AppendInputString(name),
		Type:                  typeRef,
		ContainingDeclaration: NullNode,
		Original:              Node{Kind: NodeKindValueParameter, Ref: ref},
	})
	return ref
}

func (d *Document) ValueParameterNameString(ref int) string {
	return d.Input.ByteSliceString(d.ValueParameters[ref].Name)
}
