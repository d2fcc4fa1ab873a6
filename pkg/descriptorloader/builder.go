package descriptorloader

import (
	"github.com/buger/jsonparser"
	"github.com/pkg/errors"

	"github.com/wundergraph/descriptor-roundtrip/pkg/descriptor"
)

const (
	namespacesKey      = "namespaces"
	membersKey         = "members"
	nameKey            = "name"
	kindKey            = "kind"
	classKindKey       = "classKind"
	modalityKey        = "modality"
	visibilityKey      = "visibility"
	typeParametersKey  = "typeParameters"
	varianceKey        = "variance"
	reifiedKey         = "reified"
	upperBoundsKey     = "upperBounds"
	supertypesKey      = "supertypes"
	valueParametersKey = "valueParameters"
	typeKey            = "type"
	hasDefaultValueKey = "hasDefaultValue"
	varargKey          = "vararg"
	refKey             = "ref"
	receiverTypeKey    = "receiverType"
	returnTypeKey      = "returnType"
	constructorKey     = "constructor"
	nullableKey        = "nullable"
	argumentsKey       = "arguments"
	projectionKey      = "projection"
)

// scope resolves type names used inside a declaration.
type scope struct {
	parent *scope
	// qualified name of the enclosing namespace or class
	prefix         string
	typeParameters map[string]int
}

func (s *scope) typeParameter(name string) (int, bool) {
	for current := s; current != nil; current = current.parent {
		if ref, ok := current.typeParameters[name]; ok {
			return ref, true
		}
	}
	return descriptor.InvalidRef, false
}

func (s *scope) qualify(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "." + name
}

// pending is a declaration whose types are resolved once every class of the dump is known.
type pending struct {
	node  descriptor.Node
	data  []byte
	scope *scope
}

// builder turns a normalized dump into a Document in two passes. The first pass declares
// namespaces, classes, classifiers and functions in dump order, the second one resolves types.
type builder struct {
	doc       *descriptor.Document
	classes   map[string]int
	externals map[string]int
	pending   []pending
}

func newBuilder() *builder {
	return &builder{
		doc:       descriptor.NewDocument(),
		classes:   map[string]int{},
		externals: map[string]int{},
	}
}

func (b *builder) build(data []byte) error {
	err := arrayEach(data, func(value []byte, _ jsonparser.ValueType) error {
		name, err := extractString(nameKey, value)
		if err != nil {
			return err
		}
		namespace := b.doc.AddRootNamespace(name)
		return b.declareMembers(value, namespace, &scope{prefix: name})
	}, namespacesKey)
	if err != nil {
		return err
	}
	for i := range b.pending {
		if err := b.complete(b.pending[i]); err != nil {
			return errors.Wrapf(err, "%s", b.doc.QualifiedName(b.pending[i].node))
		}
	}
	return nil
}

func (b *builder) declareMembers(data []byte, container descriptor.Node, s *scope) error {
	return arrayEach(data, func(value []byte, _ jsonparser.ValueType) error {
		kind, err := extractString(kindKey, value)
		if err != nil {
			return err
		}
		name, err := extractString(nameKey, value)
		if err != nil {
			return err
		}
		switch kind {
		case "classifier":
			b.doc.AddMember(container, descriptor.Node{Kind: descriptor.NodeKindClassifier, Ref: b.doc.AddClassifier(name)})
			return nil
		case "class":
			return b.declareClass(value, container, name, s)
		case "function":
			ref := b.doc.AddFunction(name)
			b.doc.Functions[ref].Modality = descriptor.Modality(optionalString(modalityKey, value, string(descriptor.ModalityFinal)))
			b.doc.Functions[ref].Visibility = descriptor.Visibility(optionalString(visibilityKey, value, string(descriptor.VisibilityPublic)))
			node := descriptor.Node{Kind: descriptor.NodeKindFunction, Ref: ref}
			b.doc.AddMember(container, node)
			b.pending = append(b.pending, pending{node: node, data: value, scope: s})
			return nil
		default:
			return errors.Errorf("member %s: unknown kind %q", name, kind)
		}
	}, membersKey)
}

func (b *builder) declareClass(data []byte, container descriptor.Node, name string, s *scope) error {
	ref := b.doc.AddClass(name, descriptor.ClassKind(optionalString(classKindKey, data, string(descriptor.ClassKindClass))))
	b.doc.Classes[ref].Modality = descriptor.Modality(optionalString(modalityKey, data, string(descriptor.ModalityFinal)))
	b.doc.Classes[ref].Visibility = descriptor.Visibility(optionalString(visibilityKey, data, string(descriptor.VisibilityPublic)))
	node := descriptor.Node{Kind: descriptor.NodeKindClass, Ref: ref}
	b.doc.AddMember(container, node)

	qualified := s.qualify(name)
	if _, exists := b.classes[qualified]; exists {
		return errors.Errorf("class %s declared twice", qualified)
	}
	b.classes[qualified] = ref

	classScope := &scope{parent: s, prefix: qualified, typeParameters: map[string]int{}}
	err := b.declareTypeParameters(data, classScope, func(typeParameter int) {
		b.doc.AddClassTypeParameter(ref, typeParameter)
	})
	if err != nil {
		return err
	}
	b.pending = append(b.pending, pending{node: node, data: data, scope: classScope})
	return b.declareMembers(data, node, classScope)
}

func (b *builder) declareTypeParameters(data []byte, s *scope, add func(typeParameter int)) error {
	return arrayEach(data, func(value []byte, _ jsonparser.ValueType) error {
		name, err := extractString(nameKey, value)
		if err != nil {
			return err
		}
		ref := b.doc.AddTypeParameter(name,
			descriptor.Variance(optionalString(varianceKey, value, string(descriptor.VarianceInvariant))),
			optionalBool(reifiedKey, value),
		)
		add(ref)
		s.typeParameters[name] = ref
		return nil
	}, typeParametersKey)
}

func (b *builder) complete(p pending) error {
	switch p.node.Kind {
	case descriptor.NodeKindClass:
		if err := b.completeTypeParameters(p.data, b.doc.Classes[p.node.Ref].TypeParameters, p.scope); err != nil {
			return err
		}
		return arrayEach(p.data, func(value []byte, dataType jsonparser.ValueType) error {
			supertype, err := b.typeRef(value, dataType, p.scope)
			if err != nil {
				return err
			}
			b.doc.AddClassSupertype(p.node.Ref, supertype)
			return nil
		}, supertypesKey)
	case descriptor.NodeKindFunction:
		return b.completeFunction(p.node.Ref, p.data, p.scope)
	default:
		return nil
	}
}

func (b *builder) completeTypeParameters(data []byte, refs []int, s *scope) error {
	i := 0
	return arrayEach(data, func(value []byte, _ jsonparser.ValueType) error {
		typeParameter := refs[i]
		i++
		return arrayEach(value, func(bound []byte, dataType jsonparser.ValueType) error {
			ref, err := b.typeRef(bound, dataType, s)
			if err != nil {
				return err
			}
			b.doc.AddTypeParameterUpperBound(typeParameter, ref)
			return nil
		}, upperBoundsKey)
	}, typeParametersKey)
}

func (b *builder) completeFunction(ref int, data []byte, parent *scope) error {
	s := &scope{parent: parent, prefix: parent.prefix, typeParameters: map[string]int{}}
	err := b.declareTypeParameters(data, s, func(typeParameter int) {
		b.doc.AddFunctionTypeParameter(ref, typeParameter)
	})
	if err != nil {
		return err
	}
	if err := b.completeTypeParameters(data, b.doc.Functions[ref].TypeParameters, s); err != nil {
		return err
	}

	receiverType, err := b.optionalTypeRef(receiverTypeKey, data, s)
	if err != nil {
		return err
	}
	b.doc.SetFunctionReceiverType(ref, receiverType)

	err = arrayEach(data, func(value []byte, _ jsonparser.ValueType) error {
		name, err := extractString(nameKey, value)
		if err != nil {
			return err
		}
		typ, err := b.optionalTypeRef(typeKey, value, s)
		if err != nil {
			return errors.Wrapf(err, "value parameter %s", name)
		}
		valueParameter := b.doc.AddValueParameter(name, typ)
		b.doc.ValueParameters[valueParameter].HasDefaultValue = optionalBool(hasDefaultValueKey, value)
		b.doc.ValueParameters[valueParameter].Vararg = optionalBool(varargKey, value)
		b.doc.ValueParameters[valueParameter].Ref = optionalBool(refKey, value)
		b.doc.AddFunctionValueParameter(ref, valueParameter)
		return nil
	}, valueParametersKey)
	if err != nil {
		return err
	}

	returnType, err := b.optionalTypeRef(returnTypeKey, data, s)
	if err != nil {
		return err
	}
	b.doc.SetFunctionReturnType(ref, returnType)
	return nil
}

func (b *builder) optionalTypeRef(key string, data []byte, s *scope) (int, error) {
	value, dataType, _, err := jsonparser.Get(data, key)
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return descriptor.InvalidRef, nil
	}
	if err != nil {
		return descriptor.InvalidRef, err
	}
	return b.typeRef(value, dataType, s)
}

// typeRef builds a type written either inline as a string or as an object.
func (b *builder) typeRef(data []byte, dataType jsonparser.ValueType, s *scope) (int, error) {
	switch dataType {
	case jsonparser.String:
		text, err := jsonparser.ParseString(data)
		if err != nil {
			return descriptor.InvalidRef, err
		}
		expression, err := parseTypeExpression(text)
		if err != nil {
			return descriptor.InvalidRef, err
		}
		return b.typeExpressionRef(expression, s)
	case jsonparser.Object:
		return b.typeObjectRef(data, s)
	default:
		return descriptor.InvalidRef, errors.Errorf("type has to be a string or an object, got %s", dataType)
	}
}

func (b *builder) typeObjectRef(data []byte, s *scope) (int, error) {
	name, err := extractString(constructorKey, data)
	if err != nil {
		return descriptor.InvalidRef, err
	}
	var arguments []int
	err = arrayEach(data, func(value []byte, _ jsonparser.ValueType) error {
		kind := descriptor.ProjectionKind(optionalString(projectionKey, value, string(descriptor.ProjectionKindInvariant)))
		typ, err := b.optionalTypeRef(typeKey, value, s)
		if err != nil {
			return err
		}
		if typ == descriptor.InvalidRef && kind != descriptor.ProjectionKindStar {
			return errors.Errorf("%s projection of %s needs a type", kind, name)
		}
		arguments = append(arguments, b.doc.AddTypeProjection(kind, typ))
		return nil
	}, argumentsKey)
	if err != nil {
		return descriptor.InvalidRef, err
	}
	return b.doc.AddType(b.constructor(name, s), optionalBool(nullableKey, data), arguments...), nil
}

func (b *builder) typeExpressionRef(expression *typeExpression, s *scope) (int, error) {
	var arguments []int
	for _, argument := range expression.arguments {
		typ := descriptor.InvalidRef
		if argument.typ != nil {
			var err error
			if typ, err = b.typeExpressionRef(argument.typ, s); err != nil {
				return descriptor.InvalidRef, err
			}
		}
		arguments = append(arguments, b.doc.AddTypeProjection(argument.kind, typ))
	}
	return b.doc.AddType(b.constructor(expression.constructor, s), expression.nullable, arguments...), nil
}

// constructor resolves a type name against the type parameters in scope, then against the classes
// of the dump relative to each enclosing declaration, then against classes by qualified name.
// Anything else is an external classifier, created once per name.
func (b *builder) constructor(name string, s *scope) int {
	if typeParameter, ok := s.typeParameter(name); ok {
		return b.doc.TypeParameters[typeParameter].TypeConstructor
	}
	for current := s; current != nil; current = current.parent {
		if class, ok := b.classes[current.qualify(name)]; ok {
			return b.doc.Classes[class].TypeConstructor
		}
	}
	if class, ok := b.classes[name]; ok {
		return b.doc.Classes[class].TypeConstructor
	}
	if constructor, ok := b.externals[name]; ok {
		return constructor
	}
	classifier := b.doc.AddClassifier(name)
	constructor := b.doc.AddTypeConstructor(descriptor.Node{Kind: descriptor.NodeKindClassifier, Ref: classifier})
	b.externals[name] = constructor
	return constructor
}

// arrayEach calls fn for every element of the array at keys. A missing array is empty.
func arrayEach(data []byte, fn func(value []byte, dataType jsonparser.ValueType) error, keys ...string) error {
	var fnErr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if fnErr != nil {
			return
		}
		fnErr = fn(value, dataType)
	}, keys...)
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return nil
	}
	if err != nil {
		return err
	}
	return fnErr
}

func extractString(key string, data []byte) (string, error) {
	value, err := jsonparser.GetString(data, key)
	if err != nil {
		return "", errors.Wrapf(err, "key: %s", key)
	}
	return value, nil
}

func optionalString(key string, data []byte, defaultValue string) string {
	value, err := jsonparser.GetString(data, key)
	if err != nil {
		return defaultValue
	}
	return value
}

func optionalBool(key string, data []byte) bool {
	value, err := jsonparser.GetBoolean(data, key)
	if err != nil {
		return false
	}
	return value
}
