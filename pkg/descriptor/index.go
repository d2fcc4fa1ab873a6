package descriptor

import (
	"github.com/cespare/xxhash/v2"
)

type memberKey struct {
	container Node
	name      uint64
}

// Index is the member scope of every container in a Document.
// Members are keyed by their container and the xxhash of their name.
type Index struct {
	members map[memberKey][]Node
}

func (i *Index) Reset() {
	for key := range i.members {
		delete(i.members, key)
	}
}

func (i *Index) add(container Node, name []byte, member Node) {
	if i.members == nil {
		i.members = make(map[memberKey][]Node, 48)
	}
	key := memberKey{container: container, name: xxhash.Sum64(name)}
	i.members[key] = append(i.members[key], member)
}

func (i *Index) lookup(container Node, name []byte) []Node {
	return i.members[memberKey{container: container, name: xxhash.Sum64(name)}]
}

// AddMember appends member to the declaration ordered members of container and indexes it by name.
// The member's containing declaration is set to container.
func (d *Document) AddMember(container Node, member Node) {
	switch container.Kind {
	case NodeKindNamespace:
		d.Namespaces[container.Ref].Members = append(d.Namespaces[container.Ref].Members, member)
	case NodeKindClass:
		d.Classes[container.Ref].Members = append(d.Classes[container.Ref].Members, member)
	default:
		return
	}
	d.setContainingDeclaration(member, container)
	name, _ := d.NodeName(member)
	d.Index.add(container, name, member)
}

// Members returns the members of a namespace or class in declaration order.
func (d *Document) Members(container Node) []Node {
	if container.IsNull() {
		return nil
	}
	switch container.Kind {
	case NodeKindNamespace:
		return d.Namespaces[container.Ref].Members
	case NodeKindClass:
		return d.Classes[container.Ref].Members
	default:
		return nil
	}
}

// ClassifierByName looks up a class or plain classifier declared in container.
func (d *Document) ClassifierByName(container Node, name []byte) (Node, bool) {
	for _, member := range d.Index.lookup(container, name) {
		if !member.Kind.IsClassifier() {
			continue
		}
		if d.Input.ByteSlice(d.classifierName(member)).Equals(name) {
			return member, true
		}
	}
	return NullNode, false
}

// FunctionsByName returns every function named name declared in container, in declaration order.
func (d *Document) FunctionsByName(container Node, name []byte) []Node {
	var out []Node
	for _, member := range d.Index.lookup(container, name) {
		if member.Kind != NodeKindFunction {
			continue
		}
		if d.Input.ByteSlice(d.Functions[member.Ref].Name).Equals(name) {
			out = append(out, member)
		}
	}
	return out
}

func (d *Document) classifierName(node Node) ByteSliceReference {
	if node.Kind == NodeKindClass {
		return d.Classes[node.Ref].Name
	}
	return d.Classifiers[node.Ref].Name
}

func (d *Document) setContainingDeclaration(node, container Node) {
	switch node.Kind {
	case NodeKindNamespace:
		d.Namespaces[node.Ref].ContainingDeclaration = container
	case NodeKindClassifier:
		d.Classifiers[node.Ref].ContainingDeclaration = container
	case NodeKindClass:
		d.Classes[node.Ref].ContainingDeclaration = container
	case NodeKindFunction:
		d.Functions[node.Ref].ContainingDeclaration = container
	case NodeKindTypeParameter:
		d.TypeParameters[node.Ref].ContainingDeclaration = container
	case NodeKindValueParameter:
		d.ValueParameters[node.Ref].ContainingDeclaration = container
	}
}
