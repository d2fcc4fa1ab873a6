package descriptorcompare

import (
	"fmt"

	"github.com/wundergraph/descriptor-roundtrip/pkg/descriptor"
)

// SkipList names, per node kind, the properties a comparison never fetches.
type SkipList map[descriptor.NodeKind]map[string]struct{}

// DefaultSkipList skips back references to containers everywhere, the original of declarations that
// cannot be substituted, the reified flag of type parameters (not stable across a round trip yet)
// and the ref flag of value parameters.
func DefaultSkipList() SkipList {
	skip := SkipList{}
	for _, kind := range []descriptor.NodeKind{
		descriptor.NodeKindNamespace,
		descriptor.NodeKindClassifier,
		descriptor.NodeKindClass,
		descriptor.NodeKindFunction,
		descriptor.NodeKindTypeParameter,
		descriptor.NodeKindValueParameter,
	} {
		skip.Add(kind, descriptor.PropertyContainingDeclaration)
	}
	skip.Add(descriptor.NodeKindNamespace, descriptor.PropertyOriginal)
	skip.Add(descriptor.NodeKindClassifier, descriptor.PropertyOriginal)
	skip.Add(descriptor.NodeKindClass, descriptor.PropertyOriginal)
	skip.Add(descriptor.NodeKindValueParameter, descriptor.PropertyOriginal, "ref")
	skip.Add(descriptor.NodeKindTypeParameter, "reified")
	return skip
}

func (s SkipList) Add(kind descriptor.NodeKind, properties ...string) {
	if s[kind] == nil {
		s[kind] = make(map[string]struct{}, len(properties))
	}
	for _, property := range properties {
		s[kind][property] = struct{}{}
	}
}

func (s SkipList) Remove(kind descriptor.NodeKind, properties ...string) {
	for _, property := range properties {
		delete(s[kind], property)
	}
}

func (s SkipList) Skips(kind descriptor.NodeKind, property string) bool {
	_, ok := s[kind][property]
	return ok
}

func (s SkipList) Clone() SkipList {
	out := make(SkipList, len(s))
	for kind, properties := range s {
		for property := range properties {
			out.Add(kind, property)
		}
	}
	return out
}

// ParseSkipList builds a skip list from kind names to property names, e.g. {"function": ["original"]}.
// Unknown kinds and properties are rejected.
func ParseSkipList(raw map[string][]string) (SkipList, error) {
	skip := SkipList{}
	for kindName, properties := range raw {
		kind, ok := descriptor.NodeKindByName(kindName)
		if !ok {
			return nil, fmt.Errorf("skip list: unknown node kind %q", kindName)
		}
		for _, property := range properties {
			if _, ok := descriptor.PropertyByName(kind, property); !ok {
				return nil, fmt.Errorf("skip list: %s has no property %q", kind, property)
			}
			skip.Add(kind, property)
		}
	}
	return skip, nil
}
