package descriptorcompare

import (
	"errors"
	"fmt"

	"github.com/wundergraph/descriptor-roundtrip/pkg/descriptor"
)

// MismatchKind classifies why two graphs are not equivalent.
type MismatchKind string

const (
	NullityMismatch     MismatchKind = "NULLITY_MISMATCH"
	LengthMismatch      MismatchKind = "LENGTH_MISMATCH"
	NameMismatch        MismatchKind = "NAME_MISMATCH"
	ScalarValueMismatch MismatchKind = "SCALAR_VALUE_MISMATCH"
	KindMismatch        MismatchKind = "KIND_MISMATCH"
	// OverloadAmbiguity is raised whenever a container declares more than one function, or more than one classifier, with the same name.
	// Matching overloads by signature is not implemented.
	OverloadAmbiguity MismatchKind = "OVERLOAD_AMBIGUITY"
	UnknownMemberKind MismatchKind = "UNKNOWN_MEMBER_KIND"
)

// Missing is the rendered value of an absent counterpart.
const Missing = "missing"

// Mismatch is the first difference found between two graphs. Every mismatch is fatal for its comparison.
type Mismatch struct {
	Kind MismatchKind
	// Path leads from the compared root to the divergent value.
	Path descriptor.Path
	// LeftKind and RightKind are the kinds of the nodes owning Property.
	LeftKind  descriptor.NodeKind
	RightKind descriptor.NodeKind
	Property  string
	Left      string
	Right     string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("descriptorcompare: %s at %s (%s/%s.%s): left: %s, right: %s",
		m.Kind, m.Path.DotDelimitedString(), m.LeftKind, m.RightKind, m.Property, m.Left, m.Right)
}

// Swapped returns the mismatch as it is reported when left and right change places.
func (m *Mismatch) Swapped() *Mismatch {
	return &Mismatch{
		Kind:      m.Kind,
		Path:      m.Path.Copy(),
		LeftKind:  m.RightKind,
		RightKind: m.LeftKind,
		Property:  m.Property,
		Left:      m.Right,
		Right:     m.Left,
	}
}

// AsMismatch unwraps err into a *Mismatch.
func AsMismatch(err error) (*Mismatch, bool) {
	var mismatch *Mismatch
	if errors.As(err, &mismatch) {
		return mismatch, true
	}
	return nil, false
}

// IsKind reports whether err is a mismatch of the given kind.
func IsKind(err error, kind MismatchKind) bool {
	mismatch, ok := AsMismatch(err)
	return ok && mismatch.Kind == kind
}
