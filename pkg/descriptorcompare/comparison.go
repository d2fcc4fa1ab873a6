package descriptorcompare

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/jensneuse/abstractlogger"

	"github.com/wundergraph/descriptor-roundtrip/internal/pkg/unsafebytes"
	"github.com/wundergraph/descriptor-roundtrip/pkg/descriptor"
	"github.com/wundergraph/descriptor-roundtrip/pkg/descriptorprinter"
)

type nodePair struct {
	left, right descriptor.Node
}

// owner is the node pair and property a value was fetched from.
type owner struct {
	leftKind, rightKind descriptor.NodeKind
	property            string
}

// comparison is the state of a single Compare call.
type comparison struct {
	left, right                *descriptor.Document
	skip                       SkipList
	structuralTypeConstructors bool
	logger                     abstractlogger.Logger

	// visited holds every pair already entered, whether finished or still on the stack.
	visited map[nodePair]struct{}
	path    descriptor.Path
	depth   int
	owner   owner
	trace   Trace
}

func (c *comparison) result() Result {
	return Result{
		Trace:   c.trace,
		Visited: len(c.visited),
	}
}

func (c *comparison) compareNodes(a, b descriptor.Node) error {
	if a.IsNull() && b.IsNull() {
		return nil
	}
	if a.IsNull() || b.IsNull() {
		return c.mismatch(NullityMismatch, c.renderLeft(a), c.renderRight(b))
	}

	pair := nodePair{left: a, right: b}
	if _, ok := c.visited[pair]; ok {
		c.record(TraceEventCycle, a.Kind, b.Kind)
		return nil
	}
	c.visited[pair] = struct{}{}

	c.record(TraceEventEnter, a.Kind, b.Kind)
	saved := c.owner
	c.depth++
	defer func() {
		c.depth--
		c.owner = saved
	}()

	if a.Kind.IsClassifier() && b.Kind.IsClassifier() {
		return c.compareClassifiers(a, b)
	}
	if a.Kind != b.Kind {
		return c.kindMismatch(a, b)
	}

	switch a.Kind {
	case descriptor.NodeKindNamespace:
		if err := c.compareProperties(a, b); err != nil {
			return err
		}
		return c.compareMembers(a, b)
	case descriptor.NodeKindTypeConstructor:
		if c.structuralTypeConstructors {
			return c.compareProperties(a, b)
		}
		return c.compareTypeConstructors(a, b)
	case descriptor.NodeKindFunction,
		descriptor.NodeKindTypeParameter,
		descriptor.NodeKindValueParameter,
		descriptor.NodeKindType,
		descriptor.NodeKindTypeProjection:
		return c.compareProperties(a, b)
	default:
		return c.kindMismatch(a, b)
	}
}

// compareClassifiers accepts a class only where the counterpart is a class as well.
// Plain classifiers carry nothing but their name.
func (c *comparison) compareClassifiers(a, b descriptor.Node) error {
	if a.Kind != b.Kind {
		if err := c.compareName(a, b); err != nil {
			return err
		}
		return c.kindMismatch(a, b)
	}
	if err := c.compareProperties(a, b); err != nil {
		return err
	}
	if a.Kind == descriptor.NodeKindClass {
		return c.compareMembers(a, b)
	}
	return nil
}

func (c *comparison) compareName(a, b descriptor.Node) error {
	c.enterProperty(a.Kind, b.Kind, descriptor.PropertyName)
	defer c.leave()

	left, _ := c.left.NodeName(a)
	right, _ := c.right.NodeName(b)
	if !left.Equals(right) {
		return c.mismatch(NameMismatch, strconv.Quote(left.String()), strconv.Quote(right.String()))
	}
	return nil
}

// compareTypeConstructors compares the canonical rendering only. Two constructors rendering
// the same qualified name are considered equal even if their parameters or supertypes differ.
func (c *comparison) compareTypeConstructors(a, b descriptor.Node) error {
	left := c.left.TypeConstructorString(a.Ref)
	right := c.right.TypeConstructorString(b.Ref)
	if left != right {
		return c.mismatch(ScalarValueMismatch, left, right)
	}
	return nil
}

func (c *comparison) compareProperties(a, b descriptor.Node) error {
	for _, property := range descriptor.Properties(a.Kind) {
		if property.Tag == descriptor.PropertyTagOpaque || property.Get == nil {
			continue
		}
		if c.skip.Skips(a.Kind, property.Name) {
			continue
		}
		c.enterProperty(a.Kind, b.Kind, property.Name)
		err := c.compareValues(property, property.Get(c.left, a.Ref), property.Get(c.right, b.Ref))
		c.leave()
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *comparison) compareValues(property descriptor.Property, a, b descriptor.Value) error {
	switch property.Tag {
	case descriptor.PropertyTagScalar:
		if cmp.Equal(a.Scalar, b.Scalar) {
			return nil
		}
		kind := ScalarValueMismatch
		if property.Name == descriptor.PropertyName {
			kind = NameMismatch
		}
		return c.mismatch(kind, renderScalar(a.Scalar), renderScalar(b.Scalar))
	case descriptor.PropertyTagNode:
		return c.compareNodes(a.Node, b.Node)
	case descriptor.PropertyTagNodes:
		return c.compareSequences(a.Nodes, b.Nodes)
	default:
		return nil
	}
}

// compareSequences compares by position. Declarations keep their order through a round trip,
// so a reordered sequence is a mismatch.
func (c *comparison) compareSequences(a, b []descriptor.Node) error {
	if len(a) != len(b) {
		return c.mismatch(LengthMismatch, strconv.Itoa(len(a)), strconv.Itoa(len(b)))
	}
	for i := range a {
		c.path = c.path.WithArrayIndex(i)
		err := c.compareNodes(a[i], b[i])
		c.path = c.path[:len(c.path)-1]
		if err != nil {
			return err
		}
	}
	return nil
}

// compareMembers matches the members of two containers by name. Names are visited in sorted
// order so that swapping both sides reports the same path.
func (c *comparison) compareMembers(a, b descriptor.Node) error {
	c.owner = owner{leftKind: a.Kind, rightKind: b.Kind, property: descriptor.PropertyMembers}

	leftMembers := c.left.Members(a)
	rightMembers := c.right.Members(b)
	leftByName := c.membersByName(c.left, leftMembers)
	rightByName := c.membersByName(c.right, rightMembers)
	names := sortedNames(leftByName, rightByName)

	for _, name := range names {
		if !allMembersKnown(leftByName[name]) || !allMembersKnown(rightByName[name]) {
			return c.memberMismatch(name, UnknownMemberKind, memberKinds(leftByName[name]), memberKinds(rightByName[name]))
		}
	}

	for _, name := range names {
		leftClassifiers, rightClassifiers := countClassifiers(leftByName[name]), countClassifiers(rightByName[name])
		if leftClassifiers > 1 || rightClassifiers > 1 {
			return c.memberMismatch(name, OverloadAmbiguity,
				"classifiers: "+strconv.Itoa(leftClassifiers),
				"classifiers: "+strconv.Itoa(rightClassifiers),
			)
		}
		leftFunctions := c.left.FunctionsByName(a, unsafebytes.StringToBytes(name))
		rightFunctions := c.right.FunctionsByName(b, unsafebytes.StringToBytes(name))
		if len(leftFunctions) > 1 || len(rightFunctions) > 1 {
			return c.memberMismatch(name, OverloadAmbiguity,
				"functions: "+strconv.Itoa(len(leftFunctions)),
				"functions: "+strconv.Itoa(len(rightFunctions)),
			)
		}
	}

	if len(leftMembers) != len(rightMembers) {
		return c.mismatch(LengthMismatch, strconv.Itoa(len(leftMembers)), strconv.Itoa(len(rightMembers)))
	}

	for _, name := range names {
		if err := c.compareMember(a, b, name); err != nil {
			return err
		}
	}
	return nil
}

func (c *comparison) compareMember(a, b descriptor.Node, name string) error {
	c.path = c.path.WithMember(name)
	defer func() {
		c.path = c.path[:len(c.path)-1]
	}()
	c.record(TraceEventMember, a.Kind, b.Kind)

	key := unsafebytes.StringToBytes(name)
	leftClassifier, leftOk := c.left.ClassifierByName(a, key)
	rightClassifier, rightOk := c.right.ClassifierByName(b, key)
	if leftOk || rightOk {
		if err := c.compareNodes(leftClassifier, rightClassifier); err != nil {
			return err
		}
	}

	leftFunctions := c.left.FunctionsByName(a, key)
	rightFunctions := c.right.FunctionsByName(b, key)
	if len(leftFunctions) == 0 && len(rightFunctions) == 0 {
		return nil
	}
	return c.compareNodes(firstOrNull(leftFunctions), firstOrNull(rightFunctions))
}

func (c *comparison) memberMismatch(name string, kind MismatchKind, left, right string) error {
	c.path = c.path.WithMember(name)
	defer func() {
		c.path = c.path[:len(c.path)-1]
	}()
	return c.mismatch(kind, left, right)
}

func (c *comparison) membersByName(document *descriptor.Document, members []descriptor.Node) map[string][]descriptor.Node {
	out := make(map[string][]descriptor.Node, len(members))
	for _, member := range members {
		name := document.NodeNameString(member)
		out[name] = append(out[name], member)
	}
	return out
}

func (c *comparison) enterProperty(leftKind, rightKind descriptor.NodeKind, property string) {
	c.path = c.path.WithProperty(property)
	c.owner = owner{leftKind: leftKind, rightKind: rightKind, property: property}
	c.record(TraceEventProperty, leftKind, rightKind)
}

func (c *comparison) leave() {
	c.path = c.path[:len(c.path)-1]
}

func (c *comparison) record(event TraceEvent, leftKind, rightKind descriptor.NodeKind) {
	entry := TraceEntry{
		Depth:     c.depth,
		Event:     event,
		Path:      c.path.Copy(),
		LeftKind:  leftKind,
		RightKind: rightKind,
		Property:  c.owner.property,
	}
	c.trace = append(c.trace, entry)
	c.logger.Debug("descriptorcompare."+string(event),
		abstractlogger.String("path", entry.Path.DotDelimitedString()),
		abstractlogger.String("left", leftKind.String()),
		abstractlogger.String("right", rightKind.String()),
	)
}

func (c *comparison) mismatch(kind MismatchKind, left, right string) error {
	return c.newMismatch(kind, c.owner.leftKind, c.owner.rightKind, left, right)
}

func (c *comparison) kindMismatch(a, b descriptor.Node) error {
	return c.newMismatch(KindMismatch, a.Kind, b.Kind, c.renderLeft(a), c.renderRight(b))
}

func (c *comparison) newMismatch(kind MismatchKind, leftKind, rightKind descriptor.NodeKind, left, right string) error {
	mismatch := &Mismatch{
		Kind:      kind,
		Path:      c.path.Copy(),
		LeftKind:  leftKind,
		RightKind: rightKind,
		Property:  c.owner.property,
		Left:      left,
		Right:     right,
	}
	c.logger.Debug("descriptorcompare.mismatch",
		abstractlogger.String("kind", string(kind)),
		abstractlogger.String("path", mismatch.Path.DotDelimitedString()),
		abstractlogger.String("left", left),
		abstractlogger.String("right", right),
	)
	return mismatch
}

func (c *comparison) renderLeft(node descriptor.Node) string {
	return render(c.left, node)
}

func (c *comparison) renderRight(node descriptor.Node) string {
	return render(c.right, node)
}

func render(document *descriptor.Document, node descriptor.Node) string {
	if node.IsNull() {
		return Missing
	}
	return descriptorprinter.PrintNodeString(document, node)
}

func renderScalar(value interface{}) string {
	return fmt.Sprintf("%#v", value)
}

func allMembersKnown(members []descriptor.Node) bool {
	for _, member := range members {
		if !member.Kind.IsClassifier() && member.Kind != descriptor.NodeKindFunction {
			return false
		}
	}
	return true
}

func countClassifiers(members []descriptor.Node) (count int) {
	for _, member := range members {
		if member.Kind.IsClassifier() {
			count++
		}
	}
	return count
}

func memberKinds(members []descriptor.Node) string {
	if len(members) == 0 {
		return Missing
	}
	kinds := make([]string, len(members))
	for i := range members {
		kinds[i] = members[i].Kind.String()
	}
	return strings.Join(kinds, ",")
}

func sortedNames(left, right map[string][]descriptor.Node) []string {
	names := make([]string, 0, len(left)+len(right))
	for name := range left {
		names = append(names, name)
	}
	for name := range right {
		if _, ok := left[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func firstOrNull(nodes []descriptor.Node) descriptor.Node {
	if len(nodes) == 0 {
		return descriptor.NullNode
	}
	return nodes[0]
}
