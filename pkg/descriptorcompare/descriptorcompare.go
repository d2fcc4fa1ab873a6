// Package descriptorcompare verifies that two descriptor graphs are semantically equivalent.
//
// The typical use is a round trip check: one graph comes from the compiler front-end,
// the other one from reading the compiled metadata back, and both must describe the
// same declarations. The comparison walks both graphs depth-first, property by property,
// and stops at the first difference. Pairs of nodes that were already entered are assumed
// equal, which makes cyclic graphs terminate.
package descriptorcompare

import (
	"github.com/jensneuse/abstractlogger"

	"github.com/wundergraph/descriptor-roundtrip/pkg/descriptor"
)

type Option func(c *Comparator)

func WithLogger(logger abstractlogger.Logger) Option {
	return func(c *Comparator) {
		c.logger = logger
	}
}

// WithSkipList replaces the default skip list.
func WithSkipList(skip SkipList) Option {
	return func(c *Comparator) {
		c.skip = skip.Clone()
	}
}

func WithSkippedProperties(kind descriptor.NodeKind, properties ...string) Option {
	return func(c *Comparator) {
		c.skip.Add(kind, properties...)
	}
}

// WithComparedProperties removes properties from the skip list.
func WithComparedProperties(kind descriptor.NodeKind, properties ...string) Option {
	return func(c *Comparator) {
		c.skip.Remove(kind, properties...)
	}
}

// WithStructuralTypeConstructors compares type constructors property by property
// instead of by their rendering.
func WithStructuralTypeConstructors() Option {
	return func(c *Comparator) {
		c.structuralTypeConstructors = true
	}
}

// Comparator holds the configuration of comparisons. It keeps no state between calls
// and may be used from multiple goroutines.
type Comparator struct {
	logger                     abstractlogger.Logger
	skip                       SkipList
	structuralTypeConstructors bool
}

func New(options ...Option) *Comparator {
	c := &Comparator{
		logger: abstractlogger.NoopLogger,
		skip:   DefaultSkipList(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

type Result struct {
	Trace Trace
	// Visited is the number of distinct node pairs entered.
	Visited int
}

// Compare compares node a of left with node b of right.
// The returned error is a *Mismatch describing the first difference.
func (c *Comparator) Compare(left, right *descriptor.Document, a, b descriptor.Node) (Result, error) {
	comparison := c.newComparison(left, right, nil)
	err := comparison.compareNodes(a, b)
	return comparison.result(), err
}

// CompareNamespaces compares the root namespaces named name of both documents.
// Paths of mismatches start with name.
func (c *Comparator) CompareNamespaces(left, right *descriptor.Document, name string) (Result, error) {
	comparison := c.newComparison(left, right, descriptor.Path{{Kind: descriptor.FieldName, Name: name}})
	a, _ := left.RootNamespace(name)
	b, _ := right.RootNamespace(name)
	err := comparison.compareNodes(a, b)
	return comparison.result(), err
}

func (c *Comparator) newComparison(left, right *descriptor.Document, root descriptor.Path) *comparison {
	path := make(descriptor.Path, 0, 32)
	path = append(path, root...)
	return &comparison{
		left:                       left,
		right:                      right,
		skip:                       c.skip,
		structuralTypeConstructors: c.structuralTypeConstructors,
		logger:                     c.logger,
		visited:                    make(map[nodePair]struct{}, 64),
		path:                       path,
	}
}

func Compare(left, right *descriptor.Document, a, b descriptor.Node) (Result, error) {
	return New().Compare(left, right, a, b)
}

func CompareNamespaces(left, right *descriptor.Document, name string) (Result, error) {
	return New().CompareNamespaces(left, right, name)
}
