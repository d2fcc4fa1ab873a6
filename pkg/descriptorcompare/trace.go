package descriptorcompare

import (
	"strings"

	"github.com/wundergraph/descriptor-roundtrip/pkg/descriptor"
)

type TraceEvent string

const (
	// TraceEventEnter is recorded when a pair of nodes is compared for the first time.
	TraceEventEnter TraceEvent = "enter"
	// TraceEventProperty is recorded before a property is fetched from both nodes.
	TraceEventProperty TraceEvent = "property"
	// TraceEventMember is recorded when a named member is looked up on both containers.
	TraceEventMember TraceEvent = "member"
	// TraceEventCycle is recorded when a pair of nodes is met again and assumed equal.
	TraceEventCycle TraceEvent = "cycle"
)

type TraceEntry struct {
	Depth     int
	Event     TraceEvent
	Path      descriptor.Path
	LeftKind  descriptor.NodeKind
	RightKind descriptor.NodeKind
	Property  string
}

func (e TraceEntry) String() string {
	builder := strings.Builder{}
	e.writeTo(&builder)
	return builder.String()
}

func (e TraceEntry) writeTo(builder *strings.Builder) {
	builder.WriteString(strings.Repeat("  ", e.Depth))
	builder.WriteString(string(e.Event))
	switch e.Event {
	case TraceEventEnter, TraceEventCycle:
		builder.WriteByte(' ')
		builder.WriteString(e.LeftKind.String())
		if e.RightKind != e.LeftKind {
			builder.WriteByte('/')
			builder.WriteString(e.RightKind.String())
		}
	}
	if len(e.Path) != 0 {
		builder.WriteByte(' ')
		builder.WriteString(e.Path.DotDelimitedString())
	}
}

// Trace lists every node pair, property and member visited by one comparison, in visiting order.
type Trace []TraceEntry

// String renders one entry per line, indented by depth.
func (t Trace) String() string {
	builder := strings.Builder{}
	for i := range t {
		t[i].writeTo(&builder)
		builder.WriteByte('\n')
	}
	return builder.String()
}

func (t Trace) Count(event TraceEvent) int {
	count := 0
	for i := range t {
		if t[i].Event == event {
			count++
		}
	}
	return count
}
