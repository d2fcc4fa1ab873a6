package descriptor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wundergraph/descriptor-roundtrip/internal/pkg/unsafebytes"
)

type PathKind int

// MemberPathPrefix marks member names in the JSON form of a path.
const (
	MemberPathPrefix     = "@"
	MemberPathPrefixRune = '@'
)

const (
	UnknownPathKind PathKind = iota
	ArrayIndex
	FieldName
	MemberName
)

type PathItem struct {
	Kind       PathKind
	ArrayIndex int
	Name       string
}

// Path locates a value relative to the root of a comparison: property names, member names and sequence positions.
type Path []PathItem

func (p Path) Equals(another Path) bool {
	if len(p) != len(another) {
		return false
	}
	for i := range p {
		if p[i].Kind != another[i].Kind {
			return false
		}
		if p[i].Kind == ArrayIndex {
			if p[i].ArrayIndex != another[i].ArrayIndex {
				return false
			}
		} else if p[i].Name != another[i].Name {
			return false
		}
	}
	return true
}

// Copy detaches the path from the backing array of a walker's stack.
func (p Path) Copy() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

func (p Path) WithProperty(name string) Path {
	return append(p, PathItem{Kind: FieldName, Name: name})
}

func (p Path) WithMember(name string) Path {
	return append(p, PathItem{Kind: MemberName, Name: name})
}

func (p Path) WithArrayIndex(i int) Path {
	return append(p, PathItem{Kind: ArrayIndex, ArrayIndex: i})
}

func (p Path) String() string {
	return "[" + p.join(",") + "]"
}

func (p Path) DotDelimitedString() string {
	return p.join(".")
}

func (p Path) join(separator string) string {
	var builder strings.Builder
	for i := range p {
		if i != 0 {
			builder.WriteString(separator)
		}
		switch p[i].Kind {
		case ArrayIndex:
			builder.WriteString(strconv.Itoa(p[i].ArrayIndex))
		case FieldName, MemberName:
			if len(p[i].Name) == 0 {
				builder.WriteString("<root>")
			} else {
				builder.WriteString(p[i].Name)
			}
		}
	}
	return builder.String()
}

func (p *PathItem) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("data must not be empty")
	}
	*p = PathItem{}
	if data[0] == '"' {
		name, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		if len(name) != 0 && name[0] == MemberPathPrefixRune {
			p.Kind = MemberName
			p.Name = name[1:]
		} else {
			p.Kind = FieldName
			p.Name = name
		}
		return nil
	}
	out, err := strconv.ParseInt(unsafebytes.BytesToString(data), 10, 32)
	if err != nil {
		return err
	}
	p.Kind = ArrayIndex
	p.ArrayIndex = int(out)
	return nil
}

func (p PathItem) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case ArrayIndex:
		return strconv.AppendInt(nil, int64(p.ArrayIndex), 10), nil
	case FieldName:
		return strconv.AppendQuote(nil, p.Name), nil
	case MemberName:
		return strconv.AppendQuote(nil, MemberPathPrefix+p.Name), nil
	default:
		return nil, fmt.Errorf("cannot marshal unknown PathKind")
	}
}
