package descriptor

import (
	"bytes"

	"github.com/wundergraph/descriptor-roundtrip/internal/pkg/unsafebytes"
)

// Input holds the raw bytes of every name in a Document.
type Input struct {
	// RawBytes is the name buffer
	RawBytes []byte
	// Length of RawBytes
	Length int
}

func (i *Input) Reset() {
	i.RawBytes = i.RawBytes[:0]
	i.Length = 0
}

func (i *Input) AppendInputBytes(bytes []byte) (ref ByteSliceReference) {
	ref.Start = uint32(len(i.RawBytes))
	i.RawBytes = append(i.RawBytes, bytes...)
	i.Length = len(i.RawBytes)
	ref.End = uint32(len(i.RawBytes))
	return
}

func (i *Input) AppendInputString(input string) ByteSliceReference {
	return i.AppendInputBytes(unsafebytes.StringToBytes(input))
}

func (i *Input) ByteSlice(reference ByteSliceReference) ByteSlice {
	return i.RawBytes[reference.Start:reference.End]
}

func (i *Input) ByteSliceString(reference ByteSliceReference) string {
	return unsafebytes.BytesToString(i.ByteSlice(reference))
}

type ByteSlice []byte

func (b ByteSlice) Equals(another ByteSlice) bool {
	return bytes.Equal(b, another)
}

func (b ByteSlice) String() string {
	return string(b)
}

type ByteSliceReference struct {
	Start uint32
	End   uint32
}

func (b ByteSliceReference) Length() uint32 {
	return b.End - b.Start
}
