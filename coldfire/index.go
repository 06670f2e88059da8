package coldfire

import (
	"golang.org/x/exp/slices"

	"github.com/apparentlymart/cfdecode/decode"
)

// index is the decode tree over encodings. It is built once and never
// modified.
var index = decode.Build(encodings, decode.BigEndian16)

// Encodings returns the encoding table in declaration order.
func Encodings() []*Encoding {
	return slices.Clone(encodings)
}

// DecodeIndex returns the decode tree built from the encoding table.
func DecodeIndex() *decode.Node[*Encoding] {
	return index
}
