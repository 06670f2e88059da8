package coldfire

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Label is a caller-supplied name attached to a statement.
type Label string

// Stmt is one decoded instruction.
type Stmt struct {
	Labels   []Label
	Op       *Instruction
	Args     []Arg
	Encoding *Encoding

	length int
}

// Len is the number of bytes the statement was decoded from.
func (s Stmt) Len() int {
	return s.length
}

// String renders the statement in Motorola syntax. Branch targets are
// shown relative to the statement, as *+n.
func (s Stmt) String() string {
	return s.format(func(a Arg) string { return a.String() })
}

// FormatAt renders the statement as if it were located at addr, so branch
// targets are shown as absolute addresses.
func (s Stmt) FormatAt(addr uint32) string {
	return s.format(func(a Arg) string {
		if rel, ok := a.(PCRel); ok {
			return fmt.Sprintf("$%x", rel.Target(addr))
		}
		return a.String()
	})
}

func (s Stmt) format(arg func(Arg) string) string {
	if s.Op == nil {
		return ""
	}
	var b strings.Builder
	for _, l := range s.Labels {
		fmt.Fprintf(&b, "%s: ", l)
	}
	b.WriteString(s.Op.Name)
	for i, a := range s.Args {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteByte(',')
		}
		b.WriteString(arg(a))
	}
	return b.String()
}

type jsonArg struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type jsonStmt struct {
	Labels []Label   `json:"labels"`
	Op     string    `json:"op"`
	Args   []jsonArg `json:"args"`
	Length int       `json:"length"`
}

func (s Stmt) MarshalJSON() ([]byte, error) {
	js := jsonStmt{
		Labels: s.Labels,
		Args:   make([]jsonArg, len(s.Args)),
		Length: s.length,
	}
	if js.Labels == nil {
		js.Labels = []Label{}
	}
	if s.Op != nil {
		js.Op = s.Op.Name
	}
	for i, a := range s.Args {
		js.Args[i] = jsonArg{Kind: argKind(a), Text: a.String()}
	}
	return json.Marshal(js)
}
