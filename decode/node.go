package decode

import (
	"errors"
	"fmt"

	"github.com/apparentlymart/cfdecode/bitfield"
)

// Kind is the shape of a Node.
type Kind uint8

const (
	// Empty never matches.
	Empty Kind = iota
	// Leaf matches a single item.
	Leaf
	// Scan tries up to four subnodes in order; the first result wins.
	Scan
	// Trie selects one of 2, 4, 8 or 16 subnodes by a bit field.
	Trie
	// Chain reads one more word before continuing into its subnode.
	Chain
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Leaf:
		return "leaf"
	case Scan:
		return "scan"
	case Trie:
		return "trie"
	case Chain:
		return "chain"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Node is one node of a decode index. Nodes are immutable once built and
// may be shared between goroutines.
type Node[T Item] struct {
	kind  Kind
	item  T
	pos   uint
	nodes []*Node[T]

	// guard holds the candidates below a Chain made by Build. A failed read
	// is only reported as truncation when one of them agrees with the words
	// already read, pattern and admissibility both.
	guard []T
}

// NewEmpty returns a node that matches nothing.
func NewEmpty[T Item]() *Node[T] {
	return &Node[T]{kind: Empty}
}

// NewLeaf returns a node that matches item.
func NewLeaf[T Item](item T) *Node[T] {
	return &Node[T]{kind: Leaf, item: item}
}

// NewScan returns a node that tries each of nodes in order.
func NewScan[T Item](nodes ...*Node[T]) *Node[T] {
	if len(nodes) == 0 || len(nodes) > 4 {
		panic(fmt.Sprintf("scan node must have 1 to 4 subnodes, not %d", len(nodes)))
	}
	return &Node[T]{kind: Scan, nodes: nodes}
}

// NewTrie returns a node that dispatches on the field at pos whose width is
// implied by the number of subnodes.
func NewTrie[T Item](pos uint, nodes ...*Node[T]) *Node[T] {
	switch len(nodes) {
	case 2, 4, 8, 16:
	default:
		panic(fmt.Sprintf("trie node must have 2, 4, 8 or 16 subnodes, not %d", len(nodes)))
	}
	return &Node[T]{kind: Trie, pos: pos, nodes: nodes}
}

// NewChain returns a node that reads one more word and continues into next.
func NewChain[T Item](next *Node[T]) *Node[T] {
	return &Node[T]{kind: Chain, nodes: []*Node[T]{next}}
}

func (n *Node[T]) Kind() Kind {
	return n.kind
}

// Item returns the item of a Leaf.
func (n *Node[T]) Item() T {
	return n.item
}

// Pos returns the position of a Trie's field.
func (n *Node[T]) Pos() uint {
	return n.pos
}

// Width returns the width in bits of a Trie's field.
func (n *Node[T]) Width() uint {
	return uint(bitfield.Len(uint(len(n.nodes) - 1)))
}

// Children returns the subnodes. The slice must not be modified.
func (n *Node[T]) Children() []*Node[T] {
	return n.nodes
}

// Lookup resolves the cursor to an item. On success the returned cursor has
// read every word of the item's pattern.
func (n *Node[T]) Lookup(c Cursor) (T, Cursor, error) {
	var zero T

	switch n.kind {
	case Leaf:
		next, err := Match(n.item, c)
		if err != nil {
			return zero, c, err
		}
		return n.item, next, nil

	case Scan:
		for _, sub := range n.nodes {
			item, next, err := sub.Lookup(c)
			if err == nil || errors.Is(err, ErrTruncated) {
				return item, next, err
			}
		}
		return zero, c, ErrNoMatch

	case Trie:
		mask := uint64(len(n.nodes) - 1)
		return n.nodes[bitfield.Get(c.Bits(), n.pos, mask)].Lookup(c)

	case Chain:
		next, ok := c.Advance()
		if !ok {
			return zero, c, n.truncated(c)
		}
		return n.nodes[0].Lookup(next)

	default:
		return zero, c, ErrNoMatch
	}
}

func (n *Node[T]) truncated(c Cursor) error {
	if n.guard == nil {
		return ErrTruncated
	}
	for _, item := range n.guard {
		if couldMatch(item, c) {
			return ErrTruncated
		}
	}
	return ErrNoMatch
}

// Depth is the longest path from n to a leaf, counting n.
func (n *Node[T]) Depth() int {
	d := 0
	for _, sub := range n.nodes {
		d = max(d, sub.Depth())
	}
	return d + 1
}

// Walk calls fn for n and every node below it, parents first.
func (n *Node[T]) Walk(fn func(*Node[T])) {
	fn(n)
	for _, sub := range n.nodes {
		sub.Walk(fn)
	}
}
