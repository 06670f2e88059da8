package decode

import (
	"github.com/apparentlymart/cfdecode/bitfield"
)

// maxTrieWidth is the widest field a Trie node dispatches on.
const maxTrieWidth = 4

// Build constructs a decode index over items whose lookups agree with
// ScanTable over the same items: declaration order decides between entries
// that the bit patterns do not separate.
//
// Items are partitioned with Trie nodes on fields that every remaining
// candidate fixes. When no such field exists among the words read so far a
// Chain node reads the next word if every candidate needs it; otherwise the
// candidates are split, in order, across a Scan node.
func Build[T Item](items []T, layout Layout) *Node[T] {
	b := builder[T]{layout: layout}
	return b.build(items, 1, 0)
}

type builder[T Item] struct {
	layout Layout
}

func (b builder[T]) build(items []T, words int, seen uint64) *Node[T] {
	switch len(items) {
	case 0:
		return NewEmpty[T]()
	case 1:
		return NewLeaf(items[0])
	}

	if pos, width, ok := b.field(items, words, seen); ok {
		mask := bitfield.Ones[uint64](width)
		nodes := make([]*Node[T], 1<<width)
		for v := range nodes {
			var sub []T
			for _, item := range items {
				if item.Pattern().Field(pos, width) == uint64(v) {
					sub = append(sub, item)
				}
			}
			nodes[v] = b.build(sub, words, seen|mask<<pos)
		}
		return NewTrie(pos, nodes...)
	}

	if words < b.layout.MaxWords() && needMore(items, words) {
		chain := NewChain(b.build(items, words+1, seen))
		chain.guard = items
		return chain
	}

	return b.scan(items, words, seen)
}

// scan splits items into at most four contiguous runs, so that the first
// matching run is also the one holding the first matching item.
func (b builder[T]) scan(items []T, words int, seen uint64) *Node[T] {
	n := len(items)
	parts := min(n, 4)
	nodes := make([]*Node[T], 0, parts)
	start := 0
	for i := 0; i < parts; i++ {
		end := start + (n-start)/(parts-i)
		nodes = append(nodes, b.build(items[start:end], words, seen))
		start = end
	}
	return NewScan(nodes...)
}

// field picks the run of up to four bits that every candidate fixes, that
// has not been dispatched on yet, and that separates the candidates into
// the most groups. Higher runs win ties, then narrower ones, so a field
// never gets more slots than it has distinct values to fill.
func (b builder[T]) field(items []T, words int, seen uint64) (pos, width uint, ok bool) {
	common := b.layout.Readable(words) &^ seen
	first := items[0].Pattern().Bits
	var diff uint64
	for _, item := range items {
		p := item.Pattern()
		common &= p.Mask
		diff |= p.Bits ^ first
	}
	diff &= common
	if diff == 0 {
		return 0, 0, false
	}

	top := min(uint(words)*b.layout.WordBits, 64)
	best := 0
	for hi := top; hi > 0; hi-- {
		for w := uint(1); w <= maxTrieWidth; w++ {
			if w > hi {
				continue
			}
			lo := hi - w
			m := bitfield.Mask[uint64](hi-1, lo)
			if m&common != m || m&diff == 0 {
				continue
			}
			if score := groups(items, lo, w); score > best {
				best, pos, width, ok = score, lo, w, true
			}
		}
	}
	return pos, width, ok
}

func groups[T Item](items []T, pos, width uint) int {
	var seen [1 << maxTrieWidth]bool
	n := 0
	for _, item := range items {
		v := item.Pattern().Field(pos, width)
		if !seen[v] {
			seen[v] = true
			n++
		}
	}
	return n
}

func needMore[T Item](items []T, words int) bool {
	for _, item := range items {
		if item.Pattern().Words <= words {
			return false
		}
	}
	return true
}
