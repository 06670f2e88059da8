package main

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/apparentlymart/cfdecode/coldfire"
	"github.com/apparentlymart/cfdecode/decode"
)

type indexNode = decode.Node[*coldfire.Encoding]

// indexTree renders a decode index. Empty trie slots are left out.
func indexTree(root *indexNode) treeprint.Tree {
	tree := treeprint.NewWithRoot(nodeLabel(root))
	addChildren(tree, root)
	return tree
}

func addChildren(tree treeprint.Tree, n *indexNode) {
	for i, sub := range n.Children() {
		if sub.Kind() == decode.Empty && n.Kind() == decode.Trie {
			continue
		}
		var branch treeprint.Tree
		if n.Kind() == decode.Trie {
			branch = tree.AddMetaBranch(fmt.Sprintf("%#x", i), nodeLabel(sub))
		} else {
			branch = tree.AddBranch(nodeLabel(sub))
		}
		addChildren(branch, sub)
	}
}

func nodeLabel(n *indexNode) string {
	switch n.Kind() {
	case decode.Leaf:
		return n.Item().String()
	case decode.Trie:
		return fmt.Sprintf("trie %d..%d", n.Pos()+n.Width()-1, n.Pos())
	default:
		return n.Kind().String()
	}
}

type treeStats struct {
	Depth  int
	Counts map[decode.Kind]int
}

func indexStats(root *indexNode) treeStats {
	st := treeStats{Depth: root.Depth(), Counts: make(map[decode.Kind]int)}
	root.Walk(func(n *indexNode) {
		st.Counts[n.Kind()]++
	})
	return st
}
