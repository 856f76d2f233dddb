package veb

import (
	"fmt"
	"io"

	"github.com/abhinvv1/Van-Emde-Boas-tree/node"
)

// Dot writes the internal structure of a Tree in Graphviz DOT format, for
// debugging: one box per recursive node (showing universe/min/max), a
// dashed edge to its summary, and a solid edge per present cluster.
func (t *Tree) Dot(w io.Writer) error {
	if w == nil {
		return ErrIllegalArguments
	}
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12,shape=box];\n")
	ids := newDotIDs()
	dotNode(w, ids, t.n)
	io.WriteString(w, "}\n")
	return nil
}

type dotIDs struct {
	table map[*node.Tree]int
	next  int
}

func newDotIDs() *dotIDs {
	return &dotIDs{table: make(map[*node.Tree]int), next: 1}
}

func (ids *dotIDs) idOf(n *node.Tree) int {
	if id, ok := ids.table[n]; ok {
		return id
	}
	id := ids.next
	ids.table[n] = id
	ids.next++
	return id
}

func dotNode(w io.Writer, ids *dotIDs, n *node.Tree) int {
	id := ids.idOf(n)
	min, hasMin := n.Min()
	max, hasMax := n.Max()
	label := fmt.Sprintf("U=%d size=%d", n.UniverseSize(), n.Size())
	if hasMin {
		label += fmt.Sprintf("\\nmin=%d max=%d", min, max)
	} else {
		_ = hasMax
		label += "\\nempty"
	}
	fmt.Fprintf(w, "\t\"%d\" [label=\"%s\"];\n", id, label)
	summary, clusters := n.Children()
	if summary != nil {
		sid := dotNode(w, ids, summary)
		fmt.Fprintf(w, "\t\"%d\" -> \"%d\" [style=dashed,label=summary];\n", id, sid)
	}
	for i, c := range clusters {
		if c == nil {
			continue
		}
		cid := dotNode(w, ids, c)
		fmt.Fprintf(w, "\t\"%d\" -> \"%d\" [label=\"%d\"];\n", id, cid, i)
	}
	return id
}
