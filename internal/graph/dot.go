package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/agenthands/casefile/internal/core/model"
)

var dotShapes = map[string]string{
	"Person":   "ellipse",
	"Location": "box",
	"Item":     "diamond",
}

// WriteDOT renders edges as a Graphviz digraph. Nodes are declared once, in
// first-seen order, shaped by label.
func WriteDOT(w io.Writer, name string, edges []model.Edge) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "digraph %s {\n", strconv.Quote(name))
	fmt.Fprintln(bw, "  rankdir=LR;")

	seen := make(map[string]bool)
	node := func(id, label string) {
		if seen[id] {
			return
		}
		seen[id] = true
		shape, ok := dotShapes[label]
		if !ok {
			shape = "ellipse"
		}
		fmt.Fprintf(bw, "  %s [shape=%s];\n", strconv.Quote(id), shape)
	}
	for _, e := range edges {
		node(e.Source, e.SourceLabel)
		node(e.Target, e.TargetLabel)
	}
	for _, e := range edges {
		fmt.Fprintf(bw, "  %s -> %s [label=%s];\n", strconv.Quote(e.Source), strconv.Quote(e.Target), strconv.Quote(e.Type))
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
