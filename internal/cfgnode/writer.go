package cfgnode

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Header opens every generated file
const Header = "// This file was automatically generated via Kerbin Side GAP contracts generator.\n" +
	"// Do not edit it manually, all changes will be lost. Edit generator instead and rerun it to get the new file.\n"

// Encode writes the nodes as top level blocks. Every line, the first one
// included, is preceded by a newline.
func Encode(w io.Writer, nodes ...*Node) error {
	bw := bufio.NewWriter(w)
	for _, n := range nodes {
		writeNode(bw, n, 0)
	}
	return bw.Flush()
}

func writeNode(w *bufio.Writer, n *Node, level int) {
	indent := "\n" + strings.Repeat("\t", level)
	w.WriteString(indent + n.Name + indent + "{")
	for _, e := range n.entries {
		if e.node != nil {
			writeNode(w, e.node, level+1)
			continue
		}
		w.WriteString(indent + "\t" + e.key + " = " + e.value)
	}
	w.WriteString(indent + "}")
}

// String returns the encoded node
func (n *Node) String() string {
	var b strings.Builder
	_ = Encode(&b, n)
	return b.String()
}

// WriteFile writes a generated file: the header, the nodes and a final newline
func WriteFile(path string, nodes ...*Node) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := io.WriteString(f, Header); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := Encode(f, nodes...); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if _, err := io.WriteString(f, "\n"); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return f.Close()
}
