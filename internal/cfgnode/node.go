// Package cfgnode builds and writes the nested key/value configuration
// dialect read by the game and its add-ons.
package cfgnode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Node is a named block holding ordered values and child nodes
type Node struct {
	Name    string
	entries []entry
}

// entry is either a key/value pair or a child node
type entry struct {
	key   string
	value string
	node  *Node
}

// New creates an empty node
func New(name string) *Node {
	return &Node{Name: name}
}

// Set appends a value. Keys may repeat, the dialect keeps every occurrence.
func (n *Node) Set(key string, value any) *Node {
	n.entries = append(n.entries, entry{key: key, value: Format(value)})
	return n
}

// Add appends child nodes
func (n *Node) Add(children ...*Node) *Node {
	for _, child := range children {
		n.entries = append(n.entries, entry{node: child})
	}
	return n
}

// Child appends a new empty child node and returns it
func (n *Node) Child(name string) *Node {
	child := New(name)
	n.Add(child)
	return child
}

// Get returns the first value stored under key
func (n *Node) Get(key string) (string, bool) {
	for _, e := range n.entries {
		if e.node == nil && e.key == key {
			return e.value, true
		}
	}
	return "", false
}

// Has reports whether a value is stored under key
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Nodes returns the direct children with the given name
func (n *Node) Nodes(name string) []*Node {
	var nodes []*Node
	for _, e := range n.entries {
		if e.node != nil && e.node.Name == name {
			nodes = append(nodes, e.node)
		}
	}
	return nodes
}

// Len returns the number of values and children
func (n *Node) Len() int {
	return len(n.entries)
}

// Format renders a value the way the dialect expects it
func Format(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return FormatFloat(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// FormatFloat returns the shortest representation of f that keeps a decimal
// point, so 2000 is written as "2000.0"
func FormatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
