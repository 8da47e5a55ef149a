package implicit

import (
	"fmt"
	"strings"
)

const (
	unvisited = iota
	visiting
	visited
)

// SortNodesTopologically reorders the nodes so that every node comes after
// the nodes feeding its inputs. Unconnected nodes keep their relative order.
// All references must resolve; a cycle fails with ErrCircularReference.
func (f *Function) SortNodesTopologically() error {
	if err := f.ResolveAll(); err != nil {
		return err
	}

	marks := make(map[*Node]int, len(f.nodes))
	order := make([]*Node, 0, len(f.nodes))
	var stack []*Node

	var visit func(n *Node) error
	visit = func(n *Node) error {
		marks[n] = visiting
		stack = append(stack, n)
		for _, in := range n.inputs {
			if in.reference == "" {
				continue
			}
			src, err := f.resolveSource(in)
			if err != nil {
				return err
			}
			dep := src.node
			if dep == nil {
				continue // boundary input
			}
			switch marks[dep] {
			case visiting:
				return f.cycleError(stack, dep)
			case unvisited:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		stack = stack[:len(stack)-1]
		marks[n] = visited
		order = append(order, n)
		return nil
	}

	for _, n := range f.nodes {
		if marks[n] == unvisited {
			if err := visit(n); err != nil {
				return err
			}
		}
	}

	f.nodes = order
	if f.state != StateEmpty {
		f.state = StateSorted
	}
	return nil
}

func (f *Function) cycleError(stack []*Node, repeated *Node) error {
	start := 0
	for i, n := range stack {
		if n == repeated {
			start = i
			break
		}
	}
	ids := make([]string, 0, len(stack)-start+1)
	for _, n := range stack[start:] {
		ids = append(ids, n.identifier)
	}
	ids = append(ids, repeated.identifier)
	return &GraphError{
		Function: f.label(),
		Node:     repeated.identifier,
		Err:      fmt.Errorf("%w: %s", ErrCircularReference, strings.Join(ids, " <- ")),
	}
}
