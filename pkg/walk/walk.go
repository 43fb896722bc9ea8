// Package walk traverses a spanning tree depth-first and numbers its vertices.
//
// The traversal is iterative: it keeps an explicit LIFO stack of frames, each
// pairing a vertex with the direction used to reach it. Instead of a visited
// set it relies on the tree being acyclic and only refuses to walk straight
// back along the edge it arrived on. On a graph with cycles the walk would
// never terminate, so it aborts with ErrNotATree once more vertices have been
// visited than the lattice holds.
//
// At every vertex the neighbors are examined in the order Right, Down, Left,
// Up and pushed in that order. Because the stack is LIFO the last pushed
// neighbor is explored first. The resulting visitation order is part of the
// package contract: changing it changes every generated image.
package walk

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/matzehuels/hilbertmaze/pkg/lattice"
	"github.com/matzehuels/hilbertmaze/pkg/spantree"
)

// ErrNotATree is returned when the walk visits more vertices than the
// lattice holds, which only happens when the edge set contains a cycle.
var ErrNotATree = errors.New("walk: edge set is not a tree")

// Visit describes one step of the walk.
type Visit struct {
	// Vertex is the vertex being visited.
	Vertex lattice.Vertex
	// Index is the number of vertices visited before this one. The value is
	// reused by the walker and only valid during the callback; copy it with
	// new(big.Int).Set to retain it.
	Index *big.Int
	// Arrival is the direction travelled to reach Vertex. It is meaningless
	// when Root is true.
	Arrival lattice.Direction
	// Root is true for the start vertex only.
	Root bool
}

type frame struct {
	v       lattice.Vertex
	arrival lattice.Direction
	root    bool
}

// Walk visits every vertex reachable from start through t and calls visit
// once per vertex with increasing indices starting at zero. An error returned
// by visit stops the walk and is returned wrapped with the vertex.
func Walk(t *spantree.Tree, start lattice.Vertex, visit func(Visit) error) error {
	l := t.Lattice()
	if !l.Contains(start) {
		return fmt.Errorf("walk: start vertex %v outside %dx%d lattice", start, l.Size(), l.Size())
	}

	limit := l.Vertices()
	index := new(big.Int)
	one := big.NewInt(1)
	visited := 0

	stack := arraystack.New()
	stack.Push(frame{v: start, root: true})
	for {
		top, ok := stack.Pop()
		if !ok {
			return nil
		}
		f := top.(frame)

		if visited == limit {
			return ErrNotATree
		}
		if err := visit(Visit{Vertex: f.v, Index: index, Arrival: f.arrival, Root: f.root}); err != nil {
			return fmt.Errorf("walk: visit %v: %w", f.v, err)
		}
		index.Add(index, one)
		visited++

		for _, d := range lattice.Directions {
			if !f.root && d == f.arrival.Opposite() {
				continue
			}
			if t.Has(l.EdgeToward(f.v, d)) {
				stack.Push(frame{v: l.Step(f.v, d), arrival: d})
			}
		}
	}
}

// Order returns the vertices of t in visitation order starting at start.
func Order(t *spantree.Tree, start lattice.Vertex) ([]lattice.Vertex, error) {
	out := make([]lattice.Vertex, 0, t.Lattice().Vertices())
	err := Walk(t, start, func(v Visit) error {
		out = append(out, v.Vertex)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
