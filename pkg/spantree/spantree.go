// Package spantree builds uniformly shuffled spanning trees of a lattice
// using randomized Kruskal.
//
// All candidate edges are enumerated in row, col, (right, down) order,
// shuffled once with the caller's generator, and offered to a disjoint-set
// forest in that order. An edge joins the tree exactly when its endpoints are
// still in different components. The result depends only on the generator's
// state, so the same seed always yields the same tree.
package spantree

import (
	"fmt"
	"math/bits"
	"math/rand/v2"

	"github.com/matzehuels/hilbertmaze/pkg/dsu"
	"github.com/matzehuels/hilbertmaze/pkg/lattice"
)

// Tree is the set of lattice edges selected by Build. Membership is stored as
// a bitset indexed by lattice.EdgeID.
type Tree struct {
	lat   lattice.Lattice
	words []uint64
	n     int
}

// Build shuffles the candidate edges of l with rng and returns the spanning
// tree selected by union-find. The shuffle is the only consumer of rng, so
// callers can keep drawing from it afterwards.
//
// Processing stops as soon as Vertices()-1 edges are accepted; no edge after
// that point can join two components.
func Build(l lattice.Lattice, rng *rand.Rand) *Tree {
	ids := make([]int32, l.EdgeCount())
	for i := range ids {
		ids[i] = int32(i)
	}
	rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})

	t := newTree(l)
	forest := dsu.New(l.Vertices())
	want := l.Vertices() - 1
	for _, id := range ids {
		if t.n == want {
			break
		}
		a, b := l.Endpoints(l.EdgeAt(int(id)))
		if forest.Join(l.Index(a), l.Index(b)) {
			t.add(int(id))
		}
	}
	return t
}

// FromEdges returns a tree holding exactly the given edges. It performs no
// validation; use Verify to check the spanning property.
func FromEdges(l lattice.Lattice, edges []lattice.Edge) *Tree {
	t := newTree(l)
	for _, e := range edges {
		id := l.EdgeID(e)
		if !t.hasID(id) {
			t.add(id)
		}
	}
	return t
}

func newTree(l lattice.Lattice) *Tree {
	return &Tree{
		lat:   l,
		words: make([]uint64, (l.EdgeCount()+63)/64),
	}
}

func (t *Tree) add(id int) {
	t.words[id>>6] |= 1 << (uint(id) & 63)
	t.n++
}

func (t *Tree) hasID(id int) bool {
	return t.words[id>>6]&(1<<(uint(id)&63)) != 0
}

// Lattice returns the lattice the tree spans.
func (t *Tree) Lattice() lattice.Lattice { return t.lat }

// Has reports whether e belongs to the tree.
func (t *Tree) Has(e lattice.Edge) bool {
	return t.hasID(t.lat.EdgeID(e))
}

// Len returns the number of tree edges.
func (t *Tree) Len() int { return t.n }

// Edges returns the tree edges in enumeration order.
func (t *Tree) Edges() []lattice.Edge {
	out := make([]lattice.Edge, 0, t.n)
	for w, word := range t.words {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			out = append(out, t.lat.EdgeAt(w*64+b))
			word &= word - 1
		}
	}
	return out
}

// Verify checks that t is a spanning tree of its lattice: it must hold
// exactly Vertices()-1 edges, none of which closes a cycle.
func (t *Tree) Verify() error {
	want := t.lat.Vertices() - 1
	if t.n != want {
		return fmt.Errorf("spantree: %d edges, want %d", t.n, want)
	}
	forest := dsu.New(t.lat.Vertices())
	for _, e := range t.Edges() {
		a, b := t.lat.Endpoints(e)
		if !forest.Join(t.lat.Index(a), t.lat.Index(b)) {
			return fmt.Errorf("spantree: edge %v closes a cycle", e)
		}
	}
	if c := forest.Components(); c != 1 {
		return fmt.Errorf("spantree: %d components, want 1", c)
	}
	return nil
}
