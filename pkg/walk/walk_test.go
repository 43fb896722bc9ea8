package walk

import (
	"errors"
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/hilbertmaze/pkg/lattice"
	"github.com/matzehuels/hilbertmaze/pkg/spantree"
)

func mustLattice(t *testing.T, scale int) lattice.Lattice {
	t.Helper()
	l, err := lattice.New(scale)
	require.NoError(t, err)
	return l
}

// comb returns a tree with a spine down column 0 and every row filled
// rightwards from it.
func comb(l lattice.Lattice) *spantree.Tree {
	var edges []lattice.Edge
	for r := 0; r < l.Size(); r++ {
		for c := 0; c < l.Size()-1; c++ {
			edges = append(edges, lattice.Edge{Row: r, Col: c, Orient: lattice.Right})
		}
		if r < l.Size()-1 {
			edges = append(edges, lattice.Edge{Row: r, Col: 0, Orient: lattice.Down})
		}
	}
	return spantree.FromEdges(l, edges)
}

func TestOrderComb(t *testing.T) {
	l := mustLattice(t, 2)
	tree := comb(l)
	require.NoError(t, tree.Verify())

	order, err := Order(tree, lattice.Vertex{})
	require.NoError(t, err)
	require.Len(t, order, 64)

	var want []lattice.Vertex
	// Down is pushed after Right, so the spine is explored first.
	for r := 0; r < 8; r++ {
		want = append(want, lattice.Vertex{Row: r, Col: 0})
	}
	// The bottom row is the most recent push, then rows unwind upwards.
	for r := 7; r >= 0; r-- {
		for c := 1; c < 8; c++ {
			want = append(want, lattice.Vertex{Row: r, Col: c})
		}
	}
	assert.Equal(t, want, order)
}

func TestWalkArrivalAndIndex(t *testing.T) {
	l := mustLattice(t, 2)
	tree := comb(l)

	var seen int64
	err := Walk(tree, lattice.Vertex{Row: 3, Col: 4}, func(v Visit) error {
		assert.Equal(t, seen, v.Index.Int64())
		if seen == 0 {
			assert.True(t, v.Root)
		} else {
			assert.False(t, v.Root)
		}
		seen++
		return nil
	})
	require.NoError(t, err)
	assert.EqualValues(t, 64, seen)
}

func TestWalkCoversRandomTrees(t *testing.T) {
	l := mustLattice(t, 2)
	for seed := uint64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
		tree := spantree.Build(l, rng)
		start := lattice.Vertex{Row: rng.IntN(l.Size()), Col: rng.IntN(l.Size())}

		order, err := Order(tree, start)
		require.NoError(t, err)
		require.Len(t, order, l.Vertices())
		assert.Equal(t, start, order[0])

		seen := make(map[lattice.Vertex]bool, len(order))
		for _, v := range order {
			assert.False(t, seen[v], "vertex %v visited twice", v)
			seen[v] = true
		}
	}
}

func TestWalkSingleVertex(t *testing.T) {
	l := mustLattice(t, 1)
	tree := spantree.Build(l, rand.New(rand.NewPCG(1, 2)))
	order, err := Order(tree, lattice.Vertex{})
	require.NoError(t, err)
	assert.Equal(t, []lattice.Vertex{{}}, order)
}

func TestWalkDetectsCycle(t *testing.T) {
	l := mustLattice(t, 2)
	var ring []lattice.Edge
	for c := 0; c < l.Size(); c++ {
		ring = append(ring, lattice.Edge{Row: 0, Col: c, Orient: lattice.Right})
	}
	_, err := Order(spantree.FromEdges(l, ring), lattice.Vertex{})
	assert.ErrorIs(t, err, ErrNotATree)
}

func TestWalkVisitError(t *testing.T) {
	l := mustLattice(t, 2)
	stop := errors.New("stop")
	calls := 0
	err := Walk(comb(l), lattice.Vertex{}, func(v Visit) error {
		calls++
		if v.Index.Cmp(big.NewInt(5)) == 0 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.ErrorContains(t, err, "visit 5,0")
	assert.Equal(t, 6, calls)
}

func TestWalkStartOutside(t *testing.T) {
	l := mustLattice(t, 2)
	_, err := Order(comb(l), lattice.Vertex{Row: 8})
	assert.Error(t, err)
}
