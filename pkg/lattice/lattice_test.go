package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/matzehuels/hilbertmaze/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		scale    int
		size     int
		vertices int
		edges    int
		wantErr  bool
	}{
		{scale: 1, size: 1, vertices: 1, edges: 2},
		{scale: 2, size: 8, vertices: 64, edges: 128},
		{scale: 3, size: 27, vertices: 729, edges: 1458},
		{scale: MaxScale, size: 3375, vertices: 3375 * 3375, edges: 2 * 3375 * 3375},
		{scale: 0, wantErr: true},
		{scale: -4, wantErr: true},
		{scale: MaxScale + 1, wantErr: true},
	}

	for _, tt := range tests {
		l, err := New(tt.scale)
		if tt.wantErr {
			require.Error(t, err, "scale %d", tt.scale)
			assert.Equal(t, apperr.ErrCodeInvalidScale, apperr.GetCode(err))
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.scale, l.Scale())
		assert.Equal(t, tt.size, l.Size())
		assert.Equal(t, tt.vertices, l.Vertices())
		assert.Equal(t, tt.edges, l.EdgeCount())
	}
}

func TestEndpointsWrap(t *testing.T) {
	l, err := New(2)
	require.NoError(t, err)

	a, b := l.Endpoints(Edge{Row: 3, Col: 7, Orient: Right})
	assert.Equal(t, Vertex{3, 7}, a)
	assert.Equal(t, Vertex{3, 0}, b)

	a, b = l.Endpoints(Edge{Row: 7, Col: 5, Orient: Down})
	assert.Equal(t, Vertex{7, 5}, a)
	assert.Equal(t, Vertex{0, 5}, b)

	a, b = l.Endpoints(Edge{Row: 2, Col: 2, Orient: Down})
	assert.Equal(t, Vertex{2, 2}, a)
	assert.Equal(t, Vertex{3, 2}, b)
}

func TestEndpointsSingleVertex(t *testing.T) {
	l, err := New(1)
	require.NoError(t, err)
	for _, o := range []Orientation{Right, Down} {
		a, b := l.Endpoints(Edge{Orient: o})
		assert.Equal(t, a, b)
	}
}

func TestEdgeToward(t *testing.T) {
	l, err := New(2)
	require.NoError(t, err)

	tests := []struct {
		v    Vertex
		d    Direction
		want Edge
	}{
		{Vertex{0, 0}, DirRight, Edge{0, 0, Right}},
		{Vertex{0, 0}, DirDown, Edge{0, 0, Down}},
		{Vertex{0, 0}, DirLeft, Edge{0, 7, Right}},
		{Vertex{0, 0}, DirUp, Edge{7, 0, Down}},
		{Vertex{4, 5}, DirLeft, Edge{4, 4, Right}},
		{Vertex{4, 5}, DirUp, Edge{3, 5, Down}},
	}
	for _, tt := range tests {
		t.Run(tt.v.String()+"/"+tt.d.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, l.EdgeToward(tt.v, tt.d))
		})
	}
}

// Every direction's edge must connect v to Step(v, d).
func TestEdgeTowardMatchesStep(t *testing.T) {
	l, err := New(2)
	require.NoError(t, err)

	for i := 0; i < l.Vertices(); i++ {
		v := l.VertexAt(i)
		for _, d := range Directions {
			a, b := l.Endpoints(l.EdgeToward(v, d))
			n := l.Step(v, d)
			assert.ElementsMatch(t, []Vertex{v, n}, []Vertex{a, b}, "v=%v d=%v", v, d)
			assert.Equal(t, v, l.Step(n, d.Opposite()))
			assert.Equal(t, l.EdgeToward(v, d), l.EdgeToward(n, d.Opposite()))
		}
	}
}

func TestEnumerationRoundTrip(t *testing.T) {
	l, err := New(2)
	require.NoError(t, err)

	for id := 0; id < l.EdgeCount(); id++ {
		e := l.EdgeAt(id)
		require.True(t, l.Contains(Vertex{e.Row, e.Col}))
		assert.Equal(t, id, l.EdgeID(e))
	}
	for i := 0; i < l.Vertices(); i++ {
		assert.Equal(t, i, l.Index(l.VertexAt(i)))
	}

	// row, col, (right, down)
	assert.Equal(t, Edge{0, 0, Right}, l.EdgeAt(0))
	assert.Equal(t, Edge{0, 0, Down}, l.EdgeAt(1))
	assert.Equal(t, Edge{0, 1, Right}, l.EdgeAt(2))
	assert.Equal(t, Edge{1, 0, Right}, l.EdgeAt(16))
}

func TestDirection(t *testing.T) {
	assert.Equal(t, DirLeft, DirRight.Opposite())
	assert.Equal(t, DirUp, DirDown.Opposite())
	assert.Equal(t, DirRight, DirLeft.Opposite())
	assert.Equal(t, DirDown, DirUp.Opposite())
	assert.Equal(t, "up", DirUp.String())
	assert.Equal(t, "Direction(9)", Direction(9).String())
	assert.Equal(t, "down", Down.String())
}
