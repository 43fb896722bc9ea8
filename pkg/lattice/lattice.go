package lattice

import (
	"fmt"

	apperr "github.com/matzehuels/hilbertmaze/pkg/errors"
)

// MaxScale is the largest supported scale. It keeps the per-axis color range
// (scale²) within a single byte.
const MaxScale = 15

// Orientation selects one of the two candidate edges a vertex owns.
type Orientation uint8

const (
	// Right is the edge from (row, col) to (row, col+1 mod size).
	Right Orientation = iota
	// Down is the edge from (row, col) to (row+1 mod size, col).
	Down
)

// String returns "right" or "down".
func (o Orientation) String() string {
	if o == Right {
		return "right"
	}
	return "down"
}

// Direction is a travel direction between neighboring vertices.
type Direction uint8

const (
	// DirRight moves to the next column.
	DirRight Direction = iota
	// DirDown moves to the next row.
	DirDown
	// DirLeft moves to the previous column.
	DirLeft
	// DirUp moves to the previous row.
	DirUp
)

// Directions lists the four travel directions in the order the walker
// examines them.
var Directions = [4]Direction{DirRight, DirDown, DirLeft, DirUp}

// Opposite returns the direction that undoes d.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// String returns the lower-case direction name.
func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Vertex identifies a grid cell. Row and Col lie in [0, size).
type Vertex struct {
	Row, Col int
}

// String formats the vertex as "row,col".
func (v Vertex) String() string {
	return fmt.Sprintf("%d,%d", v.Row, v.Col)
}

// Edge is a candidate connection owned by the vertex (Row, Col).
type Edge struct {
	Row, Col int
	Orient   Orientation
}

// Lattice is the toroidal grid for one scale. The zero value is not usable;
// construct it with New.
type Lattice struct {
	scale int
	size  int
}

// New returns the lattice for scale, whose side is scale³.
// Scales outside [1, MaxScale] are rejected with an INVALID_SCALE error.
func New(scale int) (Lattice, error) {
	if err := apperr.ValidateScale(scale, MaxScale); err != nil {
		return Lattice{}, err
	}
	return Lattice{scale: scale, size: scale * scale * scale}, nil
}

// Scale returns the generation parameter the lattice was built from.
func (l Lattice) Scale() int { return l.scale }

// Size returns the side length of the grid.
func (l Lattice) Size() int { return l.size }

// Vertices returns the number of vertices, size².
func (l Lattice) Vertices() int { return l.size * l.size }

// EdgeCount returns the number of candidate edges, 2·size².
func (l Lattice) EdgeCount() int { return 2 * l.size * l.size }

// Index returns the row-major index of v.
func (l Lattice) Index(v Vertex) int { return v.Row*l.size + v.Col }

// VertexAt is the inverse of Index.
func (l Lattice) VertexAt(i int) Vertex {
	return Vertex{Row: i / l.size, Col: i % l.size}
}

// EdgeID returns the dense index of e in row, col, (right, down) order.
func (l Lattice) EdgeID(e Edge) int {
	return 2*(e.Row*l.size+e.Col) + int(e.Orient)
}

// EdgeAt is the inverse of EdgeID.
func (l Lattice) EdgeAt(id int) Edge {
	v := l.VertexAt(id / 2)
	return Edge{Row: v.Row, Col: v.Col, Orient: Orientation(id % 2)}
}

// Endpoints returns the two vertices e connects, the owner first.
// On a 1×1 lattice both endpoints are the same vertex.
func (l Lattice) Endpoints(e Edge) (Vertex, Vertex) {
	first := Vertex{Row: e.Row, Col: e.Col}
	if e.Orient == Right {
		return first, Vertex{Row: e.Row, Col: (e.Col + 1) % l.size}
	}
	return first, Vertex{Row: (e.Row + 1) % l.size, Col: e.Col}
}

// Step returns the neighbor of v in direction d, wrapping at the borders.
func (l Lattice) Step(v Vertex, d Direction) Vertex {
	switch d {
	case DirRight:
		v.Col = (v.Col + 1) % l.size
	case DirDown:
		v.Row = (v.Row + 1) % l.size
	case DirLeft:
		v.Col = (v.Col + l.size - 1) % l.size
	case DirUp:
		v.Row = (v.Row + l.size - 1) % l.size
	}
	return v
}

// EdgeToward returns the candidate edge joining v to its neighbor in
// direction d. Left and Up resolve to the neighbor's Right and Down edges.
func (l Lattice) EdgeToward(v Vertex, d Direction) Edge {
	switch d {
	case DirLeft:
		n := l.Step(v, DirLeft)
		return Edge{Row: n.Row, Col: n.Col, Orient: Right}
	case DirUp:
		n := l.Step(v, DirUp)
		return Edge{Row: n.Row, Col: n.Col, Orient: Down}
	case DirDown:
		return Edge{Row: v.Row, Col: v.Col, Orient: Down}
	default:
		return Edge{Row: v.Row, Col: v.Col, Orient: Right}
	}
}

// Contains reports whether v lies on the grid.
func (l Lattice) Contains(v Vertex) bool {
	return v.Row >= 0 && v.Row < l.size && v.Col >= 0 && v.Col < l.size
}
