// Package lattice models the toroidal grid graph that hilbertmaze spans.
//
// # Overview
//
// A lattice of a given scale is a square grid of side size = scale³. Every
// vertex (row, col) owns exactly two candidate edges: one [Right] to
// (row, col+1) and one [Down] to (row+1, col). Row and column arithmetic wraps
// modulo size, so the grid is a torus and every vertex has four neighbors.
// The lattice therefore has size² vertices and 2·size² candidate edges.
//
// Edges carry no weight. The spanning tree builder realizes "minimum weight"
// by processing edges in a uniformly random order instead.
//
// # Enumeration
//
// Vertices are enumerated row-major as row*size+col ([Lattice.Index]). Edges
// are enumerated in row, col, (right, down) order as 2*Index(v)+orient
// ([Lattice.EdgeID]). Both enumerations are dense, so callers can back
// per-vertex and per-edge state with plain slices.
//
// # Directions
//
// Traversal works in terms of the four travel [Direction]s. The edge joining a
// vertex to its left or upper neighbor is owned by that neighbor, so
// [Lattice.EdgeToward] maps Left and Up onto the neighbor's Right and Down
// edges:
//
//	        (r-1,c).Down
//	             |
//	(r,c-1).Right-(r,c)-(r,c).Right
//	             |
//	          (r,c).Down
//
// The package is pure: it holds no state besides the size and never draws
// random numbers.
package lattice
