// Package treeviz renders a spanning tree as a Graphviz node-link diagram.
//
// # Overview
//
// Every lattice vertex becomes a node pinned at its grid position and filled
// with the color it receives in the generated image. Tree edges become graph
// edges; edges that wrap around the torus are drawn dashed so the diagram
// stays readable on a flat page. The start vertex of the walk is outlined.
//
// The package produces DOT text with [ToDOT]; [RenderSVG] lays it out with
// the neato engine through go-graphviz.
//
// # Limits
//
// Pinned layouts grow with the square of the lattice side, so [ToDOT] rejects
// lattices with more than [MaxVertices] vertices with [ErrTooLarge].
package treeviz
