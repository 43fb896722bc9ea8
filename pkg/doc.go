// Package pkg provides the libraries behind hilbertmaze, a generator of
// deterministic maze images.
//
// # Overview
//
// hilbertmaze draws a random spanning tree of a toroidal grid and paints
// every cell with the color its position in a depth-first walk maps to on a
// 3D Hilbert curve. The pkg directory is organized into three areas:
//
//  1. Algorithms: [lattice], [dsu], [spantree], [walk], [hilbert], [colorize]
//  2. Orchestration: [generator] (pure), [pipeline] (cached, encoded)
//  3. Infrastructure: [sink], [treeviz], [cache], [config], [observability]
//
// # Architecture
//
// The data flow of a run:
//
//	(scale, seed)
//	      ↓
//	[lattice] grid of side scale³
//	      ↓
//	[spantree] shuffled Kruskal over [dsu]
//	      ↓
//	[walk] iterative DFS, big-integer visitation index
//	      ↓
//	[colorize] index → [hilbert] point → RGB
//	      ↓
//	[pixmap] → [sink] PNG/BMP/TIFF/SVG
//
// # Quick Start
//
//	img, err := generator.MakeImage(3, 42)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	f, _ := os.Create("img-3-42.png")
//	defer f.Close()
//	sink.Encode(f, img, sink.FormatPNG)
package pkg
