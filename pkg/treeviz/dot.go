package treeviz

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/hilbertmaze/pkg/colorize"
	"github.com/matzehuels/hilbertmaze/pkg/lattice"
	"github.com/matzehuels/hilbertmaze/pkg/spantree"
	"github.com/matzehuels/hilbertmaze/pkg/walk"
)

// MaxVertices is the largest lattice ToDOT accepts.
const MaxVertices = 4096

// ErrTooLarge is returned for lattices above MaxVertices.
var ErrTooLarge = errors.New("treeviz: lattice too large to draw")

// Options configures diagram rendering.
type Options struct {
	// Detailed labels every node with its visitation index.
	// When false, nodes are unlabeled color swatches.
	Detailed bool
}

// ToDOT converts t to Graphviz DOT. Node colors come from c applied to the
// walk order starting at start.
func ToDOT(t *spantree.Tree, start lattice.Vertex, c *colorize.Colorizer, opts Options) (string, error) {
	l := t.Lattice()
	if l.Vertices() > MaxVertices {
		return "", fmt.Errorf("%w: %d vertices (max %d)", ErrTooLarge, l.Vertices(), MaxVertices)
	}
	order, err := walk.Order(t, start)
	if err != nil {
		return "", err
	}
	index := make([]int, l.Vertices())
	for i, v := range order {
		index[l.Index(v)] = i
	}

	var buf bytes.Buffer
	buf.WriteString("graph T {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=square, style=filled, fixedsize=true, width=0.5, fontsize=10, penwidth=0];\n")
	buf.WriteString("  edge [penwidth=2];\n")
	buf.WriteString("\n")

	for i := 0; i < l.Vertices(); i++ {
		v := l.VertexAt(i)
		attrs := fmtAttrs(v, index[i], c, opts.Detailed)
		if v == start {
			attrs = append(attrs, "penwidth=3", "color=black")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(v), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range t.Edges() {
		a, b := l.Endpoints(e)
		fmt.Fprintf(&buf, "  %q -- %q", nodeID(a), nodeID(b))
		if wraps(a, b) {
			buf.WriteString(" [style=dashed, color=grey]")
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func nodeID(v lattice.Vertex) string {
	return "v" + v.String()
}

// wraps reports whether the edge a–b crosses the torus seam.
func wraps(a, b lattice.Vertex) bool {
	return b.Row < a.Row || b.Col < a.Col
}

func fmtAttrs(v lattice.Vertex, index int, c *colorize.Colorizer, detailed bool) []string {
	fill, _ := colorful.MakeColor(c.Color(big.NewInt(int64(index))))
	label := ""
	if detailed {
		label = strconv.Itoa(index)
	}
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("pos=\"%d,%d!\"", v.Col, -v.Row),
		fmt.Sprintf("fillcolor=%q", fill.Hex()),
	}
	if detailed {
		fontColor := "black"
		if _, _, lum := fill.Hcl(); lum < 0.5 {
			fontColor = "white"
		}
		attrs = append(attrs, "fontcolor="+fontColor)
	}
	return attrs
}

// RenderSVG lays out a DOT graph and renders it to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized root element with one
// that scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
