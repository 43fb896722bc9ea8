// Package cli implements the hilbertmaze command-line interface.
//
// This package provides commands for generating maze images, rendering the
// underlying spanning tree as a Graphviz diagram, and managing the artifact
// cache and user configuration. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Paint the maze for a scale and seed as PNG, BMP, TIFF, or SVG
//   - tree: Render the spanning tree as DOT or SVG
//   - cache: Inspect or clear cached artifacts
//   - config: Show or initialize the configuration file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/hilbertmaze/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli
