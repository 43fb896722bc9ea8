package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear cached images and diagrams",
		Long: `Inspect or clear cached images and diagrams.

Generated artifacts are cached per scale, seed, palette, zoom, format and
release, under $XDG_CACHE_HOME/hilbertmaze (default ~/.cache/hilbertmaze).`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every cached artifact",
			Args:  cobra.NoArgs,
			RunE:  runCacheClear,
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("resolve cache dir: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			},
		},
	)
	return cmd
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	dir, err := cacheDir()
	if err != nil {
		return fmt.Errorf("resolve cache dir: %w", err)
	}

	files, bytes, err := clearDir(dir)
	if err != nil {
		return err
	}
	if files == 0 {
		printInfo("Cache is empty")
		return nil
	}
	printSuccess("Cleared %d cached entries (%s)", files, humanBytes(bytes))
	printDetail("Directory: %s", dir)
	return nil
}

// clearDir empties dir but keeps it, returning the number and total size of
// the files removed. A missing dir counts as empty.
func clearDir(dir string) (files int, bytes int64, err error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}

	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		_ = filepath.WalkDir(p, func(_ string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			files++
			if info, err := d.Info(); err == nil {
				bytes += info.Size()
			}
			return nil
		})
		if err := os.RemoveAll(p); err != nil {
			return files, bytes, err
		}
	}
	return files, bytes, nil
}

// humanBytes formats n with a binary unit, e.g. "1.5 KiB".
func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
