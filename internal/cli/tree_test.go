package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	apperr "github.com/matzehuels/hilbertmaze/pkg/errors"
)

func TestParseTreeFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"svg", []string{"svg"}, false},
		{"dot, SVG", []string{"dot", "svg"}, false},
		{"dot,dot,,", []string{"dot"}, false},
		{"", nil, true},
		{"png", nil, true},
	}

	for _, tt := range tests {
		got, err := parseTreeFormats(tt.in)
		if tt.wantErr {
			if !apperr.Is(err, apperr.ErrCodeInvalidFormat) {
				t.Errorf("parseTreeFormats(%q) error = %v, want INVALID_FORMAT", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseTreeFormats(%q) error: %v", tt.in, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseTreeFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTreeFilename(t *testing.T) {
	if got := treeFilename(3, 42, "dot"); got != "tree-3-42.dot" {
		t.Errorf("treeFilename() = %q, want %q", got, "tree-3-42.dot")
	}
}

func TestTreeWritesDOT(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	if _, err := execute(t, "tree", "2", "42", "-o", dir, "-f", "dot", "--no-cache"); err != nil {
		t.Fatalf("tree error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tree-2-42.dot"))
	if err != nil {
		t.Fatalf("dot not written: %v", err)
	}
	dot := string(data)
	if !strings.HasPrefix(dot, "graph T {") {
		t.Errorf("dot output should open an undirected graph, got %q", dot[:min(len(dot), 40)])
	}
	if n := strings.Count(dot, " -- "); n != 63 {
		t.Errorf("dot output has %d edges, want 63", n)
	}
}

func TestTreeRejectsLargeScale(t *testing.T) {
	isolate(t)

	_, err := execute(t, "tree", "5", "1", "-o", t.TempDir(), "-f", "dot", "--no-cache")
	if !apperr.Is(err, apperr.ErrCodeTooLarge) {
		t.Errorf("error = %v, want TOO_LARGE", err)
	}
}
