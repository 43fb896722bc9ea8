package cache

import "fmt"

// Keyer derives cache keys from generation inputs.
type Keyer interface {
	// ImageKey identifies an encoded maze image.
	ImageKey(opts ImageKeyOpts) string

	// TreeKey identifies a rendered spanning tree diagram.
	TreeKey(opts TreeKeyOpts) string
}

// ImageKeyOpts holds every input that affects an encoded image.
type ImageKeyOpts struct {
	Scale   int    `json:"scale"`
	Seed    uint64 `json:"seed"`
	Palette string `json:"palette"`
	Zoom    int    `json:"zoom"`
	Format  string `json:"format"`
}

// TreeKeyOpts holds every input that affects a tree diagram.
type TreeKeyOpts struct {
	Scale    int    `json:"scale"`
	Seed     uint64 `json:"seed"`
	Palette  string `json:"palette"`
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
}

// DefaultKeyer hashes the options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ImageKey returns "image:<scale>:<hash>".
func (DefaultKeyer) ImageKey(opts ImageKeyOpts) string {
	return hashKey(fmt.Sprintf("image:%d", opts.Scale), opts)
}

// TreeKey returns "tree:<scale>:<hash>".
func (DefaultKeyer) TreeKey(opts TreeKeyOpts) string {
	return hashKey(fmt.Sprintf("tree:%d", opts.Scale), opts)
}
