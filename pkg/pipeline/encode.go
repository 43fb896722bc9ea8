package pipeline

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/matzehuels/hilbertmaze/pkg/observability"
	"github.com/matzehuels/hilbertmaze/pkg/sink"
)

// Encode upscales img by opts.Zoom and encodes it in every format of
// opts.Formats.
func Encode(ctx context.Context, img image.Image, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	zoomed, err := sink.Zoom(img, opts.Zoom)
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		start := time.Now()
		data, err := sink.EncodeBytes(zoomed, format)
		hooks.OnEncodeComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
