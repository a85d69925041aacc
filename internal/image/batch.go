package image

import (
	"context"
	"errors"
	"log"

	"tileset-composer/internal/tile"
	"tileset-composer/internal/tileset"
)

// MaxRecommendedFiles is the number of images above which front ends
// should warn before a batch load.
const MaxRecommendedFiles = 10

// ExceedsRecommended reports whether loading n files at once deserves a warning.
func ExceedsRecommended(n int) bool {
	return n > MaxRecommendedFiles
}

// ProgressFunc is called after each image with the number processed so far.
type ProgressFunc func(done, total int)

// BatchResult is the outcome of loading several images.
type BatchResult struct {
	Units     []*tile.Unit // Units of every loaded image, in input order
	Loaded    []string     // Paths that loaded successfully
	Failed    []*LoadError // Paths that could not be read or decoded
	Cancelled bool         // ctx was cancelled before all images were processed
}

// FailureCount returns the number of images that failed to load.
func (r *BatchResult) FailureCount() int {
	return len(r.Failed)
}

// LoadBatch loads images one after another. Unreadable files are
// recorded and skipped. ctx is checked after every image; on
// cancellation the units loaded so far are returned.
func LoadBatch(ctx context.Context, paths []string, typ *tileset.Type, progress ProgressFunc) *BatchResult {
	result := &BatchResult{}
	for i, path := range paths {
		units, err := LoadUnits(path, typ)
		if err != nil {
			var le *LoadError
			if !errors.As(err, &le) {
				le = &LoadError{Path: path, Err: err}
			}
			log.Printf("Load: skipping %s: %v", path, le.Err)
			result.Failed = append(result.Failed, le)
		} else {
			result.Units = append(result.Units, units...)
			result.Loaded = append(result.Loaded, path)
		}

		if progress != nil {
			progress(i+1, len(paths))
		}
		if ctx.Err() != nil {
			result.Cancelled = i+1 < len(paths)
			break
		}
	}
	return result
}

// LoadFolder loads every supported image directly inside dir.
func LoadFolder(ctx context.Context, dir string, typ *tileset.Type, progress ProgressFunc) *BatchResult {
	return LoadBatch(ctx, FindImages(dir), typ, progress)
}
