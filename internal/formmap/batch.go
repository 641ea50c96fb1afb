package formmap

import (
	"context"
	"fmt"
	"os"

	"github.com/hyperfill/formfill/internal/types"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds concurrent classification in GenerateFiles.
const DefaultWorkers = 4

// FileResult is the classifier output for one markup file.
type FileResult struct {
	Path   string                `json:"path"`
	Result *types.GenerateResult `json:"result"`
}

// GenerateFiles classifies each file independently with up to workers goroutines.
// Results keep the order of paths. A scope that is missing from a file is recorded
// in that file's result; only unreadable files fail the batch.
func GenerateFiles(ctx context.Context, paths []string, formSelector string, workers int) ([]FileResult, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]FileResult, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			result, _ := Generate(string(data), formSelector)
			results[i] = FileResult{Path: path, Result: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
