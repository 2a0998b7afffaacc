package converter

import (
	"context"
	"runtime"
	"sync"
)

// BatchResult is the outcome of converting one file in a batch.
type BatchResult struct {
	File   InputFile
	Result *ConversionResult
	Err    error
}

// DefaultWorkers leaves one CPU free for the caller.
func DefaultWorkers() int {
	return max(runtime.NumCPU()-1, 1)
}

// ConvertBatch converts files to targetFormat with at most workers
// conversions in flight. Results are returned in input order. Once ctx is
// done no further files are started; those files get ctx.Err().
func ConvertBatch(ctx context.Context, engine *Engine, files []InputFile, targetFormat string, workers int) []BatchResult {
	if workers < 1 {
		workers = DefaultWorkers()
	}

	results := make([]BatchResult, len(files))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, file := range files {
		results[i].File = file
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		select {
		case <-ctx.Done():
			results[i].Err = ctx.Err()
			continue
		case sem <- struct{}{}: // Acquire a token
		}

		wg.Add(1)
		go func(i int, file InputFile) {
			defer wg.Done()
			defer func() { <-sem }() // Release the token

			results[i].Result, results[i].Err = engine.Convert(file, targetFormat)
		}(i, file)
	}
	wg.Wait()

	return results
}
