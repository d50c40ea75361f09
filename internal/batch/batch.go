// Package batch provides a bounded-concurrency runner for sequences of
// independent work items. Items are processed in consecutive chunks; within
// a chunk every worker runs concurrently, and the next chunk only starts
// once all of the previous chunk's items have settled. An inter-chunk delay
// keeps request rates within the budget enforced by upstream services.
package batch

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultChunkSize is the number of in-flight workers per chunk.
	DefaultChunkSize = 2

	// DefaultDelay is the pause between consecutive chunks.
	DefaultDelay = 500 * time.Millisecond
)

// Options configures a batch run.
type Options struct {
	// ChunkSize caps concurrent workers. Zero or negative means DefaultChunkSize.
	ChunkSize int

	// Delay is the wait between chunks (not after the last one).
	// Zero means DefaultDelay; negative means no delay.
	Delay time.Duration

	// OnProgress, if set, is called after each successful item with the
	// running completed count and the total item count.
	OnProgress func(completed, total int)

	// OnError, if set, is called for each failed item.
	OnError func(err error, index int)
}

// Failure records one failed item along with its original index.
type Failure[T any] struct {
	Index int
	Item  T
	Err   error
}

// Result aggregates the outcome of one batch run. Successful and Failed
// are in chunk-major order: grouped by chunk, item order within each chunk.
type Result[T, R any] struct {
	Successful []R
	Failed     []Failure[T]
	Total      int
}

// Run processes items with at most opts.ChunkSize workers in flight.
//
// Each item's outcome is independent: one failed or slow item does not
// block its chunk-mates, but the whole chunk must settle before the next
// starts. The runner has no built-in retry; compose with Retry if needed.
// If ctx is cancelled at a chunk boundary the remaining items are recorded
// as failures with ctx.Err().
func Run[T, R any](
	ctx context.Context,
	items []T,
	worker func(ctx context.Context, item T, index, total int) (R, error),
	opts Options,
) *Result[T, R] {
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	delay := opts.Delay
	if delay == 0 {
		delay = DefaultDelay
	}

	total := len(items)
	result := &Result[T, R]{Total: total}

	type outcome struct {
		value R
		err   error
	}

	for start := 0; start < total; start += chunkSize {
		if start > 0 && delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
			}
		}

		if err := ctx.Err(); err != nil {
			for i := start; i < total; i++ {
				result.Failed = append(result.Failed, Failure[T]{Index: i, Item: items[i], Err: err})
				if opts.OnError != nil {
					opts.OnError(err, i)
				}
			}
			return result
		}

		end := start + chunkSize
		if end > total {
			end = total
		}

		outcomes := make([]outcome, end-start)
		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				value, err := worker(ctx, items[i], i, total)
				outcomes[i-start] = outcome{value: value, err: err}
			}(i)
		}
		wg.Wait()

		// All mutation of the accumulators happens here, after the chunk
		// has settled, on the coordinating goroutine.
		for i := start; i < end; i++ {
			o := outcomes[i-start]
			if o.err != nil {
				result.Failed = append(result.Failed, Failure[T]{Index: i, Item: items[i], Err: o.err})
				if opts.OnError != nil {
					opts.OnError(o.err, i)
				}
				continue
			}
			result.Successful = append(result.Successful, o.value)
			if opts.OnProgress != nil {
				opts.OnProgress(len(result.Successful), total)
			}
		}
	}

	return result
}
