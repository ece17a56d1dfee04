// Package batch resolves many datetime inputs concurrently.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/jparise/dt/internal/output"
	"github.com/jparise/dt/internal/zoned"
)

// Resolver parses a single datetime string.
type Resolver interface {
	Resolve(input string) (zoned.Value, error)
}

// Batch orchestrates resolving a list of inputs.
type Batch struct {
	output   *output.Output
	resolver Resolver
}

// New creates a new Batch.
func New(out *output.Output, resolver Resolver) *Batch {
	return &Batch{output: out, resolver: resolver}
}

// Result is the outcome for one input.
type Result struct {
	Input string
	Value zoned.Value
	Err   error
}

// Run resolves every input with bounded parallelism and prints the canonical
// form of each success in input order. Failures are reported as warnings;
// Run fails only when every input failed.
func (b *Batch) Run(ctx context.Context, opts *Options) error {
	if len(opts.Inputs) == 0 {
		b.output.Warningf("No inputs to resolve")
		return nil
	}

	results, failed, err := b.Resolve(ctx, opts)
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Err != nil {
			b.output.Warningf("%q: %v", r.Input, r.Err)
			continue
		}
		b.output.Value(r.Value.String())
	}

	if failed == len(results) {
		return fmt.Errorf("failed to resolve all %d inputs", len(results))
	}
	if failed > 0 {
		b.output.Infof("resolved %d of %d inputs", len(results)-failed, len(results))
	}
	return nil
}

// Resolve resolves every input concurrently and returns one Result per
// input, in input order, along with the number of failed inputs.
func (b *Batch) Resolve(ctx context.Context, opts *Options) ([]Result, int, error) {
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	results := make([]Result, len(opts.Inputs))
	var wg sync.WaitGroup
	var errorCount atomic.Int32
	sem := semaphore.NewWeighted(int64(jobs))

	for i, input := range opts.Inputs {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, 0, err
		}

		wg.Add(1)
		go func(i int, input string) {
			defer wg.Done()
			defer sem.Release(1)

			v, err := b.resolver.Resolve(input)
			if err != nil {
				errorCount.Add(1)
			}
			results[i] = Result{Input: input, Value: v, Err: err}
		}(i, input)
	}

	wg.Wait()

	return results, int(errorCount.Load()), nil
}

// ReadInputs reads one input per line from r. Blank lines are skipped.
func ReadInputs(r io.Reader) ([]string, error) {
	var inputs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading inputs: %w", err)
	}
	return inputs, nil
}
