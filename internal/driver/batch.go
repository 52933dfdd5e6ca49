// Package driver runs mangle requests in bulk for the CLI: parallel
// batch execution over a resolved manifest model, an injectivity check
// over the produced symbols, and a content-addressed disk cache.
package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"sylph/internal/mangle"
	"sylph/internal/manifest"
)

// Symbol is one mangled request: the manifest label and the produced
// linker name.
type Symbol struct {
	Label string
	Name  string
}

// Batch mangles every request of a model and returns the symbols in
// request order. jobs <= 0 means one worker per CPU. Distinct requests
// producing one symbol is a collision and fails the whole batch.
func Batch(ctx context.Context, model *manifest.Model, jobs int) ([]Symbol, error) {
	reqs := model.Requests
	if len(reqs) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	results := make([]Symbol, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(reqs)))

	for i, req := range reqs {
		g.Go(func(i int, req manifest.Request) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				name, err := mangleOne(model, req)
				if err != nil {
					return err
				}
				results[i] = Symbol{Label: req.Label, Name: name}
				return nil
			}
		}(i, req))
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := checkInjective(results); err != nil {
		return nil, err
	}
	return results, nil
}

// mangleOne runs one request on a fresh mangler. The mangler treats
// malformed input as a fatal precondition; at the batch boundary that
// becomes an error naming the offending request.
func mangleOne(model *manifest.Model, req manifest.Request) (name string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("driver: request %q: %v", req.Label, r)
		}
	}()
	return mangle.New(model.Types, model.Decls).Mangle(req.Entity), nil
}

// checkInjective rejects batches where two requests mangle to one
// symbol: the linker would silently merge them.
func checkInjective(symbols []Symbol) error {
	seen := make(map[string]string, len(symbols))
	for _, s := range symbols {
		if prev, ok := seen[s.Name]; ok {
			return fmt.Errorf("driver: requests %q and %q both mangle to %q", prev, s.Label, s.Name)
		}
		seen[s.Name] = s.Label
	}
	return nil
}
