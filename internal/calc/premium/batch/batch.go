package batch

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"sync"

	"CableCheck/internal/calc/analysis"
)

var ErrNoItems = errors.New("no items")

type Input struct {
	Items []analysis.Input `json:"items"`
}

type Item struct {
	Index  int              `json:"index"`
	Result *analysis.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
	Status int              `json:"status"`
}

type Result struct {
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Results   []Item `json:"results"`
}

// Calculate runs every analysis concurrently, at most GOMAXPROCS at a time.
// Results keep input order; a failed item does not stop the others.
func Calculate(ctx context.Context, env *analysis.Env, in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, ErrNoItems
	}
	out := Result{Results: make([]Item, len(in.Items))}
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	for i, item := range in.Items {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			out.Results[i] = failed(i, ctx.Err())
			continue
		}
		wg.Add(1)
		go func(i int, item analysis.Input) {
			defer func() {
				<-sem
				wg.Done()
			}()
			if err := ctx.Err(); err != nil {
				out.Results[i] = failed(i, err)
				return
			}
			res, err := env.Calculate(item)
			if err != nil {
				out.Results[i] = failed(i, err)
				return
			}
			out.Results[i] = Item{Index: i, Result: &res, Status: http.StatusOK}
		}(i, item)
	}
	wg.Wait()

	for _, r := range out.Results {
		if r.Result != nil {
			out.Succeeded++
		} else {
			out.Failed++
		}
	}
	return out, nil
}

func failed(i int, err error) Item {
	return Item{Index: i, Error: err.Error(), Status: analysis.StatusCode(err)}
}
