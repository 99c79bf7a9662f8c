package sprite

import (
	"runtime"
	"sync"
)

// Result holds the outcome of registering one Entry.
type Result struct {
	Name string
	Path string
	Err  error
}

// Preload decodes and registers entries using a pool of workers.
// Results are returned in entry order; failed entries leave the atlas untouched.
func Preload(a *Atlas, entries []Entry, workers int) []Result {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]Result, len(entries))

	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				e := entries[idx]
				results[idx] = Result{Name: e.Name, Path: e.Path, Err: a.RegisterFile(e.Name, e.Path)}
			}
		}()
	}

	for i := range entries {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}
