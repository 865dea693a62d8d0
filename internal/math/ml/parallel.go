package ml

import (
	"golang.org/x/sync/errgroup"
)

// rangeJob denotes the start and end indices of the portion of rows processed by a worker.
type rangeJob struct {
	a, b int
}

// split divides n rows into at most the given number of contiguous ranges.
func split(n, workers int) []rangeJob {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers == 0 {
		return []rangeJob{}
	}
	jobs := make([]rangeJob, workers)
	f := n / workers
	r := n % workers
	a := 0
	for i := 0; i < workers; i++ {
		b := a + f
		if i < r {
			b++
		}
		jobs[i] = rangeJob{a: a, b: b}
		a = b
	}
	return jobs
}

// parallel runs fn on contiguous row ranges covering [0,n), w being the index of the range.
// fn must only write to state owned by its own range,
// so that the outcome does not depend on scheduling.
func parallel(n, workers int, fn func(w, a, b int)) {
	jobs := split(n, workers)
	if len(jobs) == 0 {
		return
	}
	if len(jobs) == 1 {
		fn(0, 0, n)
		return
	}
	var g errgroup.Group
	for w, job := range jobs {
		w, job := w, job
		g.Go(func() error {
			fn(w, job.a, job.b)
			return nil
		})
	}
	_ = g.Wait()
}
