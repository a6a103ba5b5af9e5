package runner

import (
	"sync"

	"github.com/clapval/clapval/pkg/result"
)

// Job is one plugin to validate: a loaded bundle and one of the plugin
// IDs it advertises.
type Job struct {
	Target   Target
	PluginID string
}

// JobResult is the full test-matrix outcome for one Job.
type JobResult struct {
	PluginID string
	Results  []result.Result
}

// Matrix runs every Job across opts' selected test names, bounding
// concurrency to opts.Parallelism (1 if unset) while preserving the
// caller's job ordering in the returned slice regardless of which
// goroutine finishes first.
func Matrix(jobs []Job, opts Options) []JobResult {
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	out := make([]JobResult, len(jobs))
	sem := make(chan struct{}, opts.Parallelism)
	var wg sync.WaitGroup

	for i, job := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, job Job) {
			defer wg.Done()
			defer func() { <-sem }()
			out[i] = JobResult{
				PluginID: job.PluginID,
				Results:  Run(job.Target, job.PluginID, opts),
			}
		}(i, job)
	}
	wg.Wait()
	return out
}
