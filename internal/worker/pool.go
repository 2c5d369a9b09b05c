package worker

import (
	"sync"
)

type task func()

// Pool runs submitted tasks on a fixed set of goroutines.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
}

func NewPool(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{jobs: make(chan task, 64)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
			}
		}()
	}
	return p
}

func (p *Pool) Submit(f task) { p.jobs <- f }

// Stop waits for queued tasks to finish. Submit must not be called afterwards.
func (p *Pool) Stop() { close(p.jobs); p.wg.Wait() }

// Run executes jobs on a pool of n workers and returns their errors in job order.
func Run(n int, jobs ...func() error) []error {
	out := make([]error, len(jobs))
	p := NewPool(n)
	for i, job := range jobs {
		p.Submit(func() { out[i] = job() })
	}
	p.Stop()
	return out
}
