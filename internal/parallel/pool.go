// Package parallel runs independent jobs on a fixed set of goroutines.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrPoolClosed is returned when work is submitted to a closed pool.
var ErrPoolClosed = errors.New("parallel: pool is closed")

// Job is one unit of work. It receives the context of the call that
// submitted it and should return early once the context is done.
type Job func(ctx context.Context)

type task struct {
	ctx  context.Context
	job  Job
	done *sync.WaitGroup
}

func (t task) run() {
	defer t.done.Done()
	t.job(t.ctx)
}

// WorkerPool is a pool of goroutines for parallel glyph conversion.
//
// Each worker has its own queue. A worker whose queue is empty steals from
// the other queues, which keeps all workers busy when some glyphs take much
// longer than others.
//
// WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan task // one per worker
	done    chan struct{}
	wg      sync.WaitGroup

	running   atomic.Bool
	completed atomic.Int64
}

// NewWorkerPool starts a pool of workers goroutines; workers <= 0 means
// GOMAXPROCS.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan task, workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan task, queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case t := <-own:
			p.exec(t)
		default:
			if t, ok := p.steal(id); ok {
				p.exec(t)
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case t := <-own:
				p.exec(t)
			}
		}
	}
}

func (p *WorkerPool) exec(t task) {
	defer t.done.Done()
	t.job(t.ctx)
	p.completed.Add(1)
}

// drain runs everything left in a queue.
func (p *WorkerPool) drain(queue chan task) {
	for {
		select {
		case t := <-queue:
			p.exec(t)
		default:
			return
		}
	}
}

// steal takes one task from another worker's queue.
func (p *WorkerPool) steal(self int) (task, bool) {
	for i := range p.workers {
		if i == self {
			continue
		}
		select {
		case t := <-p.queues[i]:
			return t, true
		default:
		}
	}
	return task{}, false
}

// Run distributes jobs round-robin over the workers and waits until all of
// them have returned. Every job is run, even after ctx is done; jobs are
// expected to check ctx themselves. Run returns ctx.Err() after waiting, or
// ErrPoolClosed if the pool was closed before the call.
func (p *WorkerPool) Run(ctx context.Context, jobs []Job) error {
	if !p.running.Load() {
		return ErrPoolClosed
	}
	if len(jobs) == 0 {
		return ctx.Err()
	}

	var done sync.WaitGroup
	done.Add(len(jobs))
	for i, job := range jobs {
		t := task{ctx: ctx, job: job, done: &done}
		select {
		case p.queues[i%p.workers] <- t:
		case <-p.done:
			// Closing: run the rest on the caller's goroutine.
			t.run()
		}
	}
	done.Wait()
	return ctx.Err()
}

// ForEach runs fn(ctx, i) for i in [0, n) and waits for all calls.
func (p *WorkerPool) ForEach(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	jobs := make([]Job, n)
	for i := range jobs {
		jobs[i] = func(ctx context.Context) { fn(ctx, i) }
	}
	return p.Run(ctx, jobs)
}

// Close stops the pool after the queued jobs have run. Further calls do
// nothing. Close must not be called while Run is in flight.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// Completed returns the number of jobs finished by the workers.
func (p *WorkerPool) Completed() int64 {
	return p.completed.Load()
}
