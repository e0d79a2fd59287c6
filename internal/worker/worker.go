package worker

import (
	"sync"

	"go.uber.org/zap"
)

// Task represents a unit of work executed by the pool.
type Task func()

// Pool runs background tasks such as upload cleanup and notification purges.
type Pool interface {
	// Submit queues t and reports whether it was accepted.
	Submit(Task) bool
	Stop()
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
// A panicking task is logged and does not take the worker down.
func NewPool(n int, logger *zap.Logger) Pool {
	if n <= 0 {
		n = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &pool{jobs: make(chan Task, n*16), logger: logger}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.run(job)
			}
		}()
	}
	return p
}

type pool struct {
	mu      sync.RWMutex
	stopped bool
	jobs    chan Task
	wg      sync.WaitGroup
	logger  *zap.Logger
}

func (p *pool) run(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("worker task panicked", zap.Any("panic", r))
		}
	}()
	job()
}

func (p *pool) Submit(t Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}
	p.jobs <- t
	return true
}

// Stop drains queued tasks and waits for the workers to exit.
func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

// Inline runs every task synchronously on the caller's goroutine.
type Inline struct{}

func (Inline) Submit(t Task) bool {
	if t != nil {
		t()
	}
	return true
}

func (Inline) Stop() {}
