package workers

import (
	"context"
	"log"
	"sync"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"
)

const (
	DefaultWorkers   = 4
	DefaultQueueSize = 100
)

// Job is one fire-and-forget remote call. Run owns its own result handling.
type Job struct {
	Kind domain.Kind
	ID   string
	Op   domain.Operation
	Run  func(ctx context.Context)
}

// Dispatcher runs remote calls on a fixed pool of goroutines fed by a
// bounded queue. Completion order across jobs is not guaranteed.
type Dispatcher struct {
	jobs    chan Job
	workers int

	mu      sync.Mutex
	idle    *sync.Cond
	pending int
	started bool
	closed  bool

	wg sync.WaitGroup
}

func NewDispatcher(workers, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	d := &Dispatcher{
		jobs:    make(chan Job, queueSize),
		workers: workers,
	}
	d.idle = sync.NewCond(&d.mu)
	return d
}

// Start launches the workers. Jobs run with ctx; cancelling it stops the
// workers after their current job.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		return
	}
	d.started = true
	d.mu.Unlock()

	log.Printf("[DISPATCH] starting %d workers", d.workers)
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.loop(ctx)
	}
}

func (d *Dispatcher) loop(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case job, ok := <-d.jobs:
			if !ok {
				return
			}
			d.process(ctx, job)
		case <-ctx.Done():
			return
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, job Job) {
	defer d.finish()
	if job.Run == nil {
		return
	}
	job.Run(ctx)
}

func (d *Dispatcher) finish() {
	d.mu.Lock()
	d.pending--
	if d.pending == 0 {
		d.idle.Broadcast()
	}
	d.mu.Unlock()
}

// Enqueue schedules job without blocking. It reports false when the queue
// is full or the dispatcher is stopped; the job is then dropped.
func (d *Dispatcher) Enqueue(job Job) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		log.Printf("[DISPATCH] stopped, dropping %s %s %s", job.Op, job.Kind, job.ID)
		return false
	}
	select {
	case d.jobs <- job:
		d.pending++
		return true
	default:
		log.Printf("[DISPATCH] queue full, dropping %s %s %s", job.Op, job.Kind, job.ID)
		return false
	}
}

// Pending returns the number of queued or running jobs.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Wait blocks until every enqueued job has finished.
func (d *Dispatcher) Wait() {
	d.mu.Lock()
	for d.pending > 0 {
		d.idle.Wait()
	}
	d.mu.Unlock()
}

// Stop refuses new jobs, drains the queue and waits for the workers.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	started := d.started
	d.mu.Unlock()

	if started {
		d.wg.Wait()
	}
	// Drain jobs left behind by a cancelled context.
	for job := range d.jobs {
		d.process(context.Background(), job)
	}
	log.Println("[DISPATCH] stopped")
}
