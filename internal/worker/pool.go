// Package worker provides a fixed-size pool for background jobs. Workers
// register their job channels in a shared pool; the dispatcher hands each
// queued job to the next free worker.
package worker

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrQueueFull is returned by SubmitJob when the job queue cannot accept
// more work.
var ErrQueueFull = errors.New("job queue is full")

// Job is a unit of background work.
type Job interface {
	// Execute performs the work. The returned error is logged; jobs that
	// need richer failure reporting record it themselves.
	Execute() error
	// ID identifies the job in logs.
	ID() string
}

// Worker pulls jobs from its own channel after registering it with the pool.
type Worker struct {
	id         int
	workerPool chan chan Job
	jobChannel chan Job
	quit       chan struct{}
	wg         *sync.WaitGroup
	log        *logrus.Logger
}

func newWorker(id int, workerPool chan chan Job, wg *sync.WaitGroup, log *logrus.Logger) *Worker {
	return &Worker{
		id:         id,
		workerPool: workerPool,
		jobChannel: make(chan Job),
		quit:       make(chan struct{}),
		wg:         wg,
		log:        log,
	}
}

// start makes the worker listen for jobs until stopped.
func (w *Worker) start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			// Re-register for the next job.
			w.workerPool <- w.jobChannel

			select {
			case job := <-w.jobChannel:
				log := w.log.WithFields(logrus.Fields{"worker": w.id, "job": job.ID()})
				log.Info("Job started")
				if err := job.Execute(); err != nil {
					log.WithField("error", err.Error()).Error("Job failed")
				} else {
					log.Info("Job finished")
				}
			case <-w.quit:
				return
			}
		}
	}()
}

func (w *Worker) stop() {
	close(w.quit)
}

// Dispatcher owns the job queue and the worker pool.
type Dispatcher struct {
	workerPool chan chan Job
	jobQueue   chan Job
	workers    []*Worker
	wg         sync.WaitGroup
	quit       chan struct{}
	log        *logrus.Logger
}

// NewDispatcher creates a dispatcher with maxWorkers workers and a job queue
// of the given size.
func NewDispatcher(maxWorkers, jobQueueSize int, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		workerPool: make(chan chan Job, maxWorkers),
		jobQueue:   make(chan Job, jobQueueSize),
		workers:    make([]*Worker, 0, maxWorkers),
		quit:       make(chan struct{}),
		log:        log,
	}
}

// Run starts the workers and the dispatch loop.
func (d *Dispatcher) Run() {
	d.log.WithField("workers", cap(d.workerPool)).Info("Starting worker pool")
	for i := 1; i <= cap(d.workerPool); i++ {
		w := newWorker(i, d.workerPool, &d.wg, d.log)
		d.workers = append(d.workers, w)
		w.start()
	}
	go d.dispatch()
}

func (d *Dispatcher) dispatch() {
	for {
		select {
		case job := <-d.jobQueue:
			go func(job Job) {
				jobChannel := <-d.workerPool
				jobChannel <- job
			}(job)
		case <-d.quit:
			return
		}
	}
}

// SubmitJob queues a job without blocking. Returns ErrQueueFull when the
// queue is saturated so the caller can reject the request instead of
// silently dropping the work.
func (d *Dispatcher) SubmitJob(job Job) error {
	select {
	case d.jobQueue <- job:
		d.log.WithField("job", job.ID()).Info("Job queued")
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop shuts the dispatcher down and waits for in-flight jobs to finish.
func (d *Dispatcher) Stop() {
	close(d.quit)
	for _, w := range d.workers {
		w.stop()
	}
	d.wg.Wait()
	d.log.Info("Worker pool stopped")
}
