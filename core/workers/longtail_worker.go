// ABOUTME: Long-tail worker runs seed keyword expansions on a bounded worker pool
// ABOUTME: Each seed is processed sequentially by one worker; seeds run in parallel

package workers

import (
	"context"
	"sync"
	"time"

	"keywords-app-api/core/config"
	"keywords-app-api/core/domain"
)

// Generator expands one seed keyword
type Generator interface {
	GenerateLongtails(ctx context.Context, seed string, opts ...config.GenerateOption) (*domain.CollectionResult, error)
}

// LongtailJob represents one seed to expand
type LongtailJob struct {
	Seed     string
	Options  []config.GenerateOption
	Context  context.Context
	ResultCh chan<- LongtailOutcome
}

// LongtailOutcome is the result of one job
type LongtailOutcome struct {
	Seed   string
	Result *domain.CollectionResult
	Err    error
}

// LongtailWorker manages background long-tail generation
type LongtailWorker struct {
	generator  Generator
	jobQueue   chan *LongtailJob
	maxWorkers int
	queueSize  int
	submitWait time.Duration
	wg         sync.WaitGroup
	submitters sync.WaitGroup
	done       chan struct{}
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.Mutex
	running    bool
	stopped    bool
}

// WorkerConfig holds configuration for the worker pool
type WorkerConfig struct {
	MaxWorkers int
	QueueSize  int
	SubmitWait time.Duration
}

// DefaultWorkerConfig returns the default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers: 4,
		QueueSize:  100,
		SubmitWait: 5 * time.Second,
	}
}

// NewLongtailWorker creates a new worker pool
func NewLongtailWorker(generator Generator, cfg WorkerConfig) *LongtailWorker {
	ctx, cancel := context.WithCancel(context.Background())

	defaults := DefaultWorkerConfig()
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = defaults.MaxWorkers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaults.QueueSize
	}
	if cfg.SubmitWait <= 0 {
		cfg.SubmitWait = defaults.SubmitWait
	}

	return &LongtailWorker{
		generator:  generator,
		jobQueue:   make(chan *LongtailJob, cfg.QueueSize),
		maxWorkers: cfg.MaxWorkers,
		queueSize:  cfg.QueueSize,
		submitWait: cfg.SubmitWait,
		done:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start starts the worker pool
func (lw *LongtailWorker) Start() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	if lw.running {
		return nil
	}
	if lw.stopped {
		return ErrWorkerStopped
	}

	for i := 0; i < lw.maxWorkers; i++ {
		lw.wg.Add(1)
		go lw.run()
	}

	lw.running = true
	return nil
}

// Stop stops the worker pool. In-flight jobs finish; queued jobs that no
// worker picked up are answered with ErrWorkerStopped.
func (lw *LongtailWorker) Stop() error {
	lw.mu.Lock()
	if !lw.running {
		lw.mu.Unlock()
		return nil
	}
	lw.running = false
	lw.stopped = true
	lw.mu.Unlock()

	close(lw.done)
	lw.submitters.Wait()
	lw.wg.Wait()
	lw.cancel()

	lw.failQueued()
	return nil
}

// failQueued answers every job left in the queue. Only called once no
// worker or submitter can touch the queue.
func (lw *LongtailWorker) failQueued() {
	for {
		select {
		case job := <-lw.jobQueue:
			lw.deliver(job, LongtailOutcome{Seed: job.Seed, Err: ErrWorkerStopped})
		default:
			return
		}
	}
}

// SubmitJob submits a job to the worker pool. It waits up to the configured
// submit timeout for queue space.
func (lw *LongtailWorker) SubmitJob(job *LongtailJob) error {
	lw.mu.Lock()
	if !lw.running {
		stopped := lw.stopped
		lw.mu.Unlock()
		if stopped {
			return ErrWorkerStopped
		}
		return ErrWorkerNotRunning
	}
	lw.submitters.Add(1)
	lw.mu.Unlock()
	defer lw.submitters.Done()

	timer := time.NewTimer(lw.submitWait)
	defer timer.Stop()

	select {
	case lw.jobQueue <- job:
		return nil
	case <-lw.done:
		return ErrWorkerStopped
	case <-timer.C:
		return ErrQueueFull
	}
}

// GenerateBatch expands every seed on the pool and returns outcomes in seed order
func (lw *LongtailWorker) GenerateBatch(ctx context.Context, seeds []string, opts ...config.GenerateOption) ([]LongtailOutcome, error) {
	results := make(chan LongtailOutcome, len(seeds))
	submitted := 0

	for _, seed := range seeds {
		err := lw.SubmitJob(&LongtailJob{
			Seed:     seed,
			Options:  opts,
			Context:  ctx,
			ResultCh: results,
		})
		if err != nil {
			if submitted == 0 {
				return nil, err
			}
			// report the unsubmitted seeds as failed
			results <- LongtailOutcome{Seed: seed, Err: err}
		}
		submitted++
	}

	bySeed := make(map[string][]LongtailOutcome, len(seeds))
	for i := 0; i < len(seeds); i++ {
		select {
		case out := <-results:
			bySeed[out.Seed] = append(bySeed[out.Seed], out)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	ordered := make([]LongtailOutcome, 0, len(seeds))
	for _, seed := range seeds {
		outs := bySeed[seed]
		ordered = append(ordered, outs[0])
		bySeed[seed] = outs[1:]
	}
	return ordered, nil
}

// run is the main loop for each worker. Workers exit once the pool is
// stopped; whatever is still queued is failed by Stop.
func (lw *LongtailWorker) run() {
	defer lw.wg.Done()

	for {
		select {
		case <-lw.done:
			return
		default:
		}

		select {
		case job := <-lw.jobQueue:
			lw.processJob(job)
		case <-lw.done:
			return
		}
	}
}

// processJob expands a single seed
func (lw *LongtailWorker) processJob(job *LongtailJob) {
	ctx := job.Context
	if ctx == nil {
		ctx = lw.ctx
	}

	result, err := lw.generator.GenerateLongtails(ctx, job.Seed, job.Options...)
	lw.deliver(job, LongtailOutcome{Seed: job.Seed, Result: result, Err: err})
}

// deliver sends an outcome unless the job's caller has gone away
func (lw *LongtailWorker) deliver(job *LongtailJob, out LongtailOutcome) {
	if job.ResultCh == nil {
		return
	}
	ctx := job.Context
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case job.ResultCh <- out:
	case <-ctx.Done():
	}
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "worker pool is not running"}
	ErrWorkerStopped    = &WorkerError{Message: "worker pool has been stopped"}
	ErrQueueFull        = &WorkerError{Message: "job queue is full"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
