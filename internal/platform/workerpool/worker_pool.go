// internal/platform/workerpool/worker_pool.go
package workerpool

import (
	"context"
	"sync"
	"sync/atomic"

	"userenum/internal/platform/logx"
)

// Handler procesa un elemento y produce exactamente un resultado.
type Handler[T, R any] func(ctx context.Context, item T) R

// WorkerPool ejecuta un Handler en un número fijo de goroutines.
// La cola y el canal de resultados tienen capacidad QueueSize, de modo que
// un llamador que nunca tenga más de QueueSize elementos pendientes de
// drenar no bloquea en Submit y los workers no bloquean al publicar.
type WorkerPool[T, R any] struct {
	workers   int
	queueSize int
	handler   Handler[T, R]
	logger    logx.Logger

	// Channels
	taskQueue chan T
	results   chan R

	// Control
	wg      sync.WaitGroup
	ctx     context.Context
	once    sync.Once
	running atomic.Int64
	peak    atomic.Int64
}

// Config configura el worker pool.
type Config struct {
	Workers   int
	QueueSize int
	Logger    logx.Logger
}

// New crea un nuevo worker pool. Los workers reciben ctx en cada llamada al handler.
func New[T, R any](ctx context.Context, cfg Config, handler Handler[T, R]) *WorkerPool[T, R] {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < cfg.Workers {
		cfg.QueueSize = cfg.Workers
	}
	if cfg.Logger == nil {
		cfg.Logger = logx.Discard()
	}

	return &WorkerPool[T, R]{
		workers:   cfg.Workers,
		queueSize: cfg.QueueSize,
		handler:   handler,
		logger:    cfg.Logger.With("component", "worker-pool"),
		taskQueue: make(chan T, cfg.QueueSize),
		results:   make(chan R, cfg.QueueSize),
		ctx:       ctx,
	}
}

// Start lanza los workers.
func (wp *WorkerPool[T, R]) Start() {
	wp.logger.Debug("starting worker pool", "workers", wp.workers, "queue", wp.queueSize)

	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// worker consume la cola hasta que se cierra. Los elementos encolados se
// procesan aunque ctx esté cancelado: el handler decide cómo resolverlos.
func (wp *WorkerPool[T, R]) worker(id int) {
	defer wp.wg.Done()

	for item := range wp.taskQueue {
		n := wp.running.Add(1)
		for {
			p := wp.peak.Load()
			if n <= p || wp.peak.CompareAndSwap(p, n) {
				break
			}
		}

		r := wp.handler(wp.ctx, item)
		wp.running.Add(-1)
		wp.results <- r
	}

	wp.logger.Debug("task queue closed, worker stopping", "worker_id", id)
}

// Submit encola un elemento. Bloquea solo si la cola está llena.
func (wp *WorkerPool[T, R]) Submit(item T) {
	wp.taskQueue <- item
}

// Results expone el canal de resultados en orden de finalización.
func (wp *WorkerPool[T, R]) Results() <-chan R {
	return wp.results
}

// CloseQueue indica que no habrá más envíos. Es idempotente.
func (wp *WorkerPool[T, R]) CloseQueue() {
	wp.once.Do(func() { close(wp.taskQueue) })
}

// Stop cierra la cola y espera a que todos los workers terminen.
// El llamador debe haber drenado los resultados pendientes, o tener
// capacidad suficiente en el canal, antes de llamar a Stop.
func (wp *WorkerPool[T, R]) Stop() {
	wp.CloseQueue()
	wp.wg.Wait()
	wp.logger.Debug("worker pool stopped", "peak_running", wp.peak.Load())
}

// Stats retorna estadísticas del worker pool.
func (wp *WorkerPool[T, R]) Stats() Stats {
	return Stats{
		Workers:     wp.workers,
		QueueSize:   len(wp.taskQueue),
		ResultsSize: len(wp.results),
		Running:     int(wp.running.Load()),
		PeakRunning: int(wp.peak.Load()),
	}
}

// Stats contiene estadísticas del worker pool.
type Stats struct {
	Workers     int
	QueueSize   int
	ResultsSize int
	Running     int
	PeakRunning int
}
