// internal/core/usecases/dispatcher.go
package usecases

import (
	"context"
	"time"

	"userenum/internal/core/domain"
	"userenum/internal/core/ports"
	"userenum/internal/platform/errors"
	"userenum/internal/platform/logx"
	"userenum/internal/platform/workerpool"
)

// DefaultBacklog es el multiplicador K de la ventana: workers × K probes pendientes.
const DefaultBacklog = 5

// DefaultWorkers es el número de workers por defecto.
const DefaultWorkers = 10

// CanceledDetail es el detalle de los candidatos encolados que no llegaron a probarse.
const CanceledDetail = "Canceled before probe"

// DispatcherOptions configura el dispatcher.
type DispatcherOptions struct {
	Prober  ports.Prober
	Workers int
	Backlog int
	Logger  logx.Logger
}

// Dispatcher reparte candidatos sobre un pool fijo de workers manteniendo
// una ventana deslizante acotada de probes pendientes. Entrega cada
// resultado al reporter en orden de finalización, desde una sola goroutine.
type Dispatcher struct {
	prober  ports.Prober
	workers int
	backlog int
	logger  logx.Logger
}

// NewDispatcher crea un dispatcher aplicando valores por defecto.
func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Backlog <= 0 {
		opts.Backlog = DefaultBacklog
	}
	if opts.Logger == nil {
		opts.Logger = logx.Discard()
	}

	return &Dispatcher{
		prober:  opts.Prober,
		workers: opts.Workers,
		backlog: opts.Backlog,
		logger:  opts.Logger.With("component", "dispatcher"),
	}
}

// Window retorna el máximo de probes pendientes (workers × backlog).
func (d *Dispatcher) Window() int {
	return d.workers * d.backlog
}

// Run consume source una sola vez, de principio a fin, saltando líneas en
// blanco. Cuando la ventana está llena drena un resultado antes de enviar el
// siguiente candidato; al agotarse la fuente drena el resto.
//
// Solo una fuente ilegible (ErrSourceUnreadable) o la cancelación de ctx
// (ErrInterrupted) detienen el envío antes de tiempo. En ambos casos los
// probes pendientes se resuelven y se reportan antes de retornar, de modo que
// cada candidato enviado produce exactamente un resultado.
func (d *Dispatcher) Run(ctx context.Context, source ports.CandidateSource, reporter ports.Reporter) (domain.Summary, error) {
	start := time.Now()
	window := d.Window()
	summary := domain.Summary{Window: window}

	pool := workerpool.New(ctx, workerpool.Config{
		Workers:   d.workers,
		QueueSize: window,
		Logger:    d.logger,
	}, d.probe)
	pool.Start()

	d.logger.Info("dispatch started", "workers", d.workers, "window", window)

	inFlight := 0
	deliver := func(r domain.ProbeResult) {
		inFlight--
		summary.Record(r)
		reporter.Report(r)
	}

	var runErr error
	for runErr == nil {
		if err := ctx.Err(); err != nil {
			runErr = errors.Mark(err, errors.ErrInterrupted)
			break
		}

		line, ok := source.Next()
		if !ok {
			if err := source.Err(); err != nil {
				if !errors.IsSourceUnreadable(err) {
					err = errors.Mark(err, errors.ErrSourceUnreadable)
				}
				runErr = err
			}
			break
		}

		candidate, ok := domain.NormalizeCandidate(line)
		if !ok {
			summary.Skipped++
			continue
		}

		if inFlight >= window {
			d.logger.Debug("window full, draining one result", "in_flight", inFlight)
			deliver(<-pool.Results())
		}

		pool.Submit(candidate)
		inFlight++
		summary.Submitted++
		if inFlight > summary.MaxInFlight {
			summary.MaxInFlight = inFlight
		}
		reporter.Submitted(candidate)
	}

	pool.CloseQueue()
	for inFlight > 0 {
		deliver(<-pool.Results())
	}
	pool.Stop()

	summary.Duration = time.Since(start)

	if runErr != nil {
		d.logger.Warn("dispatch stopped early",
			"error", runErr.Error(),
			"submitted", summary.Submitted,
			"completed", summary.Completed,
		)
	}
	d.logger.Info("dispatch finished",
		"submitted", summary.Submitted,
		"completed", summary.Completed,
		"found", summary.Found,
		"errors", summary.Errored,
		"skipped", summary.Skipped,
		"max_in_flight", summary.MaxInFlight,
		"elapsed_ms", summary.Duration.Milliseconds(),
	)
	return summary, runErr
}

// probe es el handler de los workers. Un candidato que aún no ha empezado
// cuando se cancela la ejecución se resuelve sin tocar la red; uno que ya
// empezó termina por sí mismo, acotado por el timeout de la petición.
func (d *Dispatcher) probe(ctx context.Context, candidate domain.Candidate) domain.ProbeResult {
	if ctx.Err() != nil {
		return domain.Errored(candidate, CanceledDetail)
	}
	return d.prober.Probe(context.WithoutCancel(ctx), candidate)
}
