// internal/platform/ui/raw_presenter.go
package ui

import (
	"fmt"
	"io"
	"sync"

	"userenum/internal/core/domain"
)

// RawPresenter escribe líneas planas, sin colores ni animaciones.
// Pensado para salida redirigida a archivo o pipes.
type RawPresenter struct {
	mu       sync.Mutex
	out      io.Writer
	verbose  bool
	every    int64
	counters Counters
}

// NewRawPresenter crea un presenter plano. Con progressEvery > 0 imprime una
// línea de progreso cada progressEvery resultados.
func NewRawPresenter(out io.Writer, verbose bool, progressEvery int) *RawPresenter {
	return &RawPresenter{
		out:     out,
		verbose: verbose,
		every:   int64(progressEvery),
	}
}

// Start imprime el banner
func (r *RawPresenter) Start(info RunInfo) {
	r.println(Banner)
}

// Submitted incrementa el contador de candidatos enviados
func (r *RawPresenter) Submitted(_ domain.Candidate) {
	r.counters.Submit()
}

// Report imprime el resultado en cuanto llega
func (r *RawPresenter) Report(res domain.ProbeResult) {
	completed := r.counters.Complete()

	if line, ok := FormatResult(res, r.verbose); ok {
		r.println(line)
	}
	if r.every > 0 && completed%r.every == 0 {
		submitted, _ := r.counters.Snapshot()
		r.println(fmt.Sprintf("[*] Progress: %d/%d completed", completed, submitted))
	}
}

// Info muestra un mensaje informativo
func (r *RawPresenter) Info(msg string) { r.println("[*] " + msg) }

// Warning muestra una advertencia
func (r *RawPresenter) Warning(msg string) { r.println("[!] " + msg) }

// Error muestra un error
func (r *RawPresenter) Error(msg string) { r.println("[!] " + msg) }

// Finish imprime el resumen final
func (r *RawPresenter) Finish(s domain.Summary) {
	r.println(fmt.Sprintf("[*] Done in %s: %d submitted, %d completed, %d found, %d not found, %d errors",
		formatDuration(s.Duration), s.Submitted, s.Completed, s.Found, s.NotFound, s.Errored))
}

// Close no libera nada
func (r *RawPresenter) Close() error { return nil }

// Counters expone los contadores para inspección.
func (r *RawPresenter) Counters() *Counters { return &r.counters }

func (r *RawPresenter) println(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, line)
}
