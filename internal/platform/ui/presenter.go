// internal/platform/ui/presenter.go
package ui

import (
	"sync/atomic"
	"time"

	"userenum/internal/core/domain"
	"userenum/internal/core/ports"
)

// Banner es la primera línea que ve el operador.
const Banner = "[*] Starting GitLab user enumeration (handles 304 responses)"

// Presenter renderiza el progreso de la enumeración.
// Implementa ports.Reporter: recibe eventos del dispatcher en una única goroutine.
type Presenter interface {
	ports.Reporter

	// Start muestra el banner y la configuración de la ejecución
	Start(info RunInfo)

	// Info muestra un mensaje informativo
	Info(msg string)

	// Warning muestra una advertencia
	Warning(msg string)

	// Error muestra un error
	Error(msg string)

	// Finish detiene el indicador en vivo y muestra el resumen final
	Finish(summary domain.Summary)

	// Close limpia recursos del presenter
	Close() error
}

// RunInfo contiene información inicial de la ejecución
type RunInfo struct {
	BaseURL  string
	Wordlist string
	Workers  int
	Window   int
	Timeout  time.Duration
	Verbose  bool
	Proxy    string
	Output   string
}

// Counters lleva los contadores submitted/completed del reporter.
// Se actualizan de forma atómica para poder leerlos desde cualquier goroutine.
type Counters struct {
	submitted atomic.Int64
	completed atomic.Int64
}

// Submit incrementa submitted y retorna el nuevo valor.
func (c *Counters) Submit() int64 { return c.submitted.Add(1) }

// Complete incrementa completed y retorna el nuevo valor.
func (c *Counters) Complete() int64 { return c.completed.Add(1) }

// Snapshot retorna (submitted, completed). completed se lee primero para
// que la pareja observada siempre cumpla completed <= submitted.
func (c *Counters) Snapshot() (submitted, completed int64) {
	completed = c.completed.Load()
	submitted = c.submitted.Load()
	return submitted, completed
}
