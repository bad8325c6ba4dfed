// internal/core/domain/result.go
package domain

import "time"

// Outcome clasifica el resultado de un probe.
type Outcome int

const (
	// OutcomeFound el endpoint confirma que el candidato existe
	OutcomeFound Outcome = iota + 1

	// OutcomeNotFound el endpoint no confirma existencia
	OutcomeNotFound

	// OutcomeErrored el probe falló (transporte o status inesperado)
	OutcomeErrored
)

// IsValid verifica si el outcome es uno de los tres estados.
func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeFound, OutcomeNotFound, OutcomeErrored:
		return true
	default:
		return false
	}
}

// String retorna la representación string del outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// MarshalText permite serializar el outcome como string en JSON/YAML.
func (o Outcome) MarshalText() ([]byte, error) {
	if !o.IsValid() {
		return nil, ErrInvalidOutcome
	}
	return []byte(o.String()), nil
}

// ProbeResult es la clasificación de un único candidato.
// Detail solo se rellena para OutcomeErrored.
type ProbeResult struct {
	Candidate Candidate     `json:"candidate" yaml:"candidate"`
	Outcome   Outcome       `json:"outcome" yaml:"outcome"`
	Detail    string        `json:"detail,omitempty" yaml:"detail,omitempty"`
	Status    int           `json:"status,omitempty" yaml:"status,omitempty"`
	Elapsed   time.Duration `json:"elapsed_ns,omitempty" yaml:"elapsed,omitempty"`
}

// Found construye un resultado positivo.
func Found(c Candidate) ProbeResult {
	return ProbeResult{Candidate: c, Outcome: OutcomeFound}
}

// NotFound construye un resultado negativo.
func NotFound(c Candidate) ProbeResult {
	return ProbeResult{Candidate: c, Outcome: OutcomeNotFound}
}

// Errored construye un resultado fallido con su descripción.
func Errored(c Candidate, detail string) ProbeResult {
	return ProbeResult{Candidate: c, Outcome: OutcomeErrored, Detail: detail}
}

// WithStatus anota el status HTTP observado.
func (r ProbeResult) WithStatus(code int) ProbeResult {
	r.Status = code
	return r
}

// WithElapsed anota la duración del probe.
func (r ProbeResult) WithElapsed(d time.Duration) ProbeResult {
	r.Elapsed = d
	return r
}

// Validate comprueba los invariantes del resultado.
func (r ProbeResult) Validate() error {
	if r.Candidate == "" {
		return ErrEmptyCandidate
	}
	if !r.Outcome.IsValid() {
		return ErrInvalidOutcome
	}
	if r.Outcome != OutcomeErrored && r.Detail != "" {
		return ErrDetailMismatch
	}
	return nil
}

// Summary agrega los contadores de una ejecución completa.
type Summary struct {
	Submitted   int
	Completed   int
	Found       int
	NotFound    int
	Errored     int
	Skipped     int // líneas en blanco descartadas
	MaxInFlight int
	Window      int
	Duration    time.Duration
}

// Record contabiliza un resultado ya entregado.
func (s *Summary) Record(r ProbeResult) {
	s.Completed++
	switch r.Outcome {
	case OutcomeFound:
		s.Found++
	case OutcomeNotFound:
		s.NotFound++
	case OutcomeErrored:
		s.Errored++
	}
}
