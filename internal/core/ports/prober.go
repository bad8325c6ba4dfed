// internal/core/ports/prober.go
package ports

import (
	"context"

	"userenum/internal/core/domain"
)

// Prober ejecuta una comprobación de existencia para un candidato.
// Nunca devuelve error: cualquier fallo queda capturado como OutcomeErrored.
// Las implementaciones deben ser seguras para uso concurrente.
type Prober interface {
	Probe(ctx context.Context, candidate domain.Candidate) domain.ProbeResult
}

// ProberFunc adapta una función a Prober.
type ProberFunc func(ctx context.Context, candidate domain.Candidate) domain.ProbeResult

// Probe llama a f.
func (f ProberFunc) Probe(ctx context.Context, candidate domain.Candidate) domain.ProbeResult {
	return f(ctx, candidate)
}
