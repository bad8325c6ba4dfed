// internal/core/ports/source.go
package ports

import "userenum/internal/core/domain"

// CandidateSource entrega candidatos en orden, de forma perezosa.
// Se consume una sola vez, de principio a fin. Next devuelve false al
// agotarse o al fallar; Err distingue ambos casos.
type CandidateSource interface {
	// Next retorna la siguiente línea cruda de la fuente
	Next() (domain.Candidate, bool)

	// Err retorna el error que detuvo la lectura (nil si se agotó normalmente)
	Err() error
}

// SliceSource adapta un slice en memoria a CandidateSource.
type SliceSource struct {
	items []string
	pos   int
}

// NewSliceSource crea una fuente sobre items.
func NewSliceSource(items ...string) *SliceSource {
	return &SliceSource{items: items}
}

// Next retorna el siguiente elemento del slice.
func (s *SliceSource) Next() (domain.Candidate, bool) {
	if s.pos >= len(s.items) {
		return "", false
	}
	c := s.items[s.pos]
	s.pos++
	return c, true
}

// Err siempre es nil para un slice.
func (s *SliceSource) Err() error { return nil }
