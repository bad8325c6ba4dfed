// internal/core/domain/candidate.go
package domain

import "strings"

// Candidate es un identificador opaco que se prueba contra el endpoint.
// No se exige unicidad: los duplicados se prueban de forma independiente.
type Candidate = string

// NormalizeCandidate recorta espacios alrededor de una línea de la wordlist.
// Devuelve false cuando la línea queda vacía y debe saltarse.
func NormalizeCandidate(line string) (Candidate, bool) {
	c := strings.TrimSpace(line)
	return c, c != ""
}
