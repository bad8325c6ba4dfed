// internal/core/ports/reporter.go
package ports

import "userenum/internal/core/domain"

// Reporter observa el flujo de eventos del dispatcher.
// Ambos métodos se invocan desde una única goroutine, en orden:
// Submitted al encolar un candidato y Report al entregar su resultado
// (orden de finalización). El reporter no tiene referencia al dispatcher.
type Reporter interface {
	// Submitted notifica que un candidato entró en la ventana
	Submitted(candidate domain.Candidate)

	// Report entrega un resultado exactamente una vez por candidato
	Report(result domain.ProbeResult)
}
