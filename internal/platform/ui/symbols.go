// internal/platform/ui/symbols.go
package ui

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"

	"userenum/internal/core/domain"
)

// Prefijos de línea. Se conservan tal cual para compatibilidad con scripts
// que filtran la salida.
const (
	PrefixFound    = "[+] User found: "
	PrefixNotFound = "[-] User not found: "
	PrefixError    = "[!] "
)

// FormatResult retorna la línea para un resultado, o false si debe suprimirse.
// NotFound solo se muestra en modo verbose.
func FormatResult(r domain.ProbeResult, verbose bool) (string, bool) {
	switch r.Outcome {
	case domain.OutcomeFound:
		return PrefixFound + r.Candidate, true
	case domain.OutcomeNotFound:
		if !verbose {
			return "", false
		}
		return PrefixNotFound + r.Candidate, true
	case domain.OutcomeErrored:
		return fmt.Sprintf("%s%s: %s", PrefixError, r.Candidate, r.Detail), true
	default:
		return "", false
	}
}

// OutcomeStyle retorna el estilo pterm para cada outcome
func OutcomeStyle(o domain.Outcome) *pterm.Style {
	switch o {
	case domain.OutcomeFound:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case domain.OutcomeNotFound:
		return pterm.NewStyle(pterm.FgGray)
	case domain.OutcomeErrored:
		return pterm.NewStyle(pterm.FgRed)
	default:
		return pterm.NewStyle(pterm.FgDefault)
	}
}

// Separadores
var (
	SeparatorHeavy = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	SeparatorLight = "────────────────────────────────────────────"
)

// formatDuration formatea una duración de manera legible
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
