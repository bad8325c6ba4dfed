// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"userenum/internal/core/domain"
)

// renderInterval limita la frecuencia de repintado del spinner.
const renderInterval = 100 * time.Millisecond

// PTermPresenter implementa Presenter usando pterm: banner, caja de
// configuración, spinner con contadores en vivo y líneas en color que se
// imprimen por encima del spinner.
type PTermPresenter struct {
	mu sync.Mutex

	out      io.Writer
	verbose  bool
	counters Counters

	spinner    *pterm.SpinnerPrinter
	started    time.Time
	lastRender time.Time
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm
func NewPTermPresenter(out io.Writer, verbose bool) *PTermPresenter {
	return &PTermPresenter{
		out:     out,
		verbose: verbose,
	}
}

// Start muestra el banner, la configuración y arranca el spinner
func (p *PTermPresenter) Start(info RunInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.started = time.Now()

	pterm.Fprintln(p.out, pterm.Cyan(Banner))

	content := fmt.Sprintf("Target:   %s\n", pterm.Cyan(info.BaseURL))
	content += fmt.Sprintf("Wordlist: %s\n", info.Wordlist)
	content += fmt.Sprintf("Threads:  %d (window %d)\n", info.Workers, info.Window)
	content += fmt.Sprintf("Timeout:  %s\n", info.Timeout)
	content += fmt.Sprintf("Verbose:  %s", boolToString(info.Verbose))
	if info.Proxy != "" {
		content += fmt.Sprintf("\nProxy:    %s", info.Proxy)
	}
	if info.Output != "" {
		content += fmt.Sprintf("\nOutput:   %s", info.Output)
	}

	box := pterm.DefaultBox.
		WithTitle("Configuration").
		WithTitleTopCenter().
		WithRightPadding(2).
		WithLeftPadding(2).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Sprint(content)
	pterm.Fprintln(p.out, box)

	spinner, err := pterm.DefaultSpinner.
		WithWriter(p.out).
		WithStyle(pterm.NewStyle(pterm.FgCyan)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithRemoveWhenDone(true).
		Start(p.progressText())
	if err == nil {
		p.spinner = spinner
	}
}

// Submitted actualiza el contador de enviados
func (p *PTermPresenter) Submitted(_ domain.Candidate) {
	p.counters.Submit()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.renderThrottled()
}

// Report imprime la línea del resultado por encima del spinner
func (p *PTermPresenter) Report(res domain.ProbeResult) {
	p.counters.Complete()

	p.mu.Lock()
	defer p.mu.Unlock()

	if line, ok := FormatResult(res, p.verbose); ok {
		pterm.Fprintln(p.out, OutcomeStyle(res.Outcome).Sprint(line))
	}
	p.renderThrottled()
}

// Info muestra un mensaje informativo
func (p *PTermPresenter) Info(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pterm.Fprintln(p.out, pterm.Info.Sprint(msg))
}

// Warning muestra una advertencia
func (p *PTermPresenter) Warning(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pterm.Fprintln(p.out, pterm.Warning.Sprint(msg))
}

// Error muestra un error
func (p *PTermPresenter) Error(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pterm.Fprintln(p.out, pterm.Error.Sprint(msg))
}

// Finish detiene el spinner y muestra las estadísticas finales
func (p *PTermPresenter) Finish(s domain.Summary) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopSpinner()

	content := fmt.Sprintf("Duration:  %s\n", pterm.Green(formatDuration(s.Duration)))
	content += fmt.Sprintf("Submitted: %d\n", s.Submitted)
	content += fmt.Sprintf("Completed: %d\n", s.Completed)
	content += fmt.Sprintf("Found:     %s\n", pterm.Green(fmt.Sprintf("%d", s.Found)))
	content += fmt.Sprintf("Not found: %d", s.NotFound)
	if s.Errored > 0 {
		content += fmt.Sprintf("\nErrors:    %s", pterm.Red(fmt.Sprintf("%d", s.Errored)))
	}
	if s.Skipped > 0 {
		content += fmt.Sprintf("\nSkipped:   %s", pterm.Gray(fmt.Sprintf("%d blank", s.Skipped)))
	}

	pterm.Fprintln(p.out, pterm.LightBlue(SeparatorHeavy))
	pterm.Fprintln(p.out, pterm.DefaultBox.
		WithTitle("Enumeration Statistics").
		WithTitleTopCenter().
		WithRightPadding(2).
		WithLeftPadding(2).
		WithBoxStyle(pterm.NewStyle(pterm.FgGreen)).
		Sprint(content))
}

// Close detiene el spinner si sigue activo
func (p *PTermPresenter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopSpinner()
	return nil
}

// Counters expone los contadores para inspección.
func (p *PTermPresenter) Counters() *Counters { return &p.counters }

// renderThrottled repinta el spinner como mucho cada renderInterval.
// Debe llamarse con p.mu tomado.
func (p *PTermPresenter) renderThrottled() {
	if p.spinner == nil {
		return
	}
	now := time.Now()
	if now.Sub(p.lastRender) < renderInterval {
		return
	}
	p.lastRender = now
	p.spinner.UpdateText(p.progressText())
}

func (p *PTermPresenter) progressText() string {
	submitted, completed := p.counters.Snapshot()
	return fmt.Sprintf("Enumerating (%d submitted, %d/%d completed)", submitted, completed, submitted)
}

// stopSpinner debe llamarse con p.mu tomado.
func (p *PTermPresenter) stopSpinner() {
	if p.spinner == nil {
		return
	}
	_ = p.spinner.Stop()
	p.spinner = nil
}

// boolToString convierte booleano a string visual
func boolToString(b bool) string {
	if b {
		return pterm.Green("ON")
	}
	return pterm.Gray("OFF")
}
