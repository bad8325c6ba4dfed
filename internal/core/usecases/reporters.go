// internal/core/usecases/reporters.go
package usecases

import (
	"userenum/internal/core/domain"
	"userenum/internal/core/ports"
)

// ReportFunc adapta un callback onResult a ports.Reporter.
type ReportFunc func(domain.ProbeResult)

// Submitted no hace nada.
func (f ReportFunc) Submitted(domain.Candidate) {}

// Report llama a f.
func (f ReportFunc) Report(r domain.ProbeResult) { f(r) }

// fanOut reenvía cada evento a varios reporters, en orden.
type fanOut []ports.Reporter

// FanOut combina reporters. Los nil se ignoran.
func FanOut(reporters ...ports.Reporter) ports.Reporter {
	out := make(fanOut, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (f fanOut) Submitted(c domain.Candidate) {
	for _, r := range f {
		r.Submitted(c)
	}
}

func (f fanOut) Report(res domain.ProbeResult) {
	for _, r := range f {
		r.Report(res)
	}
}
