// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"userenum/internal/core/domain"
	"userenum/internal/platform/errors"
)

// mockProber clasifica candidatos con classify y mide la concurrencia real.
type mockProber struct {
	delay    time.Duration
	classify func(domain.Candidate) domain.ProbeResult

	calls   atomic.Int64
	running atomic.Int64
	peak    atomic.Int64
}

func newMockProber(delay time.Duration) *mockProber {
	return &mockProber{delay: delay}
}

func (m *mockProber) Probe(ctx context.Context, candidate domain.Candidate) domain.ProbeResult {
	m.calls.Add(1)
	n := m.running.Add(1)
	defer m.running.Add(-1)
	for {
		p := m.peak.Load()
		if n <= p || m.peak.CompareAndSwap(p, n) {
			break
		}
	}

	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.classify != nil {
		return m.classify(candidate)
	}
	return domain.NotFound(candidate)
}

// recordingReporter registra eventos y verifica que nunca haya más
// completados que enviados, ni un resultado de un candidato no enviado.
type recordingReporter struct {
	mu          sync.Mutex
	submitted   []domain.Candidate
	results     []domain.ProbeResult
	pending     map[domain.Candidate]int
	maxPending  int
	violations  []string
	onReport    func(domain.ProbeResult)
	onSubmitted func(domain.Candidate)
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{pending: make(map[domain.Candidate]int)}
}

func (r *recordingReporter) Submitted(c domain.Candidate) {
	r.mu.Lock()
	r.submitted = append(r.submitted, c)
	r.pending[c]++
	if p := len(r.submitted) - len(r.results); p > r.maxPending {
		r.maxPending = p
	}
	hook := r.onSubmitted
	r.mu.Unlock()

	if hook != nil {
		hook(c)
	}
}

func (r *recordingReporter) Report(res domain.ProbeResult) {
	r.mu.Lock()
	r.results = append(r.results, res)
	if len(r.results) > len(r.submitted) {
		r.violations = append(r.violations, "completed exceeds submitted")
	}
	if r.pending[res.Candidate] == 0 {
		r.violations = append(r.violations, fmt.Sprintf("result for unsubmitted candidate %q", res.Candidate))
	} else {
		r.pending[res.Candidate]--
	}
	hook := r.onReport
	r.mu.Unlock()

	if hook != nil {
		hook(res)
	}
}

func (r *recordingReporter) byCandidate() map[domain.Candidate]domain.ProbeResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[domain.Candidate]domain.ProbeResult, len(r.results))
	for _, res := range r.results {
		out[res.Candidate] = res
	}
	return out
}

// failingSource entrega items y luego falla como un archivo ilegible.
type failingSource struct {
	items []string
	pos   int
}

func (s *failingSource) Next() (domain.Candidate, bool) {
	if s.pos >= len(s.items) {
		return "", false
	}
	item := s.items[s.pos]
	s.pos++
	return item, true
}

func (s *failingSource) Err() error {
	if s.pos >= len(s.items) {
		return errors.New("read /tmp/words.txt: input/output error")
	}
	return nil
}

// endlessSource genera candidatos sin fin.
type endlessSource struct {
	n atomic.Int64
}

func (s *endlessSource) Next() (domain.Candidate, bool) {
	return fmt.Sprintf("user%d", s.n.Add(1)), true
}

func (s *endlessSource) Err() error { return nil }
